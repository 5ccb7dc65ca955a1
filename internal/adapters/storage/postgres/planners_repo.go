package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-health-assessment/internal/domain/nutrition"
)

type PlannersRepo struct {
	db *sql.DB
}

func NewPlannersRepo(db *sql.DB) *PlannersRepo {
	return &PlannersRepo{db: db}
}

func (r *PlannersRepo) Save(ctx context.Context, p nutrition.Planner) error {
	form, err := json.Marshal(p.Form)
	if err != nil {
		return fmt.Errorf("encode planner form: %w", err)
	}
	marked := p.Marked
	if marked == nil {
		marked = []string{}
	}
	markedJSON, err := json.Marshal(marked)
	if err != nil {
		return fmt.Errorf("encode planner marks: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO nutrition_planners (id, form, marked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET form = EXCLUDED.form,
			marked = EXCLUDED.marked,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID,
		form,
		markedJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PlannersRepo) GetByID(ctx context.Context, id string) (nutrition.Planner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nutrition.Planner{}, nutrition.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, form, marked, created_at, updated_at
		FROM nutrition_planners
		WHERE id = $1
	`, id)

	var p nutrition.Planner
	var form, marked []byte
	if err := row.Scan(&p.ID, &form, &marked, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nutrition.Planner{}, nutrition.ErrNotFound
		}
		return nutrition.Planner{}, err
	}
	if err := json.Unmarshal(form, &p.Form); err != nil {
		return nutrition.Planner{}, fmt.Errorf("decode planner form: %w", err)
	}
	if err := json.Unmarshal(marked, &p.Marked); err != nil {
		return nutrition.Planner{}, fmt.Errorf("decode planner marks: %w", err)
	}
	return p, nil
}

func (r *PlannersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM nutrition_planners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nutrition.ErrNotFound
	}
	return nil
}
