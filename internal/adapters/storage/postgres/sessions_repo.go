package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-health-assessment/internal/domain/wizard"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

// Save hace upsert del snapshot; created_at no se pisa.
func (r *SessionsRepo) Save(ctx context.Context, s wizard.Session) error {
	state, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO wizard_sessions (id, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at
	`,
		s.ID,
		state,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (wizard.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return wizard.Session{}, wizard.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, state, created_at, updated_at
		FROM wizard_sessions
		WHERE id = $1
	`, id)

	var s wizard.Session
	var state []byte
	if err := row.Scan(&s.ID, &state, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return wizard.Session{}, wizard.ErrNotFound
		}
		return wizard.Session{}, err
	}
	if err := json.Unmarshal(state, &s.State); err != nil {
		return wizard.Session{}, fmt.Errorf("decode session state: %w", err)
	}
	return s, nil
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return wizard.ErrNotFound
	}
	return nil
}

func (r *SessionsRepo) DeleteIdle(ctx context.Context, before time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE updated_at < $1`, before)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
