package nutrition

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxFormBytes alcanza de sobra para un formulario.
const maxFormBytes = 64 << 10

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/nutrition/plan", derivePlanHandler(svc))

	r.Route("/planners", func(pr chi.Router) {
		pr.Post("/", createPlannerHandler(svc))

		pr.Route("/{plannerID}", func(one chi.Router) {
			one.Get("/", getPlannerHandler(svc))
			one.Patch("/", updatePlannerHandler(svc))
			one.Delete("/", deletePlannerHandler(svc))
			one.Post("/foods/toggle", toggleFoodHandler(svc))
		})
	})
}

type updatePlannerRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	AnimalType    *AnimalType    `json:"animal_type"`
	Age           *float64       `json:"age"`
	CurrentWeight *float64       `json:"current_weight"`
	TargetWeight  *float64       `json:"target_weight"`
	ActivityLevel *ActivityLevel `json:"activity_level"`
	FitnessGoal   *Goal          `json:"fitness_goal"`
	DurationWeeks *int           `json:"duration_weeks"`
}

type toggleFoodRequest struct {
	Name string `json:"name"`
}

type plannerResponse struct {
	ID        string    `json:"id"`
	Form      Form      `json:"form"`
	Plan      Plan      `json:"plan"`
	Marked    []string  `json:"marked_foods"`
	Score     int       `json:"food_score"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// derivePlanHandler godoc
// @Summary Derivar plan de nutrición
// @Description Calcula calorías, macros, comidas diarias, agua y variación semanal de peso. No persiste nada.
// @Tags nutrition
// @Accept json
// @Produce json
// @Param body body Form true "Formulario"
// @Success 200 {object} Plan
// @Failure 400 {string} string "invalid form"
// @Router /nutrition/plan [post]
func derivePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		if err := ValidateFormJSON(body); err != nil {
			writeError(w, err)
			return
		}
		var f Form
		if err := json.Unmarshal(body, &f); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		plan, err := svc.Derive(f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, plan)
	}
}

// createPlannerHandler godoc
// @Summary Crear planner
// @Description Body opcional; sin body arranca con el formulario por defecto (Dog, 3 años, 20kg -> 18kg, moderate, Weight Loss, 8 semanas).
// @Tags planners
// @Accept json
// @Produce json
// @Param body body Form false "Formulario inicial"
// @Success 201 {object} plannerResponse
// @Failure 400 {string} string "invalid form"
// @Router /planners [post]
func createPlannerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}

		var form *Form
		if len(bytes.TrimSpace(body)) > 0 {
			if err := ValidateFormJSON(body); err != nil {
				writeError(w, err)
				return
			}
			var f Form
			if err := json.Unmarshal(body, &f); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			form = &f
		}

		v, err := svc.CreatePlanner(r.Context(), form)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPlannerResponse(v))
	}
}

func getPlannerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetPlanner(r.Context(), chi.URLParam(r, "plannerID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlannerResponse(v))
	}
}

// updatePlannerHandler godoc
// @Summary Editar formulario del planner
// @Description PATCH parcial. Cambiar animal_type limpia las comidas marcadas.
// @Tags planners
// @Accept json
// @Produce json
// @Param plannerID path string true "ID del planner"
// @Param body body updatePlannerRequest true "Campos a cambiar"
// @Success 200 {object} plannerResponse
// @Failure 400 {string} string "invalid form"
// @Failure 404 {string} string "planner not found"
// @Router /planners/{plannerID} [patch]
func updatePlannerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		if err := ValidatePatchJSON(body); err != nil {
			writeError(w, err)
			return
		}
		var req updatePlannerRequest
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.UpdateForm(r.Context(), chi.URLParam(r, "plannerID"), FormPatch{
			AnimalType:    req.AnimalType,
			Age:           req.Age,
			CurrentWeight: req.CurrentWeight,
			TargetWeight:  req.TargetWeight,
			ActivityLevel: req.ActivityLevel,
			FitnessGoal:   req.FitnessGoal,
			DurationWeeks: req.DurationWeeks,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlannerResponse(v))
	}
}

func deletePlannerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeletePlanner(r.Context(), chi.URLParam(r, "plannerID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// toggleFoodHandler godoc
// @Summary Marcar/desmarcar comida
// @Description La comida tiene que estar en el catálogo del animal actual del planner.
// @Tags planners
// @Accept json
// @Produce json
// @Param plannerID path string true "ID del planner"
// @Param body body toggleFoodRequest true "Comida"
// @Success 200 {object} plannerResponse
// @Failure 400 {string} string "food not in current catalog"
// @Failure 404 {string} string "planner not found"
// @Router /planners/{plannerID}/foods/toggle [post]
func toggleFoodHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleFoodRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		v, err := svc.ToggleFood(r.Context(), chi.URLParam(r, "plannerID"), req.Name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPlannerResponse(v))
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func toPlannerResponse(v PlannerView) plannerResponse {
	marked := v.Planner.Marked
	if marked == nil {
		marked = []string{}
	}
	return plannerResponse{
		ID:        v.Planner.ID,
		Form:      v.Planner.Form,
		Plan:      v.Plan,
		Marked:    marked,
		Score:     v.Score,
		CreatedAt: v.Planner.CreatedAt,
		UpdatedAt: v.Planner.UpdatedAt,
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "planner not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidRange),
		errors.Is(err, ErrUnknownCategory),
		errors.Is(err, ErrUnknownFood):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado igual que en wizard; se extrae cuando aparezca un tercer módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
