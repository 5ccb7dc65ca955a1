package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"pet-health-assessment/internal/domain/assessment"

	"github.com/go-chi/chi/v5"
)

// maxImageBytes limita el upload del paso visual.
const maxImageBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/assessment/catalog", catalogHandler())

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", createSessionHandler(svc))

		sr.Route("/{sessionID}", func(one chi.Router) {
			one.Get("/", getSessionHandler(svc))
			one.Delete("/", closeSessionHandler(svc))

			// Paso 1
			one.Post("/image", uploadImageHandler(svc))

			// Paso 2
			one.Put("/metrics", setMetricsHandler(svc))
			one.Post("/observations/toggle", toggleObservationHandler(svc))
			one.Get("/insight", insightHandler(svc))

			// Navegación
			one.Post("/next", stepHandler(svc.Next))
			one.Post("/back", stepHandler(svc.Back))
			one.Post("/restart", stepHandler(svc.Restart))

			// Paso 4
			one.Get("/result", resultHandler(svc))
		})
	})
}

// sessionResponse es el estado del wizard que ve el cliente.
type sessionResponse struct {
	ID           string             `json:"id"`
	Step         Step               `json:"step"`
	StepName     string             `json:"step_name"`
	Image        *ImageRef          `json:"image,omitempty"`
	Metrics      assessment.Metrics `json:"metrics"`
	Observations []string           `json:"observations"`
	Progress     int                `json:"progress"`
	StatusIndex  int                `json:"status_index"`
	Status       string             `json:"status,omitempty"` // solo en paso 3
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type catalogResponse struct {
	Symptoms       []string `json:"symptoms"`
	StatusMessages []string `json:"status_messages"`
	PhotoTips      []string `json:"photo_tips"`
}

type toggleObservationRequest struct {
	Label string `json:"label"`
}

type insightResponse struct {
	Insight string `json:"insight"`
}

// catalogHandler godoc
// @Summary Catálogos del wizard
// @Description Síntomas seleccionables, mensajes de estado del procesamiento y tips de foto.
// @Tags assessment
// @Produce json
// @Success 200 {object} catalogResponse
// @Router /assessment/catalog [get]
func catalogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, catalogResponse{
			Symptoms:       assessment.SymptomObservations(),
			StatusMessages: assessment.StatusMessages(),
			PhotoTips:      assessment.PhotoTips(),
		})
	}
}

// createSessionHandler godoc
// @Summary Crear sesión de wizard
// @Description Arranca un assessment en el paso 1 con métricas por defecto (6/6/6).
// @Tags sessions
// @Produce json
// @Success 201 {object} sessionResponse
// @Router /sessions [post]
func createSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Create(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSessionResponse(s))
	}
}

func getSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.Get(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

func closeSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// uploadImageHandler godoc
// @Summary Adjuntar imagen (paso 1)
// @Description Multipart con campo `image`. Solo se registra la presencia y metadata; no hay análisis de imagen.
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param image formData file true "Foto de la mascota (image/*)"
// @Success 200 {object} sessionResponse
// @Failure 400 {string} string "invalid multipart"
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "invalid step transition"
// @Failure 413 {string} string "image too large"
// @Failure 415 {string} string "file must be an image"
// @Router /sessions/{sessionID}/image [post]
func uploadImageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+(1<<20))
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "invalid multipart", http.StatusBadRequest)
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		f, hdr, err := r.FormFile("image")
		if err != nil {
			http.Error(w, "image field is required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		// Content-Type declarado; si no viene, lo inferimos de los primeros bytes.
		ct := strings.TrimSpace(hdr.Header.Get("Content-Type"))
		if ct == "" || ct == "application/octet-stream" {
			head := make([]byte, 512)
			n, _ := io.ReadFull(f, head)
			ct = http.DetectContentType(head[:n])
		}
		if hdr.Size > maxImageBytes {
			http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
			return
		}

		s, err := svc.AttachImage(r.Context(), chi.URLParam(r, "sessionID"), ImageRef{
			Filename:    hdr.Filename,
			ContentType: ct,
			Size:        hdr.Size,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

func setMetricsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assessment.Metrics
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.SetMetrics(r.Context(), chi.URLParam(r, "sessionID"), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

func toggleObservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleObservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		s, err := svc.ToggleObservation(r.Context(), chi.URLParam(r, "sessionID"), req.Label)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

func insightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txt, err := svc.Insight(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, insightResponse{Insight: txt})
	}
}

// stepHandler sirve next/back/restart, que comparten forma.
func stepHandler(op func(ctx context.Context, id string) (Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := op(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSessionResponse(s))
	}
}

// resultHandler godoc
// @Summary Resultado del assessment (paso 4)
// @Description Score de riesgo [8,96], nivel, resumen, observaciones, acciones y clínicas cercanas. 409 mientras el wizard no llegó al paso 4.
// @Tags sessions
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} assessment.Result
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "result not ready"
// @Router /sessions/{sessionID}/result [get]
func resultHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Result(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func toSessionResponse(s Session) sessionResponse {
	obs := s.State.Observations
	if obs == nil {
		obs = []string{}
	}
	out := sessionResponse{
		ID:           s.ID,
		Step:         s.State.Step,
		StepName:     s.State.Step.String(),
		Image:        s.State.Image,
		Metrics:      s.State.Metrics,
		Observations: obs,
		Progress:     s.State.Progress,
		StatusIndex:  s.State.StatusIndex,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.State.Step == StepProcessing {
		out.Status = assessment.StatusMessage(s.State.StatusIndex)
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDisposed):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, assessment.ErrInvalidRange),
		errors.Is(err, assessment.ErrUnknownObservation),
		errors.Is(err, ErrImageRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrResultNotReady):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotAnImage):
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado en cada módulo (wizard/nutrition) a propósito,
// igual que en el resto de handlers: todavía no amerita un paquete compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
