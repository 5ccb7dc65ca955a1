package middleware

import (
	"net/http"

	"pet-health-assessment/internal/platform/logger"
)

// Standard es la cadena común después de RequestID/RealIP. Recover va adentro
// para que log y métricas registren el 500 de un panic.
func Standard(log logger.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RequestLogger(log),
		Metrics,
		Recover(log),
	}
}
