package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "pet-health-assessment/docs"
	mem "pet-health-assessment/internal/adapters/storage/memory"
	pg "pet-health-assessment/internal/adapters/storage/postgres"
	rs "pet-health-assessment/internal/adapters/storage/redisstore"
	"pet-health-assessment/internal/domain/nutrition"
	"pet-health-assessment/internal/domain/wizard"
	"pet-health-assessment/internal/middleware"
	"pet-health-assessment/internal/platform/clock"
	"pet-health-assessment/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger logger.Logger // nil => no-op

	// Storage: si viene DB usa Postgres; si no, Redis; si no, in-memory.
	DB         *sql.DB
	Redis      redis.Cmdable
	SessionTTL time.Duration // TTL de claves en Redis; 0 = sin expiración

	// Opcionales para tests: reloj manual y tiempos del procesamiento.
	Clock   clock.Clock
	Timings *wizard.Timings
}

// Router es el handler HTTP más los services que necesitan cierre.
type Router struct {
	http.Handler

	wizard *wizard.Service
}

func NewRouter(opts Options) *Router {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Standard(log)...)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		sessionRepo wizard.Repository
		plannerRepo nutrition.Repository
		backend     string
	)

	switch {
	case opts.DB != nil:
		sessionRepo = pg.NewSessionsRepo(opts.DB)
		plannerRepo = pg.NewPlannersRepo(opts.DB)
		backend = "postgres"
	case opts.Redis != nil:
		sessionRepo = rs.NewSessionsRepo(opts.Redis, opts.SessionTTL)
		plannerRepo = rs.NewPlannersRepo(opts.Redis, opts.SessionTTL)
		backend = "redis"
	default:
		sessionRepo = mem.NewSessionRepo()
		plannerRepo = mem.NewPlannerRepo()
		backend = "memory"
	}
	log.Info("storage selected", map[string]any{"backend": backend})

	// Services por módulo
	wizardSvc := wizard.NewService(sessionRepo, wizard.ServiceOptions{
		Clock:   opts.Clock,
		Timings: opts.Timings,
		Logger:  log,
	})
	nutritionSvc := nutrition.NewService(plannerRepo, nutrition.ServiceOptions{Logger: log})

	// Rutas por módulo
	wizard.RegisterRoutes(r, wizardSvc)
	nutrition.RegisterRoutes(r, nutritionSvc)

	return &Router{Handler: r, wizard: wizardSvc}
}

// EvictIdle descarta controllers de wizard sin uso (el snapshot queda guardado).
func (rt *Router) EvictIdle(maxIdle time.Duration) int {
	return rt.wizard.EvictIdle(maxIdle)
}

// ExpireSessions borra las sesiones de wizard sin cambios hace más de ttl.
func (rt *Router) ExpireSessions(ctx context.Context, ttl time.Duration) (int, error) {
	return rt.wizard.Expire(ctx, ttl)
}

// Close frena los timers de todas las sesiones vivas.
func (rt *Router) Close() {
	rt.wizard.Shutdown()
}
