package router

import (
	"context"
	"net/http"

	"packmates/internal/adapters/locker/local"
	mem "packmates/internal/adapters/storage/memory"
	_ "packmates/internal/docs"
	"packmates/internal/domain/calendar"
	"packmates/internal/domain/pets"
	"packmates/internal/middleware"
	"packmates/internal/platform/logger"
	"packmates/internal/ports/auth"
	"packmates/internal/ports/locker"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcionales: si no vienen, repos in-memory.
	CalendarRepo calendar.Repository
	PetsRepo     pets.Repository

	// Opcional: sin locker se usa uno in-process.
	Locker locker.Locker

	Logger logger.Logger

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Services expone los servicios armados (p.ej. para registrar jobs en main).
type Services struct {
	Calendar *calendar.Service
	Pets     *pets.Service
}

func NewRouter(opts Options) http.Handler {
	h, _ := Build(opts)
	return h
}

// Build arma el router y devuelve también los servicios.
func Build(opts Options) (http.Handler, Services) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.AccessLog(log))
	r.Use(corsHandler(opts.CORSOrigins).Handler)
	r.Use(middleware.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst).Limit)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	calendarRepo := opts.CalendarRepo
	if calendarRepo == nil {
		calendarRepo = mem.NewCalendarRepo()
	}
	petRepo := opts.PetsRepo
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	locks := opts.Locker
	if locks == nil {
		locks = local.New()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	calendarSvc := calendar.NewService(calendarRepo, locks, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	calendar.RegisterRoutes(r, calendarSvc, petDirectory{svc: petsSvc})

	return r, Services{Calendar: calendarSvc, Pets: petsSvc}
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Debug-User-ID", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// petDirectory adapta pets.Service a calendar.PetDirectory (evita ciclos de imports).
type petDirectory struct {
	svc *pets.Service
}

func (d petDirectory) PetSummary(ctx context.Context, petID string) (calendar.PetSummary, error) {
	s, err := d.svc.Summary(ctx, petID)
	if err != nil {
		return calendar.PetSummary{}, err
	}
	return calendar.PetSummary{ID: s.ID, PetType: string(s.PetType), Breed: s.Breed}, nil
}
