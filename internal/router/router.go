package router

import (
	"net/http"

	mem "ngo-animal-rescue/internal/adapters/storage/memory"
	_ "ngo-animal-rescue/internal/docs"
	"ngo-animal-rescue/internal/domain/account"
	"ngo-animal-rescue/internal/domain/adoptions"
	"ngo-animal-rescue/internal/domain/catalog"
	"ngo-animal-rescue/internal/domain/dashboard"
	"ngo-animal-rescue/internal/domain/donations"
	"ngo-animal-rescue/internal/domain/incidents"
	"ngo-animal-rescue/internal/domain/session"
	"ngo-animal-rescue/internal/middleware"
	"ngo-animal-rescue/internal/platform/logger"
	"ngo-animal-rescue/internal/platform/metrics"
	"ngo-animal-rescue/internal/platform/validation"
	"ngo-animal-rescue/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Session *session.Store
	Catalog *catalog.Catalog

	// Pueden ser nil: sin API remota, login/registro responden 503 y las emergencias también.
	Gateway    auth.Gateway
	Dispatcher incidents.Dispatcher

	Logger  logger.Logger
	Metrics *metrics.Metrics // opcional

	// Seed carga los datos de demo (solicitudes, emergencias, donaciones).
	Seed bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	var rec validation.Recorder
	if opts.Metrics != nil {
		rec = opts.Metrics
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Repos in-memory (sin persistencia propia)
	var (
		appRepo adoptions.Repository
		incRepo incidents.Repository
		donRepo donations.Repository
	)
	if opts.Seed {
		appRepo = mem.NewAdoptionsRepo(adoptions.Seed()...)
		incRepo = mem.NewIncidentsRepo(incidents.Seed()...)
		donRepo = mem.NewDonationsRepo(donations.Seed()...)
	} else {
		appRepo = mem.NewAdoptionsRepo()
		incRepo = mem.NewIncidentsRepo()
		donRepo = mem.NewDonationsRepo()
	}

	// sin catálogo quedan nil (interfaz nil, no puntero nil)
	var (
		lookup  adoptions.AnimalLookup
		animals dashboard.Animals
	)
	if opts.Catalog != nil {
		lookup = opts.Catalog
		animals = opts.Catalog
	}

	// Services por módulo
	accountSvc := account.NewService(opts.Gateway, opts.Session, log, rec)
	adoptionsSvc := adoptions.NewService(appRepo, lookup, rec)
	incidentsSvc := incidents.NewService(incRepo, opts.Dispatcher, log, rec)
	donationsSvc := donations.NewService(donRepo, rec)
	dashboardSvc := dashboard.NewService(animals, adoptionsSvc, incidentsSvc, donationsSvc)

	requireReady := middleware.RequireReady(opts.Session)
	requireAuth := middleware.RequireAuth(opts.Session)
	requireAdmin := middleware.RequireAdmin(opts.Session)

	// Rutas por módulo
	account.RegisterRoutes(r, accountSvc, opts.Session, requireReady, requireAuth)
	if opts.Catalog != nil {
		catalog.RegisterRoutes(r, opts.Catalog, requireAdmin)
	}
	adoptions.RegisterRoutes(r, adoptionsSvc, requireAdmin)
	incidents.RegisterRoutes(r, incidentsSvc, requireAdmin)
	donations.RegisterRoutes(r, donationsSvc, requireAdmin)
	dashboard.RegisterRoutes(r, dashboardSvc, requireAdmin)

	return r
}
