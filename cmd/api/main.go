package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ngo-animal-rescue/internal/adapters/remote/rescueapi"
	mem "ngo-animal-rescue/internal/adapters/storage/memory"
	pg "ngo-animal-rescue/internal/adapters/storage/postgres"
	"ngo-animal-rescue/internal/adapters/storage/redis"
	"ngo-animal-rescue/internal/adapters/storage/sqlite"
	"ngo-animal-rescue/internal/domain/catalog"
	"ngo-animal-rescue/internal/domain/incidents"
	"ngo-animal-rescue/internal/domain/session"
	"ngo-animal-rescue/internal/platform/config"
	"ngo-animal-rescue/internal/platform/logger"
	"ngo-animal-rescue/internal/platform/metrics"
	"ngo-animal-rescue/internal/ports/auth"
	"ngo-animal-rescue/internal/ports/storage"
	"ngo-animal-rescue/internal/router"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("loading config failed", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	local, closeLocal, err := openLocalStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeLocal()

	store := session.NewStore(local, session.Options{
		Key:      cfg.Session.Key,
		Logger:   log,
		Recorder: m,
	})

	api, err := rescueapi.NewClient(rescueapi.Config{
		BaseURL:          cfg.API.BaseURL,
		Timeout:          cfg.API.Timeout,
		MaxResponseBytes: cfg.API.MaxResponseBytes,
	})
	if err != nil {
		return err
	}

	// sin API remota quedan nil (interfaz nil, no puntero nil)
	var (
		gateway    auth.Gateway
		dispatcher incidents.Dispatcher
		source     catalog.Source
	)
	if api.IsConfigured() {
		gateway = api
		dispatcher = api
		source = api
	} else {
		log.Warn("api.base_url empty: auth and emergencies disabled, catalog uses fixtures", nil)
	}

	if cfg.Catalog.Source == config.SourcePostgres {
		db, err := pg.Open(ctx, cfg.DB.DSN)
		if err != nil {
			return err
		}
		defer db.Close()

		animals := pg.NewAnimalsSource(db)
		if err := animals.EnsureSchema(ctx); err != nil {
			return err
		}
		source = animals
	}

	cat := catalog.New(source, catalog.Options{
		FallbackDelay: cfg.Catalog.FallbackDelay,
		Logger:        log,
		Recorder:      m,
	})
	unsubscribe := cat.Subscribe(func() { m.CatalogSize(len(cat.List())) })
	defer unsubscribe()

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: router.NewRouter(router.Options{
			Session:    store,
			Catalog:    cat,
			Gateway:    gateway,
			Dispatcher: dispatcher,
			Logger:     log,
			Metrics:    m,
			Seed:       cfg.App.SeedDemo,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	// hidratación y primera carga en paralelo con el server: los guards responden 503 mientras tanto
	g.Go(func() error {
		store.Hydrate(gctx)
		return nil
	})
	g.Go(func() error {
		if err := cat.Load(gctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("initial catalog load failed", map[string]any{"error": err})
		}
		return nil
	})

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":    cfg.Server.Addr,
			"storage": cfg.Storage.Driver,
			"catalog": cfg.Catalog.Source,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// escrituras diferidas de la sesión
		store.Flush()
		return err
	})

	return g.Wait()
}

func openLocalStorage(ctx context.Context, cfg config.Config) (storage.LocalStorage, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		s, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.StorageRedis:
		s := redis.New(redis.Config{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			Prefix:   cfg.Storage.KeyPrefix,
		})
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil

	default:
		return mem.NewLocalStorage(), func() {}, nil
	}
}
