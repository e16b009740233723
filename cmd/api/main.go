package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bcrypthasher "vet-clinic/internal/adapters/auth/bcrypt"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/platform/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/router"
)

// @title vet-clinic API
// @version 1.0
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config error", logger.Fields{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", logger.Fields{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := router.OpenStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()

	sessions, closeSessions, err := router.OpenSessions(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSessions()

	hasher := bcrypthasher.NewHasher(cfg.BcryptCost)

	if err := bootstrapAdmin(ctx, cfg, storage, hasher, log); err != nil {
		return err
	}

	var health func(context.Context) error
	if p, ok := storage.(interface{ Ping(context.Context) error }); ok {
		health = p.Ping
	}

	h := router.NewRouter(router.Options{
		Log:          log,
		Storage:      storage,
		Sessions:     sessions,
		Hasher:       hasher,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		Health:       health,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", logger.Fields{"addr": cfg.Addr()})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// bootstrapAdmin crea el primer administrador si no hay usuarios.
func bootstrapAdmin(ctx context.Context, cfg config.Config, storage router.Storage, hasher *bcrypthasher.Hasher, log logger.Logger) error {
	svc := users.NewService(storage.Users(), hasher, log)

	if !cfg.Bootstrap.Enabled() {
		n, err := svc.Count(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			log.Warn("no users and no BOOTSTRAP_ADMIN_USERNAME/PASSWORD; nobody can log in", nil)
		}
		return nil
	}

	created, err := svc.Bootstrap(ctx, users.CreateInput{
		Username: cfg.Bootstrap.Username,
		Password: cfg.Bootstrap.Password,
		Email:    cfg.Bootstrap.Email,
		FullName: cfg.Bootstrap.FullName,
	})
	if err != nil {
		return err
	}
	if created {
		log.Info("bootstrap administrator created", logger.Fields{"username": cfg.Bootstrap.Username})
	}
	return nil
}
