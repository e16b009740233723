package router

import (
	"context"
	"fmt"

	memsession "vet-clinic/internal/adapters/session/memory"
	redisstore "vet-clinic/internal/adapters/session/redis"
	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/adapters/storage/sqlite"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/breeds"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/remedies"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/domain/veterinarians"
	"vet-clinic/internal/platform/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/session"
)

// Storage es el colaborador de persistencia; memory.Store y sqlstore.DB lo cumplen.
type Storage interface {
	Clients() records.Repository[clients.Client]
	Pets() records.Repository[pets.Pet]
	Veterinarians() records.Repository[veterinarians.Veterinarian]
	Breeds() records.Repository[breeds.Breed]
	Remedies() records.Repository[remedies.Remedy]
	Appointments() records.Repository[appointments.Appointment]
	Users() users.Repository
}

// OpenStorage elige el store: DB_DSN => postgres, SQLITE_PATH => sqlite, si no memoria.
// El closer libera la conexión (no-op en memoria).
func OpenStorage(ctx context.Context, cfg config.Config, log logger.Logger) (Storage, func() error, error) {
	switch {
	case cfg.DBDSN != "":
		db, err := postgres.Open(ctx, cfg.DBDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info("storage ready", logger.Fields{"driver": "postgres"})
		return db, db.Close, nil

	case cfg.SQLitePath != "":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		log.Info("storage ready", logger.Fields{"driver": "sqlite", "path": cfg.SQLitePath})
		return db, db.Close, nil

	default:
		log.Warn("storage ready", logger.Fields{"driver": "memory", "note": "data is lost on restart"})
		return memory.NewStore(), func() error { return nil }, nil
	}
}

// OpenSessions usa Redis si REDIS_ADDR está definido; si no, memoria local.
func OpenSessions(ctx context.Context, cfg config.Config, log logger.Logger) (session.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		log.Info("sessions ready", logger.Fields{"store": "memory"})
		return memsession.NewStore(), func() error { return nil }, nil
	}

	st, err := redisstore.Open(ctx, redisstore.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open redis: %w", err)
	}
	log.Info("sessions ready", logger.Fields{"store": "redis", "addr": cfg.RedisAddr})
	return st, st.Close, nil
}
