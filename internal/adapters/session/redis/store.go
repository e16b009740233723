package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-clinic/internal/ports/session"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "vet-clinic:session:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store guarda sesiones en redis como JSON con TTL nativo.
type Store struct {
	client *goredis.Client
}

// Open conecta y hace ping; falla rápido si redis no responde.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Store{client: client}, nil
}

func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Load(ctx context.Context, id string) (session.Data, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return session.Data{}, session.ErrNotFound
		}
		return session.Data{}, fmt.Errorf("redis get session: %w", err)
	}

	var d session.Data
	if err := json.Unmarshal(raw, &d); err != nil {
		// sesión corrupta: se trata como inexistente
		return session.Data{}, session.ErrNotFound
	}
	return d, nil
}

func (s *Store) Save(ctx context.Context, id string, data session.Data, ttl time.Duration) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+id, b, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
