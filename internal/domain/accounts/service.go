package accounts

import (
	"context"
	"errors"

	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
)

// ErrInvalidCredentials no distingue usuario inexistente de clave incorrecta.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserFinder es lo único que Login necesita del módulo de usuarios.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (users.User, error)
}

type Service struct {
	users  UserFinder
	hasher auth.PasswordHasher
	log    logger.Logger

	// dummyHash se compara cuando el usuario no existe, así ambos fallos cuestan lo mismo.
	dummyHash string
}

func NewService(finder UserFinder, hasher auth.PasswordHasher, log logger.Logger) *Service {
	if log == nil {
		log = logger.Discard()
	}
	s := &Service{users: finder, hasher: hasher, log: log.With(logger.Fields{"component": "accounts"})}
	if h, err := hasher.Hash("vet-clinic-unknown-user"); err == nil {
		s.dummyHash = h
	} else {
		s.log.Warn("dummy hash failed", logger.Fields{"err": err})
	}
	return s
}

// Login devuelve la identidad a guardar en la sesión.
func (s *Service) Login(ctx context.Context, username, secret string) (auth.Identity, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, records.ErrNotFound) {
		s.hasher.Compare(s.dummyHash, secret)
		s.log.Debug("login failed", logger.Fields{"username": username})
		return auth.Anonymous(), ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error("user lookup failed", logger.Fields{"err": err})
		return auth.Anonymous(), err
	}

	if !s.hasher.Compare(u.PasswordHash, secret) {
		s.log.Debug("login failed", logger.Fields{"username": username})
		return auth.Anonymous(), ErrInvalidCredentials
	}

	s.log.Info("login", logger.Fields{"username": u.Username, "role": string(u.Role)})
	return auth.Identity{
		Authenticated: true,
		UserID:        u.ID,
		Username:      u.Username,
		Role:          string(u.Role),
		FullName:      u.FullName,
		Email:         u.Email,
	}, nil
}
