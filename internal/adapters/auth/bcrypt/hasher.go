package bcrypt

import (
	"errors"

	"vet-clinic/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptySecret = errors.New("secret is empty")

// Hasher implementa auth.PasswordHasher con bcrypt (sal incluida en el hash).
type Hasher struct {
	cost int
}

// NewHasher usa bcrypt.DefaultCost si cost está fuera de rango.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	b, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Compare(hash, secret string) bool {
	if hash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

var _ auth.PasswordHasher = (*Hasher)(nil)
