package roletable

import (
	"context"
	"errors"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/ports/capabilities"
)

// Resolver responde con la tabla estática de roles. No hay upstream.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

func (r *Resolver) HasFeature(ctx context.Context, in capabilities.CapabilityCheck) (bool, error) {
	c := strings.TrimSpace(in.Capability)
	if c == "" {
		return false, errors.New("capability required")
	}
	role, ok := access.ParseRole(in.Role)
	if !ok {
		return false, nil
	}
	return access.RoleHas(role, access.Capability(c)), nil
}

var _ capabilities.CapabilitiesResolver = (*Resolver)(nil)
