package capabilities

import "context"

// CapabilityCheck pregunta si un rol puede usar un módulo.
type CapabilityCheck struct {
	Role       string
	Capability string
}

// CapabilitiesResolver lo consulta el guard antes de cada ruta protegida.
type CapabilitiesResolver interface {
	HasFeature(ctx context.Context, in CapabilityCheck) (bool, error)
}
