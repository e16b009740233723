package appointments

import (
	"context"

	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/remedies"
	"vet-clinic/internal/domain/veterinarians"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type Service = records.Service[Appointment]

// Catalog son los servicios de los que una cita toma referencias.
type Catalog struct {
	Clients       *clients.Service
	Pets          *pets.Service
	Veterinarians *veterinarians.Service
	Remedies      *remedies.Service
}

func (c Catalog) References() References {
	return References{
		Clients:       existence(c.Clients),
		Pets:          existence(c.Pets),
		Veterinarians: existence(c.Veterinarians),
		Remedies:      existence(c.Remedies),
	}
}

// existence evita guardar un *Service nil dentro de la interfaz.
func existence[T any](svc *records.Service[T]) records.Existence {
	if svc == nil {
		return nil
	}
	return svc
}

func NewService(repo records.Repository[Appointment], cat Catalog, log logger.Logger) *Service {
	return records.NewService(Descriptor(cat.References()), repo, log)
}

// Option es una entrada de un selector del formulario.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func options[T any](ctx context.Context, svc *records.Service[T]) ([]Option, error) {
	if svc == nil {
		return []Option{}, nil
	}
	items, err := svc.All(ctx)
	if err != nil {
		return nil, err
	}
	d := svc.Descriptor()
	out := make([]Option, 0, len(items))
	for _, it := range items {
		out = append(out, Option{ID: d.ID(it), Label: d.Label(it)})
	}
	return out, nil
}

// Choices arma los selectores de cliente, mascota, veterinario y remedios.
func (c Catalog) Choices(ctx context.Context) (map[string]any, error) {
	cl, err := options(ctx, c.Clients)
	if err != nil {
		return nil, err
	}
	pt, err := options(ctx, c.Pets)
	if err != nil {
		return nil, err
	}
	vt, err := options(ctx, c.Veterinarians)
	if err != nil {
		return nil, err
	}
	rm, err := options(ctx, c.Remedies)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"clients":       cl,
		"pets":          pt,
		"veterinarians": vt,
		"remedies":      rm,
		"reasons": []Reason{
			ReasonControl, ReasonUrgency, ReasonRoutine, ReasonFirstControl, ReasonOperation,
		},
	}, nil
}

func RegisterRoutes(r chi.Router, svc *Service, cat Catalog, guard middleware.Guard, log logger.Logger) {
	records.Mount(r, records.Routes[Appointment]{
		Service: svc,
		Decode:  Decode,
		Choices: cat.Choices,
		Guard:   guard,
		Log:     log,
	})
}
