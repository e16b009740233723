package remedies

import (
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type Service = records.Service[Remedy]

func NewService(repo records.Repository[Remedy], log logger.Logger) *Service {
	return records.NewService(Descriptor(), repo, log)
}

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard, log logger.Logger) {
	records.Mount(r, records.Routes[Remedy]{
		Service: svc,
		Decode:  Decode,
		Guard:   guard,
		Log:     log,
	})
}
