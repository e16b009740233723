package clients

import (
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type Service = records.Service[Client]

func NewService(repo records.Repository[Client], log logger.Logger) *Service {
	return records.NewService(Descriptor(), repo, log)
}

func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard, log logger.Logger) {
	records.Mount(r, records.Routes[Client]{
		Service: svc,
		Decode:  Decode,
		Guard:   guard,
		Log:     log,
	})
}
