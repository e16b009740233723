package middleware

import (
	"net/http"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/capabilities"
)

const (
	MsgLoginRequired    = "you must log in"
	MsgPermissionDenied = "you do not have permission"
)

// Guard construye el middleware que protege un grupo de rutas.
type Guard func(c access.Capability) func(http.Handler) http.Handler

// NewGuard exige sesión autenticada y luego la capacidad; si falla cualquiera
// de las dos redirige a "/" con un aviso.
func NewGuard(resolver capabilities.CapabilitiesResolver, log logger.Logger) Guard {
	if log == nil {
		log = logger.Discard()
	}

	return func(c access.Capability) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id := CurrentIdentity(r.Context())
				if !access.IsAuthenticated(id) {
					bounce(w, r, MsgLoginRequired)
					return
				}

				ok, err := resolver.HasFeature(r.Context(), capabilities.CapabilityCheck{
					Role:       id.Role,
					Capability: string(c),
				})
				if err != nil {
					log.Error("capability check failed", logger.Fields{"err": err, "capability": string(c)})
				}
				if err != nil || !ok {
					log.Debug("capability denied", logger.Fields{"user": id.Username, "capability": string(c)})
					bounce(w, r, MsgPermissionDenied)
					return
				}

				next.ServeHTTP(w, r)
			})
		}
	}
}

func bounce(w http.ResponseWriter, r *http.Request, msg string) {
	if s, ok := GetSession(r.Context()); ok {
		s.AddFlash(flash.Error(msg))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
