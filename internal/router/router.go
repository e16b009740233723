package router

import (
	"context"
	"net/http"
	"time"

	_ "vet-clinic/docs"
	bcrypthasher "vet-clinic/internal/adapters/auth/bcrypt"
	"vet-clinic/internal/adapters/capabilities/roletable"
	memsession "vet-clinic/internal/adapters/session/memory"
	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/accounts"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/breeds"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pages"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/remedies"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/domain/veterinarians"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/render"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/capabilities"
	"vet-clinic/internal/ports/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Log logger.Logger

	// Storage y Sessions son opcionales: si faltan se usa memoria.
	Storage  Storage
	Sessions session.Store

	Hasher       auth.PasswordHasher
	Capabilities capabilities.CapabilitiesResolver

	SessionTTL   time.Duration
	CookieSecure bool

	// Health se consulta en /health (por ejemplo un ping a la base).
	Health func(ctx context.Context) error
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Discard()
	}
	if opts.Storage == nil {
		opts.Storage = memory.NewStore()
	}
	if opts.Sessions == nil {
		opts.Sessions = memsession.NewStore()
	}
	if opts.Hasher == nil {
		opts.Hasher = bcrypthasher.NewHasher(0)
	}
	if opts.Capabilities == nil {
		opts.Capabilities = roletable.NewResolver()
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 12 * time.Hour
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log.With(logger.Fields{"component": "http"})))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SessionContext(middleware.SessionOptions{
		Store:  opts.Sessions,
		TTL:    opts.SessionTTL,
		Secure: opts.CookieSecure,
		Log:    log.With(logger.Fields{"component": "session"}),
	}))

	r.Get("/health", healthHandler(opts.Health))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	guard := middleware.NewGuard(opts.Capabilities, log.With(logger.Fields{"component": "guard"}))

	// Services por módulo
	clientsSvc := clients.NewService(opts.Storage.Clients(), log)
	petsSvc := pets.NewService(opts.Storage.Pets(), log)
	vetsSvc := veterinarians.NewService(opts.Storage.Veterinarians(), log)
	breedsSvc := breeds.NewService(opts.Storage.Breeds(), log)
	remediesSvc := remedies.NewService(opts.Storage.Remedies(), log)

	catalog := appointments.Catalog{
		Clients:       clientsSvc,
		Pets:          petsSvc,
		Veterinarians: vetsSvc,
		Remedies:      remediesSvc,
	}
	appointmentsSvc := appointments.NewService(opts.Storage.Appointments(), catalog, log)

	usersSvc := users.NewService(opts.Storage.Users(), opts.Hasher, log)
	accountsSvc := accounts.NewService(usersSvc, opts.Hasher, log)

	// Rutas por módulo
	pages.RegisterRoutes(r, breedsSvc, guard, log)
	accounts.RegisterRoutes(r, accountsSvc, log)

	clients.RegisterRoutes(r, clientsSvc, guard, log)
	pets.RegisterRoutes(r, petsSvc, guard, log)
	veterinarians.RegisterRoutes(r, vetsSvc, guard, log)
	breeds.RegisterRoutes(r, breedsSvc, guard, log)
	remedies.RegisterRoutes(r, remediesSvc, guard, log)
	appointments.RegisterRoutes(r, appointmentsSvc, catalog, guard, log)

	users.RegisterRoutes(r, usersSvc, guard, log)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(w, r, http.StatusNotFound, "not-found", nil, nil)
	})

	return r
}

func healthHandler(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				http.Error(w, "unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
