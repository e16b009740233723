package pages

import (
	"net/http"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/breeds"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/render"

	"github.com/go-chi/chi/v5"
)

// registerLink es una entrada del panel de registro.
type registerLink struct {
	Noun string `json:"noun"`
	Path string `json:"path"`
}

var panelLinks = []registerLink{
	{Noun: "client", Path: "/register/client"},
	{Noun: "pet", Path: "/register/pet"},
	{Noun: "appointment", Path: "/register/appointment"},
	{Noun: "veterinarian", Path: "/register/veterinarian"},
	{Noun: "remedy", Path: "/register/remedy"},
	{Noun: "breed", Path: "/register/breed"},
}

type homeView struct {
	Capabilities []access.Capability `json:"capabilities"`
}

type aboutView struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func RegisterRoutes(r chi.Router, breedsSvc *breeds.Service, guard middleware.Guard, log logger.Logger) {
	if log == nil {
		log = logger.Discard()
	}

	r.Get("/", homeHandler())
	r.Get("/about", aboutHandler())
	r.Get("/public/breeds", publicBreedsHandler(breedsSvc, log))
	r.With(guard(access.CapRegistrationPanel)).Get("/register", panelHandler())
}

func homeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := middleware.CurrentIdentity(r.Context())

		caps := []access.Capability{}
		if access.IsAuthenticated(id) {
			caps = access.Capabilities(access.Role(id.Role))
		}
		render.View(w, r, "home", homeView{Capabilities: caps})
	}
}

func aboutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.View(w, r, "about", aboutView{
			Name:        "vet-clinic",
			Description: "clinical records for clients, pets, appointments and veterinarians",
		})
	}
}

// @Summary Catálogo público de razas
// @Tags pages
// @Produce json
// @Success 200 {array} breeds.Breed
// @Router /public/breeds [get]
// publicBreedsHandler es el catálogo abierto: todas las razas, sin paginar.
func publicBreedsHandler(svc *breeds.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.All(r.Context())
		if err != nil {
			render.Error(w, r, log, err)
			return
		}
		render.View(w, r, "public/breeds", map[string]any{"breeds": items})
	}
}

func panelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.View(w, r, "register", map[string]any{"links": panelLinks})
	}
}
