package users

import (
	"errors"
	"net/http"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/pagination"
	"vet-clinic/internal/platform/render"

	"github.com/go-chi/chi/v5"
)

const listPath = "/users"

type listView struct {
	Query string                `json:"query"`
	Page  pagination.Page[User] `json:"page"`
}

type formView struct {
	Action string         `json:"action"`
	Record *User          `json:"record,omitempty"`
	Input  map[string]any `json:"input,omitempty"`
	Roles  []access.Role  `json:"roles"`
}

type confirmView struct {
	Action string `json:"action"`
	Record User   `json:"record"`
}

// RegisterRoutes monta la administración de usuarios; todo exige CapUsers.
func RegisterRoutes(r chi.Router, svc *Service, guard middleware.Guard, log logger.Logger) {
	if log == nil {
		log = logger.Discard()
	}

	r.Group(func(ur chi.Router) {
		ur.Use(guard(access.CapUsers))

		ur.Get(listPath, listHandler(svc, log))
		ur.Get(listPath+"/new", newFormHandler())
		ur.Post(listPath+"/new", createHandler(svc, log))
		ur.Get(listPath+"/{id}/edit", editFormHandler(svc, log))
		ur.Post(listPath+"/{id}/edit", updateHandler(svc, log))
		ur.Get(listPath+"/{id}/delete", confirmDeleteHandler(svc, log))
		ur.Post(listPath+"/{id}/delete", deleteHandler(svc, log))
	})
}

// @Summary Listar usuarios
// @Description Solo administradores. Páginas de 5 ordenadas por username.
// @Tags users
// @Produce json
// @Param search query string false "Texto a buscar en username, nombre, email o rol"
// @Param page query int false "Número de página; fuera de rango se ajusta"
// @Success 200 {object} listView
// @Failure 303 {string} string "redirect a / sin permiso"
// @Router /users [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("search"))
		page := pagination.ParseNumber(r.URL.Query().Get("page"))

		pg, err := svc.List(r.Context(), q, page)
		if err != nil {
			render.Error(w, r, log, err)
			return
		}
		render.View(w, r, "users/list", listView{Query: q, Page: pg})
	}
}

func newFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.View(w, r, "users/form", formView{Action: listPath + "/new", Roles: access.Roles()})
	}
}

// @Summary Crear usuario
// @Tags users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Nombre de usuario, único"
// @Param password formData string true "Clave, mínimo 6 caracteres"
// @Param confirm_password formData string true "Confirmación de la clave"
// @Param email formData string true "Email"
// @Param full_name formData string true "Nombre completo"
// @Param phone formData string false "Teléfono"
// @Param role formData string true "administrator o veterinarian"
// @Success 303 {string} string "redirect a /users"
// @Failure 422 {object} formView "formulario con el motivo como aviso"
// @Router /users/new [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			rejected(w, r, listPath+"/new", "malformed form submission")
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{
			Username: r.PostForm.Get("username"),
			Password: r.PostForm.Get("password"),
			Confirm:  r.PostForm.Get("confirm_password"),
			Email:    r.PostForm.Get("email"),
			Phone:    r.PostForm.Get("phone"),
			FullName: r.PostForm.Get("full_name"),
			Role:     r.PostForm.Get("role"),
		})
		if err != nil {
			if isRuleViolation(err) {
				rejected(w, r, listPath+"/new", err.Error())
				return
			}
			render.Error(w, r, log, err)
			return
		}

		render.Redirect(w, r, listPath, flash.Success(`user "`+u.Username+`" created successfully`))
	}
}

func editFormHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := lookup(w, r, svc, log)
		if !ok {
			return
		}
		render.View(w, r, "users/form", formView{
			Action: listPath + "/" + u.ID + "/edit",
			Record: &u,
			Roles:  access.Roles(),
		})
	}
}

func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		action := listPath + "/" + id + "/edit"

		if err := r.ParseForm(); err != nil {
			rejected(w, r, action, "malformed form submission")
			return
		}

		u, err := svc.Update(r.Context(), id, UpdateInput{
			Email:    r.PostForm.Get("email"),
			Phone:    r.PostForm.Get("phone"),
			FullName: r.PostForm.Get("full_name"),
			Role:     r.PostForm.Get("role"),
			Password: r.PostForm.Get("password"),
			Confirm:  r.PostForm.Get("confirm_password"),
		})
		switch {
		case errors.Is(err, ErrNotFound):
			render.Redirect(w, r, listPath, flash.Error("user not found"))
		case err != nil && isRuleViolation(err):
			rejected(w, r, action, err.Error())
		case err != nil:
			render.Error(w, r, log, err)
		default:
			render.Redirect(w, r, listPath, flash.Success(`user "`+u.Username+`" updated successfully`))
		}
	}
}

// confirmDeleteHandler rechaza el auto-borrado antes de pedir confirmación.
// @Summary Confirmar borrado de usuario
// @Tags users
// @Param id path string true "ID del usuario"
// @Success 200 {object} confirmView
// @Failure 303 {string} string "redirect a /users si es la propia cuenta o no existe"
// @Router /users/{id}/delete [get]
func confirmDeleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.CurrentIdentity(r.Context()).Username

		u, err := svc.CanDelete(r.Context(), chi.URLParam(r, "id"), actor)
		if !deleteAllowed(w, r, err, log) {
			return
		}
		render.View(w, r, "users/confirm-delete", confirmView{
			Action: listPath + "/" + u.ID + "/delete",
			Record: u,
		})
	}
}

func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := middleware.CurrentIdentity(r.Context()).Username

		u, err := svc.Delete(r.Context(), chi.URLParam(r, "id"), actor)
		if !deleteAllowed(w, r, err, log) {
			return
		}
		render.Redirect(w, r, listPath, flash.Success(`user "`+u.Username+`" deleted successfully`))
	}
}

func deleteAllowed(w http.ResponseWriter, r *http.Request, err error, log logger.Logger) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrNotFound):
		render.Redirect(w, r, listPath, flash.Error("user not found"))
	case errors.Is(err, ErrSelfDelete):
		render.Redirect(w, r, listPath, flash.Error(err.Error()))
	default:
		render.Error(w, r, log, err)
	}
	return false
}

func lookup(w http.ResponseWriter, r *http.Request, svc *Service, log logger.Logger) (User, bool) {
	u, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		render.Redirect(w, r, listPath, flash.Error("user not found"))
		return User{}, false
	}
	if err != nil {
		render.Error(w, r, log, err)
		return User{}, false
	}
	return u, true
}

// rejected vuelve a mostrar el formulario con el motivo como aviso. Las claves
// enviadas no se devuelven.
func rejected(w http.ResponseWriter, r *http.Request, action, msg string) {
	if s, ok := middleware.GetSession(r.Context()); ok {
		s.AddFlash(flash.Error(msg))
	}

	input := make(map[string]any, len(r.PostForm))
	for k := range r.PostForm {
		if k == "password" || k == "confirm_password" {
			continue
		}
		input[k] = r.PostForm.Get(k)
	}
	render.Invalid(w, r, "users/form", formView{Action: action, Input: input, Roles: access.Roles()}, nil)
}

func isRuleViolation(err error) bool {
	var taken *UsernameTakenError
	return errors.As(err, &taken) ||
		errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrMissingEditFields) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrFieldTooLong)
}
