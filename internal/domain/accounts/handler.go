package accounts

import (
	"errors"
	"net/http"

	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/render"

	"github.com/go-chi/chi/v5"
)

const (
	LoginPath  = "/login"
	LogoutPath = "/logout"

	MsgLoggedOut = "you have been logged out"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Discard()
	}

	r.Get(LoginPath, loginFormHandler())
	r.Post(LoginPath, loginHandler(svc, log))
	r.Get(LogoutPath, logoutHandler())
	r.Post(LogoutPath, logoutHandler())
}

func loginFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.View(w, r, "accounts/login", map[string]string{"action": LoginPath})
	}
}

// loginHandler rota el id de sesión al autenticar.
// @Summary Iniciar sesión
// @Description Valida usuario y clave contra el hash guardado. Un usuario inexistente y una clave incorrecta producen el mismo aviso.
// @Tags accounts
// @Accept x-www-form-urlencoded
// @Param username formData string true "Nombre de usuario"
// @Param password formData string true "Clave"
// @Success 303 {string} string "redirect a / con aviso de bienvenida"
// @Failure 303 {string} string "redirect a /login con invalid username or password"
// @Router /login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.Redirect(w, r, LoginPath, flash.Error(ErrInvalidCredentials.Error()))
			return
		}

		id, err := svc.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
		if errors.Is(err, ErrInvalidCredentials) {
			render.Redirect(w, r, LoginPath, flash.Error(err.Error()))
			return
		}
		if err != nil {
			render.Error(w, r, log, err)
			return
		}

		s, ok := middleware.GetSession(r.Context())
		if !ok {
			render.Error(w, r, log, errors.New("session middleware missing"))
			return
		}
		s.Renew()
		s.SetIdentity(id)

		name := id.FullName
		if name == "" {
			name = id.Username
		}
		render.Redirect(w, r, "/", flash.Success("welcome, "+name))
	}
}

// logoutHandler borra todo el estado de la sesión, haya o no login.
// @Summary Cerrar sesión
// @Tags accounts
// @Success 303 {string} string "redirect a /"
// @Router /logout [post]
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s, ok := middleware.GetSession(r.Context()); ok {
			s.Clear()
			s.Renew()
		}
		render.Redirect(w, r, "/", flash.Info(MsgLoggedOut))
	}
}
