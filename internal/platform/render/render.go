// Package render es el colaborador de presentación: cada vista se entrega como
// un sobre JSON con el nombre de la vista, la identidad de la sesión, los avisos
// pendientes y los datos.
package render

import (
	"encoding/json"
	"net/http"

	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/auth"
)

type Envelope struct {
	View     string            `json:"view"`
	Identity auth.Identity     `json:"identity"`
	Flashes  []flash.Notice    `json:"flashes"`
	Data     any               `json:"data,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// View responde 200 con la vista indicada.
func View(w http.ResponseWriter, r *http.Request, name string, data any) {
	Status(w, r, http.StatusOK, name, data, nil)
}

// Invalid vuelve a mostrar un formulario con errores por campo.
func Invalid(w http.ResponseWriter, r *http.Request, name string, data any, errs map[string]string) {
	Status(w, r, http.StatusUnprocessableEntity, name, data, errs)
}

// Status consume los avisos de la sesión y escribe el sobre.
func Status(w http.ResponseWriter, r *http.Request, status int, name string, data any, errs map[string]string) {
	env := Envelope{
		View:     name,
		Identity: auth.Anonymous(),
		Flashes:  []flash.Notice{},
		Data:     data,
		Errors:   errs,
	}
	if s, ok := middleware.GetSession(r.Context()); ok {
		env.Identity = s.Identity()
		if f := s.PopFlashes(); len(f) > 0 {
			env.Flashes = f
		}
	}
	writeJSON(w, status, env)
}

// Redirect deja avisos para la siguiente vista y responde 303.
func Redirect(w http.ResponseWriter, r *http.Request, to string, notices ...flash.Notice) {
	if s, ok := middleware.GetSession(r.Context()); ok {
		for _, n := range notices {
			s.AddFlash(n)
		}
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// Error registra el fallo y muestra la vista genérica de error.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	if log != nil {
		log.Error("request failed", logger.Fields{"err": err, "path": r.URL.Path})
	}
	Status(w, r, http.StatusInternalServerError, "error", map[string]string{"message": "internal error"}, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
