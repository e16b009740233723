package records

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/platform/pagination"
	"vet-clinic/internal/platform/render"

	"github.com/go-chi/chi/v5"
)

// RegisterPanelPath es donde vuelve un alta exitosa.
const RegisterPanelPath = "/register"

// Routes conecta un Service con las rutas del flujo CRUD.
type Routes[T any] struct {
	Service *Service[T]
	// Decode arma la entidad desde el formulario; los errores de conversión
	// (por ejemplo una edad no numérica) vuelven como errores de campo.
	Decode func(form url.Values) (T, FieldErrors)
	// Choices agrega opciones al formulario (listas de referencias).
	Choices func(ctx context.Context) (map[string]any, error)
	Guard   middleware.Guard
	Log     logger.Logger
}

type ListView[T any] struct {
	Query string             `json:"query"`
	Page  pagination.Page[T] `json:"page"`
}

type FormView struct {
	Action  string         `json:"action"`
	Record  any            `json:"record,omitempty"`
	Input   map[string]any `json:"input,omitempty"`
	Choices map[string]any `json:"choices,omitempty"`
}

type ConfirmView[T any] struct {
	Action string `json:"action"`
	Record T      `json:"record"`
}

// Mount registra list, register, edit y delete para la entidad.
func Mount[T any](r chi.Router, rt Routes[T]) {
	if rt.Log == nil {
		rt.Log = logger.Discard()
	}
	d := rt.Service.Descriptor()
	base := "/" + d.Kind

	r.With(rt.Guard(d.Capability)).Get(base, rt.list)

	r.Group(func(gr chi.Router) {
		gr.Use(rt.Guard(access.CapRegistrationPanel))
		gr.Get(RegisterPanelPath+"/"+d.Noun, rt.newForm)
		gr.Post(RegisterPanelPath+"/"+d.Noun, rt.create)
	})

	r.Group(func(gr chi.Router) {
		gr.Use(rt.Guard(d.Capability))
		gr.Get(base+"/{id}/edit", rt.editForm)
		gr.Post(base+"/{id}/edit", rt.update)
		gr.Get(base+"/{id}/delete", rt.confirmDelete)
		gr.Post(base+"/{id}/delete", rt.delete)
	})
}

func (rt Routes[T]) list(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()
	q := strings.TrimSpace(r.URL.Query().Get("search"))
	page := pagination.ParseNumber(r.URL.Query().Get("page"))

	pg, err := rt.Service.List(r.Context(), q, page)
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}
	render.View(w, r, d.Kind+"/list", ListView[T]{Query: q, Page: pg})
}

func (rt Routes[T]) newForm(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()
	view, err := rt.formView(r.Context(), RegisterPanelPath+"/"+d.Noun)
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}
	render.View(w, r, d.Kind+"/form", view)
}

func (rt Routes[T]) create(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()
	action := RegisterPanelPath + "/" + d.Noun

	v, ok := rt.decode(w, r, action, "")
	if !ok {
		return
	}

	created, err := rt.Service.Create(r.Context(), v)
	if fields, isValidation := AsValidation(err); isValidation {
		rt.invalid(w, r, action, fields)
		return
	}
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}

	render.Redirect(w, r, RegisterPanelPath, flash.Success(rt.message(created, "registered successfully")))
}

func (rt Routes[T]) editForm(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()

	current, ok := rt.lookup(w, r)
	if !ok {
		return
	}

	view, err := rt.formView(r.Context(), "/"+d.Kind+"/"+d.ID(current)+"/edit")
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}
	view.Record = current
	render.View(w, r, d.Kind+"/form", view)
}

func (rt Routes[T]) update(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()

	current, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	id := d.ID(current)
	action := "/" + d.Kind + "/" + id + "/edit"

	v, ok := rt.decode(w, r, action, id)
	if !ok {
		return
	}

	updated, err := rt.Service.Update(r.Context(), id, v)
	if errors.Is(err, ErrNotFound) {
		rt.notFound(w, r)
		return
	}
	if fields, isValidation := AsValidation(err); isValidation {
		rt.invalid(w, r, action, fields)
		return
	}
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}

	render.Redirect(w, r, "/"+d.Kind, flash.Success(rt.message(updated, "updated successfully")))
}

// confirmDelete solo muestra la confirmación; nunca borra.
func (rt Routes[T]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()

	current, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	render.View(w, r, d.Kind+"/confirm-delete", ConfirmView[T]{
		Action: "/" + d.Kind + "/" + d.ID(current) + "/delete",
		Record: current,
	})
}

func (rt Routes[T]) delete(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()

	removed, err := rt.Service.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		rt.notFound(w, r)
		return
	}
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}

	render.Redirect(w, r, "/"+d.Kind, flash.Success(rt.message(removed, "deleted successfully")))
}

func (rt Routes[T]) lookup(w http.ResponseWriter, r *http.Request) (T, bool) {
	v, err := rt.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		rt.notFound(w, r)
		return v, false
	}
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return v, false
	}
	return v, true
}

// decode parsea el formulario; si hay errores de conversión muestra el
// formulario con esos errores y con los de validación del resto de los campos.
func (rt Routes[T]) decode(w http.ResponseWriter, r *http.Request, action, selfID string) (T, bool) {
	var zero T

	if err := r.ParseForm(); err != nil {
		rt.invalid(w, r, action, FieldErrors{"_": "malformed form submission"})
		return zero, false
	}

	v, decErrs := rt.Decode(r.PostForm)
	if len(decErrs) == 0 {
		return v, true
	}

	fields := FieldErrors{}
	fields.Merge(decErrs)
	if err := rt.Service.Validate(r.Context(), v, selfID); err != nil {
		more, isValidation := AsValidation(err)
		if !isValidation {
			render.Error(w, r, rt.Log, err)
			return zero, false
		}
		fields.Merge(more)
	}
	rt.invalid(w, r, action, fields)
	return zero, false
}

func (rt Routes[T]) invalid(w http.ResponseWriter, r *http.Request, action string, fields FieldErrors) {
	d := rt.Service.Descriptor()

	view, err := rt.formView(r.Context(), action)
	if err != nil {
		render.Error(w, r, rt.Log, err)
		return
	}
	view.Input = flatten(r.PostForm)
	render.Invalid(w, r, d.Kind+"/form", view, fields)
}

func (rt Routes[T]) notFound(w http.ResponseWriter, r *http.Request) {
	d := rt.Service.Descriptor()
	render.Redirect(w, r, "/"+d.Kind, flash.Error(d.Noun+" not found"))
}

func (rt Routes[T]) formView(ctx context.Context, action string) (FormView, error) {
	view := FormView{Action: action}
	if rt.Choices == nil {
		return view, nil
	}
	choices, err := rt.Choices(ctx)
	if err != nil {
		return FormView{}, err
	}
	view.Choices = choices
	return view, nil
}

func (rt Routes[T]) message(v T, what string) string {
	d := rt.Service.Descriptor()
	if d.Label == nil {
		return d.Noun + " " + what
	}
	return d.Noun + " " + `"` + d.Label(v) + `" ` + what
}

func flatten(form url.Values) map[string]any {
	out := make(map[string]any, len(form))
	for k, vs := range form {
		if len(vs) == 1 {
			out[k] = vs[0]
			continue
		}
		out[k] = vs
	}
	return out
}
