package session

import (
	"context"
	"errors"
	"time"

	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/ports/auth"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Data es el estado persistido de una sesión.
type Data struct {
	Identity auth.Identity  `json:"identity"`
	Flashes  []flash.Notice `json:"flashes,omitempty"`
}

func (d Data) IsZero() bool {
	return !d.Identity.Authenticated && d.Identity.Username == "" && len(d.Flashes) == 0
}

// Store guarda sesiones por id. Load devuelve ErrNotFound si no existe o expiró.
type Store interface {
	Load(ctx context.Context, id string) (Data, error)
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Destroy(ctx context.Context, id string) error
}

// Session es la vista mutable de una sesión durante un request.
// No es segura para uso concurrente; vive en un solo request.
type Session struct {
	id      string
	data    Data
	isNew   bool
	dirty   bool
	renewed bool
	oldID   string
}

// New crea una sesión vacía con id nuevo (todavía no persistida).
func New() *Session {
	return &Session{id: uuid.NewString(), isNew: true}
}

// Restore envuelve datos ya cargados del store.
func Restore(id string, data Data) *Session {
	return &Session{id: id, data: data}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Identity() auth.Identity { return s.data.Identity }

func (s *Session) Data() Data { return s.data }

func (s *Session) SetIdentity(id auth.Identity) {
	s.data.Identity = id
	s.dirty = true
}

// Clear borra todo el estado (identidad y avisos pendientes).
func (s *Session) Clear() {
	s.data = Data{}
	s.dirty = true
}

// Renew cambia el id de la sesión conservando los datos (login/logout).
func (s *Session) Renew() {
	if !s.isNew && s.oldID == "" {
		s.oldID = s.id
	}
	s.id = uuid.NewString()
	s.renewed = true
	s.dirty = true
}

func (s *Session) AddFlash(n flash.Notice) {
	n, ok := flash.Normalize(n)
	if !ok {
		return
	}
	s.data.Flashes = append(s.data.Flashes, n)
	s.dirty = true
}

// PopFlashes devuelve los avisos pendientes y los consume.
func (s *Session) PopFlashes() []flash.Notice {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	out := s.data.Flashes
	s.data.Flashes = nil
	s.dirty = true
	return out
}

func (s *Session) Dirty() bool { return s.dirty }

// NeedsCookie es true cuando el cliente todavía no conoce el id actual.
func (s *Session) NeedsCookie() bool {
	return s.renewed || (s.isNew && s.dirty && !s.data.IsZero())
}

// ReplacedID es el id anterior a un Renew, si lo hubo.
func (s *Session) ReplacedID() string { return s.oldID }
