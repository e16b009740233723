package memory

import (
	"context"
	"strings"
	"sync"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/breeds"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/remedies"
	"vet-clinic/internal/domain/users"
	"vet-clinic/internal/domain/veterinarians"
)

// Store guarda todas las entidades bajo un único lock para que los borrados
// en cascada sean atómicos.
type Store struct {
	mu sync.RWMutex

	clients       map[string]clients.Client
	pets          map[string]pets.Pet
	veterinarians map[string]veterinarians.Veterinarian
	breeds        map[string]breeds.Breed
	remedies      map[string]remedies.Remedy
	appointments  map[string]appointments.Appointment
	users         map[string]users.User
}

func NewStore() *Store {
	return &Store{
		clients:       make(map[string]clients.Client),
		pets:          make(map[string]pets.Pet),
		veterinarians: make(map[string]veterinarians.Veterinarian),
		breeds:        make(map[string]breeds.Breed),
		remedies:      make(map[string]remedies.Remedy),
		appointments:  make(map[string]appointments.Appointment),
		users:         make(map[string]users.User),
	}
}

func (s *Store) Clients() records.Repository[clients.Client] {
	return &entityRepo[clients.Client]{
		s:    s,
		rows: s.clients,
		id:   func(c clients.Client) string { return c.ID },
		unique: map[string]func(clients.Client) string{
			"email": func(c clients.Client) string { return c.Email },
			"rut":   func(c clients.Client) string { return c.RUT },
		},
		onDelete: func(id string) {
			for aid, a := range s.appointments {
				if a.ClientID == id {
					delete(s.appointments, aid)
				}
			}
		},
	}
}

func (s *Store) Pets() records.Repository[pets.Pet] {
	return &entityRepo[pets.Pet]{
		s:    s,
		rows: s.pets,
		id:   func(p pets.Pet) string { return p.ID },
		onDelete: func(id string) {
			for aid, a := range s.appointments {
				if a.PetID == id {
					delete(s.appointments, aid)
				}
			}
		},
	}
}

func (s *Store) Veterinarians() records.Repository[veterinarians.Veterinarian] {
	return &entityRepo[veterinarians.Veterinarian]{
		s:    s,
		rows: s.veterinarians,
		id:   func(v veterinarians.Veterinarian) string { return v.ID },
		unique: map[string]func(veterinarians.Veterinarian) string{
			"full_name": func(v veterinarians.Veterinarian) string { return v.FullName },
			"email":     func(v veterinarians.Veterinarian) string { return v.Email },
			"phone":     func(v veterinarians.Veterinarian) string { return v.Phone },
		},
		// las citas quedan sin veterinario
		onDelete: func(id string) {
			for aid, a := range s.appointments {
				if a.VeterinarianID == id {
					a.VeterinarianID = ""
					s.appointments[aid] = a
				}
			}
		},
	}
}

func (s *Store) Breeds() records.Repository[breeds.Breed] {
	return &entityRepo[breeds.Breed]{
		s:    s,
		rows: s.breeds,
		id:   func(b breeds.Breed) string { return b.ID },
		unique: map[string]func(breeds.Breed) string{
			"name": func(b breeds.Breed) string { return b.Name },
		},
	}
}

func (s *Store) Remedies() records.Repository[remedies.Remedy] {
	return &entityRepo[remedies.Remedy]{
		s:    s,
		rows: s.remedies,
		id:   func(m remedies.Remedy) string { return m.ID },
		unique: map[string]func(remedies.Remedy) string{
			"name": func(m remedies.Remedy) string { return m.Name },
		},
		onDelete: func(id string) {
			for aid, a := range s.appointments {
				kept := a.RemedyIDs[:0:0]
				for _, rid := range a.RemedyIDs {
					if rid != id {
						kept = append(kept, rid)
					}
				}
				if len(kept) != len(a.RemedyIDs) {
					a.RemedyIDs = kept
					s.appointments[aid] = a
				}
			}
		},
	}
}

// entityRepo es el repositorio genérico sobre un mapa del Store.
type entityRepo[T any] struct {
	s        *Store
	rows     map[string]T
	id       func(T) string
	unique   map[string]func(T) string
	onDelete func(id string)
}

func (r *entityRepo[T]) List(ctx context.Context) ([]T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]T, 0, len(r.rows))
	for _, v := range r.rows {
		out = append(out, v)
	}
	return out, nil
}

func (r *entityRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.rows[id]
	if !ok {
		var zero T
		return zero, records.ErrNotFound
	}
	return v, nil
}

func (r *entityRepo[T]) Create(ctx context.Context, v T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.id(v)
	if strings.TrimSpace(id) == "" {
		return errIDRequired
	}
	if _, exists := r.rows[id]; exists {
		return &records.ConflictError{Field: "id"}
	}
	if err := r.checkUnique(v); err != nil {
		return err
	}
	r.rows[id] = v
	return nil
}

func (r *entityRepo[T]) Update(ctx context.Context, v T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id := r.id(v)
	if _, exists := r.rows[id]; !exists {
		return records.ErrNotFound
	}
	if err := r.checkUnique(v); err != nil {
		return err
	}
	r.rows[id] = v
	return nil
}

func (r *entityRepo[T]) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.rows[id]; !exists {
		return records.ErrNotFound
	}
	delete(r.rows, id)
	if r.onDelete != nil {
		r.onDelete(id)
	}
	return nil
}

// checkUnique se llama con el lock tomado.
func (r *entityRepo[T]) checkUnique(v T) error {
	id := r.id(v)
	for field, value := range r.unique {
		want := strings.TrimSpace(value(v))
		if want == "" {
			continue
		}
		for otherID, other := range r.rows {
			if otherID == id {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(value(other)), want) {
				return &records.ConflictError{Field: field}
			}
		}
	}
	return nil
}
