package memory

import (
	"context"
	"errors"
	"strings"

	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/records"
)

var errIDRequired = errors.New("id required")

type appointmentRepo struct {
	s *Store
}

// Appointments guarda solo las referencias; los nombres se resuelven al leer.
func (s *Store) Appointments() records.Repository[appointments.Appointment] {
	return &appointmentRepo{s: s}
}

func (r *appointmentRepo) List(ctx context.Context) ([]appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]appointments.Appointment, 0, len(r.s.appointments))
	for _, a := range r.s.appointments {
		out = append(out, r.hydrate(a))
	}
	return out, nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.appointments[id]
	if !ok {
		return appointments.Appointment{}, records.ErrNotFound
	}
	return r.hydrate(a), nil
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.s.appointments[a.ID]; exists {
		return &records.ConflictError{Field: "id"}
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	r.s.appointments[a.ID] = stripped(a)
	return nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.appointments[a.ID]; !exists {
		return records.ErrNotFound
	}
	if err := r.checkRefs(a); err != nil {
		return err
	}
	r.s.appointments[a.ID] = stripped(a)
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.appointments[id]; !exists {
		return records.ErrNotFound
	}
	delete(r.s.appointments, id)
	return nil
}

// checkRefs cumple el rol de las claves foráneas del store SQL.
func (r *appointmentRepo) checkRefs(a appointments.Appointment) error {
	if _, ok := r.s.clients[a.ClientID]; !ok {
		return &records.ValidationError{Fields: records.FieldErrors{"client": "selected client does not exist"}}
	}
	if _, ok := r.s.pets[a.PetID]; !ok {
		return &records.ValidationError{Fields: records.FieldErrors{"pet": "selected pet does not exist"}}
	}
	if a.VeterinarianID != "" {
		if _, ok := r.s.veterinarians[a.VeterinarianID]; !ok {
			return &records.ValidationError{Fields: records.FieldErrors{"veterinarian": "selected veterinarian does not exist"}}
		}
	}
	for _, id := range a.RemedyIDs {
		if _, ok := r.s.remedies[id]; !ok {
			return &records.ValidationError{Fields: records.FieldErrors{"remedies": "a selected remedy does not exist"}}
		}
	}
	return nil
}

// stripped deja solo las columnas persistidas.
func stripped(a appointments.Appointment) appointments.Appointment {
	return appointments.Appointment{
		ID:             a.ID,
		ClientID:       a.ClientID,
		PetID:          a.PetID,
		VeterinarianID: a.VeterinarianID,
		Date:           a.Date,
		Reason:         a.Reason,
		RemedyIDs:      append([]string(nil), a.RemedyIDs...),
	}
}

// hydrate se llama con el lock tomado.
func (r *appointmentRepo) hydrate(a appointments.Appointment) appointments.Appointment {
	a.RemedyIDs = append([]string{}, a.RemedyIDs...)

	if c, ok := r.s.clients[a.ClientID]; ok {
		a.ClientFirstName = c.FirstName
		a.ClientLastName = c.LastName
	}
	if p, ok := r.s.pets[a.PetID]; ok {
		a.PetName = p.Name
	}
	if v, ok := r.s.veterinarians[a.VeterinarianID]; ok {
		a.VeterinarianName = v.FullName
	}

	a.RemedyNames = make([]string, 0, len(a.RemedyIDs))
	for _, id := range a.RemedyIDs {
		if m, ok := r.s.remedies[id]; ok {
			a.RemedyNames = append(a.RemedyNames, m.Name)
		}
	}
	return a
}
