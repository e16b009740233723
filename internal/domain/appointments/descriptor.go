package appointments

import (
	"context"
	"net/url"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
)

// References resuelve la existencia de los registros a los que apunta una cita.
type References struct {
	Clients       records.Existence
	Pets          records.Existence
	Veterinarians records.Existence
	Remedies      records.Existence
}

func Descriptor(refs References) records.Descriptor[Appointment] {
	return records.Descriptor[Appointment]{
		Kind:       "appointments",
		Noun:       "appointment",
		Capability: access.CapAppointments,

		ID:     func(a Appointment) string { return a.ID },
		WithID: func(a Appointment, id string) Appointment { a.ID = id; return a },
		Label:  func(a Appointment) string { return a.Date },

		Normalize: normalize,
		Messages: map[string]string{
			"client.required": "a client must be selected",
			"pet.required":    "a pet must be selected",
			"date.datetime":   "date must have the format YYYY-MM-DD",
		},
		Check: refs.check,

		SearchFields: func(a Appointment) []string {
			return []string{a.ClientFirstName, a.ClientLastName, a.PetName, string(a.Reason)}
		},
		// más recientes primero
		Less: func(a, b Appointment) bool {
			if a.Date != b.Date {
				return a.Date > b.Date
			}
			return a.ID < b.ID
		},
	}
}

func normalize(a Appointment) Appointment {
	a.ClientID = strings.TrimSpace(a.ClientID)
	a.PetID = strings.TrimSpace(a.PetID)
	a.VeterinarianID = strings.TrimSpace(a.VeterinarianID)
	a.Date = strings.TrimSpace(a.Date)
	a.Reason = Reason(strings.ToLower(strings.TrimSpace(string(a.Reason))))

	seen := make(map[string]struct{}, len(a.RemedyIDs))
	ids := make([]string, 0, len(a.RemedyIDs))
	for _, id := range a.RemedyIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	a.RemedyIDs = ids
	return a
}

func (refs References) check(ctx context.Context, a Appointment) (records.FieldErrors, error) {
	errs := records.FieldErrors{}

	probe := func(field, id, msg string, src records.Existence) error {
		if id == "" || src == nil {
			return nil
		}
		ok, err := src.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			errs.Add(field, msg)
		}
		return nil
	}

	if err := probe("client", a.ClientID, "selected client does not exist", refs.Clients); err != nil {
		return nil, err
	}
	if err := probe("pet", a.PetID, "selected pet does not exist", refs.Pets); err != nil {
		return nil, err
	}
	if err := probe("veterinarian", a.VeterinarianID, "selected veterinarian does not exist", refs.Veterinarians); err != nil {
		return nil, err
	}
	for _, id := range a.RemedyIDs {
		if err := probe("remedies", id, "a selected remedy does not exist", refs.Remedies); err != nil {
			return nil, err
		}
	}
	return errs, nil
}

func Decode(form url.Values) (Appointment, records.FieldErrors) {
	return Appointment{
		ClientID:       form.Get("client"),
		PetID:          form.Get("pet"),
		VeterinarianID: form.Get("veterinarian"),
		Date:           form.Get("date"),
		Reason:         Reason(form.Get("reason")),
		RemedyIDs:      form["remedies"],
	}, nil
}
