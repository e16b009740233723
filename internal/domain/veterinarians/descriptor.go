package veterinarians

import (
	"net/url"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
)

func Descriptor() records.Descriptor[Veterinarian] {
	return records.Descriptor[Veterinarian]{
		Kind:       "veterinarians",
		Noun:       "veterinarian",
		Capability: access.CapVeterinarians,

		ID:     func(v Veterinarian) string { return v.ID },
		WithID: func(v Veterinarian, id string) Veterinarian { v.ID = id; return v },
		Label:  func(v Veterinarian) string { return v.FullName },

		Normalize: func(v Veterinarian) Veterinarian {
			v.FullName = strings.TrimSpace(v.FullName)
			v.Specialty = Specialty(strings.ToLower(strings.TrimSpace(string(v.Specialty))))
			v.Email = strings.TrimSpace(v.Email)
			v.Phone = strings.TrimSpace(v.Phone)
			v.Address = strings.TrimSpace(v.Address)
			return v
		},
		Messages: map[string]string{
			"phone.intlphone": "phone must have 9 to 15 digits and may start with +",
		},
		Unique: []records.UniqueRule[Veterinarian]{
			{Field: "full_name", Message: "a veterinarian with this name already exists", Value: func(v Veterinarian) string { return v.FullName }},
			{Field: "email", Message: "a veterinarian with this email already exists", Value: func(v Veterinarian) string { return v.Email }},
			{Field: "phone", Message: "a veterinarian with this phone already exists", Value: func(v Veterinarian) string { return v.Phone }},
		},

		SearchFields: func(v Veterinarian) []string {
			return []string{v.FullName, string(v.Specialty), v.Email, v.Phone}
		},
		Less: func(a, b Veterinarian) bool {
			na, nb := strings.ToLower(a.FullName), strings.ToLower(b.FullName)
			if na != nb {
				return na < nb
			}
			return a.ID < b.ID
		},
	}
}

func Decode(form url.Values) (Veterinarian, records.FieldErrors) {
	return Veterinarian{
		FullName:  form.Get("full_name"),
		Specialty: Specialty(form.Get("specialty")),
		Email:     form.Get("email"),
		Phone:     form.Get("phone"),
		Address:   form.Get("address"),
	}, nil
}
