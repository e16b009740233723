package pets

import (
	"net/url"
	"strconv"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
)

func Descriptor() records.Descriptor[Pet] {
	return records.Descriptor[Pet]{
		Kind:       "pets",
		Noun:       "pet",
		Capability: access.CapPets,

		ID:     func(p Pet) string { return p.ID },
		WithID: func(p Pet, id string) Pet { p.ID = id; return p },
		Label:  func(p Pet) string { return p.Name },

		Normalize: normalize,
		Messages: map[string]string{
			"breed.required_if": "breed is required when species is other",
			"age.min":           "age must be between 0 and 30",
			"age.max":           "age must be between 0 and 30",
		},

		SearchFields: func(p Pet) []string {
			return []string{p.Name, string(p.Species), p.Breed}
		},
		Less: func(a, b Pet) bool {
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if na != nb {
				return na < nb
			}
			return a.ID < b.ID
		},
	}
}

func normalize(p Pet) Pet {
	p.Name = strings.TrimSpace(p.Name)
	p.Sex = Sex(strings.ToLower(strings.TrimSpace(string(p.Sex))))
	p.Species = Species(strings.ToLower(strings.TrimSpace(string(p.Species))))
	p.Breed = strings.TrimSpace(p.Breed)
	return p
}

func Decode(form url.Values) (Pet, records.FieldErrors) {
	errs := records.FieldErrors{}
	p := Pet{
		Name:    form.Get("name"),
		Sex:     Sex(form.Get("sex")),
		Species: Species(form.Get("species")),
		Breed:   form.Get("breed"),
	}

	raw := strings.TrimSpace(form.Get("age"))
	if raw == "" {
		errs.Add("age", "age is required")
		return p, errs
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add("age", "age must be a whole number")
		return p, errs
	}
	p.Age = n
	return p, errs
}
