package remedies

import (
	"net/url"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
)

func Descriptor() records.Descriptor[Remedy] {
	return records.Descriptor[Remedy]{
		Kind:       "remedies",
		Noun:       "remedy",
		Capability: access.CapRemedies,

		ID:     func(m Remedy) string { return m.ID },
		WithID: func(m Remedy, id string) Remedy { m.ID = id; return m },
		Label:  func(m Remedy) string { return m.Name },

		// los textos vacíos toman el valor por defecto
		Normalize: func(m Remedy) Remedy {
			m.Name = strings.TrimSpace(m.Name)
			m.RecommendedUse = strings.TrimSpace(m.RecommendedUse)
			if m.RecommendedUse == "" {
				m.RecommendedUse = DefaultRecommendedUse
			}
			m.Frequency = strings.TrimSpace(m.Frequency)
			if m.Frequency == "" {
				m.Frequency = DefaultFrequency
			}
			m.Animal = Animal(strings.ToLower(strings.TrimSpace(string(m.Animal))))
			if m.Animal == "" {
				m.Animal = AnimalDog
			}
			return m
		},
		Unique: []records.UniqueRule[Remedy]{
			{Field: "name", Message: "a remedy with this name already exists", Value: func(m Remedy) string { return m.Name }},
		},

		SearchFields: func(m Remedy) []string {
			return []string{m.Name, m.RecommendedUse, string(m.Animal)}
		},
		Less: func(a, b Remedy) bool {
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if na != nb {
				return na < nb
			}
			return a.ID < b.ID
		},
	}
}

func Decode(form url.Values) (Remedy, records.FieldErrors) {
	return Remedy{
		Name:           form.Get("name"),
		RecommendedUse: form.Get("recommended_use"),
		Frequency:      form.Get("frequency"),
		Animal:         Animal(form.Get("animal")),
	}, nil
}
