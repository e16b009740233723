package breeds

import (
	"net/url"
	"strconv"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
)

func Descriptor() records.Descriptor[Breed] {
	return records.Descriptor[Breed]{
		Kind:       "breeds",
		Noun:       "breed",
		Capability: access.CapBreeds,

		ID:     func(b Breed) string { return b.ID },
		WithID: func(b Breed, id string) Breed { b.ID = id; return b },
		Label:  func(b Breed) string { return b.Name },

		Normalize: normalize,
		Messages: map[string]string{
			"lifespan.min": "lifespan must be between 0 and 30 years",
			"lifespan.max": "lifespan must be between 0 and 30 years",
		},
		Unique: []records.UniqueRule[Breed]{
			{Field: "name", Message: "a breed with this name already exists", Value: func(b Breed) string { return b.Name }},
		},

		SearchFields: func(b Breed) []string {
			return []string{b.Name, b.ScientificName, string(b.Animal), b.Feeding}
		},
		Less: func(a, b Breed) bool {
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if na != nb {
				return na < nb
			}
			return a.ID < b.ID
		},
	}
}

func normalize(b Breed) Breed {
	b.Animal = Animal(strings.ToLower(strings.TrimSpace(string(b.Animal))))
	if b.Animal == "" {
		b.Animal = AnimalDog
	}
	b.Name = strings.TrimSpace(b.Name)
	b.ScientificName = strings.TrimSpace(b.ScientificName)
	b.Feeding = strings.TrimSpace(b.Feeding)
	b.WalkTime = strings.TrimSpace(b.WalkTime)
	b.FunFact = strings.TrimSpace(b.FunFact)
	b.Recommendation = strings.TrimSpace(b.Recommendation)
	return b
}

func Decode(form url.Values) (Breed, records.FieldErrors) {
	errs := records.FieldErrors{}
	b := Breed{
		Animal:         Animal(form.Get("animal")),
		Name:           form.Get("name"),
		ScientificName: form.Get("scientific_name"),
		Feeding:        form.Get("feeding"),
		WalkTime:       form.Get("walk_time"),
		FunFact:        form.Get("fun_fact"),
		Recommendation: form.Get("recommendation"),
	}

	if raw := strings.TrimSpace(form.Get("lifespan")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs.Add("lifespan", "lifespan must be a whole number")
		}
		b.Lifespan = n
	}
	return b, errs
}
