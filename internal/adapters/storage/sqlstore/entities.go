package sqlstore

import (
	"vet-clinic/internal/domain/breeds"
	"vet-clinic/internal/domain/clients"
	"vet-clinic/internal/domain/pets"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/remedies"
	"vet-clinic/internal/domain/veterinarians"
)

func (s *DB) Clients() records.Repository[clients.Client] {
	return &tableRepo[clients.Client]{s: s, t: table[clients.Client]{
		name:    "clients",
		columns: []string{"first_name", "last_name", "phone", "email", "rut", "address"},
		id:      func(c clients.Client) string { return c.ID },
		values: func(c clients.Client) []any {
			return []any{c.FirstName, c.LastName, c.Phone, c.Email, c.RUT, c.Address}
		},
		scan: func(sc scanner) (clients.Client, error) {
			var c clients.Client
			err := sc.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email, &c.RUT, &c.Address)
			return c, err
		},
	}}
}

func (s *DB) Pets() records.Repository[pets.Pet] {
	return &tableRepo[pets.Pet]{s: s, t: table[pets.Pet]{
		name:    "pets",
		columns: []string{"name", "sex", "age", "species", "breed"},
		id:      func(p pets.Pet) string { return p.ID },
		values: func(p pets.Pet) []any {
			return []any{p.Name, string(p.Sex), p.Age, string(p.Species), p.Breed}
		},
		scan: func(sc scanner) (pets.Pet, error) {
			var p pets.Pet
			var sex, species string
			err := sc.Scan(&p.ID, &p.Name, &sex, &p.Age, &species, &p.Breed)
			p.Sex, p.Species = pets.Sex(sex), pets.Species(species)
			return p, err
		},
	}}
}

func (s *DB) Veterinarians() records.Repository[veterinarians.Veterinarian] {
	return &tableRepo[veterinarians.Veterinarian]{s: s, t: table[veterinarians.Veterinarian]{
		name:    "veterinarians",
		columns: []string{"full_name", "specialty", "email", "phone", "address"},
		id:      func(v veterinarians.Veterinarian) string { return v.ID },
		values: func(v veterinarians.Veterinarian) []any {
			return []any{v.FullName, string(v.Specialty), v.Email, v.Phone, v.Address}
		},
		scan: func(sc scanner) (veterinarians.Veterinarian, error) {
			var v veterinarians.Veterinarian
			var specialty string
			err := sc.Scan(&v.ID, &v.FullName, &specialty, &v.Email, &v.Phone, &v.Address)
			v.Specialty = veterinarians.Specialty(specialty)
			return v, err
		},
	}}
}

func (s *DB) Breeds() records.Repository[breeds.Breed] {
	return &tableRepo[breeds.Breed]{s: s, t: table[breeds.Breed]{
		name: "breeds",
		columns: []string{
			"animal", "name", "scientific_name", "lifespan",
			"feeding", "walk_time", "fun_fact", "recommendation",
		},
		id: func(b breeds.Breed) string { return b.ID },
		values: func(b breeds.Breed) []any {
			return []any{
				string(b.Animal), b.Name, b.ScientificName, b.Lifespan,
				b.Feeding, b.WalkTime, b.FunFact, b.Recommendation,
			}
		},
		scan: func(sc scanner) (breeds.Breed, error) {
			var b breeds.Breed
			var animal string
			err := sc.Scan(&b.ID, &animal, &b.Name, &b.ScientificName, &b.Lifespan,
				&b.Feeding, &b.WalkTime, &b.FunFact, &b.Recommendation)
			b.Animal = breeds.Animal(animal)
			return b, err
		},
	}}
}

func (s *DB) Remedies() records.Repository[remedies.Remedy] {
	return &tableRepo[remedies.Remedy]{s: s, t: table[remedies.Remedy]{
		name:    "remedies",
		columns: []string{"name", "recommended_use", "frequency", "animal"},
		id:      func(m remedies.Remedy) string { return m.ID },
		values: func(m remedies.Remedy) []any {
			return []any{m.Name, m.RecommendedUse, m.Frequency, string(m.Animal)}
		},
		scan: func(sc scanner) (remedies.Remedy, error) {
			var m remedies.Remedy
			var animal string
			err := sc.Scan(&m.ID, &m.Name, &m.RecommendedUse, &m.Frequency, &animal)
			m.Animal = remedies.Animal(animal)
			return m, err
		},
	}}
}
