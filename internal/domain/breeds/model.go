package breeds

type Animal string

const (
	AnimalDog   Animal = "dog"
	AnimalCat   Animal = "cat"
	AnimalOther Animal = "other"
)

// Breed es una ficha del catálogo público de razas.
type Breed struct {
	ID             string `json:"id" form:"-"`
	Animal         Animal `json:"animal" form:"animal" validate:"required,oneof=dog cat other"`
	Name           string `json:"name" form:"name" validate:"required,max=50"`
	ScientificName string `json:"scientific_name" form:"scientific_name" validate:"max=100"`
	Lifespan       int    `json:"lifespan" form:"lifespan" validate:"min=0,max=30"`
	Feeding        string `json:"feeding" form:"feeding" validate:"max=255"`
	WalkTime       string `json:"walk_time" form:"walk_time" validate:"max=100"`
	FunFact        string `json:"fun_fact" form:"fun_fact" validate:"required"`
	Recommendation string `json:"recommendation" form:"recommendation" validate:"required"`
}
