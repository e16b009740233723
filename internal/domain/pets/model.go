package pets

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Pet es el paciente. Breed es obligatorio solo cuando Species es other.
type Pet struct {
	ID      string  `json:"id" form:"-"`
	Name    string  `json:"name" form:"name" validate:"required,max=50"`
	Sex     Sex     `json:"sex" form:"sex" validate:"required,oneof=male female"`
	Age     int     `json:"age" form:"age" validate:"min=0,max=30"`
	Species Species `json:"species" form:"species" validate:"required,oneof=dog cat other"`
	Breed   string  `json:"breed" form:"breed" validate:"required_if=Species other,max=30"`
}
