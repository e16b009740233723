package veterinarians

type Specialty string

const (
	SpecialtyDogs   Specialty = "dogs"
	SpecialtyCats   Specialty = "cats"
	SpecialtyOthers Specialty = "others"
)

type Veterinarian struct {
	ID        string    `json:"id" form:"-"`
	FullName  string    `json:"full_name" form:"full_name" validate:"required,min=2,max=100"`
	Specialty Specialty `json:"specialty" form:"specialty" validate:"required,oneof=dogs cats others"`
	Email     string    `json:"email" form:"email" validate:"required,email"`
	Phone     string    `json:"phone" form:"phone" validate:"required,intlphone"`
	Address   string    `json:"address" form:"address" validate:"required,min=5,max=255"`
}
