package remedies

type Animal string

const (
	AnimalDog   Animal = "dog"
	AnimalCat   Animal = "cat"
	AnimalOther Animal = "other"
)

const (
	DefaultRecommendedUse = "unspecified"
	DefaultFrequency      = "once daily"
)

type Remedy struct {
	ID             string `json:"id" form:"-"`
	Name           string `json:"name" form:"name" validate:"required,max=50"`
	RecommendedUse string `json:"recommended_use" form:"recommended_use" validate:"required"`
	Frequency      string `json:"frequency" form:"frequency" validate:"required,max=100"`
	Animal         Animal `json:"animal" form:"animal" validate:"required,oneof=dog cat other"`
}
