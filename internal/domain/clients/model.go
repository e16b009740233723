package clients

// Client es el tutor responsable de una o más mascotas.
type Client struct {
	ID        string `json:"id" form:"-"`
	FirstName string `json:"first_name" form:"first_name" validate:"required,max=60,letters"`
	LastName  string `json:"last_name" form:"last_name" validate:"required,max=45,letters"`
	Phone     string `json:"phone" form:"phone" validate:"required,localphone"`
	Email     string `json:"email" form:"email" validate:"required,max=80,email"`
	RUT       string `json:"rut" form:"rut" validate:"required,rut"`
	Address   string `json:"address" form:"address" validate:"required,min=10,max=200"`
}
