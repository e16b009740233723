package appointments

type Reason string

const (
	ReasonControl      Reason = "control"
	ReasonUrgency      Reason = "urgency"
	ReasonRoutine      Reason = "routine"
	ReasonFirstControl Reason = "first_control"
	ReasonOperation    Reason = "operation"
)

// DateLayout es el formato de Date (solo día).
const DateLayout = "2006-01-02"

// Appointment es una atención de una mascota de un cliente. Los campos de
// lectura (nombres) los completa el store y se ignoran al escribir.
type Appointment struct {
	ID             string   `json:"id" form:"-"`
	ClientID       string   `json:"client_id" form:"client" validate:"required"`
	PetID          string   `json:"pet_id" form:"pet" validate:"required"`
	VeterinarianID string   `json:"veterinarian_id,omitempty" form:"veterinarian"`
	Date           string   `json:"date" form:"date" validate:"required,datetime=2006-01-02"`
	Reason         Reason   `json:"reason" form:"reason" validate:"required,oneof=control urgency routine first_control operation"`
	RemedyIDs      []string `json:"remedy_ids" form:"remedies"`

	ClientFirstName  string   `json:"client_first_name,omitempty" form:"-"`
	ClientLastName   string   `json:"client_last_name,omitempty" form:"-"`
	PetName          string   `json:"pet_name,omitempty" form:"-"`
	VeterinarianName string   `json:"veterinarian_name,omitempty" form:"-"`
	RemedyNames      []string `json:"remedy_names,omitempty" form:"-"`
}

func (a Appointment) ClientName() string {
	if a.ClientLastName == "" {
		return a.ClientFirstName
	}
	return a.ClientFirstName + " " + a.ClientLastName
}
