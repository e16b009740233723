package access

import (
	"errors"
	"sort"
	"strings"

	"vet-clinic/internal/ports/auth"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("authorization denied")
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleVeterinarian  Role = "veterinarian"
)

// ParseRole acepta el valor guardado; ok=false si no es un rol conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdministrator, RoleVeterinarian:
		return r, true
	default:
		return "", false
	}
}

func Roles() []Role {
	return []Role{RoleAdministrator, RoleVeterinarian}
}

// Capability es la unidad de permiso que protege un grupo de rutas.
type Capability string

const (
	CapClients           Capability = "clients"
	CapPets              Capability = "pets"
	CapAppointments      Capability = "appointments"
	CapVeterinarians     Capability = "veterinarians"
	CapRemedies          Capability = "remedies"
	CapBreeds            Capability = "breeds"
	CapRegistrationPanel Capability = "registration-panel"
	CapUsers             Capability = "users"
)

type capabilitySet map[Capability]struct{}

// La tabla se arma una sola vez y no se expone mutable.
var roleTable = func() map[Role]capabilitySet {
	staff := []Capability{
		CapClients, CapPets, CapAppointments, CapVeterinarians,
		CapRemedies, CapBreeds, CapRegistrationPanel,
	}

	build := func(caps ...Capability) capabilitySet {
		set := make(capabilitySet, len(caps))
		for _, c := range caps {
			set[c] = struct{}{}
		}
		return set
	}

	return map[Role]capabilitySet{
		RoleAdministrator: build(append(staff, CapUsers)...),
		RoleVeterinarian:  build(staff...),
	}
}()

// Capabilities devuelve una copia ordenada de las capacidades del rol.
func Capabilities(r Role) []Capability {
	set := roleTable[r]
	out := make([]Capability, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// RoleHas consulta la tabla sin mirar la sesión.
func RoleHas(r Role, c Capability) bool {
	_, ok := roleTable[r][c]
	return ok
}

func IsAuthenticated(id auth.Identity) bool {
	return id.Authenticated
}

func HasCapability(id auth.Identity, c Capability) bool {
	if !IsAuthenticated(id) {
		return false
	}
	return RoleHas(Role(id.Role), c)
}

// Check aplica, en orden, autenticación y luego autorización.
func Check(id auth.Identity, c Capability) error {
	if !IsAuthenticated(id) {
		return ErrAuthenticationRequired
	}
	if !HasCapability(id, c) {
		return ErrAuthorizationDenied
	}
	return nil
}
