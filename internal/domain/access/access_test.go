package access

import (
	"errors"
	"testing"

	"vet-clinic/internal/ports/auth"
)

func identity(role Role) auth.Identity {
	return auth.Identity{Authenticated: true, Username: "u", Role: string(role)}
}

func TestHasCapability_UsersOnlyForAdministrators(t *testing.T) {
	if HasCapability(identity(RoleVeterinarian), CapUsers) {
		t.Fatalf("veterinarian must not manage users")
	}
	if !HasCapability(identity(RoleAdministrator), CapUsers) {
		t.Fatalf("administrator must manage users")
	}
}

func TestHasCapability_StaffModules(t *testing.T) {
	staff := []Capability{
		CapClients, CapPets, CapAppointments, CapVeterinarians,
		CapRemedies, CapBreeds, CapRegistrationPanel,
	}
	for _, role := range Roles() {
		for _, c := range staff {
			if !HasCapability(identity(role), c) {
				t.Fatalf("role %s should have %s", role, c)
			}
		}
	}
}

func TestHasCapability_UnauthenticatedHasNothing(t *testing.T) {
	anon := auth.Identity{Role: string(RoleAdministrator)}
	if HasCapability(anon, CapClients) {
		t.Fatalf("unauthenticated session must not have capabilities even with a role")
	}
}

func TestCheck_Order(t *testing.T) {
	if err := Check(auth.Anonymous(), CapUsers); !errors.Is(err, ErrAuthenticationRequired) {
		t.Fatalf("expected ErrAuthenticationRequired, got %v", err)
	}
	if err := Check(identity(RoleVeterinarian), CapUsers); !errors.Is(err, ErrAuthorizationDenied) {
		t.Fatalf("expected ErrAuthorizationDenied, got %v", err)
	}
	if err := Check(identity("intruder"), CapClients); !errors.Is(err, ErrAuthorizationDenied) {
		t.Fatalf("unknown role should be denied, got %v", err)
	}
	if err := Check(identity(RoleAdministrator), CapUsers); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestCapabilities_ReturnsCopy(t *testing.T) {
	caps := Capabilities(RoleVeterinarian)
	if len(caps) != 7 {
		t.Fatalf("expected 7 veterinarian capabilities, got %d", len(caps))
	}
	caps[0] = CapUsers
	if RoleHas(RoleVeterinarian, CapUsers) {
		t.Fatalf("mutating the returned slice must not change the table")
	}
}

func TestParseRole(t *testing.T) {
	if r, ok := ParseRole(" Administrator "); !ok || r != RoleAdministrator {
		t.Fatalf("expected administrator, got %q ok=%v", r, ok)
	}
	if _, ok := ParseRole("root"); ok {
		t.Fatalf("unknown role should not parse")
	}
}
