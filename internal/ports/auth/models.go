package auth

// Identity es lo que la sesión sabe del actor actual.
// Authenticated solo lo pone un login exitoso.
type Identity struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	FullName      string `json:"full_name,omitempty"`
	Email         string `json:"email,omitempty"`
}

// Anonymous es la identidad de una sesión sin login.
func Anonymous() Identity {
	return Identity{}
}
