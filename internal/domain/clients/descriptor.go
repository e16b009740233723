package clients

import (
	"net/url"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
)

func Descriptor() records.Descriptor[Client] {
	return records.Descriptor[Client]{
		Kind:       "clients",
		Noun:       "client",
		Capability: access.CapClients,

		ID:     func(c Client) string { return c.ID },
		WithID: func(c Client, id string) Client { c.ID = id; return c },
		Label:  func(c Client) string { return c.FirstName + " " + c.LastName },

		Normalize: normalize,
		Messages: map[string]string{
			"first_name.letters": "first name may only contain letters and spaces",
			"last_name.letters":  "last name may only contain letters and spaces",
			"phone.localphone":   "phone must contain between 9 and 12 digits",
			"rut.rut":            "RUT must have the format 12.345.678-9",
			"address.min":        "address must be between 10 and 200 characters",
			"address.max":        "address must be between 10 and 200 characters",
		},
		Unique: []records.UniqueRule[Client]{
			{Field: "email", Message: "a client with this email already exists", Value: func(c Client) string { return c.Email }},
			{Field: "rut", Message: "a client with this RUT already exists", Value: func(c Client) string { return c.RUT }},
		},

		SearchFields: func(c Client) []string {
			return []string{c.FirstName, c.LastName, c.RUT, c.Email, c.Phone}
		},
		Less: func(a, b Client) bool {
			fa, fb := strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)
			if fa != fb {
				return fa < fb
			}
			return a.ID < b.ID
		},
	}
}

func normalize(c Client) Client {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.RUT = strings.TrimSpace(c.RUT)
	c.Address = strings.TrimSpace(c.Address)
	return c
}

// Decode lee el formulario de cliente. No hay conversiones que puedan fallar.
func Decode(form url.Values) (Client, records.FieldErrors) {
	return Client{
		FirstName: form.Get("first_name"),
		LastName:  form.Get("last_name"),
		Phone:     form.Get("phone"),
		Email:     form.Get("email"),
		RUT:       form.Get("rut"),
		Address:   form.Get("address"),
	}, nil
}
