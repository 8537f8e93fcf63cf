package handlers

import "github.com/tbourn/go-user-backend/internal/validation"

// Request body schemas for the user endpoints. Declared once and installed
// as route-level validation middleware, so handlers only ever see payloads
// that already passed every rule.

// CreateUserSchema validates the POST /users payload: all fields required,
// email well-formed, name 2-100 chars, password 6-100 chars.
func CreateUserSchema() validation.Schema {
	return validation.Schema{
		{Name: "email", Rule: validation.Rule{Required: true, Type: validation.TypeEmail}},
		{Name: "name", Rule: validation.Rule{Required: true, Type: validation.TypeString, MinLength: 2, MaxLength: 100}},
		{Name: "password", Rule: validation.Rule{Required: true, Type: validation.TypeString, MinLength: 6, MaxLength: 100}},
	}
}

// UpdateUserSchema validates the PUT /users/:id payload: every field is
// optional, but any field that is present must satisfy the same rules as on
// create.
func UpdateUserSchema() validation.Schema {
	return validation.Schema{
		{Name: "email", Rule: validation.Rule{Type: validation.TypeEmail}},
		{Name: "name", Rule: validation.Rule{Type: validation.TypeString, MinLength: 2, MaxLength: 100}},
		{Name: "password", Rule: validation.Rule{Type: validation.TypeString, MinLength: 6, MaxLength: 100}},
	}
}
