package validation

import (
	"regexp"

	"docspace/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserRegistration validates a signup request.
func (v *Validator) UserRegistration(input *models.CreateUserInput) {
	v.Required("name", input.Name)
	v.Required("email", input.Email)
	v.Required("password", input.Password)
	v.Required("role", input.Role)

	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if input.Password != "" {
		v.Password("password", input.Password)
	}
	if input.Role != "" {
		v.In("role", input.Role, "doctor", "hospital")
	}
}
