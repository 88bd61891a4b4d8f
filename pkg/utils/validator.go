package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	err := validate.RegisterValidation("user_role", validateUserRole)
	if err != nil {
		return
	}
	err = validate.RegisterValidation("requestable_role", validateRequestableRole)
	if err != nil {
		return
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{"superadmin", "rider", "cook", "supervisor", "refill"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

// Self-service registration may only ask for non-admin roles.
func validateRequestableRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{"rider", "cook", "supervisor", "refill"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func IsValidEmail(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	re := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	return re.MatchString(email)
}
