package validator

import (
	"log"
	"regexp"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

var roleSlugPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// IsValidRoleSlug reports whether s is a usable role slug.
func IsValidRoleSlug(s string) bool {
	return roleSlugPattern.MatchString(s)
}

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("user-type", validateUserType)
	mustRegister("delete-request-status", validateDeleteRequestStatus)
}

// Empty values pass; 'required' covers presence.

func validateUserType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", auth.RoleActor, auth.RoleTechnician, auth.RoleProductionHouse,
		auth.RoleAdmin, auth.RoleStudio, auth.RoleMedia:
		return true
	default:
		return false
	}
}

func validateDeleteRequestStatus(fl validator.FieldLevel) bool {
	switch models.DeleteRequestStatus(fl.Field().String()) {
	case "", models.DeleteRequestApproved, models.DeleteRequestRejected, models.DeleteRequestCompleted:
		return true
	default:
		return false
	}
}
