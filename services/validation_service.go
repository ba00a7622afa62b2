// Package services: services/validation_service.go
package services

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"go-cfp/models"
)

// passwordRule is the password strength floor.
const passwordRule = "min=8"

// ValidationService sanitizes and validates signup submissions. It is a pure
// transformation: no side effects, and every rule is checked so the caller
// can report all problems in one pass.
type ValidationService struct {
	Sanitizer Sanitizer
	validate  *validator.Validate
}

// NewValidationService builds a ValidationService using the given sanitizer
// for free-text fields.
func NewValidationService(sanitizer Sanitizer) *ValidationService {
	return &ValidationService{
		Sanitizer: sanitizer,
		validate:  validator.New(),
	}
}

// Validate cleans sub and checks every rule. On success it returns the
// cleaned profile and a nil error list; on failure it returns nil and the
// accumulated human-readable messages, in rule order.
func (v *ValidationService) Validate(sub models.SignupSubmission) (*models.CleanedProfile, []string) {
	var errs []string

	firstName := strings.TrimSpace(sub.FirstName)
	lastName := strings.TrimSpace(sub.LastName)
	email := strings.TrimSpace(sub.Email)
	airport := strings.TrimSpace(sub.Airport)

	if firstName == "" {
		errs = append(errs, "First name is required")
	}
	if lastName == "" {
		errs = append(errs, "Last name is required")
	}
	if email == "" {
		errs = append(errs, "Email address is required")
	} else if v.validate.Var(email, "email") != nil {
		errs = append(errs, "Email address is not valid")
	}
	if sub.Password == "" {
		errs = append(errs, "Password is required")
	}
	if sub.Password2 == "" {
		errs = append(errs, "Password confirmation is required")
	}
	if sub.Password != "" && sub.Password2 != "" && sub.Password != sub.Password2 {
		errs = append(errs, "Passwords do not match")
	}
	if sub.Password != "" && v.validate.Var(sub.Password, passwordRule) != nil {
		errs = append(errs, "Password must be at least 8 characters long")
	}
	if airport == "" {
		errs = append(errs, "Departure airport is required")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &models.CleanedProfile{
		FirstName:      firstName,
		LastName:       lastName,
		Company:        v.Sanitizer.Sanitize(sub.Company),
		Twitter:        normalizeTwitter(sub.Twitter),
		Email:          email,
		Password:       sub.Password,
		Airport:        airport,
		SpeakerInfo:    v.Sanitizer.Sanitize(sub.SpeakerInfo),
		SpeakerBio:     v.Sanitizer.Sanitize(sub.SpeakerBio),
		Transportation: sub.Transportation,
		Hotel:          sub.Hotel,
	}, nil
}

// normalizeTwitter strips exactly one leading "@" from the handle. A handle
// of "@@jane" becomes "@jane"; garbage in stays garbage, just without the
// prefix the form suggested.
func normalizeTwitter(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
