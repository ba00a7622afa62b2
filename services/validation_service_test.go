// file: services/validation_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cfp/models"
)

func validSubmission() models.SignupSubmission {
	return models.SignupSubmission{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Password:  "abcdef12",
		Password2: "abcdef12",
		Airport:   "LHR",
	}
}

func newTestValidator() *ValidationService {
	return NewValidationService(NewHTMLSanitizer())
}

// TestValidate_AllRequiredMissing verifies that a blank submission yields a
// message for every missing required field.
func TestValidate_AllRequiredMissing(t *testing.T) {
	v := newTestValidator()

	clean, errs := v.Validate(models.SignupSubmission{})
	assert.Nil(t, clean, "No cleaned profile should be produced")
	require.NotEmpty(t, errs)

	assert.Contains(t, errs, "First name is required")
	assert.Contains(t, errs, "Last name is required")
	assert.Contains(t, errs, "Email address is required")
	assert.Contains(t, errs, "Password is required")
	assert.Contains(t, errs, "Password confirmation is required")
	assert.Contains(t, errs, "Departure airport is required")
}

// TestValidate_WhitespaceOnlyFieldsAreMissing verifies trimming happens
// before the required check.
func TestValidate_WhitespaceOnlyFieldsAreMissing(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.FirstName = "   "
	sub.Airport = "\t"

	clean, errs := v.Validate(sub)
	assert.Nil(t, clean)
	assert.Contains(t, errs, "First name is required")
	assert.Contains(t, errs, "Departure airport is required")
}

func TestValidate_InvalidEmail(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.Email = "not-an-email"

	clean, errs := v.Validate(sub)
	assert.Nil(t, clean)
	assert.Contains(t, errs, "Email address is not valid")
}

func TestValidate_PasswordMismatch(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.Password2 = "different12"

	clean, errs := v.Validate(sub)
	assert.Nil(t, clean)
	assert.Contains(t, errs, "Passwords do not match")
}

func TestValidate_PasswordTooShort(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.Password = "short"
	sub.Password2 = "short"

	clean, errs := v.Validate(sub)
	assert.Nil(t, clean)
	assert.Contains(t, errs, "Password must be at least 8 characters long")
}

// TestValidate_ErrorsAccumulate verifies validation does not short-circuit
// at the first failing rule.
func TestValidate_ErrorsAccumulate(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.FirstName = ""
	sub.Email = "bogus"
	sub.Password2 = "other-password"

	clean, errs := v.Validate(sub)
	assert.Nil(t, clean)
	assert.GreaterOrEqual(t, len(errs), 3, "All failing rules should report")
}

// TestValidate_TwitterHandleNormalization verifies exactly one leading "@"
// is stripped, whatever the input.
func TestValidate_TwitterHandleNormalization(t *testing.T) {
	v := newTestValidator()

	cases := map[string]string{
		"janedoe":   "janedoe",
		"@janedoe":  "janedoe",
		"@@janedoe": "@janedoe",
		"":          "",
		" @janedoe": "janedoe",
	}

	for input, want := range cases {
		sub := validSubmission()
		sub.Twitter = input

		clean, errs := v.Validate(sub)
		require.Empty(t, errs, "twitter %q should not fail validation", input)
		assert.Equal(t, want, clean.Twitter, "twitter %q", input)
	}
}

// TestValidate_SanitizesFreeTextFields verifies markup is stripped from the
// fields later rendered to other users.
func TestValidate_SanitizesFreeTextFields(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.Company = `<script>alert("pwned")</script>ACME`
	sub.SpeakerBio = `I <b>love</b> speaking`
	sub.SpeakerInfo = `<img src=x onerror=alert(1)>plain`

	clean, errs := v.Validate(sub)
	require.Empty(t, errs)

	assert.NotContains(t, clean.Company, "<script>")
	assert.NotContains(t, clean.SpeakerBio, "<b>")
	assert.NotContains(t, clean.SpeakerInfo, "onerror")
	assert.Contains(t, clean.SpeakerBio, "love")
}

// TestValidate_OptionalFieldsDefault verifies absent optional fields pass
// validation with zero values.
func TestValidate_OptionalFieldsDefault(t *testing.T) {
	v := newTestValidator()

	clean, errs := v.Validate(validSubmission())
	require.Empty(t, errs)

	assert.Equal(t, "", clean.Company)
	assert.Equal(t, "", clean.Twitter)
	assert.Equal(t, "", clean.SpeakerBio)
	assert.Equal(t, "", clean.SpeakerInfo)
	assert.False(t, clean.Transportation)
	assert.False(t, clean.Hotel)
	assert.Equal(t, "", clean.PhotoPath)
}

func TestValidate_TrimsNameAndEmail(t *testing.T) {
	v := newTestValidator()

	sub := validSubmission()
	sub.FirstName = "  Jane "
	sub.Email = " jane@example.com "

	clean, errs := v.Validate(sub)
	require.Empty(t, errs)
	assert.Equal(t, "Jane", clean.FirstName)
	assert.Equal(t, "jane@example.com", clean.Email)
}
