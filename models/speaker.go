// Package models defines the data types shared across the application.
// File: models/speaker.go
package models

import "time"

// PhotoUpload carries the raw bytes of an uploaded profile photo along with
// the filename the client supplied (needed to preserve the extension).
type PhotoUpload struct {
	Data         []byte
	OriginalName string
}

// SignupSubmission is the raw signup form input for a single request.
// Optional fields default to their zero value when the form omits them.
type SignupSubmission struct {
	FirstName      string
	LastName       string
	Company        string
	Twitter        string
	Email          string
	Password       string
	Password2      string
	Airport        string
	SpeakerInfo    string
	SpeakerBio     string
	Transportation bool
	Hotel          bool
	Photo          *PhotoUpload
}

// CleanedProfile is the sanitized, fully validated form of a submission.
// It is only ever produced when every required field passed validation.
type CleanedProfile struct {
	FirstName      string
	LastName       string
	Company        string
	Twitter        string
	Email          string
	Password       string
	Airport        string
	SpeakerInfo    string
	SpeakerBio     string
	Transportation bool
	Hotel          bool

	// PhotoPath is filled in by the photo processor after validation;
	// empty when no photo was uploaded.
	PhotoPath string
}

// Account is a persisted speaker account. Email is unique across all
// accounts; the store enforces this.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Company      string
	Twitter      string
	Activated    bool
	IsAdmin      bool
	CreatedAt    time.Time
}

// SpeakerProfile holds the extra speaker details attached 1:1 to an account.
type SpeakerProfile struct {
	AccountID int64
	Bio       string
	Info      string
	Airport   string
	PhotoPath string
}

// Speaker is an account joined with its profile, as shown on admin pages.
type Speaker struct {
	Account Account
	Profile SpeakerProfile
}

// Flash message types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot status message consumed by the next rendered page.
type Flash struct {
	Type  string
	Short string
	Ext   string
}
