// Package services: services/signup_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"go-cfp/logger"
	"go-cfp/models"
	"go-cfp/store"
)

// ErrStorageInconsistency reports that an account was created but its
// speaker profile could not be attached, leaving an orphaned account. This
// is an operator problem, not something the user can fix by retrying.
var ErrStorageInconsistency = errors.New("account created but profile attach failed")

// OutcomeKind says what the HTTP layer should do with a submission result.
type OutcomeKind int

const (
	// OutcomeRedirect sends the user to Outcome.Location.
	OutcomeRedirect OutcomeKind = iota
	// OutcomeRender redisplays the signup form with Outcome.Errors.
	OutcomeRender
)

// Outcome is the decision of the signup pipeline for one submission. Flash
// carries the one-shot message the caller should publish before responding.
type Outcome struct {
	Kind     OutcomeKind
	Location string
	Errors   []string
	Flash    models.Flash
}

// AuthSession is the slice of the caller's session the pipeline needs:
// signup always starts from a logged-out state.
type AuthSession interface {
	IsAuthenticated() bool
	Logout() error
}

// SignupStore is the slice of the account store the pipeline needs.
// Email uniqueness is the store's job; CreateAccount returns
// store.ErrAccountExists on conflict.
type SignupStore interface {
	CreateAccount(ctx context.Context, acct models.Account) (int64, error)
	AssignGroup(ctx context.Context, accountID int64, groupName string) error
	SaveProfile(ctx context.Context, profile models.SpeakerProfile) error
}

// SignupService sequences validation, photo processing, account creation,
// group assignment, and profile attachment for one speaker signup.
type SignupService struct {
	Store     SignupStore
	Photos    PhotoServiceInterface
	Validator *ValidationService

	// Cutoff is the last instant a signup is accepted.
	Cutoff time.Time

	// Now is swappable for deadline tests.
	Now func() time.Time
}

// NewSignupService wires up a signup pipeline.
func NewSignupService(st SignupStore, photos PhotoServiceInterface, validator *ValidationService, cutoff time.Time) *SignupService {
	return &SignupService{
		Store:     st,
		Photos:    photos,
		Validator: validator,
		Cutoff:    cutoff,
		Now:       time.Now,
	}
}

// DeadlinePassed reports whether the call for papers has closed. The cutoff
// instant itself is still accepted.
func (s *SignupService) DeadlinePassed() bool {
	return s.Now().After(s.Cutoff)
}

// deadlineOutcome redirects home with an explanation.
func deadlineOutcome() Outcome {
	return Outcome{
		Kind:     OutcomeRedirect,
		Location: "/",
		Flash: models.Flash{
			Type:  models.FlashError,
			Short: "Error",
			Ext:   "Sorry, the call for papers has ended.",
		},
	}
}

// ShowForm decides whether the signup form may be rendered. Any live
// session is terminated first.
func (s *SignupService) ShowForm(auth AuthSession) Outcome {
	if s.DeadlinePassed() {
		return deadlineOutcome()
	}
	if auth.IsAuthenticated() {
		if err := auth.Logout(); err != nil {
			logger.Warn.Printf("ShowForm: could not clear existing session: %v", err)
		}
	}
	return Outcome{Kind: OutcomeRender}
}

// Submit runs the full signup pipeline for one submission and decides the
// user-facing result.
func (s *SignupService) Submit(ctx context.Context, sub models.SignupSubmission, auth AuthSession) Outcome {
	if s.DeadlinePassed() {
		return deadlineOutcome()
	}

	if auth.IsAuthenticated() {
		if err := auth.Logout(); err != nil {
			logger.Warn.Printf("Submit: could not clear existing session: %v", err)
		}
	}

	clean, errs := s.Validator.Validate(sub)
	if errs != nil {
		PublishSignupRejected()
		return renderWithErrors(errs)
	}

	// A photo failure is a hard stop: no account may ever reference a
	// thumbnail that was not written.
	photoPath, err := s.Photos.Process(ctx, sub.Photo, clean.FirstName, clean.LastName)
	if err != nil {
		logger.Error.Printf("Submit: photo processing failed for %s: %v", clean.Email, err)
		PublishPhotoFailure()
		return renderWithErrors([]string{"We could not process your photo. Please try again with a different image."})
	}
	clean.PhotoPath = photoPath

	hash, err := bcrypt.GenerateFromPassword([]byte(clean.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error.Printf("Submit: password hashing failed: %v", err)
		return renderWithErrors([]string{"Something went wrong creating your account. Please try again."})
	}

	accountID, err := s.Store.CreateAccount(ctx, models.Account{
		Email:        clean.Email,
		PasswordHash: string(hash),
		FirstName:    clean.FirstName,
		LastName:     clean.LastName,
		Company:      clean.Company,
		Twitter:      clean.Twitter,
		Activated:    true,
	})
	if errors.Is(err, store.ErrAccountExists) {
		logger.Warn.Printf("Submit: duplicate signup attempt for %s", clean.Email)
		PublishDuplicateAccount()
		return renderWithErrors([]string{"A user already exists with that email address"})
	}
	if err != nil {
		logger.Error.Printf("Submit: account creation failed for %s: %v", clean.Email, err)
		return renderWithErrors([]string{"Something went wrong creating your account. Please try again."})
	}

	if err := s.Store.AssignGroup(ctx, accountID, store.SpeakersGroup); err != nil {
		return s.inconsistent(accountID, clean.Email, err)
	}

	if err := s.Store.SaveProfile(ctx, models.SpeakerProfile{
		AccountID: accountID,
		Bio:       clean.SpeakerBio,
		Info:      clean.SpeakerInfo,
		Airport:   clean.Airport,
		PhotoPath: clean.PhotoPath,
	}); err != nil {
		return s.inconsistent(accountID, clean.Email, err)
	}

	logger.Info.Printf("Submit: speaker account %d created for %s", accountID, clean.Email)
	PublishSignupCompleted()

	return Outcome{
		Kind:     OutcomeRedirect,
		Location: "/login",
		Flash: models.Flash{
			Type:  models.FlashSuccess,
			Short: "Success",
			Ext:   "You've successfully created your account!",
		},
	}
}

// inconsistent handles the post-creation failure path: the account exists
// but group or profile state does not. Surfaced loudly for operators; the
// user gets a generic server error.
func (s *SignupService) inconsistent(accountID int64, email string, cause error) Outcome {
	logger.Error.Printf("Submit: FATAL %v: account=%d email=%s cause=%v",
		ErrStorageInconsistency, accountID, email, cause)
	PublishStorageInconsistency()
	return renderWithErrors([]string{"Something went wrong creating your account. Please contact the organisers."})
}

func renderWithErrors(errs []string) Outcome {
	return Outcome{
		Kind:   OutcomeRender,
		Errors: errs,
		Flash: models.Flash{
			Type:  models.FlashError,
			Short: "Error",
			Ext:   strings.Join(errs, "<br>"),
		},
	}
}
