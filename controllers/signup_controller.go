// Package controllers handles speaker signup and session management.
// File: controllers/signup_controller.go
package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-cfp/logger"
	"go-cfp/models"
	"go-cfp/services"
)

// maxPhotoBytes caps uploaded photo size (5 MiB).
const maxPhotoBytes = 5 << 20

// SignupPipeline is what the signup controller needs from the service layer.
type SignupPipeline interface {
	ShowForm(auth services.AuthSession) services.Outcome
	Submit(ctx context.Context, sub models.SignupSubmission, auth services.AuthSession) services.Outcome
}

// SignupController serves the speaker signup form and submissions.
type SignupController struct {
	Service SignupPipeline
}

// NewSignupController initializes a new SignupController.
func NewSignupController(service SignupPipeline) *SignupController {
	return &SignupController{Service: service}
}

// ------------------ session adapter ------------------

// sessionAuth adapts the gin session to the pipeline's AuthSession.
type sessionAuth struct {
	session sessions.Session
}

func (a *sessionAuth) IsAuthenticated() bool {
	return a.session.Get("user") != nil
}

func (a *sessionAuth) Logout() error {
	a.session.Clear()
	return a.session.Save()
}

// ------------------ handlers ------------------

// ShowSignupForm renders the signup form, unless the call for papers has
// already closed.
func (sc *SignupController) ShowSignupForm(c *gin.Context) {
	auth := &sessionAuth{session: sessions.Default(c)}

	outcome := sc.Service.ShowForm(auth)
	if outcome.Kind == services.OutcomeRedirect {
		SetFlash(c, outcome.Flash)
		c.Redirect(http.StatusFound, outcome.Location)
		return
	}

	c.HTML(http.StatusOK, "signup.html", gin.H{
		"FormAction":     "/signup",
		"ButtonInfo":     "Create my speaker profile",
		"Transportation": false,
		"Hotel":          false,
		"Flash":          TakeFlash(c),
	})
}

// ProcessSignup handles a posted signup form: it builds the submission,
// runs the pipeline, and either redirects or redisplays the form with the
// submitted values preserved (passwords excepted).
func (sc *SignupController) ProcessSignup(c *gin.Context) {
	sub := models.SignupSubmission{
		FirstName:      c.PostForm("first_name"),
		LastName:       c.PostForm("last_name"),
		Company:        c.PostForm("company"),
		Twitter:        c.PostForm("twitter"),
		Email:          c.PostForm("email"),
		Password:       c.PostForm("password"),
		Password2:      c.PostForm("password2"),
		Airport:        c.PostForm("airport"),
		SpeakerInfo:    c.PostForm("speaker_info"),
		SpeakerBio:     c.PostForm("speaker_bio"),
		Transportation: checkboxOn(c.PostForm("transportation")),
		Hotel:          checkboxOn(c.PostForm("hotel")),
	}

	upload, err := readPhotoUpload(c)
	if err != nil {
		logger.Warn.Printf("ProcessSignup: unreadable photo upload: %v", err)
		sc.renderForm(c, sub, []string{"We could not read your uploaded photo. Please try again."})
		return
	}
	sub.Photo = upload

	auth := &sessionAuth{session: sessions.Default(c)}
	outcome := sc.Service.Submit(c.Request.Context(), sub, auth)

	SetFlash(c, outcome.Flash)
	if outcome.Kind == services.OutcomeRedirect {
		c.Redirect(http.StatusFound, outcome.Location)
		return
	}
	sc.renderForm(c, sub, outcome.Errors)
}

// renderForm redisplays the signup form with the submitted values.
func (sc *SignupController) renderForm(c *gin.Context, sub models.SignupSubmission, errs []string) {
	c.HTML(http.StatusOK, "signup.html", gin.H{
		"FormAction":     "/signup",
		"ButtonInfo":     "Create my speaker profile",
		"FirstName":      sub.FirstName,
		"LastName":       sub.LastName,
		"Company":        sub.Company,
		"Twitter":        sub.Twitter,
		"Email":          sub.Email,
		"Airport":        sub.Airport,
		"SpeakerInfo":    sub.SpeakerInfo,
		"SpeakerBio":     sub.SpeakerBio,
		"Transportation": sub.Transportation,
		"Hotel":          sub.Hotel,
		"Errors":         errs,
		"Flash":          TakeFlash(c),
	})
}

// readPhotoUpload pulls the optional speaker_photo file out of the
// multipart form. A missing file is not an error.
func readPhotoUpload(c *gin.Context) (*models.PhotoUpload, error) {
	header, err := c.FormFile("speaker_photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) || header == nil {
		// plain form post or no file chosen; the photo is optional
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		return nil, err
	}
	return &models.PhotoUpload{Data: data, OriginalName: header.Filename}, nil
}

func checkboxOn(value string) bool {
	return value == "1" || value == "on" || value == "true"
}
