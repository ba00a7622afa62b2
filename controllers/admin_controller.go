// Package controllers provides HTTP handlers for admin speaker management.
// File: controllers/admin_controller.go
package controllers

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-cfp/logger"
	"go-cfp/models"
)

// speakersPerPage is the admin listing page size.
const speakersPerPage = 20

// SpeakerDirectory is the slice of the store the admin pages need.
type SpeakerDirectory interface {
	ListSpeakers(ctx context.Context, page, perPage int) ([]models.Speaker, int, error)
	GetSpeaker(ctx context.Context, id int64) (*models.Speaker, error)
	DeleteSpeaker(ctx context.Context, id int64) error
}

// AdminController provides admin operations for browsing and removing
// speaker accounts.
type AdminController struct {
	Directory SpeakerDirectory

	// UploadDir lets delete remove the speaker's stored photo as well.
	UploadDir string
}

// NewAdminController initializes a new instance of AdminController.
func NewAdminController(directory SpeakerDirectory, uploadDir string) *AdminController {
	return &AdminController{Directory: directory, UploadDir: uploadDir}
}

// ---------------- speaker listing ----------------

// SpeakersIndex renders the paginated speaker list, ordered by last name,
// 20 per page.
func (ac *AdminController) SpeakersIndex(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	speakers, total, err := ac.Directory.ListSpeakers(c.Request.Context(), page, speakersPerPage)
	if err != nil {
		logger.Error.Printf("SpeakersIndex: listing failed: %v", err)
		c.String(http.StatusInternalServerError, "Could not load speakers")
		return
	}

	totalPages := (total + speakersPerPage - 1) / speakersPerPage
	if totalPages < 1 {
		totalPages = 1
	}

	c.HTML(http.StatusOK, "admin_speakers.html", gin.H{
		"Speakers":   speakers,
		"Page":       page,
		"TotalPages": totalPages,
		"Total":      total,
		"Flash":      TakeFlash(c),
	})
}

// ---------------- speaker detail ----------------

// SpeakerView renders the detail page for one speaker.
func (ac *AdminController) SpeakerView(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid speaker id")
		return
	}

	speaker, err := ac.Directory.GetSpeaker(c.Request.Context(), id)
	if err != nil {
		logger.Warn.Printf("SpeakerView: speaker %d not found: %v", id, err)
		c.String(http.StatusNotFound, "Speaker not found")
		return
	}

	c.HTML(http.StatusOK, "admin_speaker_view.html", gin.H{
		"Speaker": speaker,
		"Page":    c.Query("page"),
	})
}

// ---------------- speaker removal ----------------

// SpeakerDelete removes a speaker account, its profile, and (best effort)
// the stored photo file.
func (ac *AdminController) SpeakerDelete(c *gin.Context) {
	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid speaker id")
		return
	}

	speaker, err := ac.Directory.GetSpeaker(c.Request.Context(), id)
	if err != nil {
		logger.Warn.Printf("SpeakerDelete: speaker %d not found: %v", id, err)
		SetFlash(c, models.Flash{Type: models.FlashError, Short: "Error", Ext: "Speaker not found."})
		c.Redirect(http.StatusFound, "/admin/speakers")
		return
	}

	if err := ac.Directory.DeleteSpeaker(c.Request.Context(), id); err != nil {
		logger.Error.Printf("SpeakerDelete: deleting speaker %d failed: %v", id, err)
		SetFlash(c, models.Flash{Type: models.FlashError, Short: "Error", Ext: "Could not delete the speaker."})
		c.Redirect(http.StatusFound, "/admin/speakers")
		return
	}

	if photo := speaker.Profile.PhotoPath; photo != "" {
		path := filepath.Join(ac.UploadDir, filepath.Base(photo))
		if err := os.Remove(path); err != nil {
			logger.Warn.Printf("SpeakerDelete: could not remove photo %s: %v", path, err)
		}
	}

	logger.Info.Printf("SpeakerDelete: removed speaker %d (%s)", id, speaker.Account.Email)
	SetFlash(c, models.Flash{Type: models.FlashSuccess, Short: "Success", Ext: "Speaker deleted."})
	c.Redirect(http.StatusFound, "/admin/speakers")
}
