// Package controllers: controllers/flash.go
package controllers

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-cfp/logger"
	"go-cfp/models"
)

// flashKey is the single session slot used for flash messages.
const flashKey = "flash"

func init() {
	// cookie sessions gob-encode values; the flash struct must be known.
	gob.Register(models.Flash{})
}

// SetFlash stores the flash message for the next rendered page, overwriting
// whatever was there.
func SetFlash(c *gin.Context, flash models.Flash) {
	session := sessions.Default(c)
	session.Set(flashKey, flash)
	if err := session.Save(); err != nil {
		logger.Error.Printf("SetFlash: failed to save session: %v", err)
	}
}

// TakeFlash returns the pending flash message and clears it in the same
// session save, so no later read sees a stale message.
func TakeFlash(c *gin.Context) *models.Flash {
	session := sessions.Default(c)
	raw := session.Get(flashKey)
	if raw == nil {
		return nil
	}

	session.Delete(flashKey)
	if err := session.Save(); err != nil {
		logger.Error.Printf("TakeFlash: failed to clear flash: %v", err)
	}

	flash, ok := raw.(models.Flash)
	if !ok {
		logger.Warn.Printf("TakeFlash: unexpected flash value %T", raw)
		return nil
	}
	return &flash
}
