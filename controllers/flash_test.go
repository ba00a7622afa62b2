// file: controllers/flash_test.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-cfp/models"
)

// TestFlash_SetAndTake verifies the single-slot lifecycle: set, read once,
// gone on the next read.
func TestFlash_SetAndTake(t *testing.T) {
	router := setupTestRouter(t)

	router.GET("/set", func(c *gin.Context) {
		SetFlash(c, models.Flash{Type: models.FlashSuccess, Short: "Success", Ext: "done"})
		c.String(http.StatusOK, "set")
	})
	router.GET("/take", func(c *gin.Context) {
		flash := TakeFlash(c)
		if flash == nil {
			c.String(http.StatusOK, "empty")
			return
		}
		c.String(http.StatusOK, flash.Type+"|"+flash.Short+"|"+flash.Ext)
	})

	// set the flash
	req, _ := http.NewRequest("GET", "/set", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	// first read sees it
	req, _ = http.NewRequest("GET", "/take", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "success|Success|done", w.Body.String())

	// second read, carrying the cleared session, sees nothing
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared, "take must persist the cleared session")
	req, _ = http.NewRequest("GET", "/take", nil)
	for _, c := range cleared {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "empty", w.Body.String())
}

// TestFlash_SetOverwrites verifies the slot holds only the latest message.
func TestFlash_SetOverwrites(t *testing.T) {
	router := setupTestRouter(t)

	router.GET("/set-two", func(c *gin.Context) {
		SetFlash(c, models.Flash{Type: models.FlashError, Short: "Error", Ext: "first"})
		SetFlash(c, models.Flash{Type: models.FlashSuccess, Short: "Success", Ext: "second"})
		c.String(http.StatusOK, "set")
	})
	router.GET("/take", func(c *gin.Context) {
		flash := TakeFlash(c)
		require.NotNil(t, flash)
		c.String(http.StatusOK, flash.Ext)
	})

	req, _ := http.NewRequest("GET", "/set-two", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	req, _ = http.NewRequest("GET", "/take", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "second", w.Body.String())
}
