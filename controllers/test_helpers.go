// file: controllers/test_helpers.go
//go:build unit
// +build unit

package controllers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// setupTestRouter creates a new Gin engine with session middleware and fake
// HTML templates.
func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))

	tmpDir := t.TempDir()
	if err := createDummyTemplates(tmpDir); err != nil {
		t.Fatalf("Failed to create dummy templates: %v", err)
	}
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))
	return router
}

// createDummyTemplates writes minimal HTML templates so handlers can render
// without the real template tree.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"home.html":               `<html><body>{{.}}</body></html>`,
		"signup.html":             `<html><body>signup {{.}}</body></html>`,
		"login.html":              `<html><body>login {{.}}</body></html>`,
		"admin_speakers.html":     `<html><body>speakers {{.}}</body></html>`,
		"admin_speaker_view.html": `<html><body>speaker {{.}}</body></html>`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// SetSession sets the given key/value pairs in the session using a helper
// route and returns the session cookie for subsequent test requests.
func SetSession(router *gin.Engine, route string, data map[string]interface{}) *http.Cookie {
	router.GET(route, func(c *gin.Context) {
		session := sessions.Default(c)
		for key, value := range data {
			session.Set(key, value)
		}
		if err := session.Save(); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})

	req, _ := http.NewRequest("GET", route, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "testsession" {
			return cookie
		}
	}
	return nil
}

// hashPassword prepares bcrypt hashes for test fixtures.
func hashPassword(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic("failed to hash password: " + err.Error())
	}
	return string(hashed)
}
