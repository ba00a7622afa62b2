// Package middleware: middleware/admin_required.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"go-cfp/logger"
)

// AdminRequired blocks access to admin pages for anyone whose session does
// not carry an admin flag.
func AdminRequired(c *gin.Context) {
	session := sessions.Default(c)

	if session.Get("user") == nil {
		logger.Warn.Println("AdminRequired: unauthenticated request, redirecting to /login")
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
		return
	}

	isAdmin, ok := session.Get("isAdmin").(bool)
	if !ok || !isAdmin {
		logger.Warn.Printf("AdminRequired: non-admin user %v blocked", session.Get("user"))
		c.String(http.StatusUnauthorized, "Unauthorized")
		c.Abort()
		return
	}

	c.Next()
}
