// Package controllers: controllers/auth_controller.go
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-cfp/logger"
	"go-cfp/models"
)

// AccountReader is the slice of the store login needs.
type AccountReader interface {
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
}

// AuthController handles login and logout.
type AuthController struct {
	Accounts AccountReader
}

// NewAuthController initializes a new AuthController.
func NewAuthController(accounts AccountReader) *AuthController {
	return &AuthController{Accounts: accounts}
}

// checkPasswordHash verifies the plain-text password against the stored hash.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ShowLoginPage renders the login form.
func (ac *AuthController) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": TakeFlash(c),
	})
}

// PerformLogin authenticates the user against the account store and stores
// identity and admin status in the session.
func (ac *AuthController) PerformLogin(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		logger.Warn.Println("PerformLogin: missing email or password")
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Error": "Please fill in all fields.",
		})
		return
	}

	account, err := ac.Accounts.GetAccountByEmail(c.Request.Context(), email)
	if err != nil || !checkPasswordHash(password, account.PasswordHash) {
		logger.Warn.Printf("PerformLogin: invalid login attempt for %s", email)
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid email or password.",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user", account.Email)
	session.Set("isAdmin", account.IsAdmin)
	if err := session.Save(); err != nil {
		logger.Error.Println("PerformLogin: failed to save session:", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"Error": "Internal error, please try again.",
		})
		return
	}

	logger.Info.Printf("PerformLogin: user %s authenticated (isAdmin=%v)", account.Email, account.IsAdmin)
	if account.IsAdmin {
		c.Redirect(http.StatusFound, "/admin/speakers")
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session and returns to the login page.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Error.Printf("Logout: error saving session during logout: %v", err)
	} else {
		logger.Info.Println("Logout: session cleared successfully")
	}

	c.Redirect(http.StatusFound, "/login")
}
