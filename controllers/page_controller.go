// Package controllers file: controllers/page_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"go-cfp/logger"
	"go-cfp/services"
)

// ApplicationURL is the public base URL, set once at startup.
var ApplicationURL string

// SetConfig sets the global application URL used by page handlers.
func SetConfig(appURL string) {
	ApplicationURL = appURL
	logger.Info.Printf("SetConfig: Global config updated: ApplicationURL=%s", appURL)
}

// Health responds to load-balancer health checks.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Home renders the landing page with any pending flash message.
func Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Flash": TakeFlash(c),
	})
}

// GetSignupQRCode serves a PNG QR code linking to the signup form, for
// conference flyers.
func GetSignupQRCode(c *gin.Context) {
	qrBytes, err := services.GenerateQRCode(ApplicationURL+"/signup", 300, services.QRCodeEncoder(qrcode.Encode))
	if err != nil {
		logger.Error.Printf("GetSignupQRCode: Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", "inline; filename=\"signup-qrcode.png\"")
	if _, err := c.Writer.Write(qrBytes); err != nil {
		logger.Error.Printf("GetSignupQRCode: Error writing QR code bytes: %v", err)
	}
}
