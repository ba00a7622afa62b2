// main.go
package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"go-cfp/config"
	"go-cfp/controllers"
	"go-cfp/logger"
	"go-cfp/middleware"
	"go-cfp/services"
	"go-cfp/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetLogLevel(cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.MetricsEnabled {
		services.EnableMetrics()
	}

	// Open the database and bring the schema up to date.
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	if err := db.ApplyMigrations(); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0750); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	// Wire the signup pipeline.
	sanitizer := services.NewHTMLSanitizer()
	validator := services.NewValidationService(sanitizer)
	photos := services.NewPhotoService(cfg.UploadDir, cfg.PhotoTimeout)
	signup := services.NewSignupService(db, photos, validator, cfg.SignupCutoff())

	signupController := controllers.NewSignupController(signup)
	authController := controllers.NewAuthController(db)
	adminController := controllers.NewAdminController(db, cfg.UploadDir)
	controllers.SetConfig(cfg.ApplicationURL)

	router := gin.Default()

	// Session store backing both auth state and flash messages.
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.Environment == "production",
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("cfpsession", sessionStore))

	router.LoadHTMLGlob("templates/*.html")
	router.Static("/uploads", cfg.UploadDir)

	router.GET("/health", controllers.Health)
	router.GET("/", controllers.Home)

	// Speaker signup
	router.GET("/signup", signupController.ShowSignupForm)
	router.POST("/signup", signupController.ProcessSignup)
	router.GET("/signup/qrcode", controllers.GetSignupQRCode)

	// Authentication
	router.GET("/login", authController.ShowLoginPage)
	router.POST("/login", authController.PerformLogin)
	router.GET("/logout", authController.Logout)

	// Admin speaker management
	admin := router.Group("/admin", middleware.AdminRequired)
	{
		admin.GET("/speakers", adminController.SpeakersIndex)
		admin.GET("/speakers/view", adminController.SpeakerView)
		admin.POST("/speakers/delete", adminController.SpeakerDelete)
	}

	logger.Info.Printf("Starting CFP server on :8080 (cutoff %s)", cfg.SignupCutoff())
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
