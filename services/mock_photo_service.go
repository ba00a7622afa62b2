// Package services: services/mock_photo_service.go
package services

import (
	"context"

	"go-cfp/models"
)

// MockPhotoService is a hand-written stand-in for PhotoService so the signup
// pipeline can be tested without disk or image-codec I/O.
type MockPhotoService struct {
	// ReturnPath and ReturnErr are handed back by Process.
	ReturnPath string
	ReturnErr  error

	// Calls records the applicant names Process was invoked with.
	Calls []string
}

// Process records the call and returns the configured result. A nil upload
// is still a no-op, matching the real service.
func (m *MockPhotoService) Process(_ context.Context, upload *models.PhotoUpload, firstName, lastName string) (string, error) {
	m.Calls = append(m.Calls, firstName+" "+lastName)
	if upload == nil {
		return "", nil
	}
	return m.ReturnPath, m.ReturnErr
}
