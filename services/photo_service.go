// Package services: services/photo_service.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"

	"go-cfp/logger"
	"go-cfp/models"
)

// thumbnailSize is the edge length of the square speaker thumbnail.
const thumbnailSize = 250

// ErrPhotoProcessing reports that an uploaded photo could not be turned into
// a stored thumbnail. The signup must not proceed past this.
var ErrPhotoProcessing = errors.New("photo processing failed")

// PhotoServiceInterface normalizes an uploaded photo into a stored square
// thumbnail. Process returns the stored filename, or "" when no photo was
// uploaded (which is not an error).
type PhotoServiceInterface interface {
	Process(ctx context.Context, upload *models.PhotoUpload, firstName, lastName string) (string, error)
}

// PhotoService stores thumbnails under UploadDir. Decoding is bounded by
// Timeout so a malformed or enormous image cannot stall a worker.
type PhotoService struct {
	UploadDir string
	Timeout   time.Duration
}

// NewPhotoService creates a PhotoService writing into uploadDir.
func NewPhotoService(uploadDir string, timeout time.Duration) *PhotoService {
	return &PhotoService{UploadDir: uploadDir, Timeout: timeout}
}

// Process writes the upload to a temp file, resizes so the smaller dimension
// reaches the thumbnail size, center-crops to a square, and saves it as
// "first.last.<token>.<ext>". The temp file is removed in every outcome;
// a final filename is only returned once the thumbnail is safely on disk.
func (p *PhotoService) Process(ctx context.Context, upload *models.PhotoUpload, firstName, lastName string) (string, error) {
	if upload == nil {
		return "", nil
	}

	if err := os.MkdirAll(p.UploadDir, 0750); err != nil {
		return "", fmt.Errorf("%w: create upload dir: %v", ErrPhotoProcessing, err)
	}

	token := ulid.Make().String()
	tempName := token + "_" + filepath.Base(upload.OriginalName)
	tempPath := filepath.Join(p.UploadDir, tempName)

	if err := os.WriteFile(tempPath, upload.Data, 0640); err != nil {
		return "", fmt.Errorf("%w: write temp file: %v", ErrPhotoProcessing, err)
	}
	// Cleanup is unconditional; failing to remove the temp file leaks an
	// artifact but never fails the signup.
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			logger.Warn.Printf("Process: could not remove temp upload %s: %v", tempPath, err)
		}
	}()

	img, err := p.decode(ctx, upload.Data)
	if err != nil {
		return "", err
	}

	bounds := img.Bounds()
	if bounds.Dy() > bounds.Dx() {
		img = imaging.Resize(img, thumbnailSize, 0, imaging.Lanczos)
	} else {
		img = imaging.Resize(img, 0, thumbnailSize, imaging.Lanczos)
	}
	img = imaging.CropCenter(img, thumbnailSize, thumbnailSize)

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(upload.OriginalName)), ".")
	if ext == "" {
		ext = "jpg"
	}
	finalName := fmt.Sprintf("%s.%s.%s.%s", firstName, lastName, token, ext)
	finalPath := filepath.Join(p.UploadDir, finalName)

	if err := imaging.Save(img, finalPath); err != nil {
		logger.Error.Printf("Process: could not save thumbnail %s: %v", finalPath, err)
		return "", fmt.Errorf("%w: save thumbnail: %v", ErrPhotoProcessing, err)
	}

	logger.Info.Printf("Process: stored speaker photo %s", finalName)
	return finalName, nil
}

// decode runs the image decode on its own goroutine so it can be abandoned
// when the deadline hits.
func (p *PhotoService) decode(ctx context.Context, data []byte) (image.Image, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrPhotoProcessing, err)
	}

	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	go func() {
		img, err := imaging.Decode(bytes.NewReader(data))
		ch <- result{img, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("%w: decode: %v", ErrPhotoProcessing, res.err)
		}
		return res.img, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: decode: %v", ErrPhotoProcessing, ctx.Err())
	}
}
