// services/qrcode_service.go
package services

import (
	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can inject a failing encoder.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateQRCode creates a PNG QR code pointing at url, for printing on
// conference flyers and badges.
func GenerateQRCode(url string, size int, encode QRCodeEncoder) ([]byte, error) {
	png, err := encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
