package image

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"trading-analyzer-go/internal/platform/config"
	"trading-analyzer-go/internal/platform/errors"
	"trading-analyzer-go/internal/platform/logging"
)

// Validator performs layered checks against incoming image payloads:
// declared content type, byte size, and full structural decode.
type Validator struct {
	maxBytes int64
	logger   *logging.Logger
}

// NewValidator constructs a validator enforcing the configured upload limits.
func NewValidator(cfg config.UploadConfig, logger *logging.Logger) *Validator {
	return &Validator{
		maxBytes: cfg.MaxSizeBytes(),
		logger:   logger,
	}
}

// Validate inspects the declared content type and raw bytes. On success it
// returns the decoded handle for the normalizer; the decode doubles as the
// structural integrity check, so the payload is never decoded twice.
func (v *Validator) Validate(contentType string, data []byte) (*Decoded, error) {
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		return nil, errors.New(errors.KindContentType, "image.validate",
			"Invalid file type. Please upload an image file.")
	}

	if len(data) == 0 {
		return nil, errors.New(errors.KindCorruptImage, "image.validate",
			"Invalid or corrupted image file")
	}

	if int64(len(data)) > v.maxBytes {
		v.logger.WarnTag("Image", "oversized upload rejected: size=%d max=%d content_type=%s",
			len(data), v.maxBytes, contentType)
		return nil, errors.New(errors.KindPayloadTooLarge, "image.validate",
			fmt.Sprintf("File too large. Maximum size is %dMB.", v.maxBytes/1024/1024))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		v.logger.WarnTag("Image", "undecodable upload rejected: content_type=%s err=%v",
			contentType, err)
		return nil, errors.Wrap(errors.KindCorruptImage, "image.validate",
			"Invalid or corrupted image file", err)
	}

	bounds := img.Bounds()
	decoded := &Decoded{
		Image:  img,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	v.logger.DebugTag("Image", "upload validated: format=%s width=%d height=%d size=%d",
		decoded.Format, decoded.Width, decoded.Height, len(data))

	return decoded, nil
}
