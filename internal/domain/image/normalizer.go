package image

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"trading-analyzer-go/internal/platform/config"
	"trading-analyzer-go/internal/platform/errors"
	"trading-analyzer-go/internal/platform/logging"
)

const jpegQuality = 90

// Normalizer downscales oversized images and re-encodes them so the payload
// sent upstream never exceeds the configured dimension limit.
type Normalizer struct {
	maxDimension int
	logger       *logging.Logger
}

// NewNormalizer constructs a normalizer enforcing the configured dimension limit.
func NewNormalizer(cfg config.UploadConfig, logger *logging.Logger) *Normalizer {
	return &Normalizer{
		maxDimension: cfg.MaxDimension,
		logger:       logger,
	}
}

// Normalize produces transmission-ready bytes from a validated upload.
// Images within the dimension limit pass through byte-identical; larger
// ones are downscaled proportionally with a Catmull-Rom kernel and
// re-encoded in their detected source format (PNG when the format has no
// encoder). The transmission format label comes from the filename.
func (n *Normalizer) Normalize(dec *Decoded, original []byte, filename string) (*Normalized, error) {
	label := TransmissionFormat(filename)

	if dec.Width <= n.maxDimension && dec.Height <= n.maxDimension {
		return &Normalized{
			Data:   original,
			Format: label,
			Width:  dec.Width,
			Height: dec.Height,
		}, nil
	}

	width, height := fitDimensions(dec.Width, dec.Height, n.maxDimension)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), dec.Image, dec.Image.Bounds(), draw.Src, nil)

	data, err := encode(dst, dec.Format)
	if err != nil {
		return nil, errors.Wrap(errors.KindInternal, "image.normalize",
			"failed to re-encode resized image", err)
	}

	n.logger.InfoTag("Image", "downscaled oversized image: %dx%d -> %dx%d format=%s",
		dec.Width, dec.Height, width, height, dec.Format)

	return &Normalized{
		Data:   data,
		Format: label,
		Width:  width,
		Height: height,
	}, nil
}

// fitDimensions scales width/height proportionally so the largest side
// equals the limit. Both results stay at least 1.
func fitDimensions(width, height, limit int) (int, int) {
	if width >= height {
		scaled := height * limit / width
		if scaled < 1 {
			scaled = 1
		}
		return limit, scaled
	}
	scaled := width * limit / height
	if scaled < 1 {
		scaled = 1
	}
	return scaled, limit
}

func encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		// png, webp and anything else without a stdlib encoder
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TransmissionFormat derives the media-type label for the data URI from the
// filename extension. Extensions map through literally except jpg -> jpeg;
// a missing extension defaults to png.
func TransmissionFormat(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "":
		return "png"
	case "jpg":
		return "jpeg"
	default:
		return ext
	}
}
