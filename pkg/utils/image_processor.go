package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"petclinic-client/pkg/logger"
)

// ProcessImage downsizes an image to maxWidth and re-encodes it as WebP,
// falling back to JPEG when WebP encoding fails. The returned name keeps
// the original base name with the new extension.
func ProcessImage(r io.Reader, filename string, maxWidth int) ([]byte, string, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", "", fmt.Errorf("decode %s: %w", filename, err)
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer

	// Quality 85, lossy.
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		buf.Reset()
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, "", "", err
		}
		return buf.Bytes(), "image/jpeg", replaceExt(filename, ".jpg"), nil
	}

	return buf.Bytes(), "image/webp", replaceExt(filename, ".webp"), nil
}

// IsImage verifies simple content type
func IsImage(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/webp", "image/gif":
		return true
	}
	return false
}

func replaceExt(name, ext string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if base == "" || base == "." {
		base = "upload"
	}
	return base + ext
}
