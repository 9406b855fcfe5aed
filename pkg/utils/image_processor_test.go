package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessImage_Downscales(t *testing.T) {
	data, contentType, name, err := ProcessImage(pngOf(t, 400, 200), "photos/rex.png", 100)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, IsImage(contentType))

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		assert.Equal(t, 100, decoded.Bounds().Dx())
		assert.Equal(t, 50, decoded.Bounds().Dy())
	}
	assert.Contains(t, []string{"rex.webp", "rex.jpg"}, name)
}

func TestProcessImage_RejectsGarbage(t *testing.T) {
	_, _, _, err := ProcessImage(bytes.NewBufferString("definitely not an image"), "x.png", 100)
	assert.Error(t, err)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/PNG"))
	assert.True(t, IsImage("image/webp"))
	assert.False(t, IsImage("application/pdf"))
}
