package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFitDownscalesLargeImage(t *testing.T) {
	p := NewProcessor(85, 100)

	res, err := p.Fit(pngOf(t, 400, 200), "image/png")
	require.NoError(t, err)
	assert.True(t, res.Resized)
	assert.Equal(t, "image/png", res.ContentType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestFitKeepsSmallImage(t *testing.T) {
	data := pngOf(t, 50, 80)
	res, err := NewProcessor(85, 100).Fit(data, "image/png")
	require.NoError(t, err)
	assert.False(t, res.Resized)
	assert.Equal(t, data, res.Data)
}

func TestFitPassesThroughNonImages(t *testing.T) {
	res, err := NewProcessor(0, 0).Fit([]byte("%PDF-1.4"), "application/pdf")
	require.NoError(t, err)
	assert.False(t, res.Resized)
	assert.Equal(t, "application/pdf", res.ContentType)
}

func TestFitWithin(t *testing.T) {
	w, h := fitWithin(2048, 1024, 1024)
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)

	w, h = fitWithin(1000, 3000, 1024)
	assert.Equal(t, 341, w)
	assert.Equal(t, 1024, h)
}
