package imageprocessor

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Result is the output of Fit.
type Result struct {
	Data        []byte
	ContentType string
	Ext         string
	Resized     bool
}

// Processor downsizes uploaded images before they are stored.
type Processor struct {
	quality      int // JPEG quality (1-100)
	maxDimension int
}

func NewProcessor(quality, maxDimension int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	if maxDimension <= 0 {
		maxDimension = 1024
	}
	return &Processor{
		quality:      quality,
		maxDimension: maxDimension,
	}
}

// Fit scales the image so neither side exceeds the configured maximum.
// Images already within bounds, and data that does not decode as an image,
// come back unchanged. PNG stays PNG; everything else is re-encoded as JPEG.
func (p *Processor) Fit(data []byte, contentType string) (*Result, error) {
	unchanged := &Result{Data: data, ContentType: contentType}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return unchanged, nil
	}
	if cfg.Width <= p.maxDimension && cfg.Height <= p.maxDimension {
		return unchanged, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	w, h := fitWithin(cfg.Width, cfg.Height, p.maxDimension)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, dst); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		return &Result{Data: buf.Bytes(), ContentType: "image/png", Ext: "png", Resized: true}, nil
	}

	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return &Result{Data: buf.Bytes(), ContentType: "image/jpeg", Ext: "jpg", Resized: true}, nil
}

// fitWithin keeps the aspect ratio while bounding the longer side by max.
func fitWithin(width, height, max int) (int, int) {
	if width >= height {
		h := height * max / width
		if h < 1 {
			h = 1
		}
		return max, h
	}
	w := width * max / height
	if w < 1 {
		w = 1
	}
	return w, max
}
