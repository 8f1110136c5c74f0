// Copyright Immersive Collective, 2026. All rights reserved.

// Package tesseract provides the default OCR engine backed by the
// gosseract client.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Immersive-Collective/signalocr/internal/engine"

	// Decoder registrations for the formats the input allow-list admits
	// beyond what leptonica reads natively.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Engine implements engine.Engine using a local Tesseract installation.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract-backed engine.
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize performs OCR on a single image. Each call uses a fresh client
// so concurrent recognitions never share libtesseract state.
func (e *Engine) Recognize(ctx context.Context, in engine.Input) (engine.Result, error) {
	select {
	case <-ctx.Done():
		return engine.Result{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(normalizeImage(in.Image)); err != nil {
		return engine.Result{}, fmt.Errorf("set image: %w", err)
	}

	langs := TessdataLanguages(in.Languages)
	if len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return engine.Result{}, fmt.Errorf("set languages %v: %w", langs, err)
		}
	}
	for k, v := range in.Metadata {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return engine.Result{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return engine.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	res := engine.Result{
		InputID:    in.ID,
		PlainText:  strings.TrimSpace(text),
		Confidence: meanConfidence(c),
	}
	if len(langs) > 0 {
		res.Language = langs[0]
	}
	return res, nil
}

// meanConfidence averages word confidences into [0,1]. Zero when the
// client reports no word boxes.
func meanConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}

// normalizeImage re-encodes formats leptonica does not read natively
// (GIF, WebP) to PNG. PNG, JPEG, TIFF and BMP bytes pass through
// untouched. Bytes that cannot be decoded here (e.g. HEIC) also pass
// through so the engine backend can attempt them and report its own
// error.
func normalizeImage(data []byte) []byte {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data
	}
	switch format {
	case "png", "jpeg", "tiff", "bmp":
		return data
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return data
	}
	return buf.Bytes()
}
