// Copyright Immersive Collective, 2026. All rights reserved.

// Package engine defines the OCR provider contract. Recognition itself is
// delegated to an external engine (Tesseract, a remote service); this
// package only fixes the shape every provider satisfies.
package engine

import "context"

// Input is a single image submitted for recognition.
type Input struct {
	// ID is a caller-provided identifier echoed back in the Result,
	// typically the image file name.
	ID string

	// Image is the encoded image payload (PNG, JPEG, TIFF, BMP, GIF,
	// HEIC as supported by the engine).
	Image []byte

	// Languages are BCP-47 recognition hints in preference order.
	// Engines translate them to whatever their backend expects.
	Languages []string

	// Metadata passes engine-specific knobs through without widening the
	// API surface (e.g. "psm" for Tesseract).
	Metadata map[string]string
}

// Result is the recognition output for one input.
type Result struct {
	// InputID mirrors Input.ID.
	InputID string

	// PlainText is the recognized text with line breaks preserved. When
	// the engine yields multiple regions they are joined with newlines in
	// the engine's reading order.
	PlainText string

	// Confidence is the engine's mean word confidence in [0,1], or zero
	// when the engine does not report one.
	Confidence float64

	// Language is the dominant language detected, if known.
	Language string
}

// Engine is the OCR provider contract: one image in, one result out. A
// failed recognition returns an error; callers treat that as a per-image
// condition, never a fatal one.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}
