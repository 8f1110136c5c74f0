// Copyright Immersive Collective, 2026. All rights reserved.

// Package remote implements an OCR engine backed by an HTTP recognition
// service speaking a small JSON protocol: POST /v1/recognize with a
// base64 image and language hints, JSON text result back.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Immersive-Collective/signalocr/internal/engine"
	"github.com/Immersive-Collective/signalocr/internal/httputil"
)

// Engine implements engine.Engine against a remote recognition service.
type Engine struct {
	baseURL    string
	apiKey     string
	client     *http.Client
	maxRetries int
}

// Option configures the remote engine.
type Option func(*Engine)

// WithAPIKey sets a bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(e *Engine) { e.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Engine) { e.client = c }
}

// WithMaxRetries sets the retry budget for rate-limited requests.
func WithMaxRetries(n int) Option {
	return func(e *Engine) { e.maxRetries = n }
}

// New constructs a remote engine for the service at baseURL.
func New(baseURL string, opts ...Option) *Engine {
	e := &Engine{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Name() string { return "remote" }

// recognizeRequest is the wire format for a recognition call.
type recognizeRequest struct {
	Image     string            `json:"image"`
	Languages []string          `json:"languages,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// recognizeResponse is the service's answer.
type recognizeResponse struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Language   string  `json:"language"`
	Error      string  `json:"error"`
}

// Recognize sends the image to the service and returns its text result.
func (e *Engine) Recognize(ctx context.Context, in engine.Input) (engine.Result, error) {
	body, err := json.Marshal(recognizeRequest{
		Image:     base64.StdEncoding.EncodeToString(in.Image),
		Languages: in.Languages,
		Metadata:  in.Metadata,
	})
	if err != nil {
		return engine.Result{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/v1/recognize", bytes.NewReader(body))
	if err != nil {
		return engine.Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, e.client, req, e.maxRetries)
	if err != nil {
		return engine.Result{}, fmt.Errorf("calling recognition service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return engine.Result{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return engine.Result{}, fmt.Errorf("recognition service returned %s", resp.Status)
	}

	var rr recognizeResponse
	if err := json.Unmarshal(data, &rr); err != nil {
		return engine.Result{}, fmt.Errorf("decoding response: %w", err)
	}
	if rr.Error != "" {
		return engine.Result{}, fmt.Errorf("recognition service: %s", rr.Error)
	}

	return engine.Result{
		InputID:    in.ID,
		PlainText:  rr.Text,
		Confidence: rr.Confidence,
		Language:   rr.Language,
	}, nil
}
