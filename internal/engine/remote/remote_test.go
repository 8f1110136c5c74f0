// Copyright Immersive Collective, 2026. All rights reserved.

package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Immersive-Collective/signalocr/internal/engine"
)

func TestRecognize(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/recognize", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req recognizeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		img, err := base64.StdEncoding.DecodeString(req.Image)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake image"), img)
		assert.Equal(t, []string{"en-US", "pl-PL"}, req.Languages)

		json.NewEncoder(w).Encode(recognizeResponse{
			Text:       "Visit http://example.com",
			Confidence: 0.93,
			Language:   "en",
		})
	}))
	defer ts.Close()

	e := New(ts.URL, WithAPIKey("sk-test"), WithHTTPClient(ts.Client()))

	res, err := e.Recognize(context.Background(), engine.Input{
		ID:        "a.png",
		Image:     []byte("fake image"),
		Languages: []string{"en-US", "pl-PL"},
	})
	require.NoError(t, err)

	assert.Equal(t, "a.png", res.InputID)
	assert.Equal(t, "Visit http://example.com", res.PlainText)
	assert.InDelta(t, 0.93, res.Confidence, 1e-9)
	assert.Equal(t, "en", res.Language)
}

func TestRecognize_ServiceError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(recognizeResponse{Error: "unsupported image"})
	}))
	defer ts.Close()

	e := New(ts.URL, WithHTTPClient(ts.Client()))
	_, err := e.Recognize(context.Background(), engine.Input{ID: "b.png", Image: []byte{0x0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image")
}

func TestRecognize_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	e := New(ts.URL, WithHTTPClient(ts.Client()))
	_, err := e.Recognize(context.Background(), engine.Input{ID: "c.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
