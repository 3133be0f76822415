package vision

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestNormalizeMediaType(t *testing.T) {
	tests := []struct {
		declared string
		want     string
	}{
		{"image/jpeg", "image/jpeg"},
		{"image/png", "image/png"},
		{"image/webp", "image/webp"},
		{"IMAGE/PNG", "image/png"},
		{"image/jpg", "image/jpeg"},
		{"image/png; charset=binary", "image/png"},
		{"image/gif", "image/jpeg"},
		{"", "image/jpeg"},
		{"text/html", "image/jpeg"},
	}
	for _, tc := range tests {
		if got := NormalizeMediaType(tc.declared); got != tc.want {
			t.Fatalf("NormalizeMediaType(%q) = %q, want %q", tc.declared, got, tc.want)
		}
	}
}

func TestGroqExtractorSendsDataURL(t *testing.T) {
	extractor := NewGroqExtractor(GroqOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(r.Body)
			var payload struct {
				Messages []struct {
					Content []struct {
						Type     string `json:"type"`
						ImageURL *struct {
							URL string `json:"url"`
						} `json:"image_url"`
					} `json:"content"`
				} `json:"messages"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				t.Fatalf("request payload is not JSON: %v", err)
			}
			part := payload.Messages[0].Content[1]
			if part.Type != "image_url" || part.ImageURL == nil {
				t.Fatalf("second content part is not an image: %+v", part)
			}
			if !strings.HasPrefix(part.ImageURL.URL, "data:image/png;base64,") {
				t.Fatalf("data URL = %q", part.ImageURL.URL)
			}
			return jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"Deep serrated vein relief with brittle dried edges"}}]}`), nil
		})},
	})
	res := extractor.Extract(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "image/png")
	if res.Degraded {
		t.Fatalf("result unexpectedly degraded: %s", res.FallbackReason)
	}
	if res.Description != "Deep serrated vein relief with brittle dried edges" {
		t.Fatalf("Description = %q", res.Description)
	}
}

func TestGroqExtractorFallsBackOnFailure(t *testing.T) {
	var capturedReason string
	extractor := NewGroqExtractor(GroqOptions{
		APIKey: "dummy",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("down")
		})},
		OnFallback: func(reason string, err error) {
			capturedReason = reason
		},
	})
	res := extractor.Extract(context.Background(), []byte("img"), "image/jpeg")
	if !res.Degraded {
		t.Fatalf("expected degraded result")
	}
	if res.Description != FallbackDescription {
		t.Fatalf("Description = %q", res.Description)
	}
	if capturedReason != "http_request" {
		t.Fatalf("captured reason = %q", capturedReason)
	}
}

func TestGroqExtractorFallsBackWithoutAPIKey(t *testing.T) {
	extractor := NewGroqExtractor(GroqOptions{})
	res := extractor.Extract(context.Background(), []byte("img"), "image/jpeg")
	if !res.Degraded || res.FallbackReason != "missing_api_key" {
		t.Fatalf("result = %+v, want missing_api_key degradation", res)
	}
}

func TestGroqExtractorFallsBackOnEmptyImage(t *testing.T) {
	extractor := NewGroqExtractor(GroqOptions{APIKey: "dummy"})
	res := extractor.Extract(context.Background(), nil, "image/jpeg")
	if !res.Degraded || res.FallbackReason != "empty_image" {
		t.Fatalf("result = %+v, want empty_image degradation", res)
	}
}
