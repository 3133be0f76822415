package diffusion

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientRenderDecodesImage(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4e, 0x47}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sdapi/v1/txt2img" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		var req txt2imgRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Steps != inferenceSteps {
			t.Fatalf("steps = %d, want %d", req.Steps, inferenceSteps)
		}
		if req.CFGScale != guidanceScale {
			t.Fatalf("cfg_scale = %v, want %v", req.CFGScale, guidanceScale)
		}
		if !strings.Contains(req.Prompt, "<lora:jewelry:1>") {
			t.Fatalf("prompt %q missing lora tag", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"images": []string{base64.StdEncoding.EncodeToString(png)},
		})
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL, LoRA: "jewelry"})
	data, err := client.Render(context.Background(), "gold ring")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if len(data) != len(png) {
		t.Fatalf("image length = %d, want %d", len(data), len(png))
	}
}

func TestClientRenderSurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "out of memory"})
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	_, err := client.Render(context.Background(), "gold ring")
	if err == nil || !strings.Contains(err.Error(), "out of memory") {
		t.Fatalf("Render error = %v, want server detail", err)
	}
}

func TestClientRenderRejectsEmptyPrompt(t *testing.T) {
	client := NewClient(ClientOptions{})
	if _, err := client.Render(context.Background(), "  "); err == nil {
		t.Fatalf("Render expected error for empty prompt")
	}
}

func TestClientRenderRejectsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"images": []string{}})
	}))
	defer srv.Close()

	client := NewClient(ClientOptions{BaseURL: srv.URL})
	if _, err := client.Render(context.Background(), "ring"); err == nil {
		t.Fatalf("Render expected error for empty image list")
	}
}
