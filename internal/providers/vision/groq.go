package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	groqDefaultBaseURL = "https://api.groq.com/openai/v1"
	groqDefaultTimeout = 30 * time.Second

	defaultVisionModel = "meta-llama/llama-4-maverick-17b-128e-instruct"

	visionTemperature = 0.1
	visionMaxTokens   = 300
)

const extractInstruction = `Act as a senior 3D visualization specialist.
Analyze the uploaded image. It is the "source DNA" for a jewelry design.

Your output MUST focus ONLY on the physical texture, pattern, and material details.

1. If it is a LEAF or NATURE: describe the veins, dried edges, organic curves, and surface imperfections (waxy, brittle, serrated).
2. If it is ARCHITECTURE: describe the carvings, pillars, geometric patterns, and relief depth.
3. If it is FABRIC or OTHER: describe the weave, thread count, and tactility.

DO NOT describe the background. DO NOT describe the overall shape. DO NOT offer a preamble.
Just give the raw forensic visual description of the surface.`

// GroqOptions configures the Groq-backed extractor.
type GroqOptions struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	OnFallback func(reason string, err error)
}

// GroqExtractor sends the reference image to a vision-capable Groq model as a
// base64 data URL. Like the prompt synthesizer, it degrades instead of
// failing; callers must tolerate the generic description with no error signal
// beyond the Degraded flag.
type GroqExtractor struct {
	apiKey     string
	baseURL    string
	model      string
	client     *http.Client
	onFallback func(reason string, err error)
}

type groqVisionRequest struct {
	Model       string              `json:"model"`
	Messages    []groqVisionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

type groqVisionMessage struct {
	Role    string            `json:"role"`
	Content []groqContentPart `json:"content"`
}

type groqContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *groqImageURL `json:"image_url,omitempty"`
}

type groqImageURL struct {
	URL string `json:"url"`
}

type groqVisionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewGroqExtractor(opts GroqOptions) *GroqExtractor {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = groqDefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: groqDefaultTimeout}
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultVisionModel
	}
	return &GroqExtractor{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		client:     client,
		onFallback: opts.OnFallback,
	}
}

func (g *GroqExtractor) Extract(ctx context.Context, imageBytes []byte, declaredMediaType string) Result {
	description, reason, err := g.analyze(ctx, imageBytes, declaredMediaType)
	if err != nil {
		if g.onFallback != nil {
			g.onFallback(reason, err)
		}
		return Result{
			Description:    FallbackDescription,
			Provider:       staticProviderName,
			Degraded:       true,
			FallbackReason: reason,
		}
	}
	return Result{Description: description, Provider: groqProviderName}
}

func (g *GroqExtractor) analyze(ctx context.Context, imageBytes []byte, declaredMediaType string) (string, string, error) {
	if g.apiKey == "" {
		return "", "missing_api_key", errors.New("groq api key missing")
	}
	if len(imageBytes) == 0 {
		return "", "empty_image", errors.New("empty image")
	}
	mediaType := NormalizeMediaType(declaredMediaType)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(imageBytes))

	payload := groqVisionRequest{
		Model:       g.model,
		Temperature: visionTemperature,
		MaxTokens:   visionMaxTokens,
		Messages: []groqVisionMessage{{
			Role: "user",
			Content: []groqContentPart{
				{Type: "text", Text: extractInstruction},
				{Type: "image_url", ImageURL: &groqImageURL{URL: dataURL}},
			},
		}},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", "encode_request", err
	}
	endpoint := g.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", "build_request", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", "http_request", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	var out groqVisionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= 300 {
			return "", fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("groq status %d", resp.StatusCode)
		}
		return "", "decode_response", err
	}
	if resp.StatusCode >= 300 {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("groq: %s", out.Error.Message)
		}
		return "", fmt.Sprintf("http_%d", resp.StatusCode), fmt.Errorf("groq status %d", resp.StatusCode)
	}
	if len(out.Choices) == 0 {
		return "", "empty_choices", errors.New("no choices")
	}
	description := strings.TrimSpace(out.Choices[0].Message.Content)
	if description == "" {
		return "", "empty_response", errors.New("empty response")
	}
	return description, "", nil
}

var _ Extractor = (*GroqExtractor)(nil)
