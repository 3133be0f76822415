package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/domain"
)

const (
	groqDefaultBaseURL = "https://api.groq.com/openai/v1"
	groqDefaultTimeout = 30 * time.Second

	defaultPromptModel    = "meta-llama/llama-4-maverick-17b-128e-instruct"
	defaultTransformModel = "llama-3.3-70b-versatile"

	promptTemperature = 0.3
	promptMaxTokens   = 150
)

// GroqOptions configures the Groq-backed synthesizer.
type GroqOptions struct {
	APIKey         string
	BaseURL        string
	PromptModel    string
	TransformModel string
	HTTPClient     *http.Client
	Fallback       Synthesizer
	OnFallback     func(reason string, err error)
}

// GroqSynthesizer calls Groq chat completions to turn jewelry descriptions
// into SDXL prompts. Every failure path degrades to the fallback synthesizer
// and is reported through OnFallback; callers never see an error.
type GroqSynthesizer struct {
	apiKey         string
	baseURL        string
	promptModel    string
	transformModel string
	client         *http.Client
	fallback       Synthesizer
	onFallback     func(reason string, err error)
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewGroqSynthesizer(opts GroqOptions) *GroqSynthesizer {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = groqDefaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: groqDefaultTimeout}
	}
	fallback := opts.Fallback
	if fallback == nil {
		fallback = NewStaticSynthesizer()
	}
	promptModel := strings.TrimSpace(opts.PromptModel)
	if promptModel == "" {
		promptModel = defaultPromptModel
	}
	transformModel := strings.TrimSpace(opts.TransformModel)
	if transformModel == "" {
		transformModel = defaultTransformModel
	}
	return &GroqSynthesizer{
		apiKey:         strings.TrimSpace(opts.APIKey),
		baseURL:        baseURL,
		promptModel:    promptModel,
		transformModel: transformModel,
		client:         client,
		fallback:       fallback,
		onFallback:     opts.OnFallback,
	}
}

func (g *GroqSynthesizer) SynthesizeFromAttributes(ctx context.Context, attrs domain.DesignAttributes) Result {
	var system, user string
	if attrs.JewelryType == domain.FreeformJewelryType {
		system = freeformInstruction
		user = buildFreeformUserMessage(attrs)
	} else {
		system = structuredInstruction
		user = buildStructuredUserMessage(attrs)
	}
	text, reason, err := g.complete(ctx, g.promptModel, system, user)
	if err != nil {
		res := g.fallback.SynthesizeFromAttributes(ctx, attrs)
		return g.degrade(res, reason, err)
	}
	return Result{Text: text, Provider: groqProviderName}
}

func (g *GroqSynthesizer) SynthesizeFromVisualDNA(ctx context.Context, dna, targetShape, userOverride string) Result {
	user := buildTransformUserMessage(dna, targetShape, userOverride)
	text, reason, err := g.complete(ctx, g.transformModel, transformInstruction, user)
	if err != nil {
		res := g.fallback.SynthesizeFromVisualDNA(ctx, dna, targetShape, userOverride)
		return g.degrade(res, reason, err)
	}
	return Result{Text: text, Provider: groqProviderName}
}

// complete performs one chat-completion round trip. The returned reason
// identifies which stage failed, for fallback telemetry.
func (g *GroqSynthesizer) complete(ctx context.Context, model, system, user string) (string, string, error) {
	if g.apiKey == "" {
		return "", "missing_api_key", errors.New("groq api key missing")
	}
	payload := groqChatRequest{
		Model:       model,
		Temperature: promptTemperature,
		MaxTokens:   promptMaxTokens,
		Messages: []groqMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
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
	var out groqChatResponse
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
	text := cleanPrompt(out.Choices[0].Message.Content)
	if text == "" {
		return "", "empty_response", errors.New("empty response")
	}
	return text, "", nil
}

func (g *GroqSynthesizer) degrade(res Result, reason string, err error) Result {
	if g.onFallback != nil {
		g.onFallback(reason, err)
	}
	res.Degraded = true
	res.FallbackReason = reason
	if res.Provider == "" {
		res.Provider = staticProviderName
	}
	return res
}

var _ Synthesizer = (*GroqSynthesizer)(nil)
