package diffusion

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

// The service talks to an SDXL inference server over its txt2img API. The
// model weights, scheduler, and adapter loading live on that side; this
// client only carries the fixed sampling parameters.
const (
	defaultBaseURL = "http://localhost:7860"
	defaultTimeout = 5 * time.Minute

	inferenceSteps = 40
	guidanceScale  = 7.0
	samplerName    = "DPM++ 2M Karras"
	imageSize      = 1024
)

// ClientOptions configures the SDXL client.
type ClientOptions struct {
	BaseURL    string
	LoRA       string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client renders one image per prompt against the diffusion server. Unlike
// the text providers there is no fallback: a failed render fails the request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	lora       string
}

type txt2imgRequest struct {
	Prompt      string  `json:"prompt"`
	Steps       int     `json:"steps"`
	CFGScale    float64 `json:"cfg_scale"`
	SamplerName string  `json:"sampler_name"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	BatchSize   int     `json:"batch_size"`
}

type txt2imgResponse struct {
	Images []string `json:"images"`
	Detail string   `json:"detail,omitempty"`
}

func NewClient(opts ClientOptions) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: client,
		baseURL:    base,
		lora:       strings.TrimSpace(opts.LoRA),
	}
}

// Render produces a single PNG for the prompt. The jewelry LoRA, when
// configured, is activated through the prompt tag the server understands.
func (c *Client) Render(ctx context.Context, prompt string) ([]byte, error) {
	if c == nil {
		return nil, errors.New("diffusion: client not configured")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("diffusion: prompt is required")
	}
	if c.lora != "" {
		prompt = fmt.Sprintf("%s <lora:%s:1>", prompt, c.lora)
	}
	payload := txt2imgRequest{
		Prompt:      prompt,
		Steps:       inferenceSteps,
		CFGScale:    guidanceScale,
		SamplerName: samplerName,
		Width:       imageSize,
		Height:      imageSize,
		BatchSize:   1,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	endpoint := c.baseURL + "/sdapi/v1/txt2img"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("diffusion: %w", err)
	}
	defer resp.Body.Close()

	var out txt2imgResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("diffusion: http %d", resp.StatusCode)
		}
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		if out.Detail != "" {
			return nil, fmt.Errorf("diffusion: %s", out.Detail)
		}
		return nil, fmt.Errorf("diffusion: http %d", resp.StatusCode)
	}
	if len(out.Images) == 0 {
		return nil, errors.New("diffusion: empty response")
	}
	data, err := base64.StdEncoding.DecodeString(out.Images[0])
	if err != nil {
		return nil, fmt.Errorf("diffusion: decode image: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("diffusion: empty image")
	}
	return data, nil
}
