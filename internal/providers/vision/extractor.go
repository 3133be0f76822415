package vision

import "context"

const (
	staticProviderName = "static"
	groqProviderName   = "groq"
)

// FallbackDescription is returned whenever the vision call cannot produce a
// usable texture analysis. It biases the downstream prompt toward organic
// relief rather than generic metal.
const FallbackDescription = "High-fidelity organic texture with prominent veins and detailed relief"

// Result is the extracted design DNA: a texture/material/pattern-only
// description of the reference image. Degraded marks the generic fallback.
type Result struct {
	Description    string
	Provider       string
	Degraded       bool
	FallbackReason string
}

// Extractor turns a reference image into design DNA. Implementations never
// fail: any upstream problem degrades to FallbackDescription.
type Extractor interface {
	Extract(ctx context.Context, imageBytes []byte, declaredMediaType string) Result
}
