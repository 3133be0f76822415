package prompt

import (
	"context"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/domain"
)

const (
	staticProviderName = "static"
	groqProviderName   = "groq"
)

// Result is a synthesized diffusion prompt. Degraded marks results produced
// by the deterministic fallback instead of the language model, so callers and
// telemetry can tell the two apart even though the response shape is the same.
type Result struct {
	Text           string
	Provider       string
	Degraded       bool
	FallbackReason string
}

// Synthesizer converts jewelry descriptions into diffusion-ready prompts.
// Implementations never fail: any upstream problem degrades to a
// deterministic fallback prompt built from the raw inputs.
type Synthesizer interface {
	// SynthesizeFromAttributes handles the text-driven workflow. The
	// sentinel jewelry type routes to the freeform concept branch; every
	// other value routes to the structured branch.
	SynthesizeFromAttributes(ctx context.Context, attrs domain.DesignAttributes) Result

	// SynthesizeFromVisualDNA handles the image-driven workflow, merging an
	// extracted texture description with a target jewelry shape. A non-empty
	// userOverride takes precedence over the DNA when they conflict.
	SynthesizeFromVisualDNA(ctx context.Context, dna, targetShape, userOverride string) Result
}
