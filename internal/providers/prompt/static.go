package prompt

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/domain"
)

// qualityTags are appended to every fallback prompt so the diffusion model
// still receives usable guidance when the language model is unreachable.
const qualityTags = "8k, photorealistic"

// StaticSynthesizer builds deterministic prompts straight from the raw
// inputs. It backs the Groq synthesizer whenever the remote call fails and
// stands alone when no API key is configured.
type StaticSynthesizer struct{}

func NewStaticSynthesizer() *StaticSynthesizer {
	return &StaticSynthesizer{}
}

func (s *StaticSynthesizer) SynthesizeFromAttributes(ctx context.Context, attrs domain.DesignAttributes) Result {
	if attrs.JewelryType == domain.FreeformJewelryType {
		return Result{
			Text:     strings.TrimSpace(attrs.ExtraText) + ", " + qualityTags,
			Provider: staticProviderName,
		}
	}

	c := cases.Title(language.Und)
	parts := []string{
		fmt.Sprintf("Professional jewelry product photography of a %s %s", strings.ToLower(attrs.Style), strings.ToLower(attrs.JewelryType)),
		fmt.Sprintf("%s with %s finish", c.String(attrs.Material), strings.ToLower(attrs.Finish)),
		fmt.Sprintf("%s stone, %s motif, %s look", strings.ToLower(attrs.Stone), strings.ToLower(attrs.Theme), strings.ToLower(attrs.Size)),
	}
	if note := strings.TrimSpace(attrs.ExtraText); note != "" {
		parts = append(parts, note)
	}
	parts = append(parts, "full piece perfectly framed, studio lighting", qualityTags)
	return Result{
		Text:     strings.Join(parts, ", "),
		Provider: staticProviderName,
	}
}

func (s *StaticSynthesizer) SynthesizeFromVisualDNA(ctx context.Context, dna, targetShape, userOverride string) Result {
	text := fmt.Sprintf("A %s featuring %s", strings.ToLower(strings.TrimSpace(targetShape)), strings.TrimSpace(dna))
	if override := strings.TrimSpace(userOverride); override != "" {
		text += ", " + override
	}
	return Result{
		Text:     text + ", " + qualityTags,
		Provider: staticProviderName,
	}
}

var _ Synthesizer = (*StaticSynthesizer)(nil)
