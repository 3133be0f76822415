package prompt

import (
	"context"
	"strings"
	"testing"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/domain"
)

func TestStaticSynthesizerFreeformBranch(t *testing.T) {
	synth := NewStaticSynthesizer()
	res := synth.SynthesizeFromAttributes(context.Background(), domain.DesignAttributes{
		JewelryType: domain.FreeformJewelryType,
		ExtraText:   "a tear-shaped sapphire pendant",
	})
	if res.Text != "a tear-shaped sapphire pendant, 8k, photorealistic" {
		t.Fatalf("Text = %q", res.Text)
	}
	if res.Provider != staticProviderName {
		t.Fatalf("Provider = %q", res.Provider)
	}
}

func TestStaticSynthesizerFreeformBranchEmptyNote(t *testing.T) {
	synth := NewStaticSynthesizer()
	res := synth.SynthesizeFromAttributes(context.Background(), domain.DesignAttributes{
		JewelryType: domain.FreeformJewelryType,
	})
	if res.Text == "" {
		t.Fatalf("Text is empty")
	}
	if !strings.Contains(res.Text, "8k, photorealistic") {
		t.Fatalf("Text = %q missing quality tags", res.Text)
	}
}

func TestStaticSynthesizerStructuredBranch(t *testing.T) {
	synth := NewStaticSynthesizer()
	res := synth.SynthesizeFromAttributes(context.Background(), domain.DesignAttributes{
		JewelryType: "Ring",
		Style:       "Royal",
		Material:    "Gold",
		Stone:       "Ruby",
		Theme:       "Peacock",
		Size:        "Heavy",
		Finish:      "Matte",
	})
	for _, want := range []string{"ring", "Gold", "ruby", "peacock", "8k, photorealistic"} {
		if !strings.Contains(res.Text, want) {
			t.Fatalf("Text = %q missing %q", res.Text, want)
		}
	}
}

func TestStaticSynthesizerVisualDNA(t *testing.T) {
	synth := NewStaticSynthesizer()
	res := synth.SynthesizeFromVisualDNA(context.Background(), "carved sandstone relief", "Pendant", "antique gold")
	if !strings.Contains(res.Text, "pendant") || !strings.Contains(res.Text, "carved sandstone relief") || !strings.Contains(res.Text, "antique gold") {
		t.Fatalf("Text = %q", res.Text)
	}
}
