package domain

import "time"

// Design is the immutable record of one generation event: the structured
// attributes the user submitted, the prompt that was ultimately sent to the
// diffusion model, and where the resulting image landed on disk. Designs are
// written once and only ever read back for per-user history listings.
type Design struct {
	ID           int64
	UserID       int64
	JewelryType  string
	Style        string
	Material     string
	Stone        string
	GemTheme     string
	SizeCategory string
	Finish       string
	ExtraText    string
	FinalPrompt  string
	ImagePath    string
	CreatedAt    time.Time
}

// FreeformJewelryType is the sentinel jewelry type that routes prompt
// synthesis to the freeform concept branch instead of the structured one.
const FreeformJewelryType = "Artistic Concept"

// DesignAttributes carries the structured input of the text-driven workflow.
type DesignAttributes struct {
	JewelryType string `json:"jewelry_type"`
	Style       string `json:"style"`
	Material    string `json:"material"`
	Stone       string `json:"stone"`
	Theme       string `json:"theme"`
	Size        string `json:"size"`
	Finish      string `json:"finish"`
	ExtraText   string `json:"extra_text,omitempty"`
}
