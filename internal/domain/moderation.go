package domain

import (
	"fmt"
	"strings"
)

// bannedTerms lists content the studio refuses to render. Matching is plain
// substring on the lowercased input.
var bannedTerms = []string{"gun", "weapon", "blood", "kill", "naked"}

// CheckContent validates free-form user text against the banned-term list.
// Empty text is always acceptable.
func CheckContent(text string) error {
	if text == "" {
		return nil
	}
	lower := strings.ToLower(text)
	for _, term := range bannedTerms {
		if strings.Contains(lower, term) {
			return fmt.Errorf("%w: request contains banned content (%s)", ErrInvalidInput, term)
		}
	}
	return nil
}
