package vision

import "strings"

// allowedMediaTypes is the fixed set of raster formats the vision API
// accepts. Anything else is normalized to the first entry.
var allowedMediaTypes = []string{"image/jpeg", "image/png", "image/webp"}

// NormalizeMediaType maps a declared content type onto the allow-list,
// defaulting to image/jpeg when the declaration is missing or unrecognized.
func NormalizeMediaType(declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if idx := strings.Index(declared, ";"); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	for _, allowed := range allowedMediaTypes {
		if declared == allowed {
			return allowed
		}
	}
	return allowedMediaTypes[0]
}
