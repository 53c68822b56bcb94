package validators

import "strings"

// SanitizeString trims surrounding whitespace and clamps the value to
// maxLen bytes. A non-positive maxLen means no clamp.
func SanitizeString(input string, maxLen int) string {
	v := strings.TrimSpace(input)
	if maxLen > 0 && len(v) > maxLen {
		v = v[:maxLen]
	}
	return v
}
