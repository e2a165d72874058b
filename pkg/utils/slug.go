package utils

import "strings"

// Slugify converts a title into a URL-safe slug: lowercase, with every run
// of non-alphanumeric characters collapsed to a single dash and dashes
// trimmed from both ends.
func Slugify(title string) string {
	var sb strings.Builder
	sb.Grow(len(title))

	dashPending := false
	for _, r := range strings.ToLower(title) {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !isAlnum {
			dashPending = sb.Len() > 0
			continue
		}
		if dashPending {
			sb.WriteByte('-')
			dashPending = false
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
