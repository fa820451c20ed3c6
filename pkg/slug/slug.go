package slug

import "strings"

// Make derives a URL-safe slug from a display name. Uppercase letters are
// lowered and every run of non-alphanumeric characters collapses into a
// single hyphen, so "Half-Life: Alyx" becomes "half-life-alyx".
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
