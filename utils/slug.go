package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// Slugify converts a display name into a URL-safe slug: lowercase ASCII
// letters and digits with single hyphens between words.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// GeneratePublicID returns a public product id in the SS###### format.
// Uniqueness is the caller's responsibility (retry on collision).
func GeneratePublicID() string {
	return fmt.Sprintf("SS%06d", 100000+rand.Intn(900000))
}
