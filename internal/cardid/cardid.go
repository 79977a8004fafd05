// Package cardid derives stable card ids from card content, so the same
// front/back imported twice maps to the same row.
package cardid

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize joins front and back after cleaning each part.
// It trims whitespace, lowercases, and normalizes line endings for each field
// before joining them.
func Normalize(front, back string) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return strings.TrimSpace(p)
	}

	// The newline keeps "ab"+"c" and "a"+"bc" apart.
	return normalizePart(front) + "\n" + normalizePart(back)
}

// New returns the SHA-256 of the normalized content as a hex string.
func New(front, back string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(Normalize(front, back))))
}
