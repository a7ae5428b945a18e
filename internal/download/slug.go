// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"path/filepath"
	"strings"
)

// Slug returns a filesystem-safe token for a title or topic. Spaces, "/",
// and ":" become underscores; every other non-alphanumeric character is
// dropped. Total and deterministic: degenerate input yields "", which is
// still a usable (if ugly) path component.
func Slug(text string) string {
	joined := strings.NewReplacer(" ", "_", "/", "_", ":", "_").Replace(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(joined))
	for _, r := range joined {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PDFPath returns the artifact path for a work item's slugs. The path is the
// idempotence identity: if it exists, the item is already satisfied.
func PDFPath(papersDir, topicSlug, titleSlug string) string {
	return filepath.Join(papersDir, topicSlug, titleSlug+".pdf")
}
