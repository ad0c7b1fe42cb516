// Package naming derives canonical photo base names and filesystem-safe
// folder names from item attributes. All functions are pure.
package naming

import (
	"strings"
	"unicode"
)

const (
	maxFolderNameLen = 100
	fallbackFolder   = "Untitled_Item"
	fallbackBrand    = "item"
	fallbackColor    = "unknown"
	fallbackItemType = "clothing"
	brandPlaceholder = "Other"
	colorPlaceholder = "N/A"
	titleWordsInName = 3
)

// folderNameReplacer maps filesystem-unsafe characters to underscores.
var folderNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// BaseName builds the canonical photo base name for an item: lowercased
// brand, color, and item type reduced to [a-z0-9] and joined with
// underscores. Fields that reduce to nothing fall back to fixed defaults.
func BaseName(brand, color, itemType string) string {
	return strings.Join([]string{
		tokenOr(brand, fallbackBrand),
		tokenOr(color, fallbackColor),
		tokenOr(itemType, fallbackItemType),
	}, "_")
}

func tokenOr(value, fallback string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

// SanitizeFolderName makes raw safe for use as a directory name: unsafe
// characters and whitespace runs become single underscores, leading and
// trailing underscores/periods are trimmed, and the result is capped at
// 100 characters. An empty result yields "Untitled_Item".
func SanitizeFolderName(raw string) string {
	s := folderNameReplacer.Replace(raw)
	s = collapseWhitespace(strings.TrimSpace(s))
	s = strings.Trim(s, "_.")
	if s == "" {
		return fallbackFolder
	}
	if runes := []rune(s); len(runes) > maxFolderNameLen {
		s = string(runes[:maxFolderNameLen])
	}
	return s
}

func collapseWhitespace(s string) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inRun {
				b.WriteByte('_')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// ItemFolderName composes the per-item replication folder name from the
// allocated ID plus brand, color, and up to the first three title words.
// Placeholder values ("Other" brand, "N/A" color) are excluded.
func ItemFolderName(id, title, brand, color string) string {
	parts := []string{"Item_" + id}
	if brand != "" && brand != brandPlaceholder {
		parts = append(parts, brand)
	}
	if color != "" && color != colorPlaceholder {
		parts = append(parts, color)
	}
	words := strings.Fields(title)
	if len(words) > titleWordsInName {
		words = words[:titleWordsInName]
	}
	parts = append(parts, words...)
	return SanitizeFolderName(strings.Join(parts, "_"))
}
