// Package hashtags derives listing hashtags for inventory items, either by
// extracting them from free-text descriptions or by synthesizing them from
// a category-keyed bank.
package hashtags

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
)

// MaxTags is the marketplace limit on hashtags per listing.
const MaxTags = 5

var tagPattern = regexp.MustCompile(`#\w+`)

// FromDescription extracts up to MaxTags "#word" tokens from a free-text
// description, preserving their order. Returns "" when none are present.
func FromDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	tags := tagPattern.FindAllString(description, -1)
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return strings.Join(tags, " ")
}

// Bank maps a lowercased category to its candidate hashtags.
type Bank map[string][]string

// DefaultBank returns the built-in category hashtag table.
func DefaultBank() Bank {
	return Bank{
		"tops":        {"#top", "#shirt", "#blouse", "#workwear", "#casual"},
		"dresses":     {"#dress", "#midi", "#party", "#formal", "#cottagecore"},
		"bottoms":     {"#jeans", "#trousers", "#y2k", "#highwaisted", "#vintage"},
		"outerwear":   {"#jacket", "#coat", "#blazer", "#oversized", "#structured"},
		"shoes":       {"#shoes", "#boots", "#sneakers", "#platform", "#chunky"},
		"accessories": {"#accessories", "#bag", "#jewelry", "#vintage", "#statement"},
	}
}

// LoadBank reads a hashtag bank CSV with Category, Primary_Hashtags,
// Style_Hashtags, and Trending_Hashtags columns, each holding
// space-separated tags. Rows missing columns are skipped. A missing file
// is not an error; the built-in bank is returned instead.
func LoadBank(path string) (Bank, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultBank(), nil
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultBank(), nil
		}
		return nil, err
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	bank := Bank{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		category := strings.ToLower(fieldAt(record, col, "Category"))
		if category == "" {
			continue
		}
		var tags []string
		tags = append(tags, splitTags(fieldAt(record, col, "Primary_Hashtags"))...)
		tags = append(tags, splitTags(fieldAt(record, col, "Style_Hashtags"))...)
		tags = append(tags, splitTags(fieldAt(record, col, "Trending_Hashtags"))...)
		if len(tags) > 0 {
			bank[category] = tags
		}
	}
	if len(bank) == 0 {
		return DefaultBank(), nil
	}
	return bank, nil
}

func fieldAt(record []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func splitTags(value string) []string {
	var out []string
	for _, tag := range strings.Fields(value) {
		if strings.HasPrefix(tag, "#") {
			out = append(out, tag)
		}
	}
	return out
}

// Suggest synthesizes hashtags for an item: up to three bank tags for the
// category, a brand tag, and "#preloved", capped at MaxTags.
func (b Bank) Suggest(category, brand string) string {
	var tags []string
	if candidates, ok := b[strings.ToLower(strings.TrimSpace(category))]; ok {
		limit := 3
		if len(candidates) < limit {
			limit = len(candidates)
		}
		tags = append(tags, candidates[:limit]...)
	}
	if brandTag := brandToken(brand); brandTag != "" {
		tags = append(tags, "#"+brandTag)
	}
	tags = append(tags, "#preloved")
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return strings.Join(tags, " ")
}

// brandToken reduces a brand to a single lowercase alphanumeric token so
// it forms a well-formed hashtag.
func brandToken(brand string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(brand) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
