package photos

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "image/jpeg"
	_ "image/png"
)

// Scored pairs a staging entry with its quality score.
type Scored struct {
	Entry
	Score int `json:"score"`
}

// Score rates a photo from 0 to 100 for listing suitability: resolution,
// squareness, file size, and filename hints each contribute. Photos that
// cannot be decoded score 0.
func Score(path string) int {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0
	}
	info, err := f.Stat()
	if err != nil {
		return 0
	}

	score := 0

	// Resolution, up to 30 points.
	pixels := cfg.Width * cfg.Height
	switch {
	case pixels >= 1280*1280:
		score += 30
	case pixels >= 800*800:
		score += 20
	default:
		score += 10
	}

	// Aspect ratio, up to 20 points. Square frames list best.
	ratio := aspect(cfg.Width, cfg.Height)
	switch {
	case ratio >= 0.95:
		score += 20
	case ratio >= 0.8:
		score += 15
	default:
		score += 10
	}

	// File size, up to 20 points.
	sizeMB := float64(info.Size()) / 1024 / 1024
	switch {
	case sizeMB >= 1 && sizeMB <= 8:
		score += 20
	case sizeMB <= 15:
		score += 15
	default:
		score += 10
	}

	// Filename hints, up to 30 points.
	name := strings.ToLower(info.Name())
	switch {
	case containsAny(name, "front", "main", "01", "_1"):
		score += 30
	case containsAny(name, "detail", "close", "tag", "label"):
		score += 25
	case containsAny(name, "back", "rear", "02", "_2"):
		score += 20
	default:
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}

// Scored lists the staging photos ranked best-first by quality score,
// with ties broken by filename.
func (l *Library) Scored(ctx context.Context) ([]Scored, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	scored := make([]Scored, 0, len(entries))
	for _, entry := range entries {
		scored = append(scored, Scored{
			Entry: entry,
			Score: Score(filepath.Join(l.stagingDir, entry.Name)),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Name < scored[j].Name
	})
	return scored, nil
}

func aspect(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	if width < height {
		return float64(width) / float64(height)
	}
	return float64(height) / float64(width)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
