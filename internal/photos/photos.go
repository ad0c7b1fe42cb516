// Package photos reads the staging folder: listing incoming shots,
// scoring them for listing quality, and rendering web previews.
package photos

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stockroom/internal/logging"
)

// Entry describes one staging photo as shown to the organizer UI.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     string `json:"size"`
	Modified string `json:"modified"`
	URL      string `json:"url"`
}

// Library lists and serves the staging folder contents.
type Library struct {
	stagingDir string
	extensions map[string]struct{}
	logger     *slog.Logger
}

// NewLibrary constructs a Library over the given staging directory.
// Extensions are matched case-insensitively and must include the dot.
func NewLibrary(stagingDir string, extensions []string, logger *slog.Logger) *Library {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Library{
		stagingDir: stagingDir,
		extensions: exts,
		logger:     logging.NewComponentLogger(logger, "photos"),
	}
}

// StagingDir returns the staging directory path.
func (l *Library) StagingDir() string { return l.stagingDir }

func (l *Library) isImage(name string) bool {
	_, ok := l.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// List returns the staging photos sorted by filename, which keeps
// camera-numbered shots in chronological order. A missing staging
// directory yields an empty list.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	entries, err := os.ReadDir(l.stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read staging dir: %w", err)
	}

	var photos []Entry
	for _, entry := range entries {
		if entry.IsDir() || !l.isImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			l.logger.Warn("skipping unreadable staging entry",
				logging.String("name", entry.Name()),
				logging.Error(err),
			)
			continue
		}
		photos = append(photos, Entry{
			ID:       nameID(entry.Name()),
			Name:     entry.Name(),
			Size:     fmt.Sprintf("%.1f MB", float64(info.Size())/1024/1024),
			Modified: info.ModTime().Format("2006-01-02 15:04"),
			URL:      "/api/photo/" + entry.Name(),
		})
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].Name < photos[j].Name })
	return photos, nil
}

// Count returns the number of staging photos.
func (l *Library) Count(ctx context.Context) (int, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Resolve maps a photo name from a request onto its staging path. The
// name is reduced to its base so callers cannot traverse outside the
// staging directory.
func (l *Library) Resolve(name string) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || !l.isImage(base) {
		return "", fmt.Errorf("invalid photo name %q", name)
	}
	path := filepath.Join(l.stagingDir, base)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// nameID derives a stable identifier from a filename so the UI can key
// selections across reloads.
func nameID(name string) string {
	h := fnv.New64a()
	h.Write([]byte(name))
	return fmt.Sprintf("%d", h.Sum64())
}
