// Package assets replicates photo files into the category folder tree and
// per-item handoff folders, and removes them again on delete.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stockroom/internal/fileutil"
)

// Copy names the final filenames a replication produced. The two
// destinations resolve collisions independently, so the names may differ.
type Copy struct {
	CategoryFile string
	ItemFile     string
}

// Replicator copies photos under two roots: a category-keyed tree and a
// per-item folder tree.
type Replicator struct {
	categoryRoot string
	itemsRoot    string
}

// NewReplicator returns a Replicator with the given destination roots.
func NewReplicator(categoryRoot, itemsRoot string) *Replicator {
	return &Replicator{categoryRoot: categoryRoot, itemsRoot: itemsRoot}
}

// CategoryRoot returns the category tree root.
func (r *Replicator) CategoryRoot() string { return r.categoryRoot }

// ItemsRoot returns the per-item folder tree root.
func (r *Replicator) ItemsRoot() string { return r.itemsRoot }

// CategoryDir returns the folder holding one category's replicated photos.
func (r *Replicator) CategoryDir(categoryFolder string) string {
	return filepath.Join(r.categoryRoot, categoryFolder)
}

// ItemDir returns the path of a per-item folder.
func (r *Replicator) ItemDir(itemFolder string) string {
	return filepath.Join(r.itemsRoot, itemFolder)
}

// EnsureItemFolder creates the per-item folder, returning its path.
// Creation is idempotent.
func (r *Replicator) EnsureItemFolder(itemFolder string) (string, error) {
	dir := r.ItemDir(itemFolder)
	if err := fileutil.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create item folder: %w", err)
	}
	return dir, nil
}

// Replicate copies src into both the category folder and the item folder
// under its original filename, resolving name collisions independently in
// each destination. Destination folders are created on demand.
func (r *Replicator) Replicate(src, categoryFolder, itemFolder string) (Copy, error) {
	name := filepath.Base(src)

	categoryDir := r.CategoryDir(categoryFolder)
	if err := fileutil.EnsureDir(categoryDir); err != nil {
		return Copy{}, fmt.Errorf("create category folder: %w", err)
	}
	categoryName := placeWithoutCollision(categoryDir, name)
	if err := fileutil.CopyFile(src, filepath.Join(categoryDir, categoryName)); err != nil {
		return Copy{}, fmt.Errorf("copy to category folder: %w", err)
	}

	itemDir := r.ItemDir(itemFolder)
	if err := fileutil.EnsureDir(itemDir); err != nil {
		return Copy{}, fmt.Errorf("create item folder: %w", err)
	}
	itemName := placeWithoutCollision(itemDir, name)
	if err := fileutil.CopyFile(src, filepath.Join(itemDir, itemName)); err != nil {
		return Copy{}, fmt.Errorf("copy to item folder: %w", err)
	}

	return Copy{CategoryFile: categoryName, ItemFile: itemName}, nil
}

// placeWithoutCollision finds a free filename in dir: the original name
// when unused, otherwise "<stem>_<n><ext>" with the counter starting at 1.
func placeWithoutCollision(dir, name string) string {
	if !fileutil.Exists(filepath.Join(dir, name)) {
		return name
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if !fileutil.Exists(filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}

// RemoveCategoryAssets deletes the named replicated files from a category
// folder. Files already absent are skipped.
func (r *Replicator) RemoveCategoryAssets(categoryFolder string, filenames []string) error {
	dir := r.CategoryDir(categoryFolder)
	for _, name := range filenames {
		if name == "" {
			continue
		}
		if err := fileutil.RemoveIfExists(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove category asset %s: %w", name, err)
		}
	}
	return nil
}

// RemoveItemFolder deletes an item folder and everything in it. Removing
// an absent folder is a no-op.
func (r *Replicator) RemoveItemFolder(itemFolder string) error {
	if strings.TrimSpace(itemFolder) == "" {
		return nil
	}
	if err := os.RemoveAll(r.ItemDir(itemFolder)); err != nil {
		return fmt.Errorf("remove item folder %s: %w", itemFolder, err)
	}
	return nil
}
