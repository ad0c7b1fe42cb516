package inventory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"stockroom/internal/assets"
	"stockroom/internal/hashtags"
	"stockroom/internal/ledger"
	"stockroom/internal/logging"
)

type fixture struct {
	svc        *Service
	store      *ledger.Store
	replicator *assets.Replicator
	stagingDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	stagingDir := filepath.Join(root, "staging")
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		t.Fatal(err)
	}
	store := ledger.NewStore(filepath.Join(root, "data", "inventory_tracker.csv"), ledger.IDAllocation{Prefix: "DP", Start: 1, Width: 3})
	replicator := assets.NewReplicator(filepath.Join(root, "by_category"), filepath.Join(root, "items"))
	svc := NewService(store, replicator, hashtags.DefaultBank(), stagingDir, 4, logging.NewNop())
	return &fixture{svc: svc, store: store, replicator: replicator, stagingDir: stagingDir}
}

func (f *fixture) stagePhoto(t *testing.T, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(f.stagingDir, name), []byte("bytes of "+name), 0o644); err != nil {
		t.Fatal(err)
	}
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatal(err)
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}

func TestCreate_FirstItem(t *testing.T) {
	f := newFixture(t)
	f.stagePhoto(t, "a.jpg")
	f.stagePhoto(t, "b.jpg")

	item, err := f.svc.Create(context.Background(), []string{"a.jpg", "b.jpg"}, Attributes{
		Brand:    "Nike",
		Color:    "Blue",
		Category: "outerwear",
		Title:    "Blue Nike Jacket",
	})
	if err != nil {
		t.Fatal(err)
	}

	if item.ID != "DP001" {
		t.Fatalf("id = %q, want DP001", item.ID)
	}
	if item.Status != "Not Listed" || item.DateAdded == "" {
		t.Fatalf("lifecycle fields wrong: %+v", item)
	}
	if item.Category != "Outerwear" {
		t.Fatalf("category = %q", item.Category)
	}
	if len(item.Photos) != 2 {
		t.Fatalf("photos = %v", item.Photos)
	}
	if item.AssetFolder == "" {
		t.Fatal("asset folder not recorded")
	}

	// One ledger row, two files in each destination.
	items, err := f.store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("ledger has %d rows", len(items))
	}
	if got := countFiles(t, f.replicator.CategoryDir("outerwear")); got != 2 {
		t.Fatalf("category folder has %d files, want 2", got)
	}
	if got := countFiles(t, f.replicator.ItemDir(item.AssetFolder)); got != 2 {
		t.Fatalf("item folder has %d files, want 2", got)
	}
	// Staging originals stay put.
	if got := countFiles(t, f.stagingDir); got != 2 {
		t.Fatalf("staging has %d files, want 2", got)
	}
}

func TestCreate_SkipsMissingStagingPhoto(t *testing.T) {
	f := newFixture(t)
	f.stagePhoto(t, "real.jpg")

	item, err := f.svc.Create(context.Background(), []string{"ghost.jpg", "real.jpg"}, Attributes{Category: "tops"})
	if err != nil {
		t.Fatal(err)
	}
	if len(item.Photos) != 1 || item.Photos[0] != "real.jpg" {
		t.Fatalf("photos = %v, want just real.jpg", item.Photos)
	}
}

func TestCreate_CapsAtMaxPhotos(t *testing.T) {
	f := newFixture(t)
	names := []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg", "6.jpg"}
	for _, n := range names {
		f.stagePhoto(t, n)
	}

	item, err := f.svc.Create(context.Background(), names, Attributes{Category: "shoes"})
	if err != nil {
		t.Fatal(err)
	}
	if len(item.Photos) != 4 {
		t.Fatalf("photos = %v, want 4 entries", item.Photos)
	}
}

func TestCreate_HashtagsFromDescriptionWinOverBank(t *testing.T) {
	f := newFixture(t)

	withTags, err := f.svc.Create(context.Background(), nil, Attributes{
		Category:    "tops",
		Description: "lovely #vintage #silk blouse",
	})
	if err != nil {
		t.Fatal(err)
	}
	if withTags.Hashtags != "#vintage #silk" {
		t.Fatalf("hashtags = %q", withTags.Hashtags)
	}

	synthesized, err := f.svc.Create(context.Background(), nil, Attributes{
		Category: "tops",
		Brand:    "Zara",
	})
	if err != nil {
		t.Fatal(err)
	}
	if synthesized.Hashtags != "#top #shirt #blouse #zara #preloved" {
		t.Fatalf("synthesized hashtags = %q", synthesized.Hashtags)
	}
}

func TestCreate_IDsNeverReissued(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Create(ctx, nil, Attributes{Category: "tops"}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := f.svc.Delete(ctx, "DP003"); err != nil {
		t.Fatal(err)
	}

	item, err := f.svc.Create(ctx, nil, Attributes{Category: "tops"})
	if err != nil {
		t.Fatal(err)
	}
	// DP003 was deleted; its number stays burned.
	if item.ID != "DP004" {
		t.Fatalf("id = %q, want DP004 (DP003 must not be reissued)", item.ID)
	}

	if _, err := f.svc.Create(ctx, nil, Attributes{Category: "tops"}); err != nil {
		t.Fatal(err)
	}
	id, err := f.store.NextID()
	if err != nil {
		t.Fatal(err)
	}
	if id != "DP006" {
		t.Fatalf("NextID = %q, want DP006", id)
	}
}

func TestCreate_ConcurrentCallsMintDistinctIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const workers = 16
	start := make(chan struct{})
	ids := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			item, err := f.svc.Create(ctx, nil, Attributes{Category: "tops"})
			if err != nil {
				t.Error(err)
				return
			}
			ids <- item.ID
		}()
	}
	close(start)
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("id %q allocated twice", id)
		}
		seen[id] = true
	}
	if len(seen) != workers {
		t.Fatalf("got %d distinct ids, want %d", len(seen), workers)
	}

	items, err := f.store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != workers {
		t.Fatalf("ledger has %d rows, want %d", len(items), workers)
	}
}

func TestList_MalformedLedger(t *testing.T) {
	f := newFixture(t)
	// A quote opened mid-row and never closed cannot be parsed as CSV.
	content := "Item_ID,Brand\nDP001,\"broken\n"
	if err := os.MkdirAll(filepath.Dir(f.store.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(f.store.Path(), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.List(context.Background())
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("err = %v, want ErrMalformed", err)
	}
}

func TestUpdate_PreservesPhotosAndFolder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stagePhoto(t, "a.jpg")

	created, err := f.svc.Create(ctx, []string{"a.jpg"}, Attributes{
		Category: "tops",
		Brand:    "Nike",
		Title:    "Old Title",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := f.svc.Update(ctx, created.ID, Attributes{
		Category: "tops",
		Brand:    "Zara",
		Title:    "New Title",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Brand != "Zara" || updated.Title != "New Title" {
		t.Fatalf("attributes not updated: %+v", updated)
	}
	if len(updated.Photos) != 1 || updated.Photos[0] != "a.jpg" {
		t.Fatalf("photos changed by update: %v", updated.Photos)
	}
	if updated.AssetFolder != created.AssetFolder {
		t.Fatalf("asset folder changed: %q vs %q", updated.AssetFolder, created.AssetFolder)
	}
	if updated.Status != created.Status || updated.DateAdded != created.DateAdded {
		t.Fatalf("lifecycle fields changed: %+v", updated)
	}

	// The rewrite is visible on reload.
	reloaded, err := f.svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Brand != "Zara" {
		t.Fatalf("reloaded brand = %q", reloaded.Brand)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Update(context.Background(), "DP999", Attributes{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_RemovesRowFilesAndFolder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.stagePhoto(t, "a.jpg")
	f.stagePhoto(t, "b.jpg")

	created, err := f.svc.Create(ctx, []string{"a.jpg", "b.jpg"}, Attributes{Category: "dresses"})
	if err != nil {
		t.Fatal(err)
	}
	keeper, err := f.svc.Create(ctx, nil, Attributes{Category: "dresses"})
	if err != nil {
		t.Fatal(err)
	}

	freed, err := f.svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(freed) != 2 {
		t.Fatalf("freed = %v, want 2 entries", freed)
	}

	items, err := f.store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != keeper.ID {
		t.Fatalf("ledger rows after delete: %+v", items)
	}
	if got := countFiles(t, f.replicator.CategoryDir("dresses")); got != 0 {
		t.Fatalf("category folder still has %d files", got)
	}
	if _, err := os.Stat(f.replicator.ItemDir(created.AssetFolder)); !os.IsNotExist(err) {
		t.Fatal("item folder still present")
	}
	// Staging originals were never touched by create, so both remain.
	if got := countFiles(t, f.stagingDir); got != 2 {
		t.Fatalf("staging has %d files", got)
	}
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Delete(context.Background(), "DP404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), "DP404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCombinedCategory(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		attrs Attributes
		want  string
	}{
		{Attributes{Category: "tops"}, "Tops"},
		{Attributes{Category: "tops", Subcategory: "Blouses"}, "Tops > Blouses"},
		{Attributes{Subcategory: "Blouses"}, "Blouses"},
		{Attributes{}, ""},
	}
	for _, tc := range cases {
		if got := f.svc.combinedCategory(tc.attrs); got != tc.want {
			t.Fatalf("combinedCategory(%+v) = %q, want %q", tc.attrs, got, tc.want)
		}
	}
}
