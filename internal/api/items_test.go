package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"stockroom/internal/assets"
	"stockroom/internal/hashtags"
	"stockroom/internal/inventory"
	"stockroom/internal/ledger"
	"stockroom/internal/logging"
	"stockroom/internal/photos"
)

type testEnv struct {
	items      *ItemService
	stats      *StatsService
	stagingDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	stagingDir := filepath.Join(root, "staging")
	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		t.Fatal(err)
	}
	store := ledger.NewStore(filepath.Join(root, "inventory_tracker.csv"), ledger.IDAllocation{})
	replicator := assets.NewReplicator(filepath.Join(root, "by_category"), filepath.Join(root, "items"))
	svc := inventory.NewService(store, replicator, hashtags.DefaultBank(), stagingDir, 4, logging.NewNop())
	library := photos.NewLibrary(stagingDir, []string{".jpg", ".png"}, logging.NewNop())
	return &testEnv{
		items:      NewItemService(svc),
		stats:      NewStatsService(svc, library),
		stagingDir: stagingDir,
	}
}

func (e *testEnv) stagePhoto(t *testing.T, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.stagingDir, name), []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSave_CreateThenList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.stagePhoto(t, "a.jpg")

	resp, err := env.items.Save(ctx, SaveItemRequest{
		Photos:   []string{"a.jpg"},
		Brand:    "Nike",
		Category: "tops",
		Title:    "Running Tee",
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.ItemID != "DP001" {
		t.Fatalf("save response = %+v", resp)
	}

	list, err := env.items.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %+v", list)
	}
	item := list[0]
	if item.Category != "Tops" || item.Status != "Not Listed" {
		t.Fatalf("item = %+v", item)
	}
	if len(item.Photos) != 1 {
		t.Fatalf("photos = %+v", item.Photos)
	}
	if item.Photos[0].URL != "/api/category-photo/tops/a.jpg" {
		t.Fatalf("photo url = %q", item.Photos[0].URL)
	}
	if item.Photos[0].ID == "" {
		t.Fatal("photo id missing")
	}
}

func TestSave_UpdateDispatchesOnItemID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.items.Save(ctx, SaveItemRequest{Category: "tops", Brand: "Nike"})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := env.items.Save(ctx, SaveItemRequest{
		ItemID:   created.ItemID,
		Category: "tops",
		Brand:    "Adidas",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ItemID != created.ItemID {
		t.Fatalf("update minted a new id: %+v", updated)
	}

	got, err := env.items.Get(ctx, created.ItemID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Brand != "Adidas" {
		t.Fatalf("brand = %q", got.Brand)
	}
}

func TestSave_UpdateUnknownID(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.items.Save(context.Background(), SaveItemRequest{ItemID: "DP999"})
	if !errors.Is(err, inventory.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete_ReturnsFreedPhotos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.stagePhoto(t, "a.jpg")
	env.stagePhoto(t, "b.jpg")

	created, err := env.items.Save(ctx, SaveItemRequest{
		Photos:   []string{"a.jpg", "b.jpg"},
		Category: "shoes",
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := env.items.Delete(ctx, created.ItemID)
	if err != nil {
		t.Fatal(err)
	}
	if !resp.Success || len(resp.FreedPhotos) != 2 {
		t.Fatalf("delete response = %+v", resp)
	}
}

func TestStats_Snapshot(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, name := range []string{"1.jpg", "2.jpg", "3.jpg", "4.jpg", "5.jpg"} {
		env.stagePhoto(t, name)
	}
	if _, err := env.items.Save(ctx, SaveItemRequest{Category: "tops"}); err != nil {
		t.Fatal(err)
	}

	stats, err := env.stats.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalPhotos != 5 {
		t.Fatalf("totalPhotos = %d", stats.TotalPhotos)
	}
	if stats.CompletedItems != 1 {
		t.Fatalf("completedItems = %d", stats.CompletedItems)
	}
	if stats.EstimatedItemsRemaining != 1 {
		t.Fatalf("estimatedItemsRemaining = %d", stats.EstimatedItemsRemaining)
	}
}
