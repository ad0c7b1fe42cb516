package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stockroom/internal/api"
	"stockroom/internal/config"
	"stockroom/internal/logging"
)

func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StagingDir = filepath.Join(root, "staging")
	cfg.Paths.CategoryDir = filepath.Join(root, "by_category")
	cfg.Paths.ItemsDir = filepath.Join(root, "items")
	cfg.Paths.DataDir = filepath.Join(root, "data")
	cfg.Paths.LogDir = filepath.Join(root, "logs")
	cfg.Paths.APIBind = "127.0.0.1:0"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	d, err := New(&cfg, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func (d *Daemon) serve(t *testing.T, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	d.api.server.Handler.ServeHTTP(rec, req)
	return rec
}

func stageJPEG(t *testing.T, d *Daemon, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(d.cfg.Paths.StagingDir, name), buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAPIPhotosEmpty(t *testing.T) {
	d := newTestDaemon(t)
	rec := d.serve(t, http.MethodGet, "/api/photos", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("body = %q, want []", got)
	}
}

func TestAPISaveListDelete(t *testing.T) {
	d := newTestDaemon(t)
	stageJPEG(t, d, "a.jpg")

	payload, err := json.Marshal(api.SaveItemRequest{
		Photos:   []string{"a.jpg"},
		Brand:    "Nike",
		Category: "tops",
		Title:    "Running Tee",
	})
	if err != nil {
		t.Fatal(err)
	}
	rec := d.serve(t, http.MethodPost, "/api/save-item", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d body = %s", rec.Code, rec.Body.String())
	}
	var saved api.SaveItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatal(err)
	}
	if !saved.Success || saved.ItemID != "DP001" {
		t.Fatalf("save response = %+v", saved)
	}

	rec = d.serve(t, http.MethodGet, "/api/items", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("items status = %d", rec.Code)
	}
	var items []api.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != "DP001" {
		t.Fatalf("items = %+v", items)
	}
	if items[0].Photos[0].URL != "/api/category-photo/tops/a.jpg" {
		t.Fatalf("photo url = %q", items[0].Photos[0].URL)
	}

	// The replicated copy is served back through the category route.
	rec = d.serve(t, http.MethodGet, items[0].Photos[0].URL, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("category photo status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type = %q", ct)
	}

	rec = d.serve(t, http.MethodDelete, "/api/delete-item/DP001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d body = %s", rec.Code, rec.Body.String())
	}
	var deleted api.DeleteItemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &deleted); err != nil {
		t.Fatal(err)
	}
	if !deleted.Success || len(deleted.FreedPhotos) != 1 {
		t.Fatalf("delete response = %+v", deleted)
	}
}

func TestAPIDeleteUnknownItem(t *testing.T) {
	d := newTestDaemon(t)
	rec := d.serve(t, http.MethodDelete, "/api/delete-item/DP404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAPISaveUnknownItemID(t *testing.T) {
	d := newTestDaemon(t)
	payload := []byte(`{"itemId":"DP404","category":"tops"}`)
	rec := d.serve(t, http.MethodPost, "/api/save-item", payload)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestAPISaveBadPayload(t *testing.T) {
	d := newTestDaemon(t)
	rec := d.serve(t, http.MethodPost, "/api/save-item", []byte("not json"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAPIPhotoPreviewAndMissing(t *testing.T) {
	d := newTestDaemon(t)
	stageJPEG(t, d, "shot.jpg")

	rec := d.serve(t, http.MethodGet, "/api/photo/shot.jpg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Fatalf("content type = %q", ct)
	}
	if _, err := jpeg.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Fatalf("preview not a jpeg: %v", err)
	}

	rec = d.serve(t, http.MethodGet, "/api/photo/missing.jpg", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing photo status = %d", rec.Code)
	}
}

func TestAPIStats(t *testing.T) {
	d := newTestDaemon(t)
	stageJPEG(t, d, "1.jpg")
	stageJPEG(t, d, "2.jpg")
	stageJPEG(t, d, "3.jpg")
	stageJPEG(t, d, "4.jpg")

	rec := d.serve(t, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats api.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalPhotos != 4 || stats.CompletedItems != 0 || stats.EstimatedItemsRemaining != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}

func TestAPIMethodNotAllowed(t *testing.T) {
	d := newTestDaemon(t)
	rec := d.serve(t, http.MethodPost, "/api/photos", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
	rec = d.serve(t, http.MethodGet, "/api/save-item", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	d := newTestDaemon(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := d.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer d.Stop()

	second, err := New(d.cfg, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("second daemon acquired the lock")
	}

	if d.SessionID() == "" {
		t.Fatal("session id missing")
	}
}
