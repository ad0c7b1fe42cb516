package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stockroom/internal/api"
	"stockroom/internal/inventory"
	"stockroom/internal/logging"
	"stockroom/internal/photos"
)

type apiServer struct {
	bind   string
	logger *slog.Logger
	daemon *Daemon

	listener net.Listener
	server   *http.Server
}

func newAPIServer(bind string, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:   strings.TrimSpace(bind),
		logger: logger,
		daemon: d,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/photos", srv.handlePhotos)
	mux.HandleFunc("/api/photo-scores", srv.handlePhotoScores)
	mux.HandleFunc("/api/photo/", srv.handlePhoto)
	mux.HandleFunc("/api/category-photo/", srv.handleCategoryPhoto)
	mux.HandleFunc("/api/items", srv.handleItems)
	mux.HandleFunc("/api/completed-items", srv.handleItems)
	mux.HandleFunc("/api/stats", srv.handleStats)
	mux.HandleFunc("/api/save-item", srv.handleSaveItem)
	mux.HandleFunc("/api/delete-item/", srv.handleDeleteItem)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api bind address is empty")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) handlePhotos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	entries, err := s.daemon.library.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []photos.Entry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *apiServer) handlePhotoScores(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	scored, err := s.daemon.library.Scored(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, scored)
}

func (s *apiServer) handlePhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	name, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/api/photo/"))
	if err != nil || name == "" || strings.Contains(name, "/") {
		s.writeError(w, http.StatusNotFound, "photo not found")
		return
	}
	path, err := s.daemon.library.Resolve(name)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "photo not found")
		return
	}
	s.servePreview(w, path)
}

func (s *apiServer) handleCategoryPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/category-photo/")
	category, name, ok := strings.Cut(rest, "/")
	if !ok {
		s.writeError(w, http.StatusBadRequest, "invalid category photo path")
		return
	}
	category, catErr := url.PathUnescape(category)
	name, nameErr := url.PathUnescape(name)
	if catErr != nil || nameErr != nil || category == "" || name == "" || strings.Contains(name, "/") {
		s.writeError(w, http.StatusBadRequest, "invalid category photo path")
		return
	}
	category = filepath.Base(category)

	path := filepath.Join(s.daemon.replicator.CategoryDir(category), filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		s.writeError(w, http.StatusNotFound, "category photo not found")
		return
	}
	s.servePreview(w, path)
}

func (s *apiServer) servePreview(w http.ResponseWriter, path string) {
	preview, err := s.daemon.renderer.Render(path)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", preview.ContentType)
	w.Header().Set("Cache-Control", "max-age=3600")
	w.Header().Set("X-Stockroom-Session", s.daemon.sessionID)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(preview.Data); err != nil {
		s.log().Warn("failed to write preview", logging.Error(err))
	}
}

func (s *apiServer) handleItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	items, err := s.daemon.items.List(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, items)
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	stats, err := s.daemon.stats.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *apiServer) handleSaveItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req api.SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid save-item payload")
		return
	}
	resp, err := s.daemon.items.Save(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/delete-item/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	resp, err := s.daemon.items.Delete(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, inventory.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.writeError(w, status, err.Error())
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Stockroom-Session", s.daemon.sessionID)
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *apiServer) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String(logging.FieldComponent, "api-server"))
	}
	return logging.NewNop()
}
