// Package inventory orchestrates the item lifecycle: identifier
// allocation, photo replication, hashtag derivation, and ledger commits.
package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stockroom/internal/assets"
	"stockroom/internal/fileutil"
	"stockroom/internal/hashtags"
	"stockroom/internal/ledger"
	"stockroom/internal/logging"
	"stockroom/internal/naming"
)

const uncategorizedFolder = "uncategorized"

// Attributes carries the caller-supplied item fields for create and
// update. Photo references are passed separately and only apply on create.
type Attributes struct {
	Category              string
	Subcategory           string
	Brand                 string
	Title                 string
	Description           string
	Style                 string
	Source                string
	Age                   string
	Size                  string
	Color                 string
	Condition             string
	PurchasePrice         string
	TargetPrice           string
	ParcelSize            string
	InternationalShipping string
	City                  string
	Notes                 string
}

// Service is the item lifecycle orchestrator. A mutex serializes every
// operation so the read-modify-write over the ledger and photo folders
// stays single-writer even when callers arrive concurrently.
type Service struct {
	mu         sync.RWMutex
	store      *ledger.Store
	replicator *assets.Replicator
	bank       hashtags.Bank
	stagingDir string
	maxPhotos  int
	logger     *slog.Logger
	titleCaser cases.Caser
	now        func() time.Time
}

// NewService constructs the lifecycle service.
func NewService(store *ledger.Store, replicator *assets.Replicator, bank hashtags.Bank, stagingDir string, maxPhotos int, logger *slog.Logger) *Service {
	if maxPhotos <= 0 {
		maxPhotos = ledger.MaxPhotos
	}
	if bank == nil {
		bank = hashtags.DefaultBank()
	}
	return &Service{
		store:      store,
		replicator: replicator,
		bank:       bank,
		stagingDir: stagingDir,
		maxPhotos:  maxPhotos,
		logger:     logging.NewComponentLogger(logger, "inventory"),
		titleCaser: cases.Title(language.English),
		now:        time.Now,
	}
}

// Store exposes the underlying ledger store for read-only collaborators.
func (s *Service) Store() *ledger.Store { return s.store }

// List returns every ledger item in insertion order.
func (s *Service) List(ctx context.Context) ([]ledger.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.store.LoadAll()
	if err != nil {
		return nil, wrapLedgerError("list", "read ledger", err)
	}
	return items, nil
}

// Get returns the item with the given id.
func (s *Service) Get(ctx context.Context, id string) (*ledger.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, err := s.store.FindByID(id)
	if err != nil {
		return nil, wrapLedgerError("get", "read ledger", err)
	}
	if item == nil {
		return nil, Wrap(ErrNotFound, "get", fmt.Sprintf("item %s not found", id), nil)
	}
	return item, nil
}

// Create allocates an identifier, replicates up to the configured number
// of staging photos into the category and item folders, derives hashtags,
// and appends the new ledger row. Staging photos that do not exist are
// skipped; the staging originals are never removed.
func (s *Service) Create(ctx context.Context, stagingPhotos []string, attrs Attributes) (ledger.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.store.NextID()
	if err != nil {
		return ledger.Item{}, wrapLedgerError("create", "allocate id", err)
	}

	folderName := naming.ItemFolderName(id, attrs.Title, attrs.Brand, attrs.Color)
	if _, err := s.replicator.EnsureItemFolder(folderName); err != nil {
		return ledger.Item{}, Wrap(ErrIO, "create", "create item folder", err)
	}

	categoryFolder := categoryFolderName(attrs.Category)
	var photoNames []string
	for i, name := range stagingPhotos {
		if i >= s.maxPhotos {
			break
		}
		src := filepath.Join(s.stagingDir, filepath.Base(name))
		if !fileutil.IsRegular(src) {
			s.logger.Warn("staging photo missing, skipping",
				logging.String("item_id", id),
				logging.String("photo", name),
			)
			continue
		}
		copied, err := s.replicator.Replicate(src, categoryFolder, folderName)
		if err != nil {
			return ledger.Item{}, Wrap(ErrIO, "create", fmt.Sprintf("replicate photo %s", name), err)
		}
		photoNames = append(photoNames, copied.CategoryFile)
	}

	tags := hashtags.FromDescription(attrs.Description)
	if tags == "" {
		tags = s.bank.Suggest(attrs.Category, attrs.Brand)
	}

	shipping := strings.TrimSpace(attrs.InternationalShipping)
	if shipping == "" {
		shipping = "No"
	}

	item := ledger.Item{
		ID:                    id,
		Brand:                 attrs.Brand,
		Category:              s.combinedCategory(attrs),
		Subcategory:           attrs.Subcategory,
		Title:                 attrs.Title,
		Description:           attrs.Description,
		Style:                 attrs.Style,
		Source:                attrs.Source,
		Age:                   attrs.Age,
		Size:                  attrs.Size,
		Color:                 attrs.Color,
		Condition:             attrs.Condition,
		PurchasePrice:         attrs.PurchasePrice,
		TargetPrice:           attrs.TargetPrice,
		ParcelSize:            attrs.ParcelSize,
		InternationalShipping: shipping,
		City:                  attrs.City,
		Photos:                photoNames,
		Hashtags:              tags,
		Status:                "Not Listed",
		DateAdded:             s.now().Format("2006-01-02"),
		Likes:                 "0",
		Views:                 "0",
		Notes:                 attrs.Notes,
		AssetFolder:           folderName,
	}

	if err := s.store.Append(item); err != nil {
		return ledger.Item{}, Wrap(ErrIO, "create", "append ledger row", err)
	}

	s.logger.Info("item created",
		logging.String("item_id", id),
		logging.String("category_folder", categoryFolder),
		logging.String("item_folder", folderName),
		logging.Int("photos", len(photoNames)),
	)
	return item, nil
}

// Update rewrites an existing item's attribute columns. Photo columns, the
// asset folder, status, dates, and counters are untouched regardless of
// the payload.
func (s *Service) Update(ctx context.Context, id string, attrs Attributes) (ledger.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.LoadAll()
	if err != nil {
		return ledger.Item{}, wrapLedgerError("update", "read ledger", err)
	}

	index := -1
	for i := range items {
		if items[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return ledger.Item{}, Wrap(ErrNotFound, "update", fmt.Sprintf("item %s not found", id), nil)
	}

	item := &items[index]
	item.Brand = attrs.Brand
	item.Category = s.combinedCategory(attrs)
	item.Subcategory = attrs.Subcategory
	item.Title = attrs.Title
	item.Description = attrs.Description
	item.Style = attrs.Style
	item.Source = attrs.Source
	item.Age = attrs.Age
	item.Size = attrs.Size
	item.Color = attrs.Color
	item.Condition = attrs.Condition
	item.PurchasePrice = attrs.PurchasePrice
	item.TargetPrice = attrs.TargetPrice
	item.ParcelSize = attrs.ParcelSize
	if shipping := strings.TrimSpace(attrs.InternationalShipping); shipping != "" {
		item.InternationalShipping = shipping
	}
	item.City = attrs.City
	item.Hashtags = hashtags.FromDescription(attrs.Description)
	item.Notes = attrs.Notes

	if err := s.store.Rewrite(items); err != nil {
		return ledger.Item{}, Wrap(ErrIO, "update", "rewrite ledger", err)
	}

	s.logger.Info("item updated", logging.String("item_id", id))
	return *item, nil
}

// Delete removes the item's replicated category files and its item folder,
// then rewrites the ledger without the row. It returns the photo filenames
// freed by the removal.
func (s *Service) Delete(ctx context.Context, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.store.LoadAll()
	if err != nil {
		return nil, wrapLedgerError("delete", "read ledger", err)
	}

	index := -1
	for i := range items {
		if items[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, Wrap(ErrNotFound, "delete", fmt.Sprintf("item %s not found", id), nil)
	}

	item := items[index]
	freed := append([]string(nil), item.Photos...)

	if err := s.replicator.RemoveCategoryAssets(item.CategoryFolder(), freed); err != nil {
		return nil, Wrap(ErrIO, "delete", "remove category assets", err)
	}
	if err := s.replicator.RemoveItemFolder(item.AssetFolder); err != nil {
		return nil, Wrap(ErrIO, "delete", "remove item folder", err)
	}

	remaining := append(items[:index:index], items[index+1:]...)
	if err := s.store.Rewrite(remaining); err != nil {
		return nil, Wrap(ErrIO, "delete", "rewrite ledger", err)
	}

	s.logger.Info("item deleted",
		logging.String("item_id", id),
		logging.Int("freed_photos", len(freed)),
	)
	return freed, nil
}

// combinedCategory renders the ledger Category column: the title-cased
// base category, with " > Subcategory" appended when one is present.
func (s *Service) combinedCategory(attrs Attributes) string {
	category := strings.TrimSpace(attrs.Category)
	if category != "" {
		category = s.titleCaser.String(category)
	}
	if sub := strings.TrimSpace(attrs.Subcategory); sub != "" {
		if category == "" {
			return sub
		}
		return category + " > " + sub
	}
	return category
}

// categoryFolderName lowercases the base category for use as the
// replication folder, defaulting when no category was supplied.
func categoryFolderName(category string) string {
	folder := strings.ToLower(strings.TrimSpace(category))
	if folder == "" {
		return uncategorizedFolder
	}
	return folder
}
