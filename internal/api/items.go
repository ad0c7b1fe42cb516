package api

import (
	"context"
	"fmt"

	"stockroom/internal/inventory"
	"stockroom/internal/ledger"
)

// ItemService adapts the inventory lifecycle for transport callers.
type ItemService struct {
	inventory *inventory.Service
}

// NewItemService constructs an ItemService.
func NewItemService(svc *inventory.Service) *ItemService {
	return &ItemService{inventory: svc}
}

// List returns every completed item in ledger order.
func (s *ItemService) List(ctx context.Context) ([]Item, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, FromLedgerItem(item))
	}
	return out, nil
}

// Get returns a single item by id.
func (s *ItemService) Get(ctx context.Context, id string) (Item, error) {
	item, err := s.inventory.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	return FromLedgerItem(*item), nil
}

// Save creates a new item or, when the request carries an id, updates
// the existing one.
func (s *ItemService) Save(ctx context.Context, req SaveItemRequest) (SaveItemResponse, error) {
	attrs := attributesFromRequest(req)

	var (
		item ledger.Item
		err  error
		verb string
	)
	if req.ItemID != "" {
		item, err = s.inventory.Update(ctx, req.ItemID, attrs)
		verb = "updated"
	} else {
		item, err = s.inventory.Create(ctx, req.Photos, attrs)
		verb = "saved"
	}
	if err != nil {
		return SaveItemResponse{}, err
	}
	return SaveItemResponse{
		Success: true,
		ItemID:  item.ID,
		Message: fmt.Sprintf("Item %s %s successfully!", item.ID, verb),
	}, nil
}

// Delete removes the item and returns the freed photo filenames.
func (s *ItemService) Delete(ctx context.Context, id string) (DeleteItemResponse, error) {
	freed, err := s.inventory.Delete(ctx, id)
	if err != nil {
		return DeleteItemResponse{}, err
	}
	return DeleteItemResponse{Success: true, FreedPhotos: freed}, nil
}

func attributesFromRequest(req SaveItemRequest) inventory.Attributes {
	return inventory.Attributes{
		Category:              req.Category,
		Subcategory:           req.Subcategory,
		Brand:                 req.Brand,
		Title:                 req.Title,
		Description:           req.Description,
		Style:                 req.Style,
		Source:                req.Source,
		Age:                   req.Age,
		Size:                  req.Size,
		Color:                 req.Color,
		Condition:             req.Condition,
		PurchasePrice:         req.PurchasePrice,
		TargetPrice:           req.TargetPrice,
		ParcelSize:            req.ParcelSize,
		InternationalShipping: req.InternationalShipping,
		City:                  req.City,
		Notes:                 req.Notes,
	}
}
