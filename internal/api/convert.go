package api

import (
	"hash/fnv"
	"net/url"
	"strconv"

	"stockroom/internal/ledger"
)

// FromLedgerItem converts a ledger row into its transport form. Photo
// URLs point at the category folder copies so the UI can render items
// after the staging originals are cleared.
func FromLedgerItem(item ledger.Item) Item {
	photos := make([]PhotoRef, 0, len(item.Photos))
	categoryFolder := item.CategoryFolder()
	for _, name := range item.Photos {
		photos = append(photos, PhotoRef{
			ID:   photoID(name),
			Name: name,
			URL:  "/api/category-photo/" + url.PathEscape(categoryFolder) + "/" + url.PathEscape(name),
		})
	}
	return Item{
		ID:                    item.ID,
		Brand:                 item.Brand,
		Category:              item.Category,
		Subcategory:           item.Subcategory,
		Title:                 item.Title,
		Description:           item.Description,
		Style:                 item.Style,
		Source:                item.Source,
		Age:                   item.Age,
		Size:                  item.Size,
		Color:                 item.Color,
		Condition:             item.Condition,
		PurchasePrice:         item.PurchasePrice,
		TargetPrice:           item.TargetPrice,
		ActualSalePrice:       item.ActualSalePrice,
		ParcelSize:            item.ParcelSize,
		InternationalShipping: item.InternationalShipping,
		City:                  item.City,
		Photos:                photos,
		Hashtags:              item.Hashtags,
		Status:                item.Status,
		DateAdded:             item.DateAdded,
		DateListed:            item.DateListed,
		DateSold:              item.DateSold,
		Likes:                 item.Likes,
		Views:                 item.Views,
		Notes:                 item.Notes,
		AssetFolder:           item.AssetFolder,
	}
}

func photoID(name string) string {
	h := fnv.New64a()
	h.Write([]byte(name))
	return strconv.FormatUint(h.Sum64(), 10)
}
