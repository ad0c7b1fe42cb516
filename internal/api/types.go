// Package api exposes the inventory and photo services in a
// transport-friendly format consumed by the organizer UI and the CLI.
package api

// PhotoRef points the UI at one replicated photo.
type PhotoRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Item describes a ledger row in a transport-friendly format.
type Item struct {
	ID                    string     `json:"id"`
	Brand                 string     `json:"brand"`
	Category              string     `json:"category"`
	Subcategory           string     `json:"subcategory,omitempty"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Style                 string     `json:"style,omitempty"`
	Source                string     `json:"source,omitempty"`
	Age                   string     `json:"age,omitempty"`
	Size                  string     `json:"size"`
	Color                 string     `json:"color"`
	Condition             string     `json:"condition"`
	PurchasePrice         string     `json:"purchasePrice"`
	TargetPrice           string     `json:"targetPrice"`
	ActualSalePrice       string     `json:"actualSalePrice,omitempty"`
	ParcelSize            string     `json:"parcelSize,omitempty"`
	InternationalShipping string     `json:"internationalShipping,omitempty"`
	City                  string     `json:"city,omitempty"`
	Photos                []PhotoRef `json:"photos"`
	Hashtags              string     `json:"hashtags"`
	Status                string     `json:"status"`
	DateAdded             string     `json:"dateAdded"`
	DateListed            string     `json:"dateListed,omitempty"`
	DateSold              string     `json:"dateSold,omitempty"`
	Likes                 string     `json:"likes"`
	Views                 string     `json:"views"`
	Notes                 string     `json:"notes"`
	AssetFolder           string     `json:"assetFolder,omitempty"`
}

// SaveItemRequest is the payload for creating or updating an item. A
// populated ItemID selects update; photos only apply on create.
type SaveItemRequest struct {
	ItemID                string   `json:"itemId,omitempty"`
	Photos                []string `json:"photos"`
	Brand                 string   `json:"brand"`
	Category              string   `json:"category"`
	Subcategory           string   `json:"subcategory"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Style                 string   `json:"style"`
	Source                string   `json:"source"`
	Age                   string   `json:"age"`
	Size                  string   `json:"size"`
	Color                 string   `json:"color"`
	Condition             string   `json:"condition"`
	PurchasePrice         string   `json:"purchasePrice"`
	TargetPrice           string   `json:"targetPrice"`
	ParcelSize            string   `json:"parcelSize"`
	InternationalShipping string   `json:"internationalShipping"`
	City                  string   `json:"city"`
	Notes                 string   `json:"notes"`
}

// SaveItemResponse reports the outcome of a save.
type SaveItemResponse struct {
	Success bool   `json:"success"`
	ItemID  string `json:"itemId"`
	Message string `json:"message"`
}

// DeleteItemResponse reports the outcome of a delete, including the
// photo filenames freed from the category folder.
type DeleteItemResponse struct {
	Success     bool     `json:"success"`
	FreedPhotos []string `json:"freedPhotos"`
}

// Stats summarizes organizer progress.
type Stats struct {
	TotalPhotos             int `json:"totalPhotos"`
	CompletedItems          int `json:"completedItems"`
	EstimatedItemsRemaining int `json:"estimatedItemsRemaining"`
}
