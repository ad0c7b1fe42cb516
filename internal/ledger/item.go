package ledger

import "strings"

// MaxPhotos is the number of photo reference columns in the ledger.
const MaxPhotos = 4

// Columns is the fixed, ordered ledger schema. Every row populates every
// column; absent values are empty strings.
var Columns = []string{
	"Item_ID",
	"Brand",
	"Category",
	"Subcategory",
	"Title",
	"Description",
	"Style",
	"Source",
	"Age",
	"Size",
	"Color",
	"Condition",
	"Purchase_Price",
	"Target_Price",
	"Actual_Sale_Price",
	"Parcel_Size",
	"International_Shipping",
	"City",
	"Photo_1",
	"Photo_2",
	"Photo_3",
	"Photo_4",
	"Hashtags",
	"Status",
	"Date_Added",
	"Date_Listed",
	"Date_Sold",
	"Likes",
	"Views",
	"Notes",
	"Depop_Folder",
}

// Item is one ledger row.
type Item struct {
	ID                    string
	Brand                 string
	Category              string
	Subcategory           string
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
	ActualSalePrice       string
	ParcelSize            string
	InternationalShipping string
	City                  string
	Photos                []string
	Hashtags              string
	Status                string
	DateAdded             string
	DateListed            string
	DateSold              string
	Likes                 string
	Views                 string
	Notes                 string
	AssetFolder           string
}

// BaseCategory returns the category portion before any " > Subcategory"
// suffix, as stored by combined category columns.
func (it *Item) BaseCategory() string {
	base, _, _ := strings.Cut(it.Category, " > ")
	return strings.TrimSpace(base)
}

// CategoryFolder is the lowercased base category used as the replication
// folder name.
func (it *Item) CategoryFolder() string {
	return strings.ToLower(it.BaseCategory())
}

// record flattens the item into the fixed column order.
func (it *Item) record() []string {
	photos := make([]string, MaxPhotos)
	for i := 0; i < MaxPhotos && i < len(it.Photos); i++ {
		photos[i] = it.Photos[i]
	}
	return []string{
		it.ID,
		it.Brand,
		it.Category,
		it.Subcategory,
		it.Title,
		it.Description,
		it.Style,
		it.Source,
		it.Age,
		it.Size,
		it.Color,
		it.Condition,
		it.PurchasePrice,
		it.TargetPrice,
		it.ActualSalePrice,
		it.ParcelSize,
		it.InternationalShipping,
		it.City,
		photos[0],
		photos[1],
		photos[2],
		photos[3],
		it.Hashtags,
		it.Status,
		it.DateAdded,
		it.DateListed,
		it.DateSold,
		it.Likes,
		it.Views,
		it.Notes,
		it.AssetFolder,
	}
}

// itemFromFields builds an Item from a column-name-keyed row. Missing
// columns read as empty strings.
func itemFromFields(get func(column string) string) Item {
	item := Item{
		ID:                    get("Item_ID"),
		Brand:                 get("Brand"),
		Category:              get("Category"),
		Subcategory:           get("Subcategory"),
		Title:                 get("Title"),
		Description:           get("Description"),
		Style:                 get("Style"),
		Source:                get("Source"),
		Age:                   get("Age"),
		Size:                  get("Size"),
		Color:                 get("Color"),
		Condition:             get("Condition"),
		PurchasePrice:         get("Purchase_Price"),
		TargetPrice:           get("Target_Price"),
		ActualSalePrice:       get("Actual_Sale_Price"),
		ParcelSize:            get("Parcel_Size"),
		InternationalShipping: get("International_Shipping"),
		City:                  get("City"),
		Hashtags:              get("Hashtags"),
		Status:                get("Status"),
		DateAdded:             get("Date_Added"),
		DateListed:            get("Date_Listed"),
		DateSold:              get("Date_Sold"),
		Likes:                 get("Likes"),
		Views:                 get("Views"),
		Notes:                 get("Notes"),
		AssetFolder:           get("Depop_Folder"),
	}
	for _, column := range []string{"Photo_1", "Photo_2", "Photo_3", "Photo_4"} {
		if value := get(column); value != "" {
			item.Photos = append(item.Photos, value)
		}
	}
	return item
}
