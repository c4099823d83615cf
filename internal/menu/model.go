package menu

// Item is a sellable catalog entry. Price is in the smallest currency unit.
type Item struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Price       int    `db:"price"`
	Category    string `db:"category"`
	ImageURL    string `db:"image_url"` // may hold a base64 data URL
	IsAvailable bool   `db:"is_available"`
}
