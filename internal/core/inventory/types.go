package inventory

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysUntil returns the number of whole days from now until the date.
// Negative for dates in the past.
func (d Date) DaysUntil(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Time.Sub(today).Hours() / 24)
}

// FoodItem is a perishable item in the inventory.
type FoodItem struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	ExpiryDate     Date   `json:"expiry_date"`
	CategoryID     string `json:"category_id"`
	Barcode        string `json:"barcode,omitempty"`
	ImageURL       string `json:"image_url,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}

// Category groups food items. The two default categories are permanent.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Reserved category identifiers. Items whose category disappears fall back
// to DefaultCategoryID.
const (
	DefaultCategoryID = "fridge"
	FreezerCategoryID = "freezer"
)

// MaxCategoryNameLen bounds user-supplied category names.
const MaxCategoryNameLen = 20

func defaultCategories() []Category {
	return []Category{
		{ID: DefaultCategoryID, Name: "Kjøleskap", Icon: "🧊"},
		{ID: FreezerCategoryID, Name: "Fryser", Icon: "❄️"},
	}
}

// IsDefaultCategory reports whether id is one of the reserved categories.
func IsDefaultCategory(id string) bool {
	return id == DefaultCategoryID || id == FreezerCategoryID
}
