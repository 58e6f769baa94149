package domain

import (
	"fmt"
	"time"
)

type BoxCategory string

const (
	CategoryRSC    BoxCategory = "rsc"
	CategoryDieCut BoxCategory = "die_cut"
	CategorySheet  BoxCategory = "sheet"
)

// ValidBoxCategories is the canonical set of accepted box category strings.
var ValidBoxCategories = map[string]bool{
	"rsc": true, "die_cut": true, "sheet": true,
}

// Vendor is a corrugator supplying the plant. Default daily allotments per
// category live in VendorAllotment rows.
type Vendor struct {
	ID   int64
	Name string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VendorAllotment is a vendor's default daily capacity for one box category.
type VendorAllotment struct {
	VendorID int64
	Category BoxCategory
	Quantity int
}

// AllotmentOverride replaces a vendor's default allotment for a single date.
type AllotmentOverride struct {
	VendorID int64
	Category BoxCategory
	Date     time.Time
	Quantity int
}

// QueueLine is a unit of production work belonging to one capacity bin.
type QueueLine struct {
	ID          int64
	VendorID    int64
	Category    BoxCategory
	Date        time.Time
	Seq         int
	Quantity    int
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BinKey is the stable key for the (vendor, category, date) capacity bin.
func BinKey(vendorID int64, cat BoxCategory, date time.Time) string {
	return fmt.Sprintf("%d|%s|%s", vendorID, cat, date.UTC().Format(DateLayout))
}

func (l *QueueLine) BinKey() string {
	return BinKey(l.VendorID, l.Category, l.Date)
}
