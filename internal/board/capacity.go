package board

import (
	"sort"
	"time"

	"github.com/alexanderramin/haulboard/internal/domain"
)

// CapacityBin aggregates queue lines for one (vendor, category, date) and
// tracks the daily allotment against the scheduled quantity.
//
// Invariant: Scheduled always equals the sum of Lines quantities; the store
// recomputes bins after every write so nothing downstream sums ad hoc.
type CapacityBin struct {
	VendorID   int64
	Category   domain.BoxCategory
	Date       time.Time
	Allotment  int
	IsOverride bool
	Lines      []*domain.QueueLine // ordinal order
	Scheduled  int
}

func (b *CapacityBin) Key() string {
	return domain.BinKey(b.VendorID, b.Category, b.Date)
}

// Remaining is the unscheduled capacity, never negative.
func (b *CapacityBin) Remaining() int {
	if rem := b.Allotment - b.Scheduled; rem > 0 {
		return rem
	}
	return 0
}

// EffectiveAllotment resolves a bin's daily allotment: the date-specific
// override when one exists, otherwise the vendor's category default. The
// bool reports whether an override applied.
func (s *Store) EffectiveAllotment(vendorID int64, cat domain.BoxCategory, date time.Time) (int, bool) {
	if o := s.overrides[domain.BinKey(vendorID, cat, date)]; o != nil {
		return o.Quantity, true
	}
	return s.allotments[allotmentKey(vendorID, cat)], false
}

// Bin returns the capacity bin for (vendor, category, date). A bin with no
// lines is synthesized on the fly so the view can show empty capacity.
func (s *Store) Bin(vendorID int64, cat domain.BoxCategory, date time.Time) *CapacityBin {
	if b := s.bins[domain.BinKey(vendorID, cat, date)]; b != nil {
		return b
	}
	allot, ovr := s.EffectiveAllotment(vendorID, cat, date)
	return &CapacityBin{
		VendorID:   vendorID,
		Category:   cat,
		Date:       date,
		Allotment:  allot,
		IsOverride: ovr,
	}
}

// BinsOn returns all non-empty bins for a date, sorted by vendor then
// category for stable rendering.
func (s *Store) BinsOn(date time.Time) []*CapacityBin {
	key := date.UTC().Format(domain.DateLayout)
	var out []*CapacityBin
	for _, b := range s.bins {
		if b.Date.UTC().Format(domain.DateLayout) == key {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VendorID != out[j].VendorID {
			return out[i].VendorID < out[j].VendorID
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Vendors returns all vendors sorted by name.
func (s *Store) Vendors() []*domain.Vendor {
	out := make([]*domain.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Line returns a queue line by id, or nil.
func (s *Store) Line(id int64) *domain.QueueLine {
	return s.lines[id]
}

func (s *Store) reindexBins() {
	s.bins = make(map[string]*CapacityBin)

	ids := make([]*domain.QueueLine, 0, len(s.lines))
	for _, l := range s.lines {
		ids = append(ids, l)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Seq != ids[j].Seq {
			return ids[i].Seq < ids[j].Seq
		}
		return ids[i].ID < ids[j].ID
	})

	for _, l := range ids {
		key := l.BinKey()
		b := s.bins[key]
		if b == nil {
			allot, ovr := s.EffectiveAllotment(l.VendorID, l.Category, l.Date)
			b = &CapacityBin{
				VendorID:   l.VendorID,
				Category:   l.Category,
				Date:       l.Date,
				Allotment:  allot,
				IsOverride: ovr,
			}
			s.bins[key] = b
		}
		b.Lines = append(b.Lines, l)
		b.Scheduled += l.Quantity
	}
}
