package repository

import "github.com/kunaalDhar/WIMS-inventory-AT-sub001/internal/model"

// MovementFilter narrows a movement listing.
type MovementFilter struct {
	ItemID string
	Type   model.MovementType
	Page   int
	Limit  int
}

// Apply filters movements (already most-recent-first) and returns the requested
// page together with the total number of matches.
func (f MovementFilter) Apply(movements []model.StockMovement) ([]model.StockMovement, int) {
	matched := make([]model.StockMovement, 0, len(movements))
	for _, m := range movements {
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		matched = append(matched, m)
	}

	page := f.Page
	limit := f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []model.StockMovement{}, len(matched)
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], len(matched)
}
