// Package vendors filters the vendor directory by category.
package vendors

import "github.com/aikyam/site/internal/domain/model"

// All is the category that disables filtering.
const All = "All"

// EmptyMessage is shown when a category has no vendors.
const EmptyMessage = "No vendors found for this category."

// Result is a filtered vendor list.
type Result struct {
	Category string         `json:"category"`
	Vendors  []model.Vendor `json:"vendors"`
	Empty    bool           `json:"empty"`
	Message  string         `json:"message,omitempty"`
}

// Filter returns every vendor for All, or an empty category, and otherwise
// those whose category equals category exactly.
func Filter(all []model.Vendor, category string) Result {
	if category == "" {
		category = All
	}
	var out []model.Vendor
	if category == All {
		out = append([]model.Vendor(nil), all...)
	} else {
		for _, v := range all {
			if v.Cat == category {
				out = append(out, v)
			}
		}
	}
	if out == nil {
		out = []model.Vendor{}
	}
	r := Result{Category: category, Vendors: out}
	if len(out) == 0 {
		r.Empty = true
		r.Message = EmptyMessage
	}
	return r
}

// Categories lists All followed by each distinct category in first-seen order.
func Categories(all []model.Vendor) []string {
	seen := map[string]bool{}
	out := []string{All}
	for _, v := range all {
		if v.Cat == "" || v.Cat == All || seen[v.Cat] {
			continue
		}
		seen[v.Cat] = true
		out = append(out, v.Cat)
	}
	return out
}
