// Package cart holds the client-side working state for the cart and product
// request views: resolved product drafts, server-confirmed line items, and the
// selection used to drive estimates. The backend stays the source of truth
// for prices and totals; nothing here computes money.
package cart

import "strings"

// LineItem is one server-confirmed cart entry. Identity is the backend's
// numeric id; URL-keyed legacy flows are translated at ingestion. IsSoldOut
// carries the server-reported flag; duplicate-URL demotion is derived on top
// by NormalizeSoldOut and never written back to the stored list.
type LineItem struct {
	ID          int64  `json:"id"`
	ProductName string `json:"productName"`
	PriceKRW    int64  `json:"priceKRW"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
	IsSoldOut   bool   `json:"isSoldOut"`
	ProductURL  string `json:"productUrl"`
}

// ProductDraft is the result of resolving a marketplace URL, not yet in the
// server-side cart.
type ProductDraft struct {
	ProductURL         string   `json:"productURL"`
	ProductName        string   `json:"productName"`
	ProductDescription string   `json:"productDescription"`
	PriceKRW           int64    `json:"priceKRW"`
	HasShippingFee     bool     `json:"hasShippingFee"`
	Category           string   `json:"category"`
	ImageURLs          []string `json:"imageUrls"`
	IsSoldOut          bool     `json:"isSoldOut"`
	Quantity           int      `json:"quantity"`
}

// Estimate is the server-computed money/weight/volume breakdown. It is always
// replaced wholesale, never patched field by field.
type Estimate struct {
	ProductTotalKRW int64 `json:"productTotalKRW"`
	ServiceFeeKRW   int64 `json:"serviceFeeKRW"`

	TotalActualWeightKg float64 `json:"totalActualWeightKg"`
	TotalVolumeM3       float64 `json:"totalVolumeM3"`
	VolumetricWeightKg  float64 `json:"volumetricWeightKg"`
	ChargeableWeightKg  float64 `json:"chargeableWeightKg"`

	EMSYen                   int64 `json:"emsYen"`
	InternationalShippingKRW int64 `json:"internationalShippingKRW"`
	DomesticShippingKRW      int64 `json:"domesticShippingKRW"`
	TotalShippingFeeKRW      int64 `json:"totalShippingFeeKRW"`

	PaymentFeeKRW        int64 `json:"paymentFeeKRW"`
	ExtraPackagingFeeKRW int64 `json:"extraPackagingFeeKRW"`
	InsuranceFeeKRW      int64 `json:"insuranceFeeKRW"`

	GrandTotalKRW int64 `json:"grandTotalKRW"`
}

// NormalizeDraftSoldOut applies the duplicate-URL rule to product drafts:
// within each group sharing a ProductURL, only the first occurrence keeps its
// reported flag; every later duplicate is rendered sold-out. The input is not
// mutated, so deleting the first occurrence and deriving again revives the
// next one in its group. Idempotent.
func NormalizeDraftSoldOut(drafts []ProductDraft) []ProductDraft {
	out := make([]ProductDraft, len(drafts))
	copy(out, drafts)
	seen := map[string]bool{}
	for i := range out {
		key := strings.TrimSpace(out[i].ProductURL)
		if seen[key] {
			out[i].IsSoldOut = true
			continue
		}
		seen[key] = true
	}
	return out
}

// NormalizeSoldOut applies the same duplicate-URL rule to cart line items.
// Derive after every structural change; keep the server-reported list as the
// base so a removed duplicate can un-sold-out the next surviving item.
func NormalizeSoldOut(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	copy(out, items)
	seen := map[string]bool{}
	for i := range out {
		key := strings.TrimSpace(out[i].ProductURL)
		if seen[key] {
			out[i].IsSoldOut = true
			continue
		}
		seen[key] = true
	}
	return out
}

// Selection tracks which line items participate in the estimate, keyed by the
// backend's numeric id.
type Selection struct {
	ids map[int64]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: map[int64]struct{}{}}
}

// Toggle flips membership for the given item as rendered, so pass the
// normalized item: sold-out items are not selectable and toggling one is a
// no-op.
func (s *Selection) Toggle(item LineItem) {
	if item.IsSoldOut {
		return
	}
	if _, ok := s.ids[item.ID]; ok {
		delete(s.ids, item.ID)
		return
	}
	s.ids[item.ID] = struct{}{}
}

// Has reports whether the item id is selected.
func (s *Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Remove drops the id from the selection (used when the item is deleted).
func (s *Selection) Remove(id int64) { delete(s.ids, id) }

// Len returns the number of selected items.
func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected ids in the order of the supplied item list, so the
// estimate request is stable across renders.
func (s *Selection) IDs(items []LineItem) []int64 {
	out := make([]int64, 0, len(s.ids))
	for _, it := range items {
		if s.Has(it.ID) {
			out = append(out, it.ID)
		}
	}
	return out
}

// Prune drops selection entries whose items no longer exist.
func (s *Selection) Prune(items []LineItem) {
	live := map[int64]struct{}{}
	for _, it := range items {
		live[it.ID] = struct{}{}
	}
	for id := range s.ids {
		if _, ok := live[id]; !ok {
			delete(s.ids, id)
		}
	}
}

// RemoveItem deletes the line item with the given id from the base list and
// drops its selection entry. Callers re-derive the rendered list with
// NormalizeSoldOut afterwards.
func RemoveItem(items []LineItem, sel *Selection, id int64) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.ID == id {
			continue
		}
		out = append(out, it)
	}
	if sel != nil {
		sel.Remove(id)
	}
	return out
}

// RemoveDraft deletes the draft at index from the base list. Rendering
// re-applies NormalizeDraftSoldOut, which may revive a surviving duplicate.
func RemoveDraft(drafts []ProductDraft, index int) []ProductDraft {
	if index < 0 || index >= len(drafts) {
		return drafts
	}
	return append(append([]ProductDraft{}, drafts[:index]...), drafts[index+1:]...)
}
