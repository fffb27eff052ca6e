package main

import (
	"github.com/microcosm-cc/bluemonday"

	"buylink.app/buylink-web/internal/cart"
)

// sanitizer cleans scraped product descriptions before they ever reach a
// template. Backend HTML is untrusted marketplace content.
var sanitizer = bluemonday.UGCPolicy()

// RequestView is the view model for the request page and its list fragment.
type RequestView struct {
	Lang  string
	Items []RequestItem
	Error string
}

// RequestItem is one resolved draft row. Index is the position in the
// session's draft list, used for delete and selection.
type RequestItem struct {
	Index       int
	ProductURL  string
	Name        string
	Description string
	PriceKRW    int64
	Category    string
	ImageURL    string
	IsSoldOut   bool
	HasShipping bool
}

// buildRequestView derives display flags from the pristine draft list. The
// duplicate-URL demotion is computed here, never persisted, so the list
// always reflects the current set.
func buildRequestView(lang string, list []cart.ProductDraft, errMsg string) RequestView {
	normalized := cart.NormalizeDraftSoldOut(list)
	items := make([]RequestItem, 0, len(normalized))
	for i, d := range normalized {
		img := ""
		if len(d.ImageURLs) > 0 {
			img = d.ImageURLs[0]
		}
		items = append(items, RequestItem{
			Index:       i,
			ProductURL:  d.ProductURL,
			Name:        d.ProductName,
			Description: d.ProductDescription,
			PriceKRW:    d.PriceKRW,
			Category:    d.Category,
			ImageURL:    img,
			IsSoldOut:   d.IsSoldOut,
			HasShipping: d.HasShippingFee,
		})
	}
	return RequestView{Lang: lang, Items: items, Error: errMsg}
}

// pickDrafts returns the drafts at the given positions, in order.
func pickDrafts(list []cart.ProductDraft, indexes []int) []cart.ProductDraft {
	out := make([]cart.ProductDraft, 0, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(list) {
			out = append(out, list[i])
		}
	}
	return out
}
