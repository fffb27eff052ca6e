package main

import (
	"strconv"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/cart"
	"buylink.app/buylink-web/internal/estimate"
)

// CartPageView is the view model for the cart page and its item fragment.
type CartPageView struct {
	Lang     string
	Items    []CartRow
	Empty    bool
	TotalKRW int64
	Error    string
	Quote    QuoteView
}

// CartRow is one line in the cart table.
type CartRow struct {
	ID        int64
	Name      string
	PriceKRW  int64
	Quantity  int
	ImageURL  string
	IsSoldOut bool
	Selected  bool
}

// QuoteView is the estimate panel state.
type QuoteView struct {
	Lang     string
	Loading  bool
	Ready    bool
	Failed   bool
	Message  string
	Estimate cart.Estimate
}

// buildCartPageView derives the display rows: the sold-out demotion for
// duplicate product URLs is computed from the pristine list at render time.
func buildCartPageView(lang string, contents api.CartContents, selected []int64) CartPageView {
	items := cart.NormalizeSoldOut(contents.Items)
	sel := selectionOf(items, selected)
	rows := make([]CartRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, CartRow{
			ID:        it.ID,
			Name:      it.ProductName,
			PriceKRW:  it.PriceKRW,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
			IsSoldOut: it.IsSoldOut,
			Selected:  sel.Has(it.ID),
		})
	}
	return CartPageView{
		Lang:     lang,
		Items:    rows,
		Empty:    len(rows) == 0,
		TotalKRW: contents.TotalKRW,
	}
}

// selectionFromForm parses submitted id values, dropping garbage.
func selectionFromForm(values []string) []int64 {
	var ids []int64
	for _, v := range values {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// boundedSelection keeps only ids present in the cart and not rendered
// sold-out, in cart order.
func boundedSelection(contents api.CartContents, ids []int64) []int64 {
	items := cart.NormalizeSoldOut(contents.Items)
	return selectionOf(items, ids).IDs(items)
}

// selectionOf toggles the given ids against the rendered items; unknown ids
// and sold-out rows fall out naturally.
func selectionOf(items []cart.LineItem, ids []int64) *cart.Selection {
	byID := make(map[int64]cart.LineItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	sel := cart.NewSelection()
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			sel.Toggle(it)
		}
	}
	return sel
}

func quoteViewFromSnapshot(lang string, snap estimate.Snapshot) QuoteView {
	v := QuoteView{Lang: lang}
	switch snap.State {
	case estimate.StateLoading:
		v.Loading = true
	case estimate.StateReady:
		v.Ready = true
		v.Estimate = snap.Estimate
	case estimate.StateFailed:
		v.Failed = true
		v.Message = snap.Message
		if v.Message == "" && snap.MessageKey != "" {
			v.Message = i18nBundle.T(lang, snap.MessageKey)
		}
	}
	return v
}
