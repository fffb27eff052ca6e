package main

import (
	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/cart"
	"buylink.app/buylink-web/internal/checkout"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/validation"
)

// CheckoutView is the order/payment page view model.
type CheckoutView struct {
	Lang           string
	Stage          string
	Items          []CartRow
	ItemIDs        []int64
	HasAddress     bool
	ReceiverName   string
	ReceiverPhone  string
	HasCustoms     bool
	CustomsCode    string
	ExtraPackaging bool
	Insurance      bool
	Quote          QuoteView
	AddressForm    AddressFormView
	Customs        CustomsView
	Error          string
}

// AddressSearchView backs the address search result fragment.
type AddressSearchView struct {
	Lang    string
	Results []api.AddressResult
	Error   string
}

// AddressFormView backs the address form fragment, re-rendered with errors.
type AddressFormView struct {
	Lang   string
	Form   validation.AddressForm
	Errors map[string]string
	Error  string
}

// AddressSavedView confirms the registered address.
type AddressSavedView struct {
	Lang    string
	Address api.SavedAddress
}

// CustomsView backs the customs verification fragment.
type CustomsView struct {
	Lang       string
	Verified   bool
	HolderName string
	Error      string
}

// PayView carries a pay-attempt failure message.
type PayView struct {
	Lang  string
	Error string
}

// PayWidgetView hands the hosted widget everything it needs to open.
type PayWidgetView struct {
	Lang      string
	ClientKey string
	Invoke    checkout.WidgetInvocation
}

func buildCheckoutView(lang string, sess *mw.SessionData, contents api.CartContents, extraPackaging, insurance bool) CheckoutView {
	items := cart.NormalizeSoldOut(contents.Items)
	rows := make([]CartRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, CartRow{
			ID:        it.ID,
			Name:      it.ProductName,
			PriceKRW:  it.PriceKRW,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
			IsSoldOut: it.IsSoldOut,
		})
	}
	p := progressOf(sess)
	form := AddressFormView{Lang: lang, Form: validation.AddressForm{
		ReceiverName: p.ReceiverName,
		Phone:        p.ReceiverPhone,
	}}
	customs := CustomsView{Lang: lang, Verified: p.HasCustomsCode()}
	return CheckoutView{
		Lang:           lang,
		Stage:          checkout.StageOf(p, false).String(),
		Items:          rows,
		ItemIDs:        allItemIDs(contents),
		HasAddress:     p.HasAddress(),
		ReceiverName:   p.ReceiverName,
		ReceiverPhone:  p.ReceiverPhone,
		HasCustoms:     p.HasCustomsCode(),
		CustomsCode:    p.CustomsCode,
		ExtraPackaging: extraPackaging,
		Insurance:      insurance,
		AddressForm:    form,
		Customs:        customs,
	}
}

// allItemIDs returns every purchasable cart item id in cart order. The
// checkout page quotes and pays for the whole cart.
func allItemIDs(contents api.CartContents) []int64 {
	items := cart.NormalizeSoldOut(contents.Items)
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if it.IsSoldOut {
			continue
		}
		ids = append(ids, it.ID)
	}
	return ids
}
