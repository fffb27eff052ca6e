package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/checkout"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
	"buylink.app/buylink-web/internal/validation"
)

// progressOf maps the persisted session state into the orchestrator's view
// of checkout progress.
func progressOf(sess *mw.SessionData) checkout.Progress {
	return checkout.Progress{
		AddressID:     sess.Checkout.AddressID,
		ReceiverName:  sess.Checkout.ReceiverName,
		ReceiverPhone: sess.Checkout.ReceiverPhone,
		CustomsCode:   sess.Checkout.CustomsCode,
	}
}

// CheckoutHandler renders the order/payment page: address and customs
// sections, the whole-cart estimate, agreement and the pay button.
func CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)

	contents, err := backend.CartContents(r.Context())
	if err != nil {
		appLogger.Warn("checkout cart fetch failed", zap.Error(err))
		renderPage(w, r, "page_checkout", PageData{
			Title:   i18nOrDefault(lang, "checkout.title", "주문/결제"),
			Lang:    lang,
			Path:    r.URL.Path,
			Nav:     nav.Build(r.URL.Path),
			Content: CheckoutView{Lang: lang, Error: cartErrorMessage(lang, err)},
		})
		return
	}

	extraPackaging := r.URL.Query().Get("extra_packaging") != "off"
	insurance := r.URL.Query().Get("insurance") != "off"

	view := buildCheckoutView(lang, sess, contents, extraPackaging, insurance)
	if !view.HasAddress {
		// returning customers get the form prefilled from their last
		// registered address; a miss is not an error
		if saved, err := backend.SavedAddress(r.Context()); err == nil && saved.ID != 0 {
			view.AddressForm.Form = validation.AddressForm{
				ReceiverName:    saved.ReceiverName,
				Phone:           saved.Phone,
				RoadAddress:     saved.RoadAddress,
				PostalCode:      saved.PostalCode,
				DetailAddress:   saved.DetailAddress,
				DeliveryRequest: saved.DeliveryRequest,
			}
		}
	}
	if len(view.ItemIDs) > 0 {
		snap := quotes.forSession(sess.ID).Fetch(r.Context(), api.EstimateInput{
			ItemIDs:        view.ItemIDs,
			ExtraPackaging: extraPackaging,
			Insurance:      insurance,
		})
		view.Quote = quoteViewFromSnapshot(lang, snap)
	} else {
		view.Quote = QuoteView{Lang: lang, Failed: true, Message: i18nBundle.T(lang, "estimate.error.noitems")}
	}

	renderPage(w, r, "page_checkout", PageData{
		Title:   i18nOrDefault(lang, "checkout.title", "주문/결제"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: view,
	})
}

// CheckoutAddressSearchFrag runs the postal address search and renders the
// result list for the address modal.
func CheckoutAddressSearchFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	keyword := r.URL.Query().Get("keyword")

	page, err := backend.SearchAddress(r.Context(), keyword)
	if err != nil {
		appLogger.Warn("address search failed", zap.Error(err))
		renderTemplate(w, r, "frag_address_results", AddressSearchView{
			Lang:  lang,
			Error: i18nBundle.T(lang, "address.error.search"),
		})
		return
	}
	renderTemplate(w, r, "frag_address_results", AddressSearchView{
		Lang:    lang,
		Results: page.Addresses,
	})
}

// CheckoutAddressSubmit validates and registers the delivery address, then
// persists {addressID, receiver name, receiver phone} into the cross-page
// session. Field errors re-render the form; a backend failure leaves the
// session untouched.
func CheckoutAddressSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := validation.AddressForm{
		ReceiverName:    r.PostFormValue("receiver_name"),
		Phone:           r.PostFormValue("phone"),
		RoadAddress:     r.PostFormValue("road_address"),
		PostalCode:      r.PostFormValue("postal_code"),
		DetailAddress:   r.PostFormValue("detail_address"),
		DeliveryRequest: r.PostFormValue("delivery_request"),
	}

	saved, fieldErrs, err := orch.RegisterAddress(r.Context(), form)
	if validation.HasErrors(fieldErrs) {
		renderTemplate(w, r, "frag_address_form", AddressFormView{
			Lang:   lang,
			Form:   form,
			Errors: localizeFieldErrors(lang, fieldErrs),
		})
		return
	}
	if err != nil {
		appLogger.Warn("address register failed", zap.Error(err))
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = i18nBundle.T(lang, "address.error.register")
		}
		renderTemplate(w, r, "frag_address_form", AddressFormView{Lang: lang, Form: form, Error: msg})
		return
	}

	sess.Checkout.AddressID = saved.ID
	sess.Checkout.ReceiverName = saved.ReceiverName
	sess.Checkout.ReceiverPhone = saved.Phone
	sess.MarkDirty()

	renderTemplate(w, r, "frag_address_saved", AddressSavedView{Lang: lang, Address: saved})
}

// CheckoutCustomsSubmit verifies the customs clearance code. The registered
// address is a precondition; the format check and the registry check each
// fail with their own message. On success the code lands in the session.
func CheckoutCustomsSubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	code := r.PostFormValue("customs_code")

	name, err := orch.VerifyCustoms(r.Context(), progressOf(sess), code)
	if err != nil {
		renderTemplate(w, r, "frag_customs_result", CustomsView{
			Lang:  lang,
			Error: customsErrorMessage(lang, err),
		})
		return
	}

	sess.Checkout.CustomsCode = code
	sess.MarkDirty()
	renderTemplate(w, r, "frag_customs_result", CustomsView{Lang: lang, Verified: true, HolderName: name})
}

// CheckoutPaySubmit gates the payment preconditions, re-derives the payable
// amount from a fresh estimate and renders the hosted widget invocation.
func CheckoutPaySubmit(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	contents, err := backend.CartContents(r.Context())
	if err != nil {
		renderTemplate(w, r, "frag_pay_result", PayView{Lang: lang, Error: cartErrorMessage(lang, err)})
		return
	}

	inv, err := orch.BeginPayment(r.Context(), checkout.BeginPaymentInput{
		Progress:       progressOf(sess),
		Agreed:         r.PostFormValue("agree") == "on",
		ItemIDs:        allItemIDs(contents),
		ExtraPackaging: r.PostFormValue("extra_packaging") == "on",
		Insurance:      r.PostFormValue("insurance") == "on",
	})
	if err != nil {
		renderTemplate(w, r, "frag_pay_result", PayView{Lang: lang, Error: payErrorMessage(lang, err)})
		return
	}

	renderTemplate(w, r, "frag_pay_widget", PayWidgetView{
		Lang:      lang,
		ClientKey: pspClientKey,
		Invoke:    inv,
	})
}

func customsErrorMessage(lang string, err error) string {
	var fe *checkout.FieldError
	switch {
	case errors.Is(err, checkout.ErrAddressRequired):
		return i18nBundle.T(lang, "customs.error.addressfirst")
	case errors.Is(err, checkout.ErrCustomsRejected):
		return i18nBundle.T(lang, "customs.error.rejected")
	case errors.As(err, &fe):
		return i18nBundle.T(lang, fe.Key)
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return i18nBundle.T(lang, "customs.error.verify")
}

func payErrorMessage(lang string, err error) string {
	switch {
	case errors.Is(err, checkout.ErrAddressRequired):
		return i18nBundle.T(lang, "pay.error.address")
	case errors.Is(err, checkout.ErrCustomsRequired):
		return i18nBundle.T(lang, "pay.error.customs")
	case errors.Is(err, checkout.ErrAgreementRequired):
		return i18nBundle.T(lang, "pay.error.agree")
	case errors.Is(err, checkout.ErrNothingSelected):
		return i18nBundle.T(lang, "pay.error.noitems")
	case errors.Is(err, checkout.ErrInvalidAmount):
		return i18nBundle.T(lang, "pay.error.amount")
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return i18nBundle.T(lang, "pay.error.begin")
}

func localizeFieldErrors(lang string, errs map[string]string) map[string]string {
	out := make(map[string]string, len(errs))
	for field, key := range errs {
		out[field] = i18nBundle.T(lang, key)
	}
	return out
}
