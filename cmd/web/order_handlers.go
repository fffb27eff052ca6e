package main

import (
	"net/http"

	"go.uber.org/zap"

	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
	"buylink.app/buylink-web/internal/validation"
)

// OrderCompleteHandler renders the confirmation page. The order detail is
// always re-fetched by id: the payment redirect was a full navigation and no
// in-memory state survived it.
func OrderCompleteHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	orderID := r.URL.Query().Get("orderId")

	if orderID == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	detail, err := backend.Order(r.Context(), orderID, sess.Checkout.ReceiverName, sess.Checkout.ReceiverPhone)
	if err != nil {
		appLogger.Warn("order confirmation fetch failed", zap.String("order_id", orderID), zap.Error(err))
		renderPage(w, r, "page_order_complete", PageData{
			Title:   i18nOrDefault(lang, "order.complete.title", "주문 완료"),
			Lang:    lang,
			Path:    r.URL.Path,
			Nav:     nav.Build(r.URL.Path),
			Content: OrderView{Lang: lang, OrderID: orderID, Error: i18nBundle.T(lang, "order.error.fetch")},
		})
		return
	}

	renderPage(w, r, "page_order_complete", PageData{
		Title:   i18nOrDefault(lang, "order.complete.title", "주문 완료"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: buildOrderView(lang, detail),
	})
}

// OrderHistoryHandler renders the lookup form and, on submission, the order
// detail. A mismatched receiver and a nonexistent order produce the same
// generic message; the lookup must not reveal which field was wrong.
func OrderHistoryHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	view := OrderLookupView{Lang: lang}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		form := validation.OrderLookupForm{
			ReceiverName: r.PostFormValue("receiver_name"),
			Phone:        r.PostFormValue("phone"),
			OrderID:      r.PostFormValue("order_id"),
		}
		view.Form = form

		if errs := validation.ValidateOrderLookup(form); validation.HasErrors(errs) {
			view.FieldErrors = localizeFieldErrors(lang, errs)
		} else {
			orderID := validation.NormalizeDigits(form.OrderID)
			detail, err := backend.Order(r.Context(), orderID, form.ReceiverName, form.Phone)
			if err != nil {
				appLogger.Info("order lookup missed", zap.String("order_id", orderID))
				view.Error = i18nBundle.T(lang, "lookup.error.notfound")
			} else {
				order := buildOrderView(lang, detail)
				view.Order = &order
			}
		}
	}

	renderPage(w, r, "page_order_history", PageData{
		Title:   i18nOrDefault(lang, "order.history.title", "주문 조회"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: view,
	})
}
