package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/checkout"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
)

// PaymentResultView backs the payment failure page.
type PaymentResultView struct {
	Lang    string
	Code    string
	Message string
}

// PaymentSuccessHandler is the PSP success redirect target. This is a fresh
// page load: everything needed comes from the query string and the signed
// session. The payment is verified with the backend, the order is created,
// and the user lands on the confirmation page.
func PaymentSuccessHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	q := r.URL.Query()

	amount, _ := strconv.ParseInt(q.Get("amount"), 10, 64)
	receipt, err := orch.CompletePayment(r.Context(), checkout.CompleteInput{
		Progress:   progressOf(sess),
		PaymentKey: q.Get("paymentKey"),
		OrderRef:   q.Get("orderId"),
		Amount:     amount,
	})
	if err != nil {
		appLogger.Warn("payment completion failed",
			zap.String("order_ref", q.Get("orderId")),
			zap.Error(err))
		renderPage(w, r, "page_payment_fail", PageData{
			Title:   i18nOrDefault(lang, "payment.fail.title", "결제 실패"),
			Lang:    lang,
			Path:    r.URL.Path,
			Nav:     nav.Build(r.URL.Path),
			Content: PaymentResultView{Lang: lang, Message: completionErrorMessage(lang, err)},
		})
		return
	}

	// checkout state stays: the confirmation page needs receiver name and
	// phone to re-fetch the order detail
	http.Redirect(w, r, "/order-complete?orderId="+url.QueryEscape(receipt.OrderID), http.StatusSeeOther)
}

// PaymentFailHandler is the PSP fail redirect target; it echoes the PSP's
// error code and message.
func PaymentFailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	q := r.URL.Query()
	msg := q.Get("message")
	if msg == "" {
		msg = i18nBundle.T(lang, "payment.fail.generic")
	}
	renderPage(w, r, "page_payment_fail", PageData{
		Title:   i18nOrDefault(lang, "payment.fail.title", "결제 실패"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: PaymentResultView{Lang: lang, Code: q.Get("code"), Message: msg},
	})
}

func completionErrorMessage(lang string, err error) string {
	switch {
	case errors.Is(err, checkout.ErrPaymentParams):
		return i18nBundle.T(lang, "payment.error.params")
	case errors.Is(err, checkout.ErrPaymentNotDone):
		return i18nBundle.T(lang, "payment.error.notdone")
	case errors.Is(err, checkout.ErrMissingOrderID):
		return i18nBundle.T(lang, "payment.error.noorderid")
	}
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return i18nBundle.T(lang, "payment.error.complete")
}
