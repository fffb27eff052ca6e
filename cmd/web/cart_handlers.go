package main

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
)

// CartHandler renders the cart page with the server-side cart contents.
func CartHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)

	contents, err := backend.CartContents(r.Context())
	if err != nil {
		appLogger.Warn("cart fetch failed", zap.Error(err))
		view := CartPageView{Lang: lang, Error: cartErrorMessage(lang, err)}
		renderPage(w, r, "page_cart", PageData{
			Title:   i18nOrDefault(lang, "cart.title", "장바구니"),
			Lang:    lang,
			Path:    r.URL.Path,
			Nav:     nav.Build(r.URL.Path),
			Content: view,
		})
		return
	}

	view := buildCartPageView(lang, contents, selectionFromForm(r.URL.Query()["selected"]))
	view.Quote = quoteViewFromSnapshot(lang, quotes.forSession(sess.ID).Snapshot())
	renderPage(w, r, "page_cart", PageData{
		Title:   i18nOrDefault(lang, "cart.title", "장바구니"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: view,
	})
}

// CartEstimateFrag re-runs the estimate for the submitted selection and
// renders the quote fragment. The no-items guard fires before any backend
// call.
func CartEstimateFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	contents, err := backend.CartContents(r.Context())
	if err != nil {
		renderTemplate(w, r, "frag_cart_quote", QuoteView{Lang: lang, Failed: true, Message: cartErrorMessage(lang, err)})
		return
	}

	sel := boundedSelection(contents, selectionFromForm(r.PostForm["selected"]))
	snap := quotes.forSession(sess.ID).Fetch(r.Context(), api.EstimateInput{
		ItemIDs:        sel,
		ExtraPackaging: r.PostFormValue("extra_packaging") == "on",
		Insurance:      r.PostFormValue("insurance") == "on",
	})
	renderTemplate(w, r, "frag_cart_quote", quoteViewFromSnapshot(lang, snap))
}

// CartRemoveHandler deletes the submitted item ids from the backend cart and
// re-renders the item list fragment.
func CartRemoveHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	var ids []int64
	for _, v := range r.PostForm["ids"] {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		http.Error(w, "no items", http.StatusBadRequest)
		return
	}
	if err := backend.RemoveCartItems(r.Context(), ids); err != nil {
		appLogger.Warn("cart remove failed", zap.Int64s("ids", ids), zap.Error(err))
		renderTemplate(w, r, "frag_cart_items", CartPageView{Lang: lang, Error: cartErrorMessage(lang, err)})
		return
	}

	contents, err := backend.CartContents(r.Context())
	if err != nil {
		renderTemplate(w, r, "frag_cart_items", CartPageView{Lang: lang, Error: cartErrorMessage(lang, err)})
		return
	}
	renderTemplate(w, r, "frag_cart_items", buildCartPageView(lang, contents, nil))
}

func cartErrorMessage(lang string, err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return i18nBundle.T(lang, "cart.error.fetch")
}
