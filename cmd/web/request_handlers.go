package main

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/nav"
)

// RequestPageHandler renders the product request page: paste a marketplace
// link, review the resolved drafts, pick what goes into the cart.
func RequestPageHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	view := buildRequestView(lang, drafts.Get(sess.ID), "")

	renderPage(w, r, "page_request", PageData{
		Title:   i18nOrDefault(lang, "request.title", "구매대행 요청"),
		Lang:    lang,
		Path:    r.URL.Path,
		Nav:     nav.Build(r.URL.Path),
		Content: view,
	})
}

// RequestResolveFrag resolves the submitted URL into a draft and re-renders
// the draft list fragment. A failed resolution keeps the existing drafts and
// shows the backend's message.
func RequestResolveFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	rawURL := strings.TrimSpace(r.PostFormValue("product_url"))
	if rawURL == "" {
		view := buildRequestView(lang, drafts.Get(sess.ID), i18nBundle.T(lang, "request.error.url"))
		renderTemplate(w, r, "frag_request_list", view)
		return
	}

	draft, err := backend.ResolveProduct(r.Context(), rawURL)
	if err != nil {
		appLogger.Warn("product resolve failed", zap.String("url", rawURL), zap.Error(err))
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = i18nBundle.T(lang, "request.error.resolve")
		}
		view := buildRequestView(lang, drafts.Get(sess.ID), msg)
		renderTemplate(w, r, "frag_request_list", view)
		return
	}
	draft.ProductDescription = sanitizer.Sanitize(draft.ProductDescription)
	drafts.Append(sess.ID, draft)

	view := buildRequestView(lang, drafts.Get(sess.ID), "")
	renderTemplate(w, r, "frag_request_list", view)
}

// RequestDeleteFrag removes one draft by position and re-renders the list.
// Sold-out flags are re-derived afterwards, so deleting the first of two
// identical links revives the second.
func RequestDeleteFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	idx, err := strconv.Atoi(r.PostFormValue("index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}
	drafts.RemoveAt(sess.ID, idx)

	view := buildRequestView(lang, drafts.Get(sess.ID), "")
	renderTemplate(w, r, "frag_request_list", view)
}

// RequestAddToCartHandler pushes the selected, purchasable drafts into the
// backend cart and sends the user to the cart page. Sold-out drafts are
// dropped from the selection server-side regardless of what was submitted.
func RequestAddToCartHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	current := drafts.Get(sess.ID)
	view := buildRequestView(lang, current, "")
	picked := make(map[int]bool, len(r.PostForm["selected"]))
	for _, v := range r.PostForm["selected"] {
		if i, err := strconv.Atoi(v); err == nil {
			picked[i] = true
		}
	}

	var chosen, remaining []int
	for i, item := range view.Items {
		if picked[i] && !item.IsSoldOut {
			chosen = append(chosen, i)
		} else {
			remaining = append(remaining, i)
		}
	}
	if len(chosen) == 0 {
		view.Error = i18nBundle.T(lang, "request.error.noneselected")
		renderTemplate(w, r, "frag_request_list", view)
		return
	}

	adds := pickDrafts(current, chosen)
	if _, err := backend.AddCartItems(r.Context(), adds); err != nil {
		appLogger.Warn("add to cart failed", zap.Int("count", len(adds)), zap.Error(err))
		msg := api.ServerMessage(err)
		if msg == "" {
			msg = i18nBundle.T(lang, "request.error.addcart")
		}
		view.Error = msg
		renderTemplate(w, r, "frag_request_list", view)
		return
	}
	drafts.Set(sess.ID, pickDrafts(current, remaining))

	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", "/cart")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
