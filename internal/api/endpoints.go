package api

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"buylink.app/buylink-web/internal/cart"
)

// ResolveProduct asks the backend to scrape a marketplace product URL and
// returns the resulting draft. Quantity defaults to 1; the draft is not yet
// in the server-side cart.
func (c *Client) ResolveProduct(ctx context.Context, productURL string) (cart.ProductDraft, error) {
	body := map[string]string{"url": strings.TrimSpace(productURL)}
	var draft cart.ProductDraft
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/products/fetch", nil, body, &draft, nil); err != nil {
		return cart.ProductDraft{}, err
	}
	if draft.Quantity <= 0 {
		draft.Quantity = 1
	}
	return draft, nil
}

// AddCartItems pushes resolved drafts into the server-side cart and returns
// the refreshed contents (items now carry backend-assigned ids).
func (c *Client) AddCartItems(ctx context.Context, drafts []cart.ProductDraft) (CartContents, error) {
	body := map[string]any{"items": drafts}
	var wire wireCartContents
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/cart", nil, body, &wire, nil); err != nil {
		return CartContents{}, err
	}
	return wire.canonical(), nil
}

// CartContents fetches the server-side cart.
func (c *Client) CartContents(ctx context.Context) (CartContents, error) {
	var wire wireCartContents
	if err := c.doEnvelope(ctx, http.MethodGet, "/api/cart", nil, nil, &wire, nil); err != nil {
		return CartContents{}, err
	}
	return wire.canonical(), nil
}

// RemoveCartItems deletes the given item ids from the server-side cart.
func (c *Client) RemoveCartItems(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := url.Values{"ids": []string{joinIDs(ids)}}
	return c.doEnvelope(ctx, http.MethodDelete, "/api/cart", query, nil, nil, nil)
}

// Estimate requests a fresh shipping and fee quote for the selected items.
func (c *Client) Estimate(ctx context.Context, in EstimateInput) (cart.Estimate, error) {
	if in.ItemIDs == nil {
		in.ItemIDs = []int64{}
	}
	var est cart.Estimate
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/cart/estimate", nil, in, &est, nil); err != nil {
		return cart.Estimate{}, err
	}
	return est, nil
}

// SearchAddress runs a postal address search for the given keyword.
func (c *Client) SearchAddress(ctx context.Context, keyword string) (AddressPage, error) {
	query := url.Values{"keyword": []string{strings.TrimSpace(keyword)}}
	var page AddressPage
	if err := c.doEnvelope(ctx, http.MethodGet, "/api/address/search", query, nil, &page, nil); err != nil {
		return AddressPage{}, err
	}
	return page, nil
}

// RegisterAddress stores a delivery address and returns it with the
// backend-assigned id.
func (c *Client) RegisterAddress(ctx context.Context, in AddressInput) (SavedAddress, error) {
	var saved SavedAddress
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/orders/address", nil, in, &saved, nil); err != nil {
		return SavedAddress{}, err
	}
	return saved, nil
}

// SavedAddress returns the currently registered delivery address.
func (c *Client) SavedAddress(ctx context.Context) (SavedAddress, error) {
	var saved SavedAddress
	if err := c.doEnvelope(ctx, http.MethodGet, "/api/orders/address", nil, nil, &saved, nil); err != nil {
		return SavedAddress{}, err
	}
	return saved, nil
}

// VerifyCustomsCode checks a personal customs clearance code against the
// registry. The endpoint predates the response envelope, so both shapes are
// accepted.
func (c *Client) VerifyCustomsCode(ctx context.Context, code string) (CustomsVerification, error) {
	body := map[string]string{"code": strings.TrimSpace(code)}
	res, err := c.do(ctx, http.MethodPost, "/api/orders/customs-code/verify", nil, body, nil)
	if err != nil {
		return CustomsVerification{}, err
	}
	if res.status < 200 || res.status > 299 {
		return CustomsVerification{}, &Error{Status: res.status, Message: drainMessage(res.body)}
	}
	v, err := decodeCustomsVerification(res.body)
	if err != nil {
		return CustomsVerification{}, &Error{Status: res.status, Err: err}
	}
	return v, nil
}

// ConfirmPayment verifies a PSP payment with the backend. The caller must
// reject any result whose Status is not StatusDone.
func (c *Client) ConfirmPayment(ctx context.Context, in PaymentConfirmation) (PaymentResult, error) {
	var wire wirePaymentResult
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/orders/pay", nil, in, &wire, nil); err != nil {
		return PaymentResult{}, err
	}
	return wire.canonical(), nil
}

// CreateOrder creates the final order after payment verification. The
// payment key rides as the idempotency key so a user-triggered retry of the
// success page cannot create a duplicate order.
func (c *Client) CreateOrder(ctx context.Context, in OrderCreateInput) (OrderReceipt, error) {
	var extra http.Header
	if key := strings.TrimSpace(in.PaymentKey); key != "" {
		extra = http.Header{idempotencyHeader: []string{key}}
	}
	var wire wireOrderReceipt
	if err := c.doEnvelope(ctx, http.MethodPost, "/api/orders", nil, in, &wire, extra); err != nil {
		return OrderReceipt{}, err
	}
	return wire.canonical(), nil
}

// Order fetches the full order record by id. Receiver name and phone are
// required for the history lookup; the confirmation view passes the values
// kept in the checkout session.
func (c *Client) Order(ctx context.Context, orderID, receiver, phone string) (OrderDetail, error) {
	query := url.Values{}
	if receiver != "" {
		query.Set("receiver", receiver)
	}
	if phone != "" {
		query.Set("phone", phone)
	}
	path := "/api/orders/" + url.PathEscape(strings.TrimSpace(orderID))
	var wire wireOrderDetail
	if err := c.doEnvelope(ctx, http.MethodGet, path, query, nil, &wire, nil); err != nil {
		return OrderDetail{}, err
	}
	detail := wire.canonical()
	if detail.OrderID == "" {
		detail.OrderID = strings.TrimSpace(orderID)
	}
	return detail, nil
}

// Ping issues a bare GET against the given path and reports the round-trip
// time. Probes skip the envelope and the circuit breaker; any 2xx counts as
// healthy.
func (c *Client) Ping(ctx context.Context, path string) (time.Duration, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return 0, &Error{Err: err}
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &Error{Err: err}
	}
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &Error{Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	elapsed := time.Since(start)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return elapsed, &Error{Status: resp.StatusCode}
	}
	return elapsed, nil
}
