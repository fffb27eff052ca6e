package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"buylink.app/buylink-web/internal/cart"
)

// Schema drift between backend revisions is absorbed here, at the wire
// boundary, so the rest of the app sees exactly one shape per entity:
//   - order ids arrive as "orderId" or "orderNumber", as string or number
//   - item prices arrive as "price" or "priceKRW"
//   - customs verification arrives enveloped or bare
// Everything below is decode-only plumbing for doEnvelope targets.

// flexString decodes a JSON string or number into its string form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	// numeric order ids from older revisions
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexTime decodes an RFC 3339 timestamp, tolerating null or absent values.
type flexTime time.Time

func (f *flexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = flexTime(time.Time{})
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// unparseable dates render as "no date", not as a failed order fetch
		*f = flexTime(time.Time{})
		return nil
	}
	*f = flexTime(t)
	return nil
}

type wireOrderItem struct {
	ID          int64  `json:"id"`
	ProductName string `json:"productName"`
	Price       *int64 `json:"price"`
	PriceKRW    *int64 `json:"priceKRW"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}

func (w wireOrderItem) canonical() OrderItem {
	price := int64(0)
	switch {
	case w.Price != nil:
		price = *w.Price
	case w.PriceKRW != nil:
		price = *w.PriceKRW
	}
	qty := w.Quantity
	if qty <= 0 {
		qty = 1
	}
	return OrderItem{
		ID:          w.ID,
		ProductName: w.ProductName,
		Price:       price,
		Quantity:    qty,
		ImageURL:    w.ImageURL,
	}
}

func canonicalItems(ws []wireOrderItem) []OrderItem {
	items := make([]OrderItem, 0, len(ws))
	for _, w := range ws {
		items = append(items, w.canonical())
	}
	return items
}

type wireCartItem struct {
	ID          int64  `json:"id"`
	ProductName string `json:"productName"`
	Price       *int64 `json:"price"`
	PriceKRW    *int64 `json:"priceKRW"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
	IsSoldOut   bool   `json:"isSoldOut"`
	ProductURL  string `json:"productUrl"`
}

func (w wireCartItem) canonical() cart.LineItem {
	price := int64(0)
	switch {
	case w.PriceKRW != nil:
		price = *w.PriceKRW
	case w.Price != nil:
		price = *w.Price
	}
	qty := w.Quantity
	if qty <= 0 {
		qty = 1
	}
	return cart.LineItem{
		ID:          w.ID,
		ProductName: w.ProductName,
		PriceKRW:    price,
		Quantity:    qty,
		ImageURL:    w.ImageURL,
		IsSoldOut:   w.IsSoldOut,
		ProductURL:  w.ProductURL,
	}
}

type wireCartContents struct {
	Items    []wireCartItem `json:"items"`
	TotalKRW int64          `json:"totalKRW"`
}

func (w wireCartContents) canonical() CartContents {
	items := make([]cart.LineItem, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, it.canonical())
	}
	return CartContents{Items: items, TotalKRW: w.TotalKRW}
}

type wireOrderReceipt struct {
	OrderID       flexString      `json:"orderId"`
	OrderNumber   flexString      `json:"orderNumber"`
	Receiver      string          `json:"receiver"`
	PaymentMethod *string         `json:"paymentMethod"`
	TotalAmount   int64           `json:"totalAmount"`
	Items         []wireOrderItem `json:"items"`
}

func (w wireOrderReceipt) canonical() OrderReceipt {
	id := string(w.OrderID)
	if id == "" {
		id = string(w.OrderNumber)
	}
	method := ""
	if w.PaymentMethod != nil {
		method = *w.PaymentMethod
	}
	return OrderReceipt{
		OrderID:       id,
		Receiver:      w.Receiver,
		PaymentMethod: method,
		TotalAmount:   w.TotalAmount,
		Items:         canonicalItems(w.Items),
	}
}

type wireOrderDetail struct {
	OrderID         flexString      `json:"orderId"`
	OrderNumber     flexString      `json:"orderNumber"`
	Receiver        string          `json:"receiver"`
	Phone           string          `json:"phone"`
	PostalCode      string          `json:"postalCode"`
	RoadAddress     string          `json:"roadAddress"`
	DetailAddress   string          `json:"detailAddress"`
	DeliveryRequest string          `json:"deliveryRequest"`
	PaymentMethod   *string         `json:"paymentMethod"`
	TotalAmount     int64           `json:"totalAmount"`
	Items           []wireOrderItem `json:"items"`
	Shipping        Shipping        `json:"shipping"`
	CreatedAt       flexTime        `json:"createdAt"`
}

func (w wireOrderDetail) canonical() OrderDetail {
	id := string(w.OrderID)
	if id == "" {
		id = string(w.OrderNumber)
	}
	method := ""
	if w.PaymentMethod != nil {
		method = *w.PaymentMethod
	}
	return OrderDetail{
		OrderID:         id,
		Receiver:        w.Receiver,
		Phone:           w.Phone,
		PostalCode:      w.PostalCode,
		RoadAddress:     w.RoadAddress,
		DetailAddress:   w.DetailAddress,
		DeliveryRequest: w.DeliveryRequest,
		PaymentMethod:   method,
		TotalAmount:     w.TotalAmount,
		Items:           canonicalItems(w.Items),
		Shipping:        w.Shipping,
		CreatedAt:       time.Time(w.CreatedAt),
	}
}

type wirePaymentResult struct {
	PaymentKey  string     `json:"paymentKey"`
	OrderRef    flexString `json:"orderId"`
	Status      string     `json:"status"`
	TotalAmount int64      `json:"totalAmount"`
	ApprovedAt  flexTime   `json:"approvedAt"`
}

func (w wirePaymentResult) canonical() PaymentResult {
	return PaymentResult{
		PaymentKey:  w.PaymentKey,
		OrderRef:    string(w.OrderRef),
		Status:      strings.ToUpper(strings.TrimSpace(w.Status)),
		TotalAmount: w.TotalAmount,
		ApprovedAt:  time.Time(w.ApprovedAt),
	}
}

// decodeCustomsVerification accepts both response generations: the bare
// {isValid, name} body and the enveloped {success, data: {...}} form.
func decodeCustomsVerification(raw []byte) (CustomsVerification, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		var v CustomsVerification
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return CustomsVerification{}, err
		}
		return v, nil
	}
	var v CustomsVerification
	if err := json.Unmarshal(raw, &v); err != nil {
		return CustomsVerification{}, err
	}
	return v, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
