package api

import (
	"time"

	"buylink.app/buylink-web/internal/cart"
)

// CartContents mirrors GET /api/cart: the server-side cart plus its product
// total. Line items arrive without quantity on older backends; the adapter
// defaults it to 1.
type CartContents struct {
	Items    []cart.LineItem
	TotalKRW int64
}

// EstimateInput selects which cart items to quote and which optional
// services apply. An empty ItemIDs list means "whole cart" on the server;
// callers that want the no-selection guard enforce it before calling.
type EstimateInput struct {
	ItemIDs        []int64 `json:"itemIds"`
	ExtraPackaging bool    `json:"extraPackaging"`
	Insurance      bool    `json:"insurance"`
}

// AddressResult is one row from the postal address search.
type AddressResult struct {
	RoadAddress  string `json:"roadAddress"`
	JibunAddress string `json:"jibunAddress"`
	ZipCode      string `json:"zipCode"`
}

// AddressPage is a page of address search results.
type AddressPage struct {
	CurrentPage  int             `json:"currentPage"`
	CountPerPage int             `json:"countPerPage"`
	TotalCount   int             `json:"totalCount"`
	Addresses    []AddressResult `json:"addresses"`
}

// AddressInput is the delivery address registration payload.
type AddressInput struct {
	ReceiverName    string `json:"receiverName"`
	Phone           string `json:"phone"`
	PostalCode      string `json:"postalCode"`
	RoadAddress     string `json:"roadAddress"`
	DetailAddress   string `json:"detailAddress"`
	DeliveryRequest string `json:"deliveryRequest"`
}

// SavedAddress is the registered address as the backend stores it. ID is the
// handle later passed on order creation.
type SavedAddress struct {
	ID              int64  `json:"id"`
	ReceiverName    string `json:"receiverName"`
	Phone           string `json:"phone"`
	PostalCode      string `json:"postalCode"`
	RoadAddress     string `json:"roadAddress"`
	DetailAddress   string `json:"detailAddress"`
	DeliveryRequest string `json:"deliveryRequest"`
}

// CustomsVerification reports whether a personal customs clearance code is
// registered and under which name.
type CustomsVerification struct {
	IsValid bool   `json:"isValid"`
	Name    string `json:"name"`
}

// PaymentConfirmation is the POST /api/orders/pay payload built from the PSP
// redirect query parameters.
type PaymentConfirmation struct {
	OrderRef   string `json:"orderId"`
	PaymentKey string `json:"paymentKey"`
	Amount     int64  `json:"amount"`
}

// PaymentResult is the verified payment as confirmed by the backend. Only
// StatusDone allows order creation to proceed.
type PaymentResult struct {
	PaymentKey  string    `json:"paymentKey"`
	OrderRef    string    `json:"orderId"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"totalAmount"`
	ApprovedAt  time.Time `json:"approvedAt"`
}

// Payment statuses the backend reports.
const (
	StatusDone = "DONE"
	StatusFail = "FAIL"
)

// OrderItem is one purchased line on an order.
type OrderItem struct {
	ID          int64  `json:"id"`
	ProductName string `json:"productName"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	ImageURL    string `json:"imageUrl"`
}

// OrderCreateInput creates the final order after payment verification.
// PaymentKey doubles as the idempotency key so a retried submission cannot
// create a second order.
type OrderCreateInput struct {
	Receiver    string      `json:"receiver"`
	TotalAmount int64       `json:"totalAmount"`
	Items       []OrderItem `json:"items"`
	AddressID   int64       `json:"addressId,omitempty"`
	CustomsCode string      `json:"customsCode,omitempty"`
	PaymentKey  string      `json:"-"`
}

// OrderReceipt is the order-creation acknowledgement. OrderID is the
// customer-facing order number used for lookup.
type OrderReceipt struct {
	OrderID       string
	Receiver      string
	PaymentMethod string
	TotalAmount   int64
	Items         []OrderItem
}

// Shipping splits the delivery cost of an order.
type Shipping struct {
	Domestic      int64 `json:"domestic"`
	International int64 `json:"international"`
}

// OrderDetail is the full order record returned by lookup and by the
// confirmation view.
type OrderDetail struct {
	OrderID         string
	Receiver        string
	Phone           string
	PostalCode      string
	RoadAddress     string
	DetailAddress   string
	DeliveryRequest string
	PaymentMethod   string
	TotalAmount     int64
	Items           []OrderItem
	Shipping        Shipping
	CreatedAt       time.Time
}
