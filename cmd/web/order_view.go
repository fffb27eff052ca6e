package main

import (
	"time"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/validation"
)

// OrderView is the rendered order detail, shared by the confirmation and
// history pages.
type OrderView struct {
	Lang            string
	OrderID         string
	Receiver        string
	Phone           string
	PostalCode      string
	RoadAddress     string
	DetailAddress   string
	DeliveryRequest string
	PaymentMethod   string
	TotalAmount     int64
	Items           []OrderItemRow
	ProductTotal    int64
	ShippingDom     int64
	ShippingIntl    int64
	ShippingTotal   int64
	Discount        int64
	CreatedAt       time.Time
	Error           string
}

// OrderItemRow is one purchased line.
type OrderItemRow struct {
	Name     string
	Price    int64
	Quantity int
	ImageURL string
}

// OrderLookupView backs the order history page.
type OrderLookupView struct {
	Lang        string
	Form        validation.OrderLookupForm
	FieldErrors map[string]string
	Error       string
	Order       *OrderView
}

func buildOrderView(lang string, d api.OrderDetail) OrderView {
	items := make([]OrderItemRow, 0, len(d.Items))
	var productTotal int64
	for _, it := range d.Items {
		items = append(items, OrderItemRow{
			Name:     it.ProductName,
			Price:    it.Price,
			Quantity: it.Quantity,
			ImageURL: it.ImageURL,
		})
		productTotal += it.Price * int64(it.Quantity)
	}
	shippingTotal := d.Shipping.Domestic + d.Shipping.International
	// the backend total is authoritative; the difference renders as discount
	discount := productTotal + shippingTotal - d.TotalAmount
	if discount < 0 {
		discount = 0
	}
	return OrderView{
		Lang:            lang,
		OrderID:         d.OrderID,
		Receiver:        d.Receiver,
		Phone:           d.Phone,
		PostalCode:      d.PostalCode,
		RoadAddress:     d.RoadAddress,
		DetailAddress:   d.DetailAddress,
		DeliveryRequest: d.DeliveryRequest,
		PaymentMethod:   d.PaymentMethod,
		TotalAmount:     d.TotalAmount,
		Items:           items,
		ProductTotal:    productTotal,
		ShippingDom:     d.Shipping.Domestic,
		ShippingIntl:    d.Shipping.International,
		ShippingTotal:   shippingTotal,
		Discount:        discount,
		CreatedAt:       d.CreatedAt,
	}
}
