// Package validation holds the pure form checks used across the request,
// checkout and order-history views. Functions never panic and never touch the
// network; they return field-keyed maps of message keys for the i18n bundle.
package validation

import (
	"regexp"
	"strings"
)

// AddressForm carries the delivery address fields as entered by the user.
type AddressForm struct {
	ReceiverName    string
	Phone           string
	RoadAddress     string
	PostalCode      string
	DetailAddress   string
	DeliveryRequest string
}

// OrderLookupForm carries the order-history search fields.
type OrderLookupForm struct {
	ReceiverName string
	Phone        string
	OrderID      string
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// customs code: P (case-insensitive) followed by exactly 12 digits.
var customsCodePattern = regexp.MustCompile(`^[Pp][0-9]{12}$`)

// NormalizeDigits strips every non-digit character.
func NormalizeDigits(value string) string {
	return nonDigits.ReplaceAllString(value, "")
}

// NormalizePhone strips separators from a phone number.
func NormalizePhone(value string) string {
	return NormalizeDigits(value)
}

// IsValidPhone accepts domestic numbers with 10 or 11 digits after stripping
// separators, so "010-1234-5678" and "010 1234 5678" both pass.
func IsValidPhone(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= 10 && n <= 11
}

// ValidateAddress checks the delivery address form. The postal code is only
// ever populated by picking an address-search result, so an empty value means
// no result was selected. The detail address is optional.
func ValidateAddress(form AddressForm) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(form.ReceiverName) == "" {
		errs["receiverName"] = "address.error.name"
	}
	phone := strings.TrimSpace(form.Phone)
	if phone == "" {
		errs["phone"] = "address.error.phone.required"
	} else if !IsValidPhone(phone) {
		errs["phone"] = "address.error.phone.format"
	}
	if strings.TrimSpace(form.RoadAddress) == "" {
		errs["roadAddress"] = "address.error.road"
	}
	if strings.TrimSpace(form.PostalCode) == "" {
		errs["postalCode"] = "address.error.postal"
	}
	return errs
}

// ValidateCustomsCode checks the personal customs-clearance identifier format
// (13 characters, P + 12 digits). Returns a message key, or "" when valid.
// Format validity does not imply the code exists; the backend verifies that.
func ValidateCustomsCode(raw string) string {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "customs.error.required"
	}
	if !customsCodePattern.MatchString(code) {
		return "customs.error.format"
	}
	return ""
}

// ValidateOrderLookup checks the order-history search form. The order id must
// contain exactly 14 digits once separators are stripped.
func ValidateOrderLookup(form OrderLookupForm) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(form.ReceiverName) == "" {
		errs["receiverName"] = "lookup.error.name"
	}
	phone := strings.TrimSpace(form.Phone)
	if phone == "" {
		errs["phone"] = "address.error.phone.required"
	} else if !IsValidPhone(phone) {
		errs["phone"] = "address.error.phone.format"
	}
	if len(NormalizeDigits(form.OrderID)) != 14 {
		errs["orderId"] = "lookup.error.orderid"
	}
	return errs
}

// HasErrors reports whether any field failed validation.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }
