package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("010-1234-5678"))
	assert.True(t, IsValidPhone("010 1234 5678"), "spaces are stripped before counting")
	assert.True(t, IsValidPhone("0212345678"), "10 digits is the lower bound")
	assert.False(t, IsValidPhone("12345"))
	assert.False(t, IsValidPhone("010-1234-56789-0"))
	assert.False(t, IsValidPhone(""))
}

func TestValidateAddress(t *testing.T) {
	form := AddressForm{
		ReceiverName:  "Hong Gildong",
		Phone:         "010-1234-5678",
		RoadAddress:   "Seoul Special City, Jung-gu, Sejong-daero 110",
		PostalCode:    "04983",
		DetailAddress: "",
	}
	assert.Empty(t, ValidateAddress(form), "detail address is optional")

	form.PostalCode = ""
	errs := ValidateAddress(form)
	assert.Contains(t, errs, "postalCode")

	errs = ValidateAddress(AddressForm{Phone: "12345"})
	assert.Contains(t, errs, "receiverName")
	assert.Contains(t, errs, "phone")
	assert.Contains(t, errs, "roadAddress")
	assert.Equal(t, "address.error.phone.format", errs["phone"])
}

func TestValidateCustomsCode(t *testing.T) {
	assert.Equal(t, "", ValidateCustomsCode("P123456789012"))
	assert.Equal(t, "", ValidateCustomsCode("p123456789012"), "leading P is case-insensitive")
	assert.Equal(t, "", ValidateCustomsCode("  P123456789012  "), "input is trimmed")
	assert.NotEqual(t, "", ValidateCustomsCode("X123456789012"))
	assert.NotEqual(t, "", ValidateCustomsCode("P12345"))
	assert.NotEqual(t, "", ValidateCustomsCode("P1234567890123"), "13 digits after P is too long")
	assert.Equal(t, "customs.error.required", ValidateCustomsCode("   "))
}

func TestValidateOrderLookup(t *testing.T) {
	ok := OrderLookupForm{
		ReceiverName: "Hong Gildong",
		Phone:        "010-1234-5678",
		OrderID:      "20251126183012",
	}
	assert.Empty(t, ValidateOrderLookup(ok))

	// separators are stripped before counting digits
	ok.OrderID = "2025-1126-183012"
	assert.Empty(t, ValidateOrderLookup(ok))

	ok.OrderID = "2025112618301"
	assert.Contains(t, ValidateOrderLookup(ok), "orderId")
	ok.OrderID = "202511261830123"
	assert.Contains(t, ValidateOrderLookup(ok), "orderId")
}
