// Package checkout drives the purchase sequence: address registration,
// customs verification, agreement, hosted payment hand-off, and post-redirect
// order creation. Each step can fail on its own; completed steps survive and
// nothing is rolled back.
package checkout

import "strings"

// Progress is the cross-page checkout state. It is persisted in the signed
// session cookie because the hosted payment widget performs a full external
// redirect and in-memory state does not survive the round trip.
type Progress struct {
	AddressID     int64
	ReceiverName  string
	ReceiverPhone string
	CustomsCode   string
}

// HasAddress reports whether a delivery address has been registered.
func (p Progress) HasAddress() bool { return p.AddressID != 0 }

// HasCustomsCode reports whether a verified customs code is on file.
func (p Progress) HasCustomsCode() bool { return strings.TrimSpace(p.CustomsCode) != "" }

// Stage is the position in the checkout sequence.
type Stage int

const (
	StageNeedAddress Stage = iota
	StageNeedCustoms
	StageNeedAgreement
	StageReadyToPay
	StagePaymentRedirected
	StageVerifyingPayment
	StageCreatingOrder
	StageOrderCreated
)

func (s Stage) String() string {
	switch s {
	case StageNeedAddress:
		return "need_address"
	case StageNeedCustoms:
		return "need_customs"
	case StageNeedAgreement:
		return "need_agreement"
	case StageReadyToPay:
		return "ready_to_pay"
	case StagePaymentRedirected:
		return "payment_redirected"
	case StageVerifyingPayment:
		return "verifying_payment"
	case StageCreatingOrder:
		return "creating_order"
	case StageOrderCreated:
		return "order_created"
	default:
		return "unknown"
	}
}

// StageOf derives the pre-payment stage from persisted progress plus the
// agreement checkbox, which is page state and never persisted. Stages past
// ReadyToPay only exist inside the post-redirect completion flow.
func StageOf(p Progress, agreed bool) Stage {
	switch {
	case !p.HasAddress():
		return StageNeedAddress
	case !p.HasCustomsCode():
		return StageNeedCustoms
	case !agreed:
		return StageNeedAgreement
	default:
		return StageReadyToPay
	}
}
