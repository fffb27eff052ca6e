package checkout

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/cart"
	"buylink.app/buylink-web/internal/validation"
)

// Step preconditions and outcomes. Handlers map these onto localized
// messages; none of them is retried automatically.
var (
	ErrAddressRequired   = errors.New("checkout: delivery address not registered")
	ErrCustomsRequired   = errors.New("checkout: customs code not registered")
	ErrAgreementRequired = errors.New("checkout: terms not agreed")
	ErrNothingSelected   = errors.New("checkout: no items selected")
	ErrInvalidAmount     = errors.New("checkout: payable amount must be positive")
	ErrCustomsRejected   = errors.New("checkout: customs code rejected by registry")
	ErrPaymentParams     = errors.New("checkout: missing payment redirect parameters")
	ErrPaymentNotDone    = errors.New("checkout: payment not approved")
	ErrMissingOrderID    = errors.New("checkout: order created without an order id")
)

// FieldError reports a local validation failure with its i18n message key.
type FieldError struct {
	Key string
}

func (e *FieldError) Error() string { return "checkout: " + e.Key }

// Backend is the slice of the API client the orchestrator drives.
type Backend interface {
	RegisterAddress(ctx context.Context, in api.AddressInput) (api.SavedAddress, error)
	VerifyCustomsCode(ctx context.Context, code string) (api.CustomsVerification, error)
	Estimate(ctx context.Context, in api.EstimateInput) (cart.Estimate, error)
	CartContents(ctx context.Context) (api.CartContents, error)
	ConfirmPayment(ctx context.Context, in api.PaymentConfirmation) (api.PaymentResult, error)
	CreateOrder(ctx context.Context, in api.OrderCreateInput) (api.OrderReceipt, error)
}

// Deps bundles orchestrator collaborators.
type Deps struct {
	Backend     Backend
	Logger      *zap.Logger
	SiteBaseURL string
	OrderName   string
	NewRef      func() string
}

// Orchestrator sequences the checkout steps against the backend.
type Orchestrator struct {
	backend   Backend
	logger    *zap.Logger
	siteBase  string
	orderName string
	newRef    func() string
}

const defaultOrderName = "BuyLink 구매대행 결제"

// New wires an orchestrator. Backend is required.
func New(deps Deps) (*Orchestrator, error) {
	if deps.Backend == nil {
		return nil, errors.New("checkout: backend client is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	orderName := strings.TrimSpace(deps.OrderName)
	if orderName == "" {
		orderName = defaultOrderName
	}
	newRef := deps.NewRef
	if newRef == nil {
		newRef = func() string { return "ORDER-" + ulid.Make().String() }
	}
	return &Orchestrator{
		backend:   deps.Backend,
		logger:    logger,
		siteBase:  strings.TrimRight(strings.TrimSpace(deps.SiteBaseURL), "/"),
		orderName: orderName,
		newRef:    newRef,
	}, nil
}

// RegisterAddress validates the form locally, registers the address with the
// backend and returns the stored record. A non-empty field map means local
// validation failed and nothing was sent.
func (o *Orchestrator) RegisterAddress(ctx context.Context, form validation.AddressForm) (api.SavedAddress, map[string]string, error) {
	if errs := validation.ValidateAddress(form); validation.HasErrors(errs) {
		return api.SavedAddress{}, errs, nil
	}
	saved, err := o.backend.RegisterAddress(ctx, api.AddressInput{
		ReceiverName:    strings.TrimSpace(form.ReceiverName),
		Phone:           strings.TrimSpace(form.Phone),
		PostalCode:      strings.TrimSpace(form.PostalCode),
		RoadAddress:     strings.TrimSpace(form.RoadAddress),
		DetailAddress:   strings.TrimSpace(form.DetailAddress),
		DeliveryRequest: strings.TrimSpace(form.DeliveryRequest),
	})
	if err != nil {
		return api.SavedAddress{}, nil, err
	}
	o.logger.Info("checkout address registered", zap.Int64("address_id", saved.ID))
	return saved, nil, nil
}

// VerifyCustoms checks the code against the registry. The address step must
// be complete first; that failure is guidance and never reaches the network.
// On success the verified holder name is returned and the caller persists the
// code.
func (o *Orchestrator) VerifyCustoms(ctx context.Context, p Progress, code string) (string, error) {
	if !p.HasAddress() {
		return "", ErrAddressRequired
	}
	code = strings.TrimSpace(code)
	if key := validation.ValidateCustomsCode(code); key != "" {
		return "", &FieldError{Key: key}
	}
	v, err := o.backend.VerifyCustomsCode(ctx, code)
	if err != nil {
		return "", err
	}
	if !v.IsValid {
		return "", ErrCustomsRejected
	}
	o.logger.Info("checkout customs code verified")
	return v.Name, nil
}

// BeginPaymentInput carries everything BeginPayment needs from the page.
type BeginPaymentInput struct {
	Progress       Progress
	Agreed         bool
	ItemIDs        []int64
	ExtraPackaging bool
	Insurance      bool
}

// WidgetInvocation is the parameter set handed to the hosted payment widget.
type WidgetInvocation struct {
	Amount       int64
	OrderRef     string
	OrderName    string
	CustomerName string
	SuccessURL   string
	FailURL      string
}

// BeginPayment gates on every precondition, re-derives the payable amount
// from a fresh estimate (a client-held total is never trusted) and returns
// the widget invocation. The order reference is unique per attempt.
func (o *Orchestrator) BeginPayment(ctx context.Context, in BeginPaymentInput) (WidgetInvocation, error) {
	switch {
	case !in.Progress.HasAddress():
		return WidgetInvocation{}, ErrAddressRequired
	case !in.Progress.HasCustomsCode():
		return WidgetInvocation{}, ErrCustomsRequired
	case !in.Agreed:
		return WidgetInvocation{}, ErrAgreementRequired
	case len(in.ItemIDs) == 0:
		return WidgetInvocation{}, ErrNothingSelected
	}

	est, err := o.backend.Estimate(ctx, api.EstimateInput{
		ItemIDs:        in.ItemIDs,
		ExtraPackaging: in.ExtraPackaging,
		Insurance:      in.Insurance,
	})
	if err != nil {
		return WidgetInvocation{}, err
	}
	if est.GrandTotalKRW <= 0 {
		return WidgetInvocation{}, ErrInvalidAmount
	}

	ref := o.newRef()
	o.logger.Info("checkout payment begun",
		zap.String("order_ref", ref),
		zap.Int64("amount", est.GrandTotalKRW),
		zap.Int("items", len(in.ItemIDs)))
	return WidgetInvocation{
		Amount:       est.GrandTotalKRW,
		OrderRef:     ref,
		OrderName:    o.orderName,
		CustomerName: in.Progress.ReceiverName,
		SuccessURL:   o.absoluteURL("/payments/success"),
		FailURL:      o.absoluteURL("/payments/fail"),
	}, nil
}

// CompleteInput is the PSP redirect query plus the persisted progress.
type CompleteInput struct {
	Progress   Progress
	PaymentKey string
	OrderRef   string
	Amount     int64
}

// CompletePayment runs the post-redirect sequence on a fresh page load:
// verify the payment with the backend, then create the order. Only a DONE
// payment proceeds, the order amount is the server-verified one, and the
// payment key rides as the idempotency key so a reloaded success page cannot
// create a second order. A payment verified but followed by a failed order
// creation is surfaced as-is; there is nothing to roll back.
func (o *Orchestrator) CompletePayment(ctx context.Context, in CompleteInput) (api.OrderReceipt, error) {
	if strings.TrimSpace(in.PaymentKey) == "" || strings.TrimSpace(in.OrderRef) == "" || in.Amount <= 0 {
		return api.OrderReceipt{}, ErrPaymentParams
	}

	pay, err := o.backend.ConfirmPayment(ctx, api.PaymentConfirmation{
		OrderRef:   in.OrderRef,
		PaymentKey: in.PaymentKey,
		Amount:     in.Amount,
	})
	if err != nil {
		return api.OrderReceipt{}, err
	}
	if pay.Status != api.StatusDone {
		o.logger.Warn("checkout payment not approved",
			zap.String("order_ref", in.OrderRef),
			zap.String("status", pay.Status))
		return api.OrderReceipt{}, ErrPaymentNotDone
	}

	contents, err := o.backend.CartContents(ctx)
	if err != nil {
		return api.OrderReceipt{}, err
	}
	items := make([]api.OrderItem, 0, len(contents.Items))
	for _, it := range contents.Items {
		items = append(items, api.OrderItem{
			ID:          it.ID,
			ProductName: it.ProductName,
			Price:       it.PriceKRW,
			Quantity:    it.Quantity,
			ImageURL:    it.ImageURL,
		})
	}

	amount := pay.TotalAmount
	if amount <= 0 {
		amount = in.Amount
	}
	receipt, err := o.backend.CreateOrder(ctx, api.OrderCreateInput{
		Receiver:    in.Progress.ReceiverName,
		TotalAmount: amount,
		Items:       items,
		AddressID:   in.Progress.AddressID,
		CustomsCode: in.Progress.CustomsCode,
		PaymentKey:  in.PaymentKey,
	})
	if err != nil {
		return api.OrderReceipt{}, err
	}
	if strings.TrimSpace(receipt.OrderID) == "" {
		return api.OrderReceipt{}, ErrMissingOrderID
	}
	o.logger.Info("checkout order created",
		zap.String("order_id", receipt.OrderID),
		zap.Int64("amount", receipt.TotalAmount))
	return receipt, nil
}

func (o *Orchestrator) absoluteURL(path string) string {
	if o.siteBase == "" {
		return path
	}
	u, err := url.JoinPath(o.siteBase, path)
	if err != nil {
		return path
	}
	return u
}
