package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPaymentDelay mirrors the simulated gateway round trip.
const DefaultPaymentDelay = 1500 * time.Millisecond

const (
	orderIDPrefix = "order_"
	opNew         = "checkout.new"
	opCheckout    = "checkout.process"
)

// Method is a payment gateway choice.
type Method string

const (
	MethodRazorpay Method = "razorpay"
	MethodStripe   Method = "stripe"
)

var (
	ErrUnknownMethod = errors.New("checkout: unknown payment method")
	errMissingIssuer = errors.New("voucher issuer is required")
	noOpLogger       = zap.NewNop()
)

// Methods lists the supported gateways.
func Methods() []Method {
	return []Method{MethodRazorpay, MethodStripe}
}

// ParseMethod normalizes and validates a payment method.
func ParseMethod(raw string) (Method, error) {
	method := Method(strings.ToLower(strings.TrimSpace(raw)))
	switch method {
	case MethodRazorpay, MethodStripe:
		return method, nil
	default:
		return "", ErrUnknownMethod
	}
}

// ServiceError carries a dotted failure code such as checkout.process.voucher_failed.
type ServiceError struct {
	code string
	err  error
}

func (e *ServiceError) Error() string {
	if e.err == nil {
		return e.code
	}
	return fmt.Sprintf("%s: %v", e.code, e.err)
}

func (e *ServiceError) Unwrap() error {
	return e.err
}

func (e *ServiceError) Code() string {
	return e.code
}

func newServiceError(operation, reason string, cause error) error {
	return &ServiceError{code: fmt.Sprintf("%s.%s", operation, reason), err: cause}
}

// Receipt describes a completed simulated payment.
type Receipt struct {
	OrderID   string
	Plan      catalog.Plan
	Method    Method
	Amount    int64
	Currency  string
	Voucher   string
	ExpiresIn int64
	PaidAt    time.Time
}

// ProcessorConfig describes the collaborators of a Processor.
type ProcessorConfig struct {
	Issuer     *VoucherIssuer
	Delay      time.Duration
	Clock      func() time.Time
	IDProvider func() (string, error)
	Logger     *zap.Logger
}

// Processor simulates a payment gateway and hands out plan vouchers.
type Processor struct {
	issuer     *VoucherIssuer
	delay      time.Duration
	clock      func() time.Time
	idProvider func() (string, error)
	logger     *zap.Logger
}

// NewProcessor constructs a Processor. A negative delay is treated as zero.
func NewProcessor(cfg ProcessorConfig) (*Processor, error) {
	if cfg.Issuer == nil {
		return nil, newServiceError(opNew, "missing_issuer", errMissingIssuer)
	}
	delay := cfg.Delay
	if delay < 0 {
		delay = 0
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	idProvider := cfg.IDProvider
	if idProvider == nil {
		idProvider = newOrderID
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	return &Processor{
		issuer:     cfg.Issuer,
		delay:      delay,
		clock:      clock,
		idProvider: idProvider,
		logger:     logger,
	}, nil
}

// Checkout waits out the simulated gateway, then issues a receipt with a plan voucher.
func (p *Processor) Checkout(ctx context.Context, plan catalog.Plan, method Method) (Receipt, error) {
	if !plan.Valid() {
		return Receipt{}, catalog.ErrUnknownPlan
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return Receipt{}, err
	}

	if err := p.wait(ctx); err != nil {
		p.logger.Warn("checkout abandoned",
			zap.String("plan", string(plan)),
			zap.String("method", string(method)),
			zap.Error(err))
		return Receipt{}, err
	}

	orderID, err := p.idProvider()
	if err != nil {
		p.logError("id_failed", err)
		return Receipt{}, newServiceError(opCheckout, "id_failed", err)
	}
	voucher, expiresIn, err := p.issuer.Issue(orderID, plan, method)
	if err != nil {
		p.logError("voucher_failed", err, zap.String("order_id", orderID))
		return Receipt{}, newServiceError(opCheckout, "voucher_failed", err)
	}

	receipt := Receipt{
		OrderID:   orderID,
		Plan:      plan,
		Method:    method,
		Amount:    plan.Price(),
		Currency:  catalog.CurrencyINR,
		Voucher:   voucher,
		ExpiresIn: expiresIn,
		PaidAt:    p.clock().UTC(),
	}
	p.logger.Info("checkout completed",
		zap.String("order_id", orderID),
		zap.String("plan", string(plan)),
		zap.String("method", string(method)),
		zap.Int64("amount", receipt.Amount))
	return receipt, nil
}

func (p *Processor) wait(ctx context.Context) error {
	if p.delay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Processor) logError(reason string, err error, fields ...zap.Field) {
	attrs := []zap.Field{
		zap.String("operation", opCheckout),
		zap.String("reason", reason),
		zap.Error(err),
	}
	p.logger.Error("checkout error", append(attrs, fields...)...)
}

func newOrderID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return orderIDPrefix + value.String(), nil
}
