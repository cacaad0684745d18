package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
)

func newTestProcessor(t *testing.T, delay time.Duration, idProvider func() (string, error)) (*Processor, *VoucherValidator) {
	t.Helper()
	cfg := testVoucherConfig(fixedClock(voucherNow))
	issuer, err := NewVoucherIssuer(cfg)
	if err != nil {
		t.Fatalf("unexpected issuer error: %v", err)
	}
	validator, err := NewVoucherValidator(cfg)
	if err != nil {
		t.Fatalf("unexpected validator error: %v", err)
	}
	processor, err := NewProcessor(ProcessorConfig{
		Issuer:     issuer,
		Delay:      delay,
		Clock:      fixedClock(voucherNow),
		IDProvider: idProvider,
	})
	if err != nil {
		t.Fatalf("unexpected processor error: %v", err)
	}
	return processor, validator
}

func TestNewProcessorRequiresIssuer(t *testing.T) {
	_, err := NewProcessor(ProcessorConfig{})
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code() != "checkout.new.missing_issuer" {
		t.Fatalf("expected missing issuer error, got %v", err)
	}
}

func TestCheckoutIssuesPricedReceipt(t *testing.T) {
	processor, validator := newTestProcessor(t, 0, func() (string, error) { return "order_fixed", nil })

	testCases := []struct {
		plan   catalog.Plan
		amount int64
	}{
		{plan: catalog.PlanBasic, amount: 39},
		{plan: catalog.PlanRomantic, amount: 69},
		{plan: catalog.PlanPremium, amount: 169},
	}
	for _, testCase := range testCases {
		receipt, err := processor.Checkout(context.Background(), testCase.plan, MethodRazorpay)
		if err != nil {
			t.Fatalf("checkout %s: %v", testCase.plan, err)
		}
		if receipt.Amount != testCase.amount || receipt.Currency != catalog.CurrencyINR {
			t.Fatalf("unexpected price %d %s for %s", receipt.Amount, receipt.Currency, testCase.plan)
		}
		if receipt.OrderID != "order_fixed" || receipt.Method != MethodRazorpay {
			t.Fatalf("unexpected receipt %+v", receipt)
		}
		if !receipt.PaidAt.Equal(voucherNow) || receipt.ExpiresIn <= 0 {
			t.Fatalf("unexpected timing %+v", receipt)
		}
		plan, err := validator.Validate(receipt.Voucher)
		if err != nil || plan != testCase.plan {
			t.Fatalf("voucher should carry %s, got %s (%v)", testCase.plan, plan, err)
		}
	}
}

func TestCheckoutDefaultOrderIDs(t *testing.T) {
	processor, _ := newTestProcessor(t, 0, nil)
	first, err := processor.Checkout(context.Background(), catalog.PlanBasic, MethodStripe)
	if err != nil {
		t.Fatalf("unexpected checkout error: %v", err)
	}
	second, err := processor.Checkout(context.Background(), catalog.PlanBasic, MethodStripe)
	if err != nil {
		t.Fatalf("unexpected checkout error: %v", err)
	}
	if !strings.HasPrefix(first.OrderID, "order_") || first.OrderID == second.OrderID {
		t.Fatalf("expected distinct prefixed order ids, got %s and %s", first.OrderID, second.OrderID)
	}
}

func TestCheckoutRejectsUnknownInputs(t *testing.T) {
	processor, _ := newTestProcessor(t, 0, nil)
	if _, err := processor.Checkout(context.Background(), catalog.Plan("gold"), MethodStripe); !errors.Is(err, catalog.ErrUnknownPlan) {
		t.Fatalf("expected unknown plan, got %v", err)
	}
	if _, err := processor.Checkout(context.Background(), catalog.PlanBasic, Method("paypal")); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected unknown method, got %v", err)
	}
}

func TestCheckoutHonorsCancellationDuringDelay(t *testing.T) {
	processor, _ := newTestProcessor(t, time.Hour, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := processor.Checkout(ctx, catalog.PlanPremium, MethodRazorpay)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if time.Since(started) > 5*time.Second {
		t.Fatalf("checkout did not return promptly after cancellation")
	}
}

func TestCheckoutWaitsForDelay(t *testing.T) {
	processor, _ := newTestProcessor(t, 30*time.Millisecond, nil)
	started := time.Now()
	if _, err := processor.Checkout(context.Background(), catalog.PlanBasic, MethodRazorpay); err != nil {
		t.Fatalf("unexpected checkout error: %v", err)
	}
	if elapsed := time.Since(started); elapsed < 30*time.Millisecond {
		t.Fatalf("expected checkout to wait, returned after %s", elapsed)
	}
}

func TestCheckoutWrapsIDFailures(t *testing.T) {
	processor, _ := newTestProcessor(t, 0, func() (string, error) { return "", errors.New("entropy exhausted") })
	_, err := processor.Checkout(context.Background(), catalog.PlanBasic, MethodRazorpay)
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) || serviceErr.Code() != "checkout.process.id_failed" {
		t.Fatalf("expected id failure, got %v", err)
	}
}

func TestParseMethod(t *testing.T) {
	method, err := ParseMethod(" Stripe ")
	if err != nil || method != MethodStripe {
		t.Fatalf("expected stripe, got %q (%v)", method, err)
	}
	if _, err := ParseMethod("cash"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected unknown method, got %v", err)
	}
}
