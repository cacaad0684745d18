package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/MarcoPoloResearchLab/lovehub/internal/catalog"
	"github.com/MarcoPoloResearchLab/lovehub/internal/checkout"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type checkoutRequestPayload struct {
	Plan   string `json:"plan"`
	Method string `json:"method"`
}

type checkoutResponsePayload struct {
	OrderID   string    `json:"order_id"`
	Plan      string    `json:"plan"`
	Method    string    `json:"method"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Voucher   string    `json:"voucher"`
	ExpiresIn int64     `json:"expires_in"`
	PaidAt    time.Time `json:"paid_at"`
}

func (h *httpHandler) handleCheckout(c *gin.Context) {
	var request checkoutRequestPayload
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request")
		return
	}
	plan, err := catalog.ParsePlan(request.Plan)
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown_plan")
		return
	}
	method, err := checkout.ParseMethod(request.Method)
	if err != nil {
		respondError(c, http.StatusBadRequest, "unknown_payment_method")
		return
	}

	receipt, err := h.checkout.Checkout(c.Request.Context(), plan, method)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respondError(c, http.StatusRequestTimeout, "payment_cancelled")
		default:
			h.logger.Error("checkout failed", zap.String("plan", string(plan)), zap.Error(err))
			respondError(c, http.StatusInternalServerError, "payment_failed")
		}
		return
	}

	c.JSON(http.StatusOK, checkoutResponsePayload{
		OrderID:   receipt.OrderID,
		Plan:      string(receipt.Plan),
		Method:    string(receipt.Method),
		Amount:    receipt.Amount,
		Currency:  receipt.Currency,
		Voucher:   receipt.Voucher,
		ExpiresIn: receipt.ExpiresIn,
		PaidAt:    receipt.PaidAt,
	})
}
