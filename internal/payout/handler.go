package payout

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mithunit18/freelance/internal/auth"
	"github.com/Mithunit18/freelance/internal/payment"
)

// PaymentReader loads the payment a re-dispatch targets. Satisfied by the
// payment repository.
type PaymentReader interface {
	GetByID(ctx context.Context, id string) (*payment.Payment, error)
}

type Handler struct {
	service  Service
	payments PaymentReader
}

func NewHandler(service Service, payments PaymentReader) *Handler {
	return &Handler{service: service, payments: payments}
}

// ListMine godoc
// @Summary      List own payouts
// @Tags         payouts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Payout
// @Router       /payouts [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	payouts, err := h.service.ListByPayee(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, payouts)
}

// Redispatch godoc
// @Summary      Re-dispatch a payout
// @Description  Retries the payout for a released payment, typically after bank details were submitted.
// @Tags         payouts
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      string  true  "Payment ID"
// @Success      200        {object}  Outcome
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /admin/payouts/{paymentID}/dispatch [post]
func (h *Handler) Redispatch(c *gin.Context) {
	p, err := h.payments.GetByID(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if p.Status != payment.StatusCompleted || p.NetCents == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment has not been released"})
		return
	}

	outcome, err := h.service.Dispatch(c.Request.Context(), Job{
		PaymentID:   p.ID,
		PayeeID:     p.PayeeID,
		AmountCents: *p.NetCents,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to dispatch payout"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}
