package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mithunit18/freelance/internal/auth"
	"github.com/Mithunit18/freelance/internal/request"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateOrder godoc
// @Summary      Create escrow payment order
// @Description  Opens a gateway order for a previously accepted request. Funds are not moved yet.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateOrderRequest  true  "Order details"
// @Success      201      {object}  CreateOrderResult
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /payments/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	payerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateOrder(c.Request.Context(), payerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
		case errors.Is(err, request.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Request not found"})
		case errors.Is(err, ErrRequestNotAccepted):
			c.JSON(http.StatusConflict, gin.H{"error": "Request has not been accepted"})
		case errors.Is(err, ErrDuplicateOrder):
			c.JSON(http.StatusConflict, gin.H{"error": "Order already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Verify godoc
// @Summary      Verify payment and move to escrow
// @Description  Validates the gateway signature for a funded order and escrows the payment.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyRequest  true  "Gateway checkout result"
// @Success      200      {object}  Payment
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /payments/verify [post]
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.VerifyAndEscrow(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, ErrSignatureMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment signature"})
		case errors.Is(err, ErrStaleState):
			c.JSON(http.StatusConflict, gin.H{"error": "Payment already processed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// Confirm godoc
// @Summary      Release escrowed funds
// @Description  Payer confirms completion; the fee is withheld and the net amount is credited to the payee.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      string  true  "Payment ID"
// @Success      200        {object}  Payment
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /payments/{paymentID}/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	payerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	paymentID := c.Param("paymentID")
	existing, err := h.service.GetPayment(c.Request.Context(), paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if existing.PayerID != payerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Can only confirm own payments"})
		return
	}

	p, err := h.service.ConfirmRelease(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, ErrNotEscrowed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Payment is not escrowed"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to release payment"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Refund godoc
// @Summary      Refund a payment
// @Description  Marks a pending or escrowed payment refunded. Completed payments cannot be refunded.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      string  true  "Payment ID"
// @Success      200        {object}  Payment
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Router       /payments/{paymentID}/refund [post]
func (h *Handler) Refund(c *gin.Context) {
	p, err := h.service.Refund(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		case errors.Is(err, ErrStaleState):
			c.JSON(http.StatusConflict, gin.H{"error": "Payment cannot be refunded in its current state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refund payment"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

// Get godoc
// @Summary      Get payment
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      string  true  "Payment ID"
// @Success      200        {object}  Payment
// @Failure      404        {object}  api.ErrorResponse
// @Router       /payments/{paymentID} [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.GetPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetByRequest godoc
// @Summary      Get latest payment for a request
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      string  true  "Request ID"
// @Success      200        {object}  Payment
// @Failure      404        {object}  api.ErrorResponse
// @Router       /payments/request/{requestID} [get]
func (h *Handler) GetByRequest(c *gin.Context) {
	p, err := h.service.GetByRequest(c.Request.Context(), c.Param("requestID"))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No payment found for request"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// CheckStatus godoc
// @Summary      Check payment status
// @Description  Accepts a payment ID or gateway order reference and reports capture state.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      string  true  "Payment ID or order reference"
// @Success      200        {object}  StatusResult
// @Failure      404        {object}  api.ErrorResponse
// @Router       /payments/{paymentID}/status [get]
func (h *Handler) CheckStatus(c *gin.Context) {
	result, err := h.service.CheckStatus(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
