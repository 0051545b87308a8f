package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Mithunit18/freelance/internal/auth"
)

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) CreateOrder(ctx context.Context, payerID int, req CreateOrderRequest) (*CreateOrderResult, error) {
	args := m.Called(ctx, payerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CreateOrderResult), args.Error(1)
}

func (m *MockPaymentService) VerifyAndEscrow(ctx context.Context, req VerifyRequest) (*Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentService) ConfirmRelease(ctx context.Context, paymentID string) (*Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentService) AutoRelease(ctx context.Context, paymentID string) (*Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentService) Refund(ctx context.Context, paymentID string) (*Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id string) (*Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentService) GetByRequest(ctx context.Context, requestID string) (*Payment, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Payment), args.Error(1)
}

func (m *MockPaymentService) CheckStatus(ctx context.Context, paymentID string) (*StatusResult, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StatusResult), args.Error(1)
}

func setupPaymentRouter(t *testing.T, svc Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.AuthMiddleware("test-secret"))

	h := NewHandler(svc)
	router.POST("/escrow/orders", h.CreateOrder)
	router.POST("/escrow/verify", h.Verify)
	router.POST("/escrow/payments/:paymentID/confirm", h.Confirm)
	router.POST("/escrow/payments/:paymentID/refund", h.Refund)
	router.GET("/escrow/payments/:paymentID", h.Get)
	return router
}

func authedRequest(t *testing.T, method, path string, body interface{}, userID int, role string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	token, _, err := auth.GenerateTokens(userID, "user@test.com", role, "test-secret", "test-secret")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateOrderHandler_Created(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	body := CreateOrderRequest{RequestID: "req_1", PayeeID: 2, AmountCents: 10000}
	svc.On("CreateOrder", mock.Anything, 1, body).Return(&CreateOrderResult{
		PaymentID: "PAYAAA", OrderRef: "order_sim_1", AmountCents: 10000, Currency: "INR",
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "POST", "/escrow/orders", body, 1, auth.RoleClient))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "PAYAAA")
}

func TestCreateOrderHandler_ConflictWhenNotAccepted(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	body := CreateOrderRequest{RequestID: "req_1", PayeeID: 2, AmountCents: 10000}
	svc.On("CreateOrder", mock.Anything, 1, body).Return(nil, ErrRequestNotAccepted)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "POST", "/escrow/orders", body, 1, auth.RoleClient))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyHandler_BadSignature(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	body := VerifyRequest{OrderRef: "order_sim_1", TxnRef: "txn_1", Signature: "bad"}
	svc.On("VerifyAndEscrow", mock.Anything, body).Return(nil, ErrSignatureMismatch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "POST", "/escrow/verify", body, 1, auth.RoleClient))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfirmHandler_ForbiddenForOtherPayer(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	svc.On("GetPayment", mock.Anything, "PAYAAA").Return(&Payment{
		ID: "PAYAAA", PayerID: 1, Status: StatusEscrowed,
	}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "POST", "/escrow/payments/PAYAAA/confirm", nil, 99, auth.RoleClient))

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "ConfirmRelease")
}

func TestConfirmHandler_ConflictWhenNotEscrowed(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	svc.On("GetPayment", mock.Anything, "PAYAAA").Return(&Payment{
		ID: "PAYAAA", PayerID: 1, Status: StatusCompleted,
	}, nil)
	svc.On("ConfirmRelease", mock.Anything, "PAYAAA").Return(nil, ErrNotEscrowed)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "POST", "/escrow/payments/PAYAAA/confirm", nil, 1, auth.RoleClient))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetHandler_NotFound(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	svc.On("GetPayment", mock.Anything, "PAYMISSING").Return(nil, ErrPaymentNotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "GET", "/escrow/payments/PAYMISSING", nil, 1, auth.RoleClient))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRefundHandler_Conflict(t *testing.T) {
	svc := new(MockPaymentService)
	router := setupPaymentRouter(t, svc)

	svc.On("Refund", mock.Anything, "PAYAAA").Return(nil, ErrStaleState)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, "POST", "/escrow/payments/PAYAAA/refund", nil, 1, auth.RoleAdmin))

	assert.Equal(t, http.StatusConflict, w.Code)
}
