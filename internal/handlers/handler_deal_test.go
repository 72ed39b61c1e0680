package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkazlouski/currency_exchange_app/internal/apperrors"
	"github.com/dkazlouski/currency_exchange_app/internal/core/domain"
	"github.com/dkazlouski/currency_exchange_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock DealSvcFacade ---
type MockDealService struct {
	mock.Mock
}

func (m *MockDealService) PreviewDeal(ctx context.Context, req dto.PreviewDealRequest) (*dto.PreviewDealResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PreviewDealResponse), args.Error(1)
}

func (m *MockDealService) ConfirmDeal(ctx context.Context, req dto.ConfirmDealRequest) (*dto.ConfirmDealResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ConfirmDealResponse), args.Error(1)
}

func (m *MockDealService) ListPendingDeals(ctx context.Context) ([]domain.Deal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Deal), args.Error(1)
}

func (m *MockDealService) GetTurnoverReport(ctx context.Context, from, to time.Time, currency string) ([]domain.CurrencyTurnover, error) {
	args := m.Called(ctx, from, to, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyTurnover), args.Error(1)
}

func setupDealRouter(svc *MockDealService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerDealRoutes(r.Group("/api/v1"), svc)
	return r
}

func performJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreviewDeal_Handler_Success(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	resp := &dto.PreviewDealResponse{
		DealID:    uuid.NewString(),
		AmountTo:  decimal.RequireFromString("92.442"),
		RateFrom:  decimal.RequireFromString("3.2571"),
		ScaleFrom: 1,
		RateTo:    decimal.RequireFromString("3.5234"),
		ScaleTo:   1,
		Status:    domain.DealStatusPending,
	}
	svc.On("PreviewDeal", mock.Anything, mock.AnythingOfType("dto.PreviewDealRequest")).Return(resp, nil).Once()

	w := performJSON(router, http.MethodPost, "/api/v1/deals/preview", gin.H{
		"amountFrom":   "100",
		"currencyFrom": "USD",
		"currencyTo":   "EUR",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got dto.PreviewDealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, resp.DealID, got.DealID)
	assert.True(t, resp.AmountTo.Equal(got.AmountTo))
	assert.Equal(t, domain.DealStatusPending, got.Status)
	svc.AssertExpectations(t)
}

func TestPreviewDeal_Handler_MalformedBody(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/deals/preview", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "PreviewDeal", mock.Anything, mock.Anything)
}

func TestPreviewDeal_Handler_LowercaseCurrencyFailsBinding(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	w := performJSON(router, http.MethodPost, "/api/v1/deals/preview", gin.H{
		"amountFrom":   "100",
		"currencyFrom": "usd",
		"currencyTo":   "EUR",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "PreviewDeal", mock.Anything, mock.Anything)
}

func TestPreviewDeal_Handler_UnknownCurrency(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	svc.On("PreviewDeal", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("unknown currency XXX")).Once()

	w := performJSON(router, http.MethodPost, "/api/v1/deals/preview", gin.H{
		"amountFrom":   "100",
		"currencyFrom": "XXX",
		"currencyTo":   "EUR",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown currency")
}

func TestConfirmDeal_Handler_Success(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	dealID := uuid.NewString()
	svc.On("ConfirmDeal", mock.Anything, dto.ConfirmDealRequest{DealID: dealID, Action: domain.ConfirmActionConfirm}).
		Return(&dto.ConfirmDealResponse{ID: dealID, Status: domain.DealStatusConfirmed}, nil).Once()

	w := performJSON(router, http.MethodPost, "/api/v1/deals/confirm", gin.H{
		"dealId": dealID,
		"action": "confirm",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got dto.ConfirmDealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, dealID, got.ID)
	assert.Equal(t, domain.DealStatusConfirmed, got.Status)
	svc.AssertExpectations(t)
}

func TestConfirmDeal_Handler_InvalidAction(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	w := performJSON(router, http.MethodPost, "/api/v1/deals/confirm", gin.H{
		"dealId": uuid.NewString(),
		"action": "cancel",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ConfirmDeal", mock.Anything, mock.Anything)
}

func TestConfirmDeal_Handler_NotFound(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	svc.On("ConfirmDeal", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("deal not found")).Once()

	w := performJSON(router, http.MethodPost, "/api/v1/deals/confirm", gin.H{
		"dealId": uuid.NewString(),
		"action": "confirm",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmDeal_Handler_AlreadyFinalized(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	svc.On("ConfirmDeal", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("deal already finalized with status CONFIRMED")).Once()

	w := performJSON(router, http.MethodPost, "/api/v1/deals/confirm", gin.H{
		"dealId": uuid.NewString(),
		"action": "reject",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already finalized")
}

func TestListPendingDeals_Handler(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	deals := []domain.Deal{
		{
			DealID:       uuid.NewString(),
			CreatedAt:    time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
			AmountFrom:   decimal.RequireFromString("100"),
			AmountTo:     decimal.RequireFromString("92.442"),
			CurrencyFrom: "USD",
			CurrencyTo:   "EUR",
			RateFrom:     decimal.RequireFromString("3.2571"),
			ScaleFrom:    1,
			RateTo:       decimal.RequireFromString("3.5234"),
			ScaleTo:      1,
			Status:       domain.DealStatusPending,
		},
	}
	svc.On("ListPendingDeals", mock.Anything).Return(deals, nil).Once()

	w := performJSON(router, http.MethodGet, "/api/v1/deals/pending", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got []dto.PendingDealResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, deals[0].DealID, got[0].ID)
	assert.Equal(t, "USD", got[0].CurrencyFrom)
	assert.Equal(t, domain.DealStatusPending, got[0].Status)
}

func TestListPendingDeals_Handler_StorageFault(t *testing.T) {
	svc := new(MockDealService)
	router := setupDealRouter(svc)

	svc.On("ListPendingDeals", mock.Anything).
		Return(nil, apperrors.NewDependencyError("failed to query deals", nil)).Once()

	w := performJSON(router, http.MethodGet, "/api/v1/deals/pending", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
