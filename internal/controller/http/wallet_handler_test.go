package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"clubhub/internal/entity"
	"clubhub/internal/usecase"
	"clubhub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockWalletUseCase is a mock implementation of WalletUseCase
type MockWalletUseCase struct {
	mock.Mock
}

func (m *MockWalletUseCase) GetWallet(ctx context.Context, memberID string) (*entity.Wallet, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Wallet), args.Error(1)
}

func (m *MockWalletUseCase) GetTransactions(ctx context.Context, memberID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, memberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockWalletUseCase) AdminCredit(ctx context.Context, memberID string, amount int, description string) (*entity.Transaction, error) {
	args := m.Called(ctx, memberID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockWalletUseCase) VerifyLedger(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

var _ usecase.WalletUseCase = (*MockWalletUseCase)(nil)

func TestGetWallet(t *testing.T) {
	mockUseCase := new(MockWalletUseCase)
	handler := NewWalletHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/wallet", asMember("member-1", "member", handler.GetWallet))

	mockUseCase.On("GetWallet", mock.Anything, "member-1").Return(&entity.Wallet{
		MemberID: "member-1", Balance: 85, LifetimePurchased: 100, LifetimeSpent: 15,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var wallet entity.Wallet
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &wallet))
	assert.Equal(t, 85, wallet.Balance)
	mockUseCase.AssertExpectations(t)
}

func TestGetTransactions(t *testing.T) {
	mockUseCase := new(MockWalletUseCase)
	handler := NewWalletHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/wallet/transactions", asMember("member-1", "member", handler.GetTransactions))

	mockUseCase.On("GetTransactions", mock.Anything, "member-1", 50, 0).
		Return([]*entity.Transaction{{Type: entity.TransactionTypePurchase, Amount: 100}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/wallet/transactions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestAdminCredit(t *testing.T) {
	mockUseCase := new(MockWalletUseCase)
	handler := NewWalletHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/admin/wallets/:member_id/credit", asMember("admin-1", "admin", handler.AdminCredit))

	mockUseCase.On("AdminCredit", mock.Anything, "member-1", 50, "goodwill").
		Return(&entity.Transaction{Type: entity.TransactionTypeAdminCredit, Amount: 50}, nil)

	body, _ := json.Marshal(map[string]interface{}{"amount": 50, "description": "goodwill"})
	req := httptest.NewRequest(http.MethodPost, "/admin/wallets/member-1/credit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestAdminCredit_RejectsNonPositiveAmount(t *testing.T) {
	handler := NewWalletHandler(new(MockWalletUseCase), logger.New())

	router := setupTestRouter()
	router.POST("/admin/wallets/:member_id/credit", asMember("admin-1", "admin", handler.AdminCredit))

	body, _ := json.Marshal(map[string]interface{}{"amount": 0})
	req := httptest.NewRequest(http.MethodPost, "/admin/wallets/member-1/credit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyLedger(t *testing.T) {
	mockUseCase := new(MockWalletUseCase)
	handler := NewWalletHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/admin/wallets/:member_id/verify", asMember("admin-1", "admin", handler.VerifyLedger))

	mockUseCase.On("VerifyLedger", mock.Anything, "member-1").Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/wallets/member-1/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Consistent bool `json:"consistent"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Consistent)
}
