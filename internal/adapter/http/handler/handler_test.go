package handler

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"token-earn-bot/internal/core/ports"
	"token-earn-bot/internal/core/ports/mocks"
	"token-earn-bot/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Admin Handler Tests ---

func TestWalletStatus_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mocks.NewMockWalletGateway(ctrl)
	mockRepo := mocks.NewMockWithdrawalRepository(ctrl)
	mockRegistry := mocks.NewMockPendingRegistry(ctrl)
	h := NewAdminHandler(mockGateway, mockRepo, mockRegistry)

	mockGateway.EXPECT().FullBalances(gomock.Any()).Return(&ports.WalletStatus{
		Address:      "0xhot",
		NativeWei:    big.NewInt(2500000000000),
		TokenBalance: 75000,
	}, nil)
	mockRegistry.EXPECT().Len().Return(3)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/wallet", nil)

	h.WalletStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "0xhot", data["address"])
	assert.Equal(t, "2500000000000", data["native_wei"])
	assert.Equal(t, float64(75000), data["token_balance"])
	assert.Equal(t, float64(3), data["pending_withdrawals"])
}

func TestWalletStatus_RPCFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mocks.NewMockWalletGateway(ctrl)
	mockRepo := mocks.NewMockWithdrawalRepository(ctrl)
	mockRegistry := mocks.NewMockPendingRegistry(ctrl)
	h := NewAdminHandler(mockGateway, mockRepo, mockRegistry)

	mockGateway.EXPECT().FullBalances(gomock.Any()).
		Return(nil, apperror.ErrChainRPCFailure(errors.New("dial tcp: timeout")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/wallet", nil)

	h.WalletStatus(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CHAIN_006", resp["error_code"])
}

func TestWithdrawalStats_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mocks.NewMockWalletGateway(ctrl)
	mockRepo := mocks.NewMockWithdrawalRepository(ctrl)
	mockRegistry := mocks.NewMockPendingRegistry(ctrl)
	h := NewAdminHandler(mockGateway, mockRepo, mockRegistry)

	mockRepo.EXPECT().GetStats(gomock.Any()).Return(&ports.WithdrawalStats{
		Total:        10,
		Completed:    7,
		Failed:       2,
		Rejected:     1,
		TotalPaidOut: 45000,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/withdrawals/stats", nil)

	h.WithdrawalStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["total"])
	assert.Equal(t, float64(7), data["completed"])
	assert.Equal(t, float64(45000), data["total_paid_out"])
}

func TestWithdrawalStats_DatabaseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := mocks.NewMockWalletGateway(ctrl)
	mockRepo := mocks.NewMockWithdrawalRepository(ctrl)
	mockRegistry := mocks.NewMockPendingRegistry(ctrl)
	h := NewAdminHandler(mockGateway, mockRepo, mockRegistry)

	mockRepo.EXPECT().GetStats(gomock.Any()).Return(nil, errors.New("pg: connection refused"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/withdrawals/stats", nil)

	h.WithdrawalStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// --- Health Check Tests ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(_ context.Context) error { return s.err }
func (s stubChecker) Name() string                 { return s.name }

func TestHealthCheck_AllHealthy(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(stubChecker{name: "postgres"}, stubChecker{name: "redis"}, stubChecker{name: "chain"})(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Len(t, deps, 3)
}

func TestHealthCheck_Degraded(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck(
		stubChecker{name: "postgres"},
		stubChecker{name: "chain", err: errors.New("rpc unreachable")},
	)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	chain := deps["chain"].(map[string]interface{})
	assert.Equal(t, "unhealthy", chain["status"])
}
