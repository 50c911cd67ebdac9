package handler

import (
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"
	"token-earn-bot/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the operator read-only endpoints.
type AdminHandler struct {
	gateway  ports.WalletGateway
	wdRepo   ports.WithdrawalRepository
	registry ports.PendingRegistry
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(gateway ports.WalletGateway, wdRepo ports.WithdrawalRepository, registry ports.PendingRegistry) *AdminHandler {
	return &AdminHandler{gateway: gateway, wdRepo: wdRepo, registry: registry}
}

type walletStatusResponse struct {
	Address            string `json:"address"`
	NativeWei          string `json:"native_wei"`
	TokenBalance       int64  `json:"token_balance"`
	PendingWithdrawals int    `json:"pending_withdrawals"`
}

// WalletStatus returns the hot wallet balances and the in-flight
// reservation count.
func (h *AdminHandler) WalletStatus(c *gin.Context) {
	status, err := h.gateway.FullBalances(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	nativeWei := "0"
	if status.NativeWei != nil {
		nativeWei = status.NativeWei.String()
	}

	response.OK(c, walletStatusResponse{
		Address:            status.Address,
		NativeWei:          nativeWei,
		TokenBalance:       status.TokenBalance,
		PendingWithdrawals: h.registry.Len(),
	})
}

// WithdrawalStats returns aggregate counters over the withdrawal ledger.
func (h *AdminHandler) WithdrawalStats(c *gin.Context) {
	stats, err := h.wdRepo.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	response.OK(c, stats)
}
