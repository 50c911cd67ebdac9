package ethereum

import (
	"strings"

	"token-earn-bot/pkg/apperror"
)

// categorizeTransferError maps raw node errors to stable chain error codes.
// The raw error stays wrapped for logging; only the category message is
// ever shown to users.
func categorizeTransferError(err error) *apperror.AppError {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "call_exception"),
		strings.Contains(msg, "execution reverted"),
		strings.Contains(msg, "revert"):
		return apperror.ErrChainContractFailure(err)
	case strings.Contains(msg, "insufficient funds"),
		strings.Contains(msg, "insufficient balance"):
		return apperror.ErrChainInsufficientGas(err)
	case strings.Contains(msg, "gas"):
		return apperror.ErrChainGasFailure(err)
	default:
		return apperror.ErrChainRPCFailure(err)
	}
}

// isRetryable reports whether a transfer attempt may be retried. Deterministic
// failures (bad recipient, empty wallet, reverts) fail fast.
func isRetryable(appErr *apperror.AppError) bool {
	switch appErr.Code {
	case "CHAIN_001", "CHAIN_002", "CHAIN_003", "CHAIN_005":
		return false
	}
	return true
}
