package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error with a stable code and a user-safe message.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to users)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Withdrawal Flow (WD) ----

func ErrWithdrawalInProgress() *AppError {
	return New("WD_001", "You already have a withdrawal in progress. Please confirm or cancel it first.", http.StatusConflict)
}

func ErrNoWalletAddress() *AppError {
	return New("WD_002", "Please set your wallet address first using /wallet.", http.StatusUnprocessableEntity)
}

func ErrInvalidWalletAddress() *AppError {
	return New("WD_003", "Invalid wallet address. Please provide a valid address starting with 0x.", http.StatusUnprocessableEntity)
}

func ErrBelowMinimum(balance, minimum int64, currency string) *AppError {
	return New("WD_004",
		fmt.Sprintf("Minimum withdrawal is %d %s. You need %d more %s.", minimum, currency, minimum-balance, currency),
		http.StatusUnprocessableEntity)
}

func ErrTemporaryLimit() *AppError {
	return New("WD_005", "Withdrawals are temporarily limited. Please try again later.", http.StatusServiceUnavailable)
}

func ErrNoPendingWithdrawal() *AppError {
	return New("WD_006", "No pending withdrawal found. It may have expired, please start again with /withdraw.", http.StatusNotFound)
}

func ErrDuplicateConfirmation() *AppError {
	return New("WD_007", "This withdrawal is already being processed.", http.StatusConflict)
}

// ---- On-Chain Transfer (CHAIN) ----

func ErrChainInsufficientTokens(err error) *AppError {
	return Wrap("CHAIN_001", "Insufficient token balance in the payout wallet.", http.StatusServiceUnavailable, err)
}

func ErrChainInsufficientGas(err error) *AppError {
	return Wrap("CHAIN_002", "Insufficient funds for transaction fees.", http.StatusServiceUnavailable, err)
}

func ErrChainContractFailure(err error) *AppError {
	return Wrap("CHAIN_003", "Token contract interaction failed.", http.StatusBadGateway, err)
}

func ErrChainGasFailure(err error) *AppError {
	return Wrap("CHAIN_004", "Transaction failed due to gas issues.", http.StatusBadGateway, err)
}

func ErrChainInvalidRecipient() *AppError {
	return New("CHAIN_005", "Invalid recipient address.", http.StatusUnprocessableEntity)
}

func ErrChainRPCFailure(err error) *AppError {
	return Wrap("CHAIN_006", "Network error while sending the transaction.", http.StatusBadGateway, err)
}

// ---- User (USR) ----

func ErrNotFound(entity string) *AppError {
	return New("USR_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Security (SEC) ----

func ErrUnauthorized() *AppError {
	return New("SEC_001", "Unauthorized", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
