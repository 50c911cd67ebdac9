package ports

import (
	"context"
	"math/big"
)

// WalletStatus is a snapshot of the payout hot wallet.
type WalletStatus struct {
	Address      string
	NativeWei    *big.Int
	TokenBalance int64 // Smallest display unit
}

// TransferReceipt describes a mined token transfer.
type TransferReceipt struct {
	TxHash      string
	ExplorerURL string
	GasUsed     uint64
	GasCostWei  *big.Int
}

// WalletGateway is the on-chain payout service.
type WalletGateway interface {
	// TokenBalance is the fast balance probe. Callers treat an error the
	// same as a zero balance and fall back to FullBalances.
	TokenBalance(ctx context.Context) (int64, error)
	// FullBalances fetches native and token balances with retries.
	FullBalances(ctx context.Context) (*WalletStatus, error)
	// TransferTokens sends amount (smallest display unit) to the given
	// address and waits for the transaction to be mined.
	TransferTokens(ctx context.Context, to string, amount int64) (*TransferReceipt, error)
}
