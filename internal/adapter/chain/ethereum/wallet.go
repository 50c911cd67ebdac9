package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"
	"time"

	"token-earn-bot/config"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

// Wallet implements ports.WalletGateway against an EVM JSON-RPC node.
// A single hot wallet key signs all payouts; transferMu serializes
// transfers so nonces are assigned in order.
type Wallet struct {
	client  *ethclient.Client
	erc20   abi.ABI
	key     *ecdsa.PrivateKey
	address common.Address
	token   common.Address
	chainID *big.Int
	cfg     config.ChainConfig
	log     zerolog.Logger

	transferMu sync.Mutex
}

// NewWallet dials the RPC node and loads the hot wallet key.
func NewWallet(ctx context.Context, cfg config.ChainConfig, log zerolog.Logger) (*Wallet, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing rpc node: %w", err)
	}

	key, err := crypto.HexToECDSA(cfg.WalletKey)
	if err != nil {
		return nil, fmt.Errorf("parsing wallet key: %w", err)
	}
	address := crypto.PubkeyToAddress(key.PublicKey)

	if !common.IsHexAddress(cfg.TokenAddress) {
		return nil, fmt.Errorf("invalid token address: %q", cfg.TokenAddress)
	}

	erc20, err := parseERC20ABI()
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		client:  client,
		erc20:   erc20,
		key:     key,
		address: address,
		token:   common.HexToAddress(cfg.TokenAddress),
		chainID: big.NewInt(cfg.ChainID),
		cfg:     cfg,
		log:     log.With().Str("component", "wallet").Logger(),
	}

	w.log.Info().
		Str("address", address.Hex()).
		Str("token", cfg.TokenAddress).
		Int64("chain_id", cfg.ChainID).
		Msg("hot wallet initialized")

	return w, nil
}

// Address returns the hot wallet address.
func (w *Wallet) Address() string {
	return w.address.Hex()
}

// TokenBalance is the fast probe for the payout token balance. Callers
// treat an error like a zero balance and fall back to FullBalances.
func (w *Wallet) TokenBalance(ctx context.Context) (int64, error) {
	wei, err := w.tokenBalanceWei(ctx)
	if err != nil {
		return 0, err
	}
	return weiToUnits(wei), nil
}

// FullBalances fetches native and token balances with retries.
func (w *Wallet) FullBalances(ctx context.Context) (*ports.WalletStatus, error) {
	return withRetry(ctx, w.cfg.RetryAttempts, w.cfg.RetryBaseDelay, func() (*ports.WalletStatus, error) {
		nativeWei, err := w.client.BalanceAt(ctx, w.address, nil)
		if err != nil {
			return nil, fmt.Errorf("native balance: %w", err)
		}
		tokenWei, err := w.tokenBalanceWei(ctx)
		if err != nil {
			return nil, err
		}
		return &ports.WalletStatus{
			Address:      w.address.Hex(),
			NativeWei:    nativeWei,
			TokenBalance: weiToUnits(tokenWei),
		}, nil
	})
}

// TransferTokens sends amount display units of the token to the given
// address and waits for the transaction to be mined. Attempts are retried
// with exponential backoff unless the failure is deterministic.
func (w *Wallet) TransferTokens(ctx context.Context, to string, amount int64) (*ports.TransferReceipt, error) {
	if !common.IsHexAddress(to) {
		return nil, apperror.ErrChainInvalidRecipient()
	}
	recipient := common.HexToAddress(to)

	w.transferMu.Lock()
	defer w.transferMu.Unlock()

	var lastErr *apperror.AppError
	delay := w.cfg.RetryBaseDelay
	for attempt := 1; attempt <= w.cfg.RetryAttempts; attempt++ {
		if attempt > 1 {
			w.log.Warn().
				Int("attempt", attempt).
				Str("error_code", lastErr.Code).
				Msg("retrying token transfer")
			select {
			case <-ctx.Done():
				return nil, apperror.ErrChainRPCFailure(ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		receipt, appErr := w.transferOnce(ctx, recipient, amount)
		if appErr == nil {
			return receipt, nil
		}
		lastErr = appErr
		if !isRetryable(appErr) {
			break
		}
	}
	return nil, lastErr
}

func (w *Wallet) transferOnce(ctx context.Context, to common.Address, amount int64) (*ports.TransferReceipt, *apperror.AppError) {
	tokenWei, err := w.tokenBalanceWei(ctx)
	if err != nil {
		return nil, apperror.ErrChainRPCFailure(err)
	}
	amountWei := unitsToWei(amount)
	if tokenWei.Cmp(amountWei) < 0 {
		return nil, apperror.ErrChainInsufficientTokens(
			fmt.Errorf("token balance %s < required %s", tokenWei, amountWei))
	}

	nativeWei, err := w.client.BalanceAt(ctx, w.address, nil)
	if err != nil {
		return nil, apperror.ErrChainRPCFailure(err)
	}
	if nativeWei.Cmp(big.NewInt(w.cfg.MinGasWei)) < 0 {
		return nil, apperror.ErrChainInsufficientGas(
			fmt.Errorf("native balance %s below gas floor %d", nativeWei, w.cfg.MinGasWei))
	}

	data, err := w.erc20.Pack("transfer", to, amountWei)
	if err != nil {
		return nil, apperror.ErrChainContractFailure(err)
	}

	gasTipCap, gasFeeCap, err := w.cappedFees(ctx)
	if err != nil {
		return nil, apperror.ErrChainRPCFailure(err)
	}

	gasLimit := w.cfg.GasLimit
	estimated, err := w.client.EstimateGas(ctx, ethereum.CallMsg{
		From: w.address,
		To:   &w.token,
		Data: data,
	})
	if err != nil {
		w.log.Warn().Err(err).Uint64("fallback_gas", gasLimit).Msg("gas estimation failed, using fixed limit")
	} else if estimated < gasLimit {
		gasLimit = estimated
	}

	maxGasCost := new(big.Int).Mul(new(big.Int).SetUint64(gasLimit), gasFeeCap)
	if nativeWei.Cmp(maxGasCost) < 0 {
		return nil, apperror.ErrChainInsufficientGas(
			fmt.Errorf("native balance %s cannot cover max gas cost %s", nativeWei, maxGasCost))
	}

	nonce, err := w.client.PendingNonceAt(ctx, w.address)
	if err != nil {
		return nil, apperror.ErrChainRPCFailure(err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   w.chainID,
		Nonce:     nonce,
		GasTipCap: gasTipCap,
		GasFeeCap: gasFeeCap,
		Gas:       gasLimit,
		To:        &w.token,
		Value:     big.NewInt(0),
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(w.chainID), w.key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("signing transaction: %w", err))
	}

	if err := w.client.SendTransaction(ctx, signed); err != nil {
		return nil, categorizeTransferError(err)
	}

	w.log.Info().
		Str("tx_hash", signed.Hash().Hex()).
		Str("to", to.Hex()).
		Int64("amount", amount).
		Uint64("nonce", nonce).
		Msg("token transfer submitted")

	waitCtx := ctx
	if w.cfg.ConfirmTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, w.cfg.ConfirmTimeout)
		defer cancel()
	}
	receipt, err := bind.WaitMined(waitCtx, w.client, signed)
	if err != nil {
		return nil, apperror.ErrChainRPCFailure(fmt.Errorf("waiting for receipt: %w", err))
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, apperror.ErrChainContractFailure(
			fmt.Errorf("transaction %s reverted", signed.Hash().Hex()))
	}

	gasCost := new(big.Int).Mul(new(big.Int).SetUint64(receipt.GasUsed), receipt.EffectiveGasPrice)

	return &ports.TransferReceipt{
		TxHash:      signed.Hash().Hex(),
		ExplorerURL: explorerTxURL(w.cfg.ExplorerBaseURL, signed.Hash().Hex()),
		GasUsed:     receipt.GasUsed,
		GasCostWei:  gasCost,
	}, nil
}

// cappedFees suggests EIP-1559 fees and clamps both to the configured caps.
func (w *Wallet) cappedFees(ctx context.Context) (gasTipCap, gasFeeCap *big.Int, err error) {
	maxTip := big.NewInt(w.cfg.MaxPriorityWei)
	maxFee := big.NewInt(w.cfg.MaxFeeWei)

	tip, err := w.client.SuggestGasTipCap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("suggesting gas tip: %w", err)
	}
	if tip.Cmp(maxTip) > 0 {
		tip = maxTip
	}

	head, err := w.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching head: %w", err)
	}
	feeCap := new(big.Int).Add(new(big.Int).Mul(head.BaseFee, big.NewInt(2)), tip)
	if feeCap.Cmp(maxFee) > 0 {
		feeCap = maxFee
	}
	return tip, feeCap, nil
}

func (w *Wallet) tokenBalanceWei(ctx context.Context) (*big.Int, error) {
	data, err := w.erc20.Pack("balanceOf", w.address)
	if err != nil {
		return nil, fmt.Errorf("packing balanceOf: %w", err)
	}
	raw, err := w.client.CallContract(ctx, ethereum.CallMsg{To: &w.token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("calling balanceOf: %w", err)
	}
	out, err := w.erc20.Unpack("balanceOf", raw)
	if err != nil {
		return nil, fmt.Errorf("unpacking balanceOf: %w", err)
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", out[0])
	}
	return balance, nil
}

func explorerTxURL(baseURL, txHash string) string {
	return fmt.Sprintf("%s/tx/%s", baseURL, txHash)
}

// Ping checks RPC node connectivity for the operator health endpoint.
func (w *Wallet) Ping(ctx context.Context) error {
	_, err := w.client.BlockNumber(ctx)
	return err
}

// Name returns the dependency name.
func (w *Wallet) Name() string {
	return "chain"
}

// Close releases the underlying RPC connection.
func (w *Wallet) Close() {
	w.client.Close()
}
