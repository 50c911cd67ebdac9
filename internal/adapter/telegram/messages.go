package telegram

import (
	"fmt"
	"strings"

	"token-earn-bot/internal/core/domain"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"
)

// formatWithUSD renders a token amount with its USD equivalent, e.g.
// "1500 TKN ($1.50 USD)".
func formatWithUSD(amount int64, currency string, priceUSD float64) string {
	return fmt.Sprintf("%d %s ($%.2f USD)", amount, currency, float64(amount)*priceUSD)
}

func welcomeMessage(username, currency string) string {
	return fmt.Sprintf(
		"👋 <b>Welcome, %s!</b>\n\n"+
			"Earn %s tokens and withdraw them straight to your wallet.\n\n"+
			"/balance - check your balance\n"+
			"/wallet - set your payout address\n"+
			"/withdraw - cash out your tokens\n"+
			"/history - recent withdrawals",
		username, currency,
	)
}

func profileMessage(user *domain.User, currency string, priceUSD float64) string {
	wallet := "Not set"
	if user.WalletAddress != nil {
		wallet = *user.WalletAddress
	}
	return fmt.Sprintf(
		"<b>Your Profile:</b>\n\n"+
			"💼 Wallet: <code>%s</code>\n"+
			"💰 Balance: <b>%s</b>",
		wallet, formatWithUSD(user.Balance, currency, priceUSD),
	)
}

func walletPromptMessage() string {
	return "💼 Please enter your wallet address (0x...):"
}

func walletSavedMessage(address string) string {
	return fmt.Sprintf("✅ Wallet address saved:\n<code>%s</code>", address)
}

func confirmationMessage(r *ports.RequestResult, priceUSD float64) string {
	return fmt.Sprintf(
		"💸 <b>Withdrawal Confirmation</b>\n\n"+
			"Amount: %s\n"+
			"Recipient: <code>%s</code>\n"+
			"Network: Base Mainnet\n\n"+
			"Please confirm this transaction:",
		formatWithUSD(r.Amount, r.Currency, priceUSD), r.Address,
	)
}

func successMessage(r *ports.ConfirmResult, priceUSD float64) string {
	return fmt.Sprintf(
		"✅ <b>Withdrawal Successful!</b>\n\n"+
			"Amount: %s\n"+
			"Network: Base Mainnet\n"+
			"TX Hash: <code>%s</code>\n\n"+
			"View on explorer: <a href=\"%s\">BaseScan</a>",
		formatWithUSD(r.Amount, r.Currency, priceUSD), r.TxHash, r.ExplorerURL,
	)
}

func historyMessage(records []domain.Withdrawal, currency string, priceUSD float64) string {
	var b strings.Builder
	b.WriteString("📜 Your Recent Withdrawals:\n\n")
	if len(records) == 0 {
		b.WriteString("No withdrawals yet.")
		return b.String()
	}
	for _, w := range records {
		fmt.Fprintf(&b, "- %s (%s) %s\n",
			formatWithUSD(w.Amount, currency, priceUSD),
			strings.ToLower(string(w.Status)),
			w.CreatedAt.Format("02 Jan 2006"),
		)
	}
	return b.String()
}

func cancelledMessage() string {
	return "❌ Withdrawal cancelled."
}

func processingMessage() string {
	return "🔄 Processing your withdrawal... Please wait..."
}

// errorMessage turns a service error into user-facing HTML. Raw error
// detail never reaches the chat; only AppError messages do.
func errorMessage(err error) string {
	appErr, ok := err.(*apperror.AppError)
	if !ok {
		return "❌ <b>System Error</b>\n\n" +
			"We encountered an issue processing your request.\n" +
			"Our team has been notified. Please try again later."
	}

	var title string
	switch appErr.Code {
	case "WD_001":
		title = "⏳ <b>Withdrawal Already in Progress</b>"
	case "WD_002":
		title = "❌ <b>No Wallet Address Set</b>"
	case "WD_003":
		title = "❌ <b>Invalid Wallet Address</b>"
	case "WD_004":
		title = "❌ <b>Minimum Withdrawal Not Met</b>"
	case "WD_005":
		title = "⚠️ <b>Temporary Withdrawal Limit</b>"
	case "WD_006":
		title = "❌ <b>No Pending Withdrawal</b>"
	case "WD_007":
		title = "⏳ <b>Withdrawal Being Processed</b>"
	default:
		title = "❌ <b>Withdrawal Failed</b>"
	}
	return title + "\n\n" + appErr.Message
}
