package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"token-earn-bot/config"
	"token-earn-bot/internal/core/ports"
	"token-earn-bot/pkg/apperror"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const historyLimit = 5

// botAPI is the slice of the Telegram client the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot drives the Telegram long-poll loop and translates chat commands
// into service calls. Updates are dispatched concurrently; the services
// and the registry are built for concurrent use.
type Bot struct {
	api         botAPI
	users       ports.UserService
	withdrawals ports.WithdrawalService
	cfg         config.WithdrawalConfig
	timeout     int
	log         zerolog.Logger

	mu             sync.Mutex
	awaitingWallet map[int64]struct{}
}

// NewBot connects to the Telegram API and returns a ready bot.
func NewBot(
	tgCfg config.TelegramConfig,
	wdCfg config.WithdrawalConfig,
	users ports.UserService,
	withdrawals ports.WithdrawalService,
	log zerolog.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(tgCfg.Token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram api: %w", err)
	}
	api.Debug = tgCfg.Debug

	log.Info().Str("username", api.Self.UserName).Msg("telegram bot authorized")

	return &Bot{
		api:            api,
		users:          users,
		withdrawals:    withdrawals,
		cfg:            wdCfg,
		timeout:        tgCfg.UpdateTimeout,
		log:            log.With().Str("component", "telegram_bot").Logger(),
		awaitingWallet: make(map[int64]struct{}),
	}, nil
}

// Run consumes updates until ctx is cancelled. Each update runs on its
// own goroutine so a slow confirmation (waiting for a transaction to
// mine) never stalls other users' commands.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.timeout
	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		go b.handleUpdate(ctx, update)
	}
	b.log.Info().Msg("telegram update loop stopped")
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	telegramID := msg.From.ID

	var referredBy *int64
	if msg.IsCommand() && msg.Command() == "start" {
		if args := msg.CommandArguments(); args != "" {
			if refID, err := strconv.ParseInt(args, 10, 64); err == nil && refID != telegramID {
				referredBy = &refID
			}
		}
	}

	if _, err := b.users.EnsureUser(ctx, telegramID, displayName(msg.From), referredBy); err != nil {
		b.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("ensure user failed")
		b.reply(telegramID, errorMessage(err))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, telegramID, msg.Command())
		return
	}

	if b.popAwaitingWallet(telegramID) {
		b.handleWalletInput(ctx, telegramID, strings.TrimSpace(msg.Text))
		return
	}

	b.reply(telegramID, "Use /withdraw to cash out, or /balance to check your earnings.")
}

func (b *Bot) handleCommand(ctx context.Context, telegramID int64, command string) {
	switch command {
	case "start":
		user, err := b.users.Profile(ctx, telegramID)
		if err != nil {
			b.reply(telegramID, errorMessage(err))
			return
		}
		b.reply(telegramID, welcomeMessage(user.Username, b.cfg.Currency))
	case "balance", "profile":
		user, err := b.users.Profile(ctx, telegramID)
		if err != nil {
			b.reply(telegramID, errorMessage(err))
			return
		}
		b.reply(telegramID, profileMessage(user, b.cfg.Currency, b.cfg.TokenPriceUSD))
	case "wallet":
		b.setAwaitingWallet(telegramID)
		b.reply(telegramID, walletPromptMessage())
	case "withdraw":
		b.handleWithdraw(ctx, telegramID)
	case "history":
		records, err := b.withdrawals.History(ctx, telegramID, historyLimit)
		if err != nil {
			b.reply(telegramID, errorMessage(err))
			return
		}
		b.reply(telegramID, historyMessage(records, b.cfg.Currency, b.cfg.TokenPriceUSD))
	case "cancel":
		if err := b.withdrawals.Cancel(ctx, telegramID); err != nil {
			b.reply(telegramID, errorMessage(err))
			return
		}
		b.reply(telegramID, cancelledMessage())
	default:
		b.reply(telegramID, "Unknown command. Try /withdraw, /balance or /history.")
	}
}

func (b *Bot) handleWithdraw(ctx context.Context, telegramID int64) {
	result, err := b.withdrawals.Request(ctx, telegramID)
	if err != nil {
		b.reply(telegramID, errorMessage(err))
		return
	}

	msg := tgbotapi.NewMessage(telegramID, confirmationMessage(result, b.cfg.TokenPriceUSD))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm Withdrawal", "confirm_withdraw"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel_withdraw"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("send confirmation failed")
	}
}

func (b *Bot) handleWalletInput(ctx context.Context, telegramID int64, address string) {
	if err := b.users.SetWalletAddress(ctx, telegramID, address); err != nil {
		// Keep the session open so the user can retry immediately.
		b.setAwaitingWallet(telegramID)
		b.reply(telegramID, errorMessage(err))
		return
	}
	b.reply(telegramID, walletSavedMessage(address))
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	telegramID := cb.From.ID

	switch cb.Data {
	case "confirm_withdraw":
		b.editMessage(cb, processingMessage(), false)

		result, err := b.withdrawals.Confirm(ctx, telegramID, cb.ID)
		if err != nil {
			if appErr, ok := err.(*apperror.AppError); ok && appErr.Code == "WD_007" {
				b.answerCallback(cb.ID, "Already processing")
				return
			}
			b.editMessage(cb, errorMessage(err), true)
			b.answerCallback(cb.ID, "")
			return
		}

		b.editMessage(cb, successMessage(result, b.cfg.TokenPriceUSD), true)
		b.answerCallback(cb.ID, "✅ Sent")
	case "cancel_withdraw":
		if err := b.withdrawals.Cancel(ctx, telegramID); err != nil {
			b.editMessage(cb, errorMessage(err), true)
		} else {
			b.editMessage(cb, cancelledMessage(), false)
		}
		b.answerCallback(cb.ID, "")
	case "set_wallet":
		b.setAwaitingWallet(telegramID)
		b.reply(telegramID, walletPromptMessage())
		b.answerCallback(cb.ID, "")
	default:
		b.answerCallback(cb.ID, "")
	}
}

func (b *Bot) setAwaitingWallet(telegramID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.awaitingWallet[telegramID] = struct{}{}
}

func (b *Bot) popAwaitingWallet(telegramID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.awaitingWallet[telegramID]
	delete(b.awaitingWallet, telegramID)
	return ok
}

func (b *Bot) reply(telegramID int64, text string) {
	msg := tgbotapi.NewMessage(telegramID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("telegram_id", telegramID).Msg("send message failed")
	}
}

func (b *Bot) editMessage(cb *tgbotapi.CallbackQuery, text string, html bool) {
	if cb.Message == nil {
		return
	}
	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, text)
	if html {
		edit.ParseMode = tgbotapi.ModeHTML
	}
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error().Err(err).Msg("edit message failed")
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		b.log.Error().Err(err).Msg("answer callback failed")
	}
}

func displayName(from *tgbotapi.User) string {
	if from.UserName != "" {
		return from.UserName
	}
	if from.FirstName != "" {
		return from.FirstName
	}
	return fmt.Sprintf("User_%d", from.ID)
}
