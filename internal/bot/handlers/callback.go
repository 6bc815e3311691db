package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// CallbackHandler handles inline keyboard button presses
type CallbackHandler struct {
	*actions
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(a *actions) *CallbackHandler {
	return &CallbackHandler{actions: a}
}

// Handle processes a callback query from a registered user
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery, profile *domain.UserProfile) error {
	// Answer callback query to remove loading state
	if _, err := h.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		logger.Warn("Failed to answer callback query", "error", err)
	}
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID
	data := query.Data

	switch {
	case data == keyboards.CallbackMainMenu:
		if err := h.resetState(ctx, profile.TelegramID); err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, chatID)
	case data == keyboards.CallbackGlucose:
		return h.askGlucose(chatID, profile)
	case strings.HasPrefix(data, keyboards.PrefixGlucoseContext):
		return h.chooseGlucoseContext(ctx, chatID, profile.TelegramID, data)
	case data == keyboards.CallbackPressure:
		return h.ask(ctx, chatID, profile.TelegramID, state.WaitingForPressure, pressurePrompt)
	case data == keyboards.CallbackFood:
		return h.ask(ctx, chatID, profile.TelegramID, state.WaitingForFood, foodPrompt)
	case data == keyboards.CallbackSummary:
		return menus.SendSummaryPeriodMenu(h.api, chatID)
	case strings.HasPrefix(data, keyboards.PrefixSummaryDays):
		days, err := ParseDays(strings.TrimPrefix(data, keyboards.PrefixSummaryDays), h.deps.defaultDays())
		if err != nil {
			return replyError(ctx, h.api, chatID, err)
		}
		return h.sendSummary(ctx, chatID, profile, days)
	case data == keyboards.CallbackTrends:
		return h.sendTrends(ctx, chatID, profile, h.deps.defaultDays())
	case data == keyboards.CallbackLimits:
		return menus.SendText(h.api, chatID, FormatLimits(profile))
	}

	logger.Warn("Unknown callback data", "data", data, "telegram_id", profile.TelegramID)
	return nil
}
