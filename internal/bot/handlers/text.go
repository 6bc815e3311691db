package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// TextHandler handles text messages
type TextHandler struct {
	*actions
}

// NewTextHandler creates a new text handler
func NewTextHandler(a *actions) *TextHandler {
	return &TextHandler{actions: a}
}

// Handle processes a text message according to the pending input.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message, profile *domain.UserProfile) error {
	userState, err := h.states.GetUserState(ctx, message.From.ID)
	if err != nil {
		return err
	}
	chatID := message.Chat.ID

	if profile == nil {
		if userState == state.WaitingForProfile {
			return h.register(ctx, chatID, message.From.ID, message.Text)
		}
		return h.startRegistration(ctx, chatID, message.From.ID)
	}

	switch userState {
	case state.WaitingForGlucose:
		return h.handleGlucose(ctx, message, profile)
	case state.WaitingForPressure:
		return h.recordPressure(ctx, chatID, profile, message.Text)
	case state.WaitingForFood:
		return h.recordFood(ctx, chatID, profile, message.Text)
	default:
		return h.handleDefaultText(chatID)
	}
}

// handleGlucose reads the value for the context chosen from the keyboard.
func (h *TextHandler) handleGlucose(ctx context.Context, message *tgbotapi.Message, profile *domain.UserProfile) error {
	value, err := ParseNumber(message.Text)
	if err != nil {
		return replyError(ctx, h.api, message.Chat.ID, err)
	}
	args := GlucoseArgs{Value: value, Context: domain.ContextFasting}

	readingCtx, ok, err := h.states.GetTempData(ctx, profile.TelegramID, state.KeyGlucoseContext)
	if err != nil {
		return err
	}
	if ok {
		args.Context = domain.GlucoseContext(readingCtx)
	}
	customRange, _, err := h.states.GetTempData(ctx, profile.TelegramID, state.KeyCustomRange)
	if err != nil {
		return err
	}
	args.CustomRange = customRange

	return h.recordGlucose(ctx, message.Chat.ID, profile, args)
}

// handleDefaultText handles text without pending input
func (h *TextHandler) handleDefaultText(chatID int64) error {
	return menus.SendText(h.api, chatID, "Please use the menu or /help to choose an action.")
}
