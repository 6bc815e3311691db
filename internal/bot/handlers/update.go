package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	actions         *actions
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api menus.Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	a := &actions{api: api, deps: deps, states: stateManager}
	return &UpdateHandler{
		actions:         a,
		callbackHandler: NewCallbackHandler(a),
		commandHandler:  NewCommandHandler(a),
		textHandler:     NewTextHandler(a),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var from *tgbotapi.User
	switch {
	case update.Message != nil:
		from = update.Message.From
	case update.CallbackQuery != nil:
		from = update.CallbackQuery.From
	}
	if from == nil {
		return nil
	}

	profile, err := h.lookupProfile(ctx, from.ID)
	if err != nil {
		return err
	}

	if update.CallbackQuery != nil {
		if profile == nil {
			if update.CallbackQuery.Message == nil {
				return nil
			}
			return h.actions.startRegistration(ctx, update.CallbackQuery.Message.Chat.ID, from.ID)
		}
		return h.callbackHandler.Handle(ctx, update.CallbackQuery, profile)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message, profile)
	}
	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message, profile)
	}
	return nil
}

// lookupProfile returns nil without error for users who have not
// registered yet.
func (h *UpdateHandler) lookupProfile(ctx context.Context, telegramID int64) (*domain.UserProfile, error) {
	profile, err := h.actions.deps.ProfileSvc.GetProfileByTelegramID(ctx, telegramID)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
