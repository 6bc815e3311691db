package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/handlers"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// commands are shown in the Telegram command menu.
var commands = []tgbotapi.BotCommand{
	{Command: "start", Description: "Main menu"},
	{Command: "glucose", Description: "Record glucose: /glucose 95 post"},
	{Command: "pressure", Description: "Record blood pressure: /pressure 120/80"},
	{Command: "food", Description: "Record a meal: /food 150 chicken"},
	{Command: "summary", Description: "Health summary: /summary 7"},
	{Command: "trend", Description: "Glucose and pressure trends"},
	{Command: "daily", Description: "Day by day breakdown"},
	{Command: "report", Description: "Full report as JSON"},
	{Command: "undo", Description: "Remove your latest record"},
	{Command: "limits", Description: "Your personal limits"},
	{Command: "help", Description: "All commands"},
}

type Bot struct {
	api      *tgbotapi.BotAPI
	handler  *handlers.UpdateHandler
	errorLog *apperrors.Handler
}

func NewBot(token string, deps handlers.Dependencies, stateManager state.StateManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	if _, err := api.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		logger.Warn("Failed to register bot commands", "error", err)
	}

	return &Bot{
		api:      api,
		handler:  handlers.NewUpdateHandler(api, deps, stateManager),
		errorLog: apperrors.NewHandler(logger.GetLogger()),
	}, nil
}

// Start long-polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil && update.Message.From != nil {
				logger.Debug("Received message", "telegram_id", update.Message.From.ID, "command", update.Message.Command())
			}
			if err := b.handler.Handle(ctx, update); err != nil {
				logger.Debug("Update failed", "update_id", update.UpdateID)
				b.errorLog.Handle(ctx, err)
			}
		}
	}
}
