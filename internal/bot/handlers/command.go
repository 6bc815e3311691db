package handlers

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

const helpText = `Available commands:
/start - Show the main menu
/help - Show this message
/cancel - Cancel the current input

Recording:
/glucose <mg/dL> [fasting|post|custom:<name>] - e.g. /glucose 95 post
/pressure <sys>/<dia> - e.g. /pressure 120/80
/food <grams> <description> - e.g. /food 150 grilled chicken
/undo - Remove your latest record
/fixglucose <mg/dL> - Correct your latest glucose reading

Analysis (days default to the configured period):
/summary [days] - Health score, statistics, alerts and advice
/trend [days] - Glucose and pressure trends
/daily [days] - Day by day breakdown
/report [days] - Full report as a JSON file

Profile:
/profile - Your personal data
/limits - Your limits and daily targets
/setglucose <fasting min-max> <post min-max> - e.g. /setglucose 70-100 100-140
/setpressure <sys min-max> <dia min-max> - e.g. /setpressure 90-120 60-80
/addrange <name> <min-max> - e.g. /addrange bedtime 90-150
/removerange <name>
/body <weight kg> [height cm]
/frequency <glucose> <pressure> <meals> - daily targets, e.g. /frequency 3 1 3`

// CommandHandler handles bot commands
type CommandHandler struct {
	*actions
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(a *actions) *CommandHandler {
	return &CommandHandler{actions: a}
}

// Handle processes a command message. profile is nil for unregistered
// users, who only reach /start and /help.
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message, profile *domain.UserProfile) error {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())
	logger.Info("Handling command", "command", message.Command(), "telegram_id", message.From.ID)

	switch message.Command() {
	case "start":
		if profile == nil {
			return h.startRegistration(ctx, chatID, message.From.ID)
		}
		if err := h.resetState(ctx, message.From.ID); err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, chatID)
	case "help":
		return menus.SendText(h.api, chatID, helpText)
	}

	if profile == nil {
		return h.startRegistration(ctx, chatID, message.From.ID)
	}

	switch message.Command() {
	case "cancel":
		if err := h.resetState(ctx, profile.TelegramID); err != nil {
			return err
		}
		return menus.SendMainMenu(h.api, chatID)
	case "glucose":
		if args == "" {
			return h.askGlucose(chatID, profile)
		}
		parsed, err := ParseGlucose(args)
		if err != nil {
			return replyError(ctx, h.api, chatID, err)
		}
		return h.recordGlucose(ctx, chatID, profile, parsed)
	case "pressure":
		if args == "" {
			return h.ask(ctx, chatID, profile.TelegramID, state.WaitingForPressure, pressurePrompt)
		}
		return h.recordPressure(ctx, chatID, profile, args)
	case "food":
		if args == "" {
			return h.ask(ctx, chatID, profile.TelegramID, state.WaitingForFood, foodPrompt)
		}
		return h.recordFood(ctx, chatID, profile, args)
	case "summary", "trend", "daily", "report":
		return h.handlePeriodCommand(ctx, chatID, profile, message.Command(), args)
	case "profile":
		return menus.SendText(h.api, chatID, FormatProfile(profile, h.deps.now()))
	case "limits":
		return menus.SendText(h.api, chatID, FormatLimits(profile))
	case "setglucose":
		return h.handleSetGlucose(ctx, chatID, profile, args)
	case "setpressure":
		return h.handleSetPressure(ctx, chatID, profile, args)
	case "addrange":
		return h.handleAddRange(ctx, chatID, profile, args)
	case "removerange":
		return h.handleRemoveRange(ctx, chatID, profile, args)
	case "body":
		return h.handleBody(ctx, chatID, profile, args)
	case "frequency":
		return h.handleFrequency(ctx, chatID, profile, args)
	case "undo":
		return h.undoLatest(ctx, chatID, profile)
	case "fixglucose":
		value, err := ParseNumber(args)
		if err != nil {
			return replyError(ctx, h.api, chatID, err)
		}
		return h.fixLatestGlucose(ctx, chatID, profile, value)
	default:
		return h.handleUnknownCommand(chatID)
	}
}

func (h *CommandHandler) handlePeriodCommand(ctx context.Context, chatID int64, profile *domain.UserProfile, command, args string) error {
	days, err := ParseDays(args, h.deps.defaultDays())
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	switch command {
	case "trend":
		return h.sendTrends(ctx, chatID, profile, days)
	case "daily":
		return h.sendDaily(ctx, chatID, profile, days)
	case "report":
		return h.sendReport(ctx, chatID, profile, days)
	default:
		return h.sendSummary(ctx, chatID, profile, days)
	}
}

// limitsUpdated replies with the stored limits after a successful change.
func (h *CommandHandler) limitsUpdated(ctx context.Context, chatID int64, profile *domain.UserProfile, err error) error {
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	return menus.SendText(h.api, chatID, "✅ Saved\n\n"+FormatLimits(profile))
}

func (h *CommandHandler) handleSetGlucose(ctx context.Context, chatID int64, profile *domain.UserProfile, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return replyError(ctx, h.api, chatID, ErrRangeFormat)
	}
	fasting, err := ParseRange(fields[0])
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	post, err := ParseRange(fields[1])
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	updated, err := h.deps.ProfileSvc.UpdateGlucoseLimits(ctx, profile.ID, fasting, post)
	return h.limitsUpdated(ctx, chatID, updated, err)
}

func (h *CommandHandler) handleSetPressure(ctx context.Context, chatID int64, profile *domain.UserProfile, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return replyError(ctx, h.api, chatID, ErrRangeFormat)
	}
	systolic, err := ParseRange(fields[0])
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	diastolic, err := ParseRange(fields[1])
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	updated, err := h.deps.ProfileSvc.UpdatePressureLimits(ctx, profile.ID, domain.PressureLimits{Systolic: systolic, Diastolic: diastolic})
	return h.limitsUpdated(ctx, chatID, updated, err)
}

// handleAddRange takes the last argument as the range; the rest is the name.
func (h *CommandHandler) handleAddRange(ctx context.Context, chatID int64, profile *domain.UserProfile, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return replyError(ctx, h.api, chatID, ErrRangeFormat)
	}
	limits, err := ParseRange(fields[len(fields)-1])
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	name := strings.Join(fields[:len(fields)-1], " ")
	updated, err := h.deps.ProfileSvc.SetCustomGlucoseRange(ctx, profile.ID, name, limits)
	return h.limitsUpdated(ctx, chatID, updated, err)
}

func (h *CommandHandler) handleRemoveRange(ctx context.Context, chatID int64, profile *domain.UserProfile, args string) error {
	if args == "" {
		return replyError(ctx, h.api, chatID, domain.ErrCustomRangeName)
	}
	updated, err := h.deps.ProfileSvc.RemoveCustomGlucoseRange(ctx, profile.ID, args)
	return h.limitsUpdated(ctx, chatID, updated, err)
}

func (h *CommandHandler) handleBody(ctx context.Context, chatID int64, profile *domain.UserProfile, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 1 || len(fields) > 2 {
		return replyError(ctx, h.api, chatID, ErrInvalidNumber)
	}
	weight, err := ParseNumber(fields[0])
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	var height float64
	if len(fields) == 2 {
		if height, err = ParseNumber(fields[1]); err != nil {
			return replyError(ctx, h.api, chatID, err)
		}
	}
	updated, err := h.deps.ProfileSvc.UpdateBody(ctx, profile.ID, weight, height)
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	return menus.SendText(h.api, chatID, "✅ Saved\n\n"+FormatProfile(updated, h.deps.now()))
}

func (h *CommandHandler) handleFrequency(ctx context.Context, chatID int64, profile *domain.UserProfile, args string) error {
	freq, err := ParseFrequency(args)
	if err != nil {
		return replyError(ctx, h.api, chatID, err)
	}
	updated, err := h.deps.ProfileSvc.UpdateFrequency(ctx, profile.ID, freq)
	return h.limitsUpdated(ctx, chatID, updated, err)
}

// handleUnknownCommand handles unknown commands
func (h *CommandHandler) handleUnknownCommand(chatID int64) error {
	return menus.SendText(h.api, chatID, "Unknown command. Use /help to see the available commands.")
}
