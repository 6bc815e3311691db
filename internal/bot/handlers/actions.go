package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	"github.com/vladimiradmaev/health-tracker/internal/bot/state"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/services"
	"github.com/vladimiradmaev/health-tracker/internal/utils"
)

const registrationPrompt = `👋 Welcome! Let's create your profile.

Send one message in this format:
name; birth date YYYY-MM-DD; weight kg; height cm; conditions (optional, comma separated)

Example:
Ana García; 1980-06-15; 70; 175; diabetes type 2`

const (
	glucosePrompt  = "Enter the glucose value in mg/dL, for example 95"
	pressurePrompt = "Enter the blood pressure as systolic/diastolic, for example 120/80"
	foodPrompt     = "Enter the amount in grams and what you ate, for example 150 grilled chicken"
)

// actions are the operations shared by commands, buttons and free text.
type actions struct {
	api    menus.Sender
	deps   Dependencies
	states state.StateManager
}

// resetState drops any pending input for the user.
func (a *actions) resetState(ctx context.Context, telegramID int64) error {
	if err := a.states.SetUserState(ctx, telegramID, state.None); err != nil {
		return err
	}
	return a.states.ClearTempData(ctx, telegramID)
}

func (a *actions) startRegistration(ctx context.Context, chatID, telegramID int64) error {
	if err := a.states.SetUserState(ctx, telegramID, state.WaitingForProfile); err != nil {
		return err
	}
	return menus.SendText(a.api, chatID, registrationPrompt)
}

func (a *actions) register(ctx context.Context, chatID, telegramID int64, text string) error {
	params, err := ParseProfile(text)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	params.TelegramID = telegramID
	profile, err := a.deps.ProfileSvc.CreateProfile(ctx, params)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	if err := a.resetState(ctx, telegramID); err != nil {
		return err
	}
	if err := menus.SendText(a.api, chatID, "✅ Profile created\n\n"+FormatProfile(profile, a.deps.now())); err != nil {
		return err
	}
	return menus.SendMainMenu(a.api, chatID)
}

// askGlucose starts glucose entry by asking for the reading context.
func (a *actions) askGlucose(chatID int64, profile *domain.UserProfile) error {
	return menus.SendGlucoseContextMenu(a.api, chatID, profile.GlucoseLimits)
}

// chooseGlucoseContext remembers the context and waits for the value.
func (a *actions) chooseGlucoseContext(ctx context.Context, chatID, telegramID int64, data string) error {
	readingCtx, customRange, ok := keyboards.ParseGlucoseContextData(data)
	if !ok {
		return replyError(ctx, a.api, chatID, domain.ErrInvalidGlucoseContext)
	}
	if err := a.states.SetTempData(ctx, telegramID, state.KeyGlucoseContext, string(readingCtx)); err != nil {
		return err
	}
	if err := a.states.SetTempData(ctx, telegramID, state.KeyCustomRange, customRange); err != nil {
		return err
	}
	if err := a.states.SetUserState(ctx, telegramID, state.WaitingForGlucose); err != nil {
		return err
	}
	return menus.SendPrompt(a.api, chatID, glucosePrompt)
}

// ask waits for free-text input in the given state.
func (a *actions) ask(ctx context.Context, chatID, telegramID int64, userState, prompt string) error {
	if err := a.states.SetUserState(ctx, telegramID, userState); err != nil {
		return err
	}
	return menus.SendPrompt(a.api, chatID, prompt)
}

func (a *actions) recordGlucose(ctx context.Context, chatID int64, profile *domain.UserProfile, args GlucoseArgs) error {
	m, err := a.deps.MeasurementSvc.RecordGlucose(ctx, services.GlucoseInput{
		UserID:      profile.ID,
		Value:       args.Value,
		Context:     args.Context,
		CustomRange: args.CustomRange,
		Timestamp:   a.deps.now(),
	})
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	if err := a.resetState(ctx, profile.TelegramID); err != nil {
		return err
	}
	return a.confirm(chatID, FormatGlucoseRecorded(m))
}

func (a *actions) recordPressure(ctx context.Context, chatID int64, profile *domain.UserProfile, text string) error {
	systolic, diastolic, err := ParsePressure(text)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	m, err := a.deps.MeasurementSvc.RecordPressure(ctx, services.PressureInput{
		UserID:    profile.ID,
		Systolic:  systolic,
		Diastolic: diastolic,
		Timestamp: a.deps.now(),
	})
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	if err := a.resetState(ctx, profile.TelegramID); err != nil {
		return err
	}
	return a.confirm(chatID, FormatPressureRecorded(m))
}

func (a *actions) recordFood(ctx context.Context, chatID int64, profile *domain.UserProfile, text string) error {
	grams, description, err := ParseFood(text)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	f, err := a.deps.MeasurementSvc.RecordFood(ctx, services.FoodInput{
		UserID:      profile.ID,
		Description: description,
		QuantityG:   grams,
		Timestamp:   a.deps.now(),
	})
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	if err := a.resetState(ctx, profile.TelegramID); err != nil {
		return err
	}
	return a.confirm(chatID, FormatFoodRecorded(f))
}

// confirm sends text followed by the main menu keyboard.
func (a *actions) confirm(chatID int64, text string) error {
	return menus.SendLongText(a.api, chatID, text, keyboards.MainMenu())
}

func (a *actions) sendSummary(ctx context.Context, chatID int64, profile *domain.UserProfile, days int) error {
	start, end := utils.CalendarDays(a.deps.now(), days, a.deps.ReportSvc.Location())
	summary, err := a.deps.ReportSvc.GetSummary(ctx, profile.ID, start, end)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return a.confirm(chatID, FormatSummary(summary, days))
}

func (a *actions) sendTrends(ctx context.Context, chatID int64, profile *domain.UserProfile, days int) error {
	start, end := utils.CalendarDays(a.deps.now(), days, a.deps.ReportSvc.Location())
	glucose, err := a.deps.ReportSvc.GetGlucoseTrend(ctx, profile.ID, start, end)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	pressure, err := a.deps.ReportSvc.GetPressureTrend(ctx, profile.ID, start, end)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return a.confirm(chatID, FormatTrends(glucose, pressure, days))
}

func (a *actions) sendDaily(ctx context.Context, chatID int64, profile *domain.UserProfile, days int) error {
	start, end := utils.CalendarDays(a.deps.now(), days, a.deps.ReportSvc.Location())
	breakdown, err := a.deps.ReportSvc.GetDailyBreakdown(ctx, profile.ID, start, end)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return menus.SendText(a.api, chatID, FormatDaily(breakdown))
}

// sendReport exports the full report as a JSON document.
func (a *actions) sendReport(ctx context.Context, chatID int64, profile *domain.UserProfile, days int) error {
	now := a.deps.now()
	start, end := utils.CalendarDays(now, days, a.deps.ReportSvc.Location())
	report, err := a.deps.ReportSvc.GetReport(ctx, profile.ID, start, end)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("health-report-%s.json", now.In(a.deps.ReportSvc.Location()).Format(dateLayout)),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("📄 Report for the last %d day(s)", days)
	return menus.Send(a.api, doc)
}

type recordKind int

const (
	glucoseRecord recordKind = iota
	pressureRecord
	foodRecord
)

// latestEntry is the newest record of any kind.
type latestEntry struct {
	kind  recordKind
	id    string
	at    time.Time
	label string
}

// latestRecord finds the newest record within the default period.
func (a *actions) latestRecord(ctx context.Context, profile *domain.UserProfile) (*latestEntry, error) {
	start, end := utils.CalendarDays(a.deps.now(), a.deps.defaultDays(), a.deps.ReportSvc.Location())
	svc := a.deps.MeasurementSvc

	glucose, err := svc.ListGlucose(ctx, profile.ID, start, end)
	if err != nil {
		return nil, err
	}
	pressure, err := svc.ListPressure(ctx, profile.ID, start, end)
	if err != nil {
		return nil, err
	}
	food, err := svc.ListFood(ctx, profile.ID, start, end)
	if err != nil {
		return nil, err
	}

	var latest *latestEntry
	consider := func(e latestEntry) {
		if latest == nil || e.at.After(latest.at) {
			latest = &e
		}
	}
	if n := len(glucose); n > 0 {
		m := glucose[n-1]
		consider(latestEntry{glucoseRecord, m.ID, m.Timestamp, fmt.Sprintf("🩸 glucose %g mg/dL", m.Value)})
	}
	if n := len(pressure); n > 0 {
		m := pressure[n-1]
		consider(latestEntry{pressureRecord, m.ID, m.Timestamp, "💓 pressure " + m.Reading()})
	}
	if n := len(food); n > 0 {
		f := food[n-1]
		consider(latestEntry{foodRecord, f.ID, f.Timestamp, fmt.Sprintf("%s %gg %s", f.Glyph, f.QuantityG, f.Description)})
	}
	return latest, nil
}

// undoLatest deletes the newest record.
func (a *actions) undoLatest(ctx context.Context, chatID int64, profile *domain.UserProfile) error {
	latest, err := a.latestRecord(ctx, profile)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	if latest == nil {
		return menus.SendText(a.api, chatID, fmt.Sprintf("Nothing to undo in the last %d day(s).", a.deps.defaultDays()))
	}

	svc := a.deps.MeasurementSvc
	switch latest.kind {
	case glucoseRecord:
		err = svc.DeleteGlucose(ctx, profile.ID, latest.id)
	case pressureRecord:
		err = svc.DeletePressure(ctx, profile.ID, latest.id)
	case foodRecord:
		err = svc.DeleteFood(ctx, profile.ID, latest.id)
	}
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return a.confirm(chatID, "🗑️ Removed "+latest.label)
}

// fixLatestGlucose corrects the value of the newest glucose reading.
func (a *actions) fixLatestGlucose(ctx context.Context, chatID int64, profile *domain.UserProfile, value float64) error {
	start, end := utils.CalendarDays(a.deps.now(), a.deps.defaultDays(), a.deps.ReportSvc.Location())
	readings, err := a.deps.MeasurementSvc.ListGlucose(ctx, profile.ID, start, end)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	if len(readings) == 0 {
		return menus.SendText(a.api, chatID, fmt.Sprintf("No glucose readings in the last %d day(s).", a.deps.defaultDays()))
	}
	updated, err := a.deps.MeasurementSvc.UpdateGlucoseValue(ctx, profile.ID, readings[len(readings)-1].ID, value)
	if err != nil {
		return replyError(ctx, a.api, chatID, err)
	}
	return a.confirm(chatID, "✏️ Corrected\n\n"+FormatGlucoseRecorded(updated))
}
