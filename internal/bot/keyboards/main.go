package keyboards

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/domain"
)

// Callback data
const (
	CallbackMainMenu = "main_menu"
	CallbackGlucose  = "glucose"
	CallbackPressure = "pressure"
	CallbackFood     = "food"
	CallbackSummary  = "summary"
	CallbackTrends   = "trends"
	CallbackLimits   = "limits"
)

// Callback data prefixes. A glucose context is followed by ":" and the range
// name for custom ranges; the summary prefix is followed by a day count.
const (
	PrefixGlucoseContext = "glucose_ctx:"
	PrefixSummaryDays    = "summary:"
)

// maxCallbackData is Telegram's limit on callback_data bytes.
const maxCallbackData = 64

// SummaryPeriods are the day counts offered for summaries.
var SummaryPeriods = []int{1, 7, 14, 30}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🩸 Glucose", CallbackGlucose),
			tgbotapi.NewInlineKeyboardButtonData("💓 Pressure", CallbackPressure),
			tgbotapi.NewInlineKeyboardButtonData("🍽️ Food", CallbackFood),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Summary", CallbackSummary),
			tgbotapi.NewInlineKeyboardButtonData("📈 Trends", CallbackTrends),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚙️ My limits", CallbackLimits),
		),
	)
}

// BackMenu has a single button returning to the main menu.
func BackMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", CallbackMainMenu),
		),
	)
}

// GlucoseContextData builds the callback data selecting a reading context.
func GlucoseContextData(ctx domain.GlucoseContext, customName string) string {
	if ctx == domain.ContextCustom {
		return fmt.Sprintf("%s%s:%s", PrefixGlucoseContext, ctx, customName)
	}
	return PrefixGlucoseContext + string(ctx)
}

// ParseGlucoseContextData is the inverse of GlucoseContextData.
func ParseGlucoseContextData(data string) (domain.GlucoseContext, string, bool) {
	rest, ok := strings.CutPrefix(data, PrefixGlucoseContext)
	if !ok {
		return "", "", false
	}
	name, customName, _ := strings.Cut(rest, ":")
	ctx := domain.GlucoseContext(name)
	if !ctx.Valid() || (ctx == domain.ContextCustom) != (customName != "") {
		return "", "", false
	}
	return ctx, customName, true
}

// GlucoseContextMenu offers the standard contexts and every custom range
// whose name fits in the callback data.
func GlucoseContextMenu(custom []domain.CustomGlucoseRange) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌅 Fasting", GlucoseContextData(domain.ContextFasting, "")),
			tgbotapi.NewInlineKeyboardButtonData("🍽️ After a meal", GlucoseContextData(domain.ContextPostPrandial, "")),
		),
	)
	for _, r := range custom {
		data := GlucoseContextData(domain.ContextCustom, r.Name)
		if len(data) > maxCallbackData {
			continue
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🕒 "+r.Name, data)),
		)
	}
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, BackMenu().InlineKeyboard...)
	return keyboard
}

// SummaryPeriodMenu lets the user pick how many days to summarize.
func SummaryPeriodMenu() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(SummaryPeriods))
	for _, days := range SummaryPeriods {
		label := fmt.Sprintf("%d days", days)
		if days == 1 {
			label = "Today"
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", PrefixSummaryDays, days)))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(row)
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, BackMenu().InlineKeyboard...)
	return keyboard
}
