package menus

import (
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/health-tracker/internal/bot/keyboards"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
)

// Sender is the part of *tgbotapi.BotAPI the bot talks through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// MaxMessageBytes bounds each text message. Telegram allows 4096 characters
// and a character is never shorter than a byte.
const MaxMessageBytes = 4096

// Send delivers c, reporting failures as external API errors.
func Send(api Sender, c tgbotapi.Chattable) error {
	if _, err := api.Send(c); err != nil {
		return apperrors.NewExternalAPIError(err, "telegram")
	}
	return nil
}

const mainMenuText = `🩺 *Health Tracker*

Log glucose, blood pressure and meals. Every reading is checked against your personal limits, and the summary shows your health score, alerts and advice.

⚠️ *Important:* this is not medical advice. Always consult your doctor.

Choose an action:`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboards.MainMenu()
	return Send(api, msg)
}

// SendGlucoseContextMenu asks when the glucose reading was taken.
func SendGlucoseContextMenu(api Sender, chatID int64, limits domain.GlucoseLimits) error {
	msg := tgbotapi.NewMessage(chatID, "When was the reading taken?")
	msg.ReplyMarkup = keyboards.GlucoseContextMenu(limits.Custom)
	return Send(api, msg)
}

// SendSummaryPeriodMenu asks for the summary period.
func SendSummaryPeriodMenu(api Sender, chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, "Which period should I summarize?")
	msg.ReplyMarkup = keyboards.SummaryPeriodMenu()
	return Send(api, msg)
}

// SendPrompt sends text with a button back to the main menu.
func SendPrompt(api Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackMenu()
	return Send(api, msg)
}

// SendText sends plain text, split over several messages when too long.
func SendText(api Sender, chatID int64, text string) error {
	return SendLongText(api, chatID, text, nil)
}

// SendLongText sends text in chunks of at most MaxMessageBytes. markup, when
// not nil, is attached to the last chunk.
func SendLongText(api Sender, chatID int64, text string, markup interface{}) error {
	chunks := SplitText(text, MaxMessageBytes)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if i == len(chunks)-1 && markup != nil {
			msg.ReplyMarkup = markup
		}
		if err := Send(api, msg); err != nil {
			return err
		}
	}
	return nil
}

// SplitText cuts text into chunks of at most limit bytes. Cuts fall on line
// breaks, which are dropped, or on a rune boundary for a line longer than
// limit.
func SplitText(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit+1], '\n')
		next := cut + 1
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			next = cut
		}
		chunks = append(chunks, text[:cut])
		text = text[next:]
	}
	if text == "" && len(chunks) > 0 {
		return chunks
	}
	return append(chunks, text)
}
