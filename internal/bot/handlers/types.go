package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/vladimiradmaev/health-tracker/internal/bot/menus"
	apperrors "github.com/vladimiradmaev/health-tracker/internal/errors"
	"github.com/vladimiradmaev/health-tracker/internal/interfaces"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// DefaultDays is the summary period when none is configured.
const DefaultDays = 7

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	ProfileSvc     interfaces.ProfileServiceInterface
	MeasurementSvc interfaces.MeasurementServiceInterface
	ReportSvc      interfaces.ReportServiceInterface
	// DefaultDays is used by /summary, /trend, /daily and /report without
	// an argument.
	DefaultDays int
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Dependencies) defaultDays() int {
	if d.DefaultDays > 0 {
		return d.DefaultDays
	}
	return DefaultDays
}

const (
	genericErrorText = "Something went wrong. Please try again."
	timeoutErrorText = "⏳ That took too long. Please try again in a moment."
	storageErrorText = "💾 Your records are unavailable right now. Please try again later."
)

// replyError tells the user what went wrong. Validation and not-found
// errors carry a user-facing message; anything else is logged and answered
// with a text for its kind.
func replyError(ctx context.Context, api menus.Sender, chatID int64, err error) error {
	switch {
	case apperrors.IsValidation(err):
		return menus.SendText(api, chatID, "⚠️ "+apperrors.MessageOf(err))
	case apperrors.IsNotFound(err):
		return menus.SendText(api, chatID, "🔍 "+apperrors.MessageOf(err))
	}
	apperrors.NewHandler(logger.GetLogger()).Handle(ctx, err)
	switch {
	case apperrors.IsTimeout(err):
		return menus.SendText(api, chatID, timeoutErrorText)
	case errors.Is(err, apperrors.ErrDatabaseError):
		return menus.SendText(api, chatID, storageErrorText)
	}
	return menus.SendText(api, chatID, genericErrorText)
}
