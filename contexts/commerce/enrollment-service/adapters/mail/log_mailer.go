package mailadapter

import (
	"context"
	"log/slog"
)

// LogMailer implements ports.Mailer by logging the welcome message. Real
// delivery sits behind a mail gateway outside this repository.
type LogMailer struct {
	Logger *slog.Logger
}

func (m LogMailer) SendWelcome(_ context.Context, userID string, courseSlug string) error {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("welcome mail dispatched",
		"event", "welcome_mail_dispatched",
		"module", "commerce/enrollment-service",
		"layer", "adapter",
		"user_id", userID,
		"course_slug", courseSlug,
	)
	return nil
}
