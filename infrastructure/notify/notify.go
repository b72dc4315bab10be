// Package notify provides the production Notifier: the dashboard frontend
// owns the actual toasts and dialogs, so the backend implementation logs
// the outcome and auto-confirms destructive operations the client already
// confirmed with the user.
package notify

import (
	"go.uber.org/zap"

	"obras-backend/application/ports"
)

type logNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a Notifier backed by the application logger.
func NewLogNotifier(logger *zap.Logger) ports.Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Success(msg string) {
	n.logger.Info("Submission outcome", zap.String("notice", msg))
}

func (n *logNotifier) Error(msg string) {
	n.logger.Warn("Submission outcome", zap.String("notice", msg))
}

func (n *logNotifier) Confirm(msg string) bool {
	n.logger.Debug("Confirmation assumed", zap.String("prompt", msg))
	return true
}
