package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/events"
)

// Notifier delivers decision outcomes to employees. Transport (email, chat)
// is an external collaborator; this package only defines the trigger contract
// and a logging implementation used until one is wired.
//
//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	NotifyDecision(ctx context.Context, event events.LeaveDecisionEvent) error
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.log")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.log")
	}
	return &logNotifier{logger: l}
}

func (n *logNotifier) NotifyDecision(_ context.Context, event events.LeaveDecisionEvent) error {
	n.logger.Info("leave decision notification",
		zap.String("request_id", event.RequestID),
		zap.String("request_number", event.RequestNumber),
		zap.String("employee_id", event.EmployeeID),
		zap.String("company_id", event.CompanyID),
		zap.String("status", event.Status),
		zap.String("engine", event.Engine),
		zap.Int("confidence", event.Confidence),
	)
	return nil
}
