package consumer

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/events"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/notification"
)

// ConsumeLeaveDecisions relays finalized decisions to the notifier. Replays
// are harmless: notifying twice beats never notifying.
func ConsumeLeaveDecisions(
	ctx context.Context,
	reader *kafkago.Reader,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_decision")
	log.Info("leave decision consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave decision consumer stopped")
				return
			}
			log.Error("fetch leave decision message failed", zap.Error(err))
			continue
		}

		var event events.LeaveDecisionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave decision event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.NotifyDecision(ctx, event); err != nil {
			log.Error("dispatch leave decision notification failed",
				zap.String("request_id", event.RequestID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave decision message failed", zap.Error(err))
			continue
		}

		log.Info("leave decision notification dispatched",
			zap.String("request_id", event.RequestID),
			zap.String("status", event.Status),
		)
	}
}
