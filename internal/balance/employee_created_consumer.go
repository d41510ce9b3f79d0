package balance

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	balanceerrors "github.com/jaytishah/AI-leave-approval-assistant/internal/balance/errors"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/events"
)

// EmployeeCreatedConsumer seeds the default leave allocations whenever a new
// employee record is announced on the lifecycle topic.
type EmployeeCreatedConsumer struct {
	reader  *kafka.Reader
	service Service
	logger  *zap.Logger
}

func NewEmployeeCreatedConsumer(
	broker string,
	groupID string,
	service Service,
	logger ...*zap.Logger,
) *EmployeeCreatedConsumer {
	l := zap.L().Named("balance.consumer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.consumer")
	}

	return &EmployeeCreatedConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:        []string{broker},
			Topic:          events.EmployeeCreatedTopic,
			GroupID:        groupID,
			CommitInterval: time.Second,
			StartOffset:    kafka.FirstOffset,
		}),
		service: service,
		logger:  l,
	}
}

func (c *EmployeeCreatedConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.Error("consume employee_created failed", zap.Error(err))
				continue
			}

			var event events.EmployeeCreatedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				c.logger.Error("decode employee_created event failed", zap.Error(err))
				if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
					c.logger.Error("commit invalid employee_created event failed", zap.Error(commitErr))
				}
				continue
			}

			year := time.Now().UTC().Year()
			err = c.service.SeedDefaults(ctx, event.CompanyID, event.EmployeeID, year)
			if err != nil {
				// Replayed event, allocations already exist.
				if errors.Is(err, balanceerrors.ErrBalanceAlreadyExists) {
					c.logger.Warn("leave balances already seeded for event, skipping",
						zap.String("employee_id", event.EmployeeID),
						zap.String("company_id", event.CompanyID),
					)
					if commitErr := c.reader.CommitMessages(ctx, msg); commitErr != nil {
						c.logger.Error("commit duplicate employee_created event failed", zap.Error(commitErr))
					}
					continue
				}

				c.logger.Error("seed default leave balances failed",
					zap.String("employee_id", event.EmployeeID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("commit employee_created event failed", zap.Error(err))
				continue
			}

			c.logger.Info("leave balances seeded from employee_created event",
				zap.String("employee_id", event.EmployeeID),
				zap.String("company_id", event.CompanyID),
				zap.Int("year", year),
			)
		}
	}()
}
