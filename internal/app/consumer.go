package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/jaytishah/AI-leave-approval-assistant/internal/balance"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/events"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/messaging/kafka/consumer"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/notification"
	"github.com/jaytishah/AI-leave-approval-assistant/internal/shared/connection"
)

// RunConsumer subscribes to the employee lifecycle and leave decision topics.
// New employees get their default balance allocations seeded; finalized
// decisions are relayed to the notifier.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	balanceRepo := balance.NewRepository(gormDB)
	balanceService := balance.NewService(sqlDB, balanceRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	balanceConsumer := balance.NewEmployeeCreatedConsumer(
		kafkaBroker,
		"leave-assistant-balance-seeder",
		balanceService,
	)
	balanceConsumer.Start(ctx)

	decisionReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.LeaveDecisionTopic,
		GroupID:        "leave-assistant-decision-notifier",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer decisionReader.Close()

	go consumer.ConsumeLeaveDecisions(ctx, decisionReader, notification.NewLogNotifier(), logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
