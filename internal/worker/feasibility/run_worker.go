package feasibility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/domain/repository"
	"github.com/proforma-service/internal/worker"
)

const defaultRetryDelay = time.Second

// RunExecutor evaluates one queued run
type RunExecutor interface {
	Execute(ctx context.Context, event domain.RunRequestEvent) (*domain.RunDoneEvent, error)
}

// RunWorker consumes run requests, executes them and publishes a done event.
// A run that keeps failing is acknowledged with an error event so the
// pending list does not grow.
type RunWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	executor     RunExecutor
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
}

func NewRunWorker(
	streamRepo repository.StreamRepository,
	executor RunExecutor,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *RunWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &RunWorker{
		BaseWorker:   worker.NewBaseWorker("proforma-runs", consumerGroup, logger),
		streamRepo:   streamRepo,
		executor:     executor,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		retryDelay:   defaultRetryDelay,
	}
}

// WithRetryDelay - overrides the pause between attempts
func (w *RunWorker) WithRetryDelay(d time.Duration) *RunWorker {
	w.retryDelay = d
	return w
}

func (w *RunWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting run worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamProFormaRun, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// the consumer stops with this context, not the caller's
	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgChan, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamProFormaRun, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.New("message channel closed")
			}

			if err := w.processMessage(ctx, msg); err != nil {
				// left pending for redelivery
				logger.Error("Failed to process message", zap.String("message_id", msg.ID), zap.Error(err))
				continue
			}

			if err := w.streamRepo.AckMessage(ctx, domain.StreamProFormaRun, w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to acknowledge message", zap.String("message_id", msg.ID), zap.Error(err))
			}
		}
	}
}

// processMessage returns an error only when the message should stay pending
func (w *RunWorker) processMessage(ctx context.Context, msg domain.StreamMessage) error {
	logger := w.Logger()

	var event domain.RunRequestEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		// unparseable requests are dropped
		logger.Error("Failed to unmarshal run request",
			zap.String("message_id", msg.ID),
			zap.String("raw_data", msg.Data),
			zap.Error(err))
		return nil
	}

	logger.Info("Processing run",
		zap.String("run_id", event.RunID.String()),
		zap.Strings("forms", event.Forms),
		zap.Bool("has_forms", event.HasForms()))

	done, err := w.execute(ctx, event)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("Run failed", zap.String("run_id", event.RunID.String()), zap.Error(err))
		done = &domain.RunDoneEvent{
			RunID:      event.RunID,
			Error:      err.Error(),
			FinishedAt: time.Now().UTC(),
		}
	}

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamProFormaDone, done); err != nil {
		return fmt.Errorf("failed to publish run result: %w", err)
	}

	logger.Info("Run finished",
		zap.String("run_id", event.RunID.String()),
		zap.Int("sites", done.Sites),
		zap.Any("feasible", done.Feasible),
		zap.Bool("failed", done.Error != ""))
	return nil
}

func (w *RunWorker) execute(ctx context.Context, event domain.RunRequestEvent) (*domain.RunDoneEvent, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		done, err := w.executor.Execute(ctx, event)
		if err == nil {
			return done, nil
		}
		lastErr = err

		if attempt == w.maxRetries {
			break
		}
		w.Logger().Warn("Run attempt failed",
			zap.String("run_id", event.RunID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-time.After(w.retryDelay * time.Duration(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("run failed after %d attempts: %w", w.maxRetries, lastErr)
}
