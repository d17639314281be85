package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aescanero/dago-node-rules/internal/config"
	"github.com/aescanero/dago-node-rules/internal/eval/cel"
	"github.com/aescanero/dago-node-rules/internal/metrics"
	"github.com/aescanero/dago-node-rules/internal/rules"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// stopTimeout bounds how long Stop waits for the in-flight message.
	stopTimeout = 5 * time.Second

	// messageTimeout bounds the Redis writes made for one message.
	messageTimeout = 3 * time.Second
)

// streamClient is the part of *redis.Client the worker uses.
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Worker consumes data rows from a Redis stream and publishes rule results
type Worker struct {
	id            string
	config        *config.Config
	redisClient   streamClient
	engine        *rules.Engine
	filter        *cel.Filter
	metrics       *metrics.Collector
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker. filter and collector may be nil.
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	engine *rules.Engine,
	filter *cel.Filter,
	collector *metrics.Collector,
	logger *zap.Logger,
) *Worker {
	return newWorker(cfg, redisClient, engine, filter, collector, logger)
}

func newWorker(
	cfg *config.Config,
	redisClient streamClient,
	engine *rules.Engine,
	filter *cel.Filter,
	collector *metrics.Collector,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		engine:        engine,
		filter:        filter,
		metrics:       collector,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting rule worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
		zap.Int("rules", w.engine.Len()),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	w.done = make(chan struct{})
	go w.processWork()

	w.logger.Info("rule worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the message in flight
func (w *Worker) Stop() error {
	w.logger.Info("stopping rule worker", zap.String("worker_id", w.id))

	w.cancel()

	if w.done != nil {
		select {
		case <-w.done:
		case <-time.After(stopTimeout):
			return fmt.Errorf("worker %s did not stop within %s", w.id, stopTimeout)
		}
	}

	w.logger.Info("rule worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP means the group already exists
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork reads rows from the stream until the worker is stopped
func (w *Worker) processWork() {
	defer close(w.done)
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || w.ctx.Err() != nil {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				select {
				case <-w.ctx.Done():
				case <-time.After(time.Second):
				}
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage checks one data row and acknowledges it. Every message is
// acknowledged, including the ones that fail. The message is finished on a
// context that Stop does not cancel, so a row read before Stop is still
// published and acknowledged.
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Debug("processing data row",
		zap.String("message_id", messageID),
	)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), messageTimeout)
	defer cancel()
	defer w.acknowledgeMessage(ctx, messageID)

	request, err := parseRowRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse row request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.recordFailed()
		w.publishError(ctx, messageID, "", err)
		return
	}
	if request.RowID == "" {
		request.RowID = messageID
	}

	result, err := w.processRow(ctx, messageID, request)
	if err != nil {
		w.logger.Error("failed to check data row",
			zap.String("message_id", messageID),
			zap.String("row_id", request.RowID),
			zap.Error(err),
		)
		w.publishError(ctx, messageID, request.RowID, err)
		return
	}
	if result == nil {
		w.logger.Debug("data row filtered",
			zap.String("message_id", messageID),
			zap.String("row_id", request.RowID),
		)
		return
	}

	if err := w.publishResult(ctx, result); err != nil {
		w.logger.Error("failed to publish rule result",
			zap.String("message_id", messageID),
			zap.String("row_id", request.RowID),
			zap.Error(err),
		)
	}
}

// RowRequest is the payload of a data row message
type RowRequest struct {
	RowID string                 `json:"row_id"`
	Data  map[string]interface{} `json:"data"`
}

// RowResult is the payload published for a checked row
type RowResult struct {
	ResultID  string    `json:"result_id"`
	RowID     string    `json:"row_id"`
	MessageID string    `json:"message_id"`
	WorkerID  string    `json:"worker_id"`
	Results   []bool    `json:"results"`
	Matched   int       `json:"matched"`
	Timestamp time.Time `json:"timestamp"`
}

// parseRowRequest parses a row request from a Redis message
func parseRowRequest(values map[string]interface{}) (*RowRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request RowRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal row request: %w", err)
	}
	if request.Data == nil {
		return nil, fmt.Errorf("row request has no data")
	}

	return &request, nil
}

// processRow filters and checks one row. A nil result with a nil error means
// the filter rejected the row.
func (w *Worker) processRow(ctx context.Context, messageID string, request *RowRequest) (*RowResult, error) {
	row, err := w.engine.CoerceRow(request.Data)
	if err != nil {
		w.recordFailed()
		return nil, err
	}

	if w.filter != nil {
		matched, err := w.filter.Match(ctx, row)
		if err != nil {
			w.recordFailed()
			return nil, fmt.Errorf("row filter failed: %w", err)
		}
		if !matched {
			if w.metrics != nil {
				w.metrics.RecordFiltered()
			}
			return nil, nil
		}
	}

	start := time.Now()
	results, err := w.engine.Check(row)
	if w.metrics != nil {
		w.metrics.RecordEvaluation(results, time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	matched := 0
	for _, ok := range results {
		if ok {
			matched++
		}
	}

	return &RowResult{
		ResultID:  uuid.NewString(),
		RowID:     request.RowID,
		MessageID: messageID,
		WorkerID:  w.id,
		Results:   results,
		Matched:   matched,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (w *Worker) recordFailed() {
	if w.metrics != nil {
		w.metrics.RecordFailed()
	}
}

// publishResult publishes a rule result to the result stream
func (w *Worker) publishResult(ctx context.Context, result *RowResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: w.resultStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	w.logger.Info("published rule result",
		zap.String("row_id", result.RowID),
		zap.String("result_id", result.ResultID),
		zap.Int("matched", result.Matched),
	)

	return nil
}

// errorEvent builds the payload published for a failed row
func (w *Worker) errorEvent(messageID, rowID string, err error) map[string]interface{} {
	return map[string]interface{}{
		"message_id": messageID,
		"row_id":     rowID,
		"worker_id":  w.id,
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}
}

// publishError publishes an error event
func (w *Worker) publishError(ctx context.Context, messageID, rowID string, err error) {
	data, marshalErr := json.Marshal(w.errorEvent(messageID, rowID, err))
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	// Errors go to a separate stream
	_, publishErr := w.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: w.resultStream + ".errors",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
