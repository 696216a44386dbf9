package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/dago-libs/pkg/ports"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/dago-node-renderer/internal/config"
	"github.com/aescanero/dago-node-renderer/internal/render"
)

// Worker represents the render worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	renderer      *render.Renderer
	stateStore    ports.StateStorage
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker. stateStore may be nil, in which case requests are
// rendered against their inline data only.
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	renderer *render.Renderer,
	stateStore ports.StateStorage,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		renderer:      renderer,
		stateStore:    stateStore,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting render worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing work
	go w.processWork()

	w.logger.Info("render worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker gracefully, waiting up to timeout for the in-flight request
func (w *Worker) Stop(timeout time.Duration) error {
	w.logger.Info("stopping render worker", zap.String("worker_id", w.id))

	// Cancel context to stop work processing
	w.cancel()

	select {
	case <-w.done:
	case <-time.After(timeout):
		return fmt.Errorf("worker did not stop within %s", timeout)
	}

	w.logger.Info("render worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	// Try to create the group
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
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

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer close(w.done)
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			// Read from stream
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					// No messages available, or shutting down
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			// Process each message
			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single render request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing render request",
		zap.String("message_id", messageID),
	)

	// Parse the render request
	request, err := parseRenderRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse render request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(messageID)
		return
	}

	// Process the render request
	if err := w.processRenderRequest(request); err != nil {
		w.logger.Error("failed to process render request",
			zap.String("message_id", messageID),
			zap.String("render_id", request.RenderID),
			zap.String("execution_id", request.ExecutionID),
			zap.Error(err),
		)
		// Publish error event
		w.publish(w.resultStream+".errors", errorEvent(request, err))
	}

	// Acknowledge the message
	w.acknowledgeMessage(messageID)
}

// RenderRequest represents a render work request
type RenderRequest struct {
	RenderID    string `json:"render_id"`
	ExecutionID string `json:"execution_id,omitempty"`
	NodeID      string `json:"node_id,omitempty"`
	render.Request
}

// parseRenderRequest parses a render request from a Redis message
func parseRenderRequest(values map[string]interface{}) (*RenderRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request RenderRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal render request: %w", err)
	}

	if request.RenderID == "" {
		request.RenderID = uuid.NewString()
	}

	return &request, nil
}

// processRenderRequest processes a render request
func (w *Worker) processRenderRequest(request *RenderRequest) error {
	ctx, cancel := context.WithTimeout(w.ctx, w.config.LLMTimeout)
	defer cancel()

	// Load execution state from store
	var stored map[string]interface{}
	if request.ExecutionID != "" && w.stateStore != nil {
		stateData, err := w.stateStore.Load(ctx, request.ExecutionID)
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}
		stored = stateData
	}

	// Render
	result, err := w.renderer.Render(ctx, &request.Request, stored)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	// Publish render result
	if err := w.publishWithRetry(w.resultStream, resultEvent(request, result)); err != nil {
		return fmt.Errorf("failed to publish result: %w", err)
	}

	w.logger.Info("published render result",
		zap.String("render_id", request.RenderID),
		zap.String("execution_id", request.ExecutionID),
		zap.String("mode", result.Mode),
	)

	return nil
}

// resultEvent builds the event published for a successful render
func resultEvent(request *RenderRequest, result *render.Result) map[string]interface{} {
	event := map[string]interface{}{
		"render_id":    request.RenderID,
		"execution_id": request.ExecutionID,
		"node_id":      request.NodeID,
		"output":       result.Output,
		"mode":         result.Mode,
		"timestamp":    time.Now().UTC(),
	}
	if result.Model != "" {
		event["model"] = result.Model
	}
	return event
}

// errorEvent builds the event published for a failed render
func errorEvent(request *RenderRequest, err error) map[string]interface{} {
	return map[string]interface{}{
		"render_id":    request.RenderID,
		"execution_id": request.ExecutionID,
		"node_id":      request.NodeID,
		"error":        err.Error(),
		"timestamp":    time.Now().UTC(),
	}
}

// retryBackoff is the wait before the first retry; it doubles on every further attempt
const retryBackoff = 100 * time.Millisecond

// publishWithRetry publishes an event, retrying up to MaxRetries times
func (w *Worker) publishWithRetry(stream string, event map[string]interface{}) error {
	attempt := 0
	return retry(w.ctx, w.config.MaxRetries, retryBackoff, func() error {
		attempt++
		err := w.xadd(stream, event)
		if err != nil {
			w.logger.Warn("publish failed",
				zap.String("stream", stream),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		return err
	})
}

// retry calls fn until it succeeds or retries extra attempts fail, waiting backoff
// (doubled each time) between attempts. It gives up early when ctx is done.
func retry(ctx context.Context, retries int, backoff time.Duration, fn func() error) error {
	err := fn()
	for i := 0; err != nil && i < retries; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w (retry aborted: %v)", err, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
		err = fn()
	}
	return err
}

// publish publishes an event once and logs failures
func (w *Worker) publish(stream string, event map[string]interface{}) {
	if err := w.xadd(stream, event); err != nil {
		w.logger.Error("failed to publish event",
			zap.String("stream", stream),
			zap.Error(err),
		)
	}
}

func (w *Worker) xadd(stream string, event map[string]interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	return nil
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	err := w.redisClient.XAck(w.ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
