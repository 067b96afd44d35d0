package service

import (
	"context"
	"log/slog"
	"sync"

	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	messageDomain "github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
	"github.com/reshetovitsme/offer-listener/internal/shared/errors"
	"github.com/samber/oops"
)

// EventIngestor forwards pushed messages from monitored channels to the pipeline.
type EventIngestor struct {
	source    Subscriber
	monitored *channelDomain.MonitoredSet
	pipeline  Processor

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

// NewEventIngestor creates a new push stream ingestor
func NewEventIngestor(source Subscriber, monitored *channelDomain.MonitoredSet, pipeline Processor) *EventIngestor {
	return &EventIngestor{
		source:    source,
		monitored: monitored,
		pipeline:  pipeline,
	}
}

// Run subscribes and blocks until ctx is done. Any other end of the
// subscription is returned as an error.
func (e *EventIngestor) Run(ctx context.Context) error {
	slog.Info("Event ingestor started", "channels", e.monitored.Len())

	err := e.source.Subscribe(ctx, e.handle)

	// handlers may still be running after Subscribe returns
	e.mu.Lock()
	e.stopped = true
	e.mu.Unlock()
	e.wg.Wait()

	if ctx.Err() != nil {
		slog.Info("Event ingestor stopped")
		return nil
	}
	if err == nil {
		err = errors.ErrSubscriptionClosed
	}
	return oops.With("context", "push subscription").Wrap(err)
}

func (e *EventIngestor) handle(ctx context.Context, msg *messageDomain.RawMessage) {
	if msg == nil || !e.monitored.Contains(msg.ChatID) {
		return
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		slog.Debug("Pushed message dropped after shutdown", "chat_id", msg.ChatID, "message_id", msg.ID)
		return
	}
	e.wg.Add(1)
	e.mu.Unlock()

	// one goroutine per message so a slow sink never holds up update delivery
	go func() {
		defer e.wg.Done()
		outcome := e.pipeline.Process(ctx, msg)
		slog.Debug("Pushed message processed", "chat_id", msg.ChatID, "message_id", msg.ID, "outcome", outcome)
	}()
}
