package events

import (
	"context"
	"log/slog"
)

// Worker drains an event channel into a sink. It decouples the synchronous
// write path from broker latency: the ledger adapter publishes to the inbox
// and the worker forwards in the background. Publish failures are logged and
// dropped rather than failing the originating transaction; the ledger history
// remains the source of truth.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Publish(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "event publish failed",
					"event", event.Name,
					"error", err.Error(),
				)
			}
		}
	}
}

// ChannelSink publishes into a channel, pairing with Worker. Publish never
// blocks; when the inbox is full the event is dropped and reported through
// the logger so a stalled broker cannot stall writes.
type ChannelSink struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewChannelSink(inbox chan<- Event, logger *slog.Logger) *ChannelSink {
	return &ChannelSink{inbox: inbox, logger: logger}
}

func (s *ChannelSink) Publish(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	default:
		s.logger.WarnContext(ctx, "event inbox full, dropping event", "event", event.Name)
		return nil
	}
}
