package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type consumer interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type HandlerFunc func(ctx context.Context, evt Event)

// Listener dispatches events published by other instances. Events whose
// Source is this instance are skipped: the local caches were already dropped
// by the write itself.
type Listener struct {
	consumer consumer
	source   string
	handlers map[Type][]HandlerFunc
	logger   logger.ZapLogger
}

func NewListener(c consumer, source string, log logger.ZapLogger) *Listener {
	return &Listener{
		consumer: c,
		source:   source,
		handlers: map[Type][]HandlerFunc{},
		logger:   log,
	}
}

func (l *Listener) On(t Type, fn HandlerFunc) {
	l.handlers[t] = append(l.handlers[t], fn)
}

func (l *Listener) Start(ctx context.Context) {
	l.logger.Info("Starting catalog event listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping catalog event listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *Listener) processMessage(ctx context.Context, value []byte) {
	var evt Event
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if evt.Source == l.source {
		return
	}

	handlers := l.handlers[evt.EventType]
	if len(handlers) == 0 {
		return
	}

	l.logger.Debug("Processing catalog event",
		zap.String("event_type", string(evt.EventType)),
		zap.String("entity_id", evt.EntityID),
	)
	for _, fn := range handlers {
		fn(ctx, evt)
	}
}
