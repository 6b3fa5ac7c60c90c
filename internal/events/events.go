// Package events carries catalog change notifications between service
// instances so each one can drop its local caches.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/boutique-catalog-service/pkg/broker"
	"github.com/fekuna/boutique-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Type string

const (
	ProductCreated  Type = "product.created"
	ProductUpdated  Type = "product.updated"
	ProductDeleted  Type = "product.deleted"
	CategoryCreated Type = "category.created"
	CategoryUpdated Type = "category.updated"
	CategoryDeleted Type = "category.deleted"
	SettingUpdated  Type = "setting.updated"
)

type Event struct {
	EventID   string    `json:"event_id"`
	EventType Type      `json:"event_type"`
	EntityID  string    `json:"entity_id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is fire and forget: failures are logged, never returned, so a
// broker outage cannot fail a catalog write.
type Publisher interface {
	Publish(ctx context.Context, eventType Type, entityID string)
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Type, string) {}

type producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

type KafkaPublisher struct {
	producer producer
	source   string
	logger   logger.ZapLogger
}

var _ producer = (*broker.KafkaProducer)(nil)

func NewKafkaPublisher(p *broker.KafkaProducer, source string, log logger.ZapLogger) *KafkaPublisher {
	return &KafkaPublisher{producer: p, source: source, logger: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, eventType Type, entityID string) {
	evt := Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		EntityID:  entityID,
		Source:    p.source,
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to marshal catalog event", zap.Error(err))
		return
	}
	if err := p.producer.Publish(ctx, []byte(entityID), value); err != nil {
		p.logger.Error("failed to publish catalog event",
			zap.String("event_type", string(eventType)),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}
