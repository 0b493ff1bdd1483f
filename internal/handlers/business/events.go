package business

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	EventRequestSubmitted = "reward_request.submitted"
	EventRequestDecided   = "reward_request.decided"
	EventSurveyCompleted  = "reward_request.survey_completed"
)

// RewardEvent describes a committed change of a reward request.
type RewardEvent struct {
	ID          string           `json:"id"`
	Type        string           `json:"type"`
	RequestID   uint             `json:"request_id"`
	UserID      uint             `json:"user_id"`
	Option      string           `json:"option"`
	Status      string           `json:"status"`
	WeekStart   string           `json:"week_start"`
	WeekEnd     string           `json:"week_end"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Fee         *decimal.Decimal `json:"fee,omitempty"`
	NetAmount   *decimal.Decimal `json:"net_amount,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

// EventPublisher receives reward events after the ledger has committed.
type EventPublisher interface {
	PublishRewardEvent(ctx context.Context, event RewardEvent) error
}

// Fanout publishes to every publisher and logs failures.
type Fanout []EventPublisher

func (f Fanout) PublishRewardEvent(ctx context.Context, event RewardEvent) error {
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishRewardEvent(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"event_id":   event.ID,
				"event_type": event.Type,
				"request_id": event.RequestID,
				"error":      err.Error(),
			}).Warn("Failed to publish reward event")
		}
	}
	return nil
}

// QueueSender is satisfied by the RabbitMQ publisher.
type QueueSender interface {
	Publish(queueName string, message interface{}) error
}

// QueuePublisher forwards reward events to a message queue.
type QueuePublisher struct {
	Sender QueueSender
	Queue  string
}

func (q QueuePublisher) PublishRewardEvent(_ context.Context, event RewardEvent) error {
	return q.Sender.Publish(q.Queue, event)
}

func newRewardEvent(eventType string, now time.Time) RewardEvent {
	return RewardEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: now,
	}
}
