package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/doevida/doevida-backend/pkg/enums"
	"github.com/doevida/doevida-backend/pkg/events"
	"github.com/doevida/doevida-backend/pkg/events/idempotency"
	"github.com/doevida/doevida-backend/pkg/logger"
	"github.com/doevida/doevida-backend/pkg/metrics"
)

const participationNotificationConsumer = "participation-notifications"

type mailer interface {
	SendParticipationConfirmation(ctx context.Context, to, name, campaignTitle, location string) error
}

// Consumer watches domain events and mails donors their participation confirmations.
type Consumer struct {
	mailer       mailer
	subscription *pubsub.Subscriber
	idempotency  *idempotency.Manager
	metrics      *metrics.WorkerMetrics
	logg         *logger.Logger
}

// NewConsumer builds a participation notification consumer.
func NewConsumer(m mailer, subscription *pubsub.Subscriber, manager *idempotency.Manager, workerMetrics *metrics.WorkerMetrics, logg *logger.Logger) (*Consumer, error) {
	if m == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if subscription == nil {
		return nil, fmt.Errorf("domain subscription required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		mailer:       m,
		subscription: subscription,
		idempotency:  manager,
		metrics:      workerMetrics,
		logg:         logg,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		result := c.process(ctx, msg)
		if result.nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != string(enums.EventParticipationJoined) {
		c.logg.Info(logCtx, "skipping unrelated event")
		return processResult{ack: true}
	}

	var envelope events.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	already, err := c.idempotency.CheckAndMarkProcessed(ctx, participationNotificationConsumer, eventID)
	if err != nil {
		c.logg.Error(logCtx, "idempotency check failed", err)
		return processResult{nack: true}
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		c.metrics.IncSkipped(eventType)
		return processResult{ack: true}
	}

	var payload events.ParticipationJoinedEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		_ = c.idempotency.Delete(ctx, participationNotificationConsumer, eventID)
		return processResult{nack: true}
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"participation_id": payload.ParticipationID.String(),
		"campaign_id":      payload.CampaignID.String(),
	})

	started := time.Now()
	err = c.handlePayload(ctx, payload, logCtx)
	c.metrics.ObserveDuration(eventType, time.Since(started))
	if err != nil {
		c.logg.Error(logCtx, "confirmation email failed", err)
		c.metrics.IncFailure(eventType)
		_ = c.idempotency.Delete(ctx, participationNotificationConsumer, eventID)
		return processResult{nack: true}
	}

	c.metrics.IncSuccess(eventType)
	return processResult{ack: true}
}

func (c *Consumer) handlePayload(ctx context.Context, payload events.ParticipationJoinedEvent, logCtx context.Context) error {
	if payload.UserEmail == "" {
		c.logg.Info(logCtx, "payload has no donor email, nothing to send")
		return nil
	}
	if err := c.mailer.SendParticipationConfirmation(ctx, payload.UserEmail, payload.UserName, payload.CampaignTitle, payload.Location); err != nil {
		return err
	}
	c.logg.Info(logCtx, "donor notified of confirmed participation")
	return nil
}
