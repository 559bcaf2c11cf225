package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes reservation e-mail events to RabbitMQ.  Publishing
// is best-effort: every error is logged and returned so callers can
// ignore failures without interrupting the request flow.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// PublishReservationEmail declares the durable queue (idempotent) and
// publishes the event as a persistent JSON message.
func (p *Publisher) PublishReservationEmail(ctx context.Context, ev ReservationEmailEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		zap.L().Error("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		zap.L().Error("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(EmailQueueName, true, false, false, false, nil); err != nil {
		zap.L().Error("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		zap.L().Error("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // survive broker restarts
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", EmailQueueName, false, false, pub); err != nil {
		zap.L().Error("rabbitmq: publish failed", zap.Error(err))
		return err
	}
	return nil
}
