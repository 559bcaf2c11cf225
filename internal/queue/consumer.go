package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/gkidjo/train-booking-api/internal/mail"
)

// Consumer drains the reservation e-mail queue and delivers each
// message through the Mailer.
type Consumer struct {
	url    string
	mailer mail.Mailer
}

func NewConsumer(url string, m mail.Mailer) *Consumer {
	return &Consumer{url: url, mailer: m}
}

// Run connects to RabbitMQ and consumes until the context is
// cancelled.  Connection failures trigger a reconnect loop with capped
// exponential backoff; per-message failures are logged and the message
// is rejected without requeue so a poison message cannot spin the
// consumer.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			zap.L().Warn("mail-consumer: dial failed",
				zap.Error(err), zap.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := c.consumeLoop(ctx, conn); err != nil {
			zap.L().Warn("mail-consumer: consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		zap.L().Warn("mail-consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(EmailQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(EmailQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(ctx, d.Body); err != nil {
				zap.L().Error("mail-consumer: handle message failed", zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, body []byte) error {
	var ev ReservationEmailEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	subject, text, err := Compose(ev)
	if err != nil {
		return err
	}
	if err := c.mailer.Send(ctx, ev.Email, subject, text); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	zap.L().Info("mail sent",
		zap.String("kind", ev.Kind),
		zap.Uint64("reservation_id", ev.ReservationID),
		zap.Uint64("user_id", ev.UserID),
	)
	return nil
}

// Compose maps an event to the subject and body of the outgoing mail.
func Compose(ev ReservationEmailEvent) (subject, body string, err error) {
	switch ev.Kind {
	case KindConfirmed:
		return mail.SubjectConfirmation, mail.ConfirmationBody(ev.TripLabel), nil
	case KindCancelled:
		return mail.SubjectCancellation, mail.CancellationBody(ev.TripLabel), nil
	default:
		return "", "", fmt.Errorf("unknown event kind %q", ev.Kind)
	}
}
