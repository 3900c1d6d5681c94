package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/periodical-store/internal/model"
	"github.com/iliyamo/periodical-store/internal/queue"
)

// Publisher delivers domain events.  Implementations must be safe for
// concurrent use.  Callers treat a failed publish as non-fatal.
type Publisher interface {
	PublishOrderCompleted(ctx context.Context, ev queue.OrderCompletedEvent) error
}

// AMQPPublisher publishes to RabbitMQ, dialing per message.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher { return &AMQPPublisher{URL: url} }

// PublishOrderCompleted publishes ev to the "order.completed" queue.  Any
// error is logged and returned so the caller can choose to ignore it.
// Messages are marked as persistent.
func (p *AMQPPublisher) PublishOrderCompleted(ctx context.Context, ev queue.OrderCompletedEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.OrderCompletedQueue, // name
		true,                      // durable
		false,                     // autoDelete
		false,                     // exclusive
		false,                     // noWait
		nil,                       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		MessageId:    ev.OrderNumber,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.OrderCompletedQueue, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}

// NopPublisher drops every event.  It is wired when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderCompleted(context.Context, queue.OrderCompletedEvent) error {
	return nil
}

// NewOrderNumber returns "ORD-<unix millis>-<8 upper-case hex>".
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}

// orderCompletedEvent builds the broker payload for a committed order.
func orderCompletedEvent(o model.Order) queue.OrderCompletedEvent {
	lines := make([]queue.OrderLine, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, queue.OrderLine{
			PublicationID: it.PublicationID,
			Title:         it.Publication.Title,
			Type:          string(it.Publication.Type),
			Price:         it.Price.StringFixed(2),
		})
	}
	return queue.OrderCompletedEvent{
		OrderID:      o.ID,
		OrderNumber:  o.OrderNumber,
		UserID:       o.UserID,
		Items:        lines,
		Subtotal:     o.Subtotal.StringFixed(2),
		Tax:          o.Tax.StringFixed(2),
		PointsUsed:   o.PointsUsed,
		Total:        o.Total.StringFixed(2),
		PointsEarned: o.PointsEarned,
		CompletedAt:  o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
