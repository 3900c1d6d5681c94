// Package queue also contains the background consumer that listens to the
// order.completed queue and writes one line per order to orders.log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrderLogFile is the file name written under the consumer's log directory.
const OrderLogFile = "orders.log"

// StartOrderConsumer connects to RabbitMQ, declares the order.completed queue
// (durable), and starts consuming messages.  Each message is appended to
// <logDir>/orders.log in a single-line, human-friendly format.  The function
// runs a reconnect loop and returns only when ctx is cancelled; processing
// errors are logged and the offending message is rejected so the server
// continues operating.
func StartOrderConsumer(ctx context.Context, url, logDir string) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("order-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = consumeLoop(ctx, conn, logDir)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("order-consumer: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, logDir string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("order-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(OrderCompletedQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(OrderCompletedQueue, "", false, false, false, false, nil)
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
			if err := handleMessage(logDir, d.Body); err != nil {
				log.Printf("order-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(logDir string, body []byte) error {
	var ev OrderCompletedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.OrderNumber == "" {
		return errors.New("missing order_number")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", logDir, err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, OrderLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

func formatLine(ev OrderCompletedEvent) string {
	titles := make([]string, 0, len(ev.Items))
	for _, it := range ev.Items {
		titles = append(titles, fmt.Sprintf("%q", it.Title))
	}
	return fmt.Sprintf("[%s] Order completed | order=%s | order_id=%d | user_id=%d | subtotal=%s | tax=%s | points_used=%d | total=%s | points_earned=%d | items=[%s]\n",
		ev.CompletedAt, ev.OrderNumber, ev.OrderID, ev.UserID, ev.Subtotal, ev.Tax, ev.PointsUsed, ev.Total, ev.PointsEarned, strings.Join(titles, ","))
}

// sleep waits d or until ctx is done; it reports whether the full wait
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
