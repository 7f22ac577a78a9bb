package queue

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/movie-catalog/internal/logger"
)

// StartRatingConsumer connects to RabbitMQ, declares the rating.submitted
// queue (durable), and starts consuming messages. Each message is appended to
// logs/ratings.log in a single-line, human-friendly format. The function runs
// a reconnect loop and never returns under normal operation; processing
// errors are logged and the offending message rejected so the feed keeps
// flowing.
func StartRatingConsumer() {
	url := brokerURL()
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			logger.Warn("rating-consumer: failed to dial broker", "err", err, "retry_in", backoff.String())
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			logger.Warn("rating-consumer: consume loop ended, reconnecting", "err", err)
		}
		_ = conn.Close()
		time.Sleep(2 * time.Second)
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(ratingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	deliveries, err := ch.Consume(ratingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for d := range deliveries {
		var ev RatingSubmittedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			logger.Warn("rating-consumer: bad payload", "err", err)
			_ = d.Reject(false)
			continue
		}
		if err := appendFeedLine(ev); err != nil {
			logger.Warn("rating-consumer: write feed failed", "err", err)
			_ = d.Reject(true)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func appendFeedLine(ev RatingSubmittedEvent) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join("logs", "ratings.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s rated %q %d/5 (count=%d grade=%d) at %s\n",
		ev.Username, ev.MovieTitle, ev.Score, ev.RatingCount, ev.Grade, ev.SubmittedAt)
	_, err = f.WriteString(line)
	return err
}
