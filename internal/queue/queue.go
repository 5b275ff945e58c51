// internal/queue/queue.go
package queue

import (
    "encoding/json"
    "fmt"
    "log"
    "sync"
    "time"

    "github.com/streadway/amqp"
)

// TopicCampaignAssembled carries the id of every newly persisted campaign.
const TopicCampaignAssembled = "campaign.assembled"

// AMQPQueueName is the broker queue downstream delivery workers consume.
const AMQPQueueName = "campaign_assembled"

// Queue interface
type Queue interface {
    Publish(topic string, payload any) error
    Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process pub/sub queue with retry.
type InMemoryQueue struct {
    mu       sync.Mutex
    handlers map[string][]func(payload any) error
}

func NewInMemoryQueue() *InMemoryQueue {
    return &InMemoryQueue{
        handlers: make(map[string][]func(payload any) error),
    }
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
    Payload    any
    RetryCount int
    MaxRetries int
}

// Publish sends a message to all subscribers. Handlers run on their own
// goroutines so publishing never blocks the request path.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
    q.mu.Lock()
    handlers := q.handlers[topic]
    q.mu.Unlock()

    if len(handlers) == 0 {
        return fmt.Errorf("no subscribers for topic %s", topic)
    }

    job := JobPayload{
        Payload:    payload,
        RetryCount: 0,
        MaxRetries: 3,
    }

    for _, handler := range handlers {
        go q.processJob(handler, job)
    }

    return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
    for job.RetryCount <= job.MaxRetries {
        err := handler(job.Payload)
        if err == nil {
            return // ACK
        }

        job.RetryCount++
        log.Printf("⚠️ job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

        if job.RetryCount > job.MaxRetries {
            log.Printf("⚠️ job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
            return // No requeue
        }

        // Exponential backoff before retry
        time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
    }
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
    q.mu.Lock()
    defer q.mu.Unlock()

    q.handlers[topic] = append(q.handlers[topic], handler)
    return nil
}

// LogAssembled consumes campaign.assembled events when no broker is
// configured, so publishing always has a subscriber.
func LogAssembled(q Queue) {
    err := q.Subscribe(TopicCampaignAssembled, func(payload any) error {
        log.Println("📦 campaign assembled:", payload)
        return nil
    })
    if err != nil {
        log.Println("⚠️ failed to subscribe logger for", TopicCampaignAssembled, ":", err)
    }
}

// StartAssembledBridge forwards in-process campaign.assembled events to the
// RabbitMQ queue consumed by cmd/worker. A failed publish returns an error so
// the in-memory queue retries it.
func StartAssembledBridge(q Queue, amqpURL string) {
    err := q.Subscribe(TopicCampaignAssembled, func(payload any) error {
        campaignID, ok := payload.(string)
        if !ok {
            log.Println("⚠️ invalid payload type, expected campaign id string")
            return nil // no retry
        }

        conn, err := amqp.Dial(amqpURL)
        if err != nil {
            return err
        }
        defer conn.Close()

        ch, err := conn.Channel()
        if err != nil {
            return err
        }
        defer ch.Close()

        declared, err := ch.QueueDeclare(
            AMQPQueueName,
            true,  // durable
            false, // delete when unused
            false, // exclusive
            false, // no-wait
            nil,
        )
        if err != nil {
            return err
        }

        body, _ := json.Marshal(map[string]string{"campaign_id": campaignID})
        return ch.Publish(
            "",
            declared.Name,
            false,
            false,
            amqp.Publishing{
                ContentType: "application/json",
                Body:        body,
            },
        )
    })
    if err != nil {
        log.Println("⚠️ failed to subscribe bridge for", TopicCampaignAssembled, ":", err)
    }
}
