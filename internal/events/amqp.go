package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"fintrack/internal/store"
)

// AMQPBus fans change notifications out to every running instance through
// a fanout exchange. Each instance binds its own exclusive queue, so all
// instances see all changes and can invalidate their local caches.
type AMQPBus struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string

	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler

	cancel context.CancelFunc
	done   chan struct{}
}

func NewAMQPBus(url, exchangeName string) (*AMQPBus, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	bus := &AMQPBus{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		handlers:     make(map[int]Handler),
		done:         make(chan struct{}),
	}

	if err := bus.setup(); err != nil {
		bus.closeConn()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	bus.cancel = cancel
	go bus.consume(ctx)

	return bus, nil
}

func (b *AMQPBus) setup() error {
	err := b.channel.ExchangeDeclare(
		b.exchangeName, // name
		"fanout",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	// Exclusive server-named queue: one per instance, dropped on disconnect.
	queue, err := b.channel.QueueDeclare(
		"",    // name
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	b.queueName = queue.Name

	err = b.channel.QueueBind(
		b.queueName,
		"", // routing key ignored by fanout
		b.exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

func (b *AMQPBus) Publish(ctx context.Context, change store.Change) error {
	msg := NewChangeMessage(change)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = b.channel.PublishWithContext(
		ctx,
		b.exchangeName, // exchange
		"",             // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published change message",
		"table", change.Table,
		"op", change.Op,
		"id", change.ID,
		"exchange", b.exchangeName)

	return nil
}

func (b *AMQPBus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

func (b *AMQPBus) consume(ctx context.Context) {
	defer close(b.done)

	msgs, err := b.channel.Consume(
		b.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to start consuming change messages", "error", err)
		return
	}

	slog.InfoContext(ctx, "Started consuming change messages", "queue", b.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return
		case delivery, ok := <-msgs:
			if !ok {
				slog.WarnContext(ctx, "Message channel closed")
				return
			}

			msg, err := ChangeMessageFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal message", "error", err)
				delivery.Nack(false, false) // reject and don't requeue
				continue
			}

			b.dispatch(msg.Change())
			delivery.Ack(false)
		}
	}
}

func (b *AMQPBus) dispatch(change store.Change) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, h := range b.handlers {
		h(change)
	}
}

func (b *AMQPBus) Close() error {
	if b.cancel != nil {
		b.cancel()
		<-b.done
	}
	return b.closeConn()
}

func (b *AMQPBus) closeConn() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
