package rabbit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/w-h-a/notify/internal/engine/clients/broker"
)

const (
	poolSize           = 3
	maxConsumeAttempts = 20
)

type rabbitBroker struct {
	options broker.Options
	pool    []*amqp.Connection
	next    int
	mtx     sync.RWMutex
	exit    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

func (b *rabbitBroker) Subscribe(ctx context.Context, callback func(ctx context.Context, data []byte) error, opts ...broker.SubscribeOption) error {
	options := broker.NewSubscribeOptions(opts...)

	// span
	slog.InfoContext(ctx, "subscribing to queue", "queue", options.Queue)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		for attempt := 1; attempt <= maxConsumeAttempts; attempt++ {
			rbch, msgs, err := b.consume(options.Queue)
			if err != nil {
				// span
				slog.ErrorContext(ctx, "failed to start consuming", "queue", options.Queue, "error", err, "attempt", attempt)

				select {
				case <-b.exit:
					return
				case <-time.After(time.Second * time.Duration(attempt)):
				}

				continue
			}

		consumerLoop:
			for {
				select {
				case <-b.exit:
					rbch.Close()
					return
				case msg, ok := <-msgs:
					if !ok {
						break consumerLoop
					}

					if err := callback(ctx, msg.Body); err != nil {
						// span
						slog.ErrorContext(ctx, "failed to process incoming data", "queue", options.Queue, "error", err)

						if err := msg.Reject(false); err != nil {
							// span
							slog.ErrorContext(ctx, "failed to reject", "error", err)
						}
					} else {
						if err := msg.Ack(false); err != nil {
							// span
							slog.ErrorContext(ctx, "failed to ack", "error", err)
						}
					}
				}
			}
		}

		slog.ErrorContext(ctx, "subscriber failed to connect after max attempts", "queue", options.Queue, "maxAttempts", maxConsumeAttempts)
	}()

	return nil
}

func (b *rabbitBroker) Publish(ctx context.Context, data []byte, opts ...broker.PublishOption) error {
	options := broker.NewPublishOptions(opts...)

	// span
	slog.InfoContext(ctx, "publishing to queue", "queue", options.Queue, "bytes", len(data))

	rbch, err := b.channel(options.Queue)
	if err != nil {
		return err
	}

	defer rbch.Close()

	msg := amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
	}

	if b.options.Durable {
		msg.DeliveryMode = amqp.Persistent
	}

	if err := rbch.PublishWithContext(
		ctx,
		"",            // exchange
		options.Queue, // routing key
		false,         // mandatory
		false,         // immediate
		msg,
	); err != nil {
		return fmt.Errorf("%w: %v", broker.ErrPublishing, err)
	}

	return nil
}

func (b *rabbitBroker) CheckHealth(ctx context.Context) error {
	conn, err := b.getConnection()
	if err != nil {
		return err
	}

	if conn.IsClosed() {
		return broker.ErrClosed
	}

	return nil
}

func (b *rabbitBroker) Close(ctx context.Context) error {
	done := make(chan struct{})

	b.once.Do(func() {
		slog.InfoContext(ctx, "starting graceful shutdown of rabbit client")

		close(b.exit)

		go func() {
			b.wg.Wait()

			b.mtx.Lock()
			defer b.mtx.Unlock()

			for i, conn := range b.pool {
				if !conn.IsClosed() {
					if err := conn.Close(); err != nil {
						slog.ErrorContext(ctx, "failed to close connection", "error", err, "pool_index", i)
					}
				}
			}

			close(done)
		}()
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	slog.InfoContext(ctx, "graceful shutdown of rabbit client complete")

	return nil
}

func (b *rabbitBroker) consume(queue string) (*amqp.Channel, <-chan amqp.Delivery, error) {
	rbch, err := b.channel(queue)
	if err != nil {
		return nil, nil, err
	}

	if err := rbch.Qos(1, 0, false); err != nil {
		rbch.Close()
		return nil, nil, err
	}

	msgs, err := rbch.Consume(
		queue,
		"",    // consumer name
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		rbch.Close()
		return nil, nil, fmt.Errorf("%w: %v", broker.ErrSubscribing, err)
	}

	return rbch, msgs, nil
}

func (b *rabbitBroker) channel(queue string) (*amqp.Channel, error) {
	conn, err := b.getConnection()
	if err != nil {
		return nil, err
	}

	rbch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", broker.ErrCreatingChannel, err)
	}

	if _, err := rbch.QueueDeclare(
		queue,
		b.options.Durable, // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	); err != nil {
		rbch.Close()
		return nil, fmt.Errorf("%w: %v", broker.ErrCreatingQueue, err)
	}

	return rbch, nil
}

func (b *rabbitBroker) getConnection() (*amqp.Connection, error) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	conn := b.pool[b.next]
	index := b.next
	b.next = (index + 1) % len(b.pool)

	if !conn.IsClosed() {
		return conn, nil
	}

	redialed, err := amqp.Dial(b.options.Location)
	if err != nil {
		return nil, err
	}

	b.pool[index] = redialed

	return redialed, nil
}

func NewBroker(opts ...broker.Option) broker.Broker {
	options := broker.NewOptions(opts...)

	pool := make([]*amqp.Connection, poolSize)

	for i := range pool {
		conn, err := amqp.Dial(options.Location)
		if err != nil {
			detail := "failed to connect to rabbitmq broker"
			slog.ErrorContext(context.Background(), detail, "error", err)
			panic(detail)
		}
		pool[i] = conn
	}

	b := &rabbitBroker{
		options: options,
		pool:    pool,
		next:    0,
		mtx:     sync.RWMutex{},
		exit:    make(chan struct{}),
		wg:      sync.WaitGroup{},
		once:    sync.Once{},
	}

	return b
}
