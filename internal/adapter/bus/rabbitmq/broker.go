package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"settlement-orchestrator/config"
	"settlement-orchestrator/pkg/apperror"
	"settlement-orchestrator/pkg/lazy"
	"settlement-orchestrator/pkg/metrics"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const deadLetterQueue = "settlement.dlq"

// ErrDeliveriesClosed is returned by Subscribe when the broker closes the
// delivery stream while the context is still live.
var ErrDeliveriesClosed = errors.New("amqp delivery channel closed")

// Channel is the subset of *amqp.Channel the broker uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// ChannelSource opens a new channel.
type ChannelSource func(ctx context.Context) (Channel, error)

// Handler processes one message body. A validation or permanent error
// dead-letters the message; any other error requeues it until the delivery
// limit is reached.
type Handler func(ctx context.Context, body []byte) error

// Broker consumes and publishes JSON messages on a topic exchange.
type Broker struct {
	open       ChannelSource
	exchange   string
	deadLetter string
	prefix     string
	prefetch   int
	requeueIn  time.Duration
	maxTries   int
	consumer   string
	log        zerolog.Logger

	pubMu sync.Mutex
	pubCh Channel
}

// NewConnection returns a lazily dialed AMQP connection handle.
func NewConnection(url string, log zerolog.Logger) *lazy.Handle[*amqp.Connection] {
	return lazy.New(func(ctx context.Context) (*amqp.Connection, error) {
		conn, err := amqp.DialConfig(url, amqp.Config{
			Heartbeat: 10 * time.Second,
			Dial:      amqp.DefaultDial(30 * time.Second),
		})
		if err != nil {
			return nil, fmt.Errorf("dial amqp: %w", err)
		}
		log.Info().Msg("amqp connection established")
		return conn, nil
	})
}

// ConnectionChannels opens channels on conn, redialing once the connection closes.
func ConnectionChannels(conn *lazy.Handle[*amqp.Connection]) ChannelSource {
	return func(ctx context.Context) (Channel, error) {
		c, err := conn.Get(ctx)
		if err != nil {
			return nil, err
		}
		if c.IsClosed() {
			conn.Reset()
			if c, err = conn.Get(ctx); err != nil {
				return nil, err
			}
		}
		ch, err := c.Channel()
		if err != nil {
			return nil, fmt.Errorf("open amqp channel: %w", err)
		}
		return ch, nil
	}
}

// NewBroker creates a broker. consumer tags this worker's subscriptions.
func NewBroker(cfg config.AMQPConfig, open ChannelSource, consumer string, log zerolog.Logger) *Broker {
	return &Broker{
		open:       open,
		exchange:   cfg.Exchange,
		deadLetter: cfg.DeadLetter,
		prefix:     cfg.QueuePrefix,
		prefetch:   cfg.Prefetch,
		requeueIn:  cfg.RequeueDelay,
		maxTries:   cfg.MaxDeliveries,
		consumer:   consumer,
		log:        log.With().Str("component", "amqp").Logger(),
	}
}

// QueueName returns the durable queue bound to topic.
func (b *Broker) QueueName(topic string) string {
	return b.prefix + topic
}

func (b *Broker) declare(ch Channel, topic string) error {
	if err := ch.ExchangeDeclare(b.exchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if err := ch.ExchangeDeclare(b.deadLetter, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare dlx exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(deadLetterQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare dlq queue: %w", err)
	}
	if err := ch.QueueBind(deadLetterQueue, "#", b.deadLetter, false, nil); err != nil {
		return fmt.Errorf("bind dlq to dlx: %w", err)
	}

	queue := b.QueueName(topic)
	args := amqp.Table{"x-dead-letter-exchange": b.deadLetter}
	if b.maxTries > 0 {
		// Quorum queues count redeliveries and dead-letter past the limit.
		args["x-queue-type"] = "quorum"
		args["x-delivery-limit"] = int64(b.maxTries)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, topic, b.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}
	return nil
}

// Subscribe consumes topic until ctx is done. Each delivery is acked,
// requeued or dead-lettered depending on the handler's result.
func (b *Broker) Subscribe(ctx context.Context, topic string, handler Handler) error {
	ch, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := b.declare(ch, topic); err != nil {
		return err
	}
	if err := ch.Qos(b.prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	deliveries, err := ch.Consume(b.QueueName(topic), b.consumer+"/"+topic, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", topic, err)
	}

	log := b.log.With().Str("topic", topic).Logger()
	log.Info().Msg("subscribed")

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrDeliveriesClosed
			}
			b.handle(ctx, log, topic, d, handler)
		}
	}
}

func (b *Broker) handle(ctx context.Context, log zerolog.Logger, topic string, d amqp.Delivery, handler Handler) {
	log = log.With().Str("message_id", d.MessageId).Uint64("delivery_tag", d.DeliveryTag).Logger()

	err := invoke(ctx, handler, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error().Err(ackErr).Msg("ack failed")
		}
		metrics.QueueDeliveriesTotal.WithLabelValues(topic, "ack").Inc()

	case apperror.ClassOf(err) == apperror.ClassRetriable && b.exhausted(d):
		log.Error().Err(err).Int("deliveries", b.maxTries).Msg("delivery limit reached, dead-lettering")
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Msg("nack failed")
		}
		metrics.QueueDeliveriesTotal.WithLabelValues(topic, "exhausted").Inc()

	case apperror.ClassOf(err) == apperror.ClassRetriable:
		log.Warn().Err(err).Bool("redelivered", d.Redelivered).Msg("handler failed, requeueing")
		b.backoff(ctx)
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error().Err(nackErr).Msg("nack failed")
		}
		metrics.QueueDeliveriesTotal.WithLabelValues(topic, "requeue").Inc()

	default:
		log.Error().Err(err).Str("code", apperror.CodeOf(err)).Msg("message rejected, dead-lettering")
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Msg("nack failed")
		}
		metrics.QueueDeliveriesTotal.WithLabelValues(topic, "dead_letter").Inc()
	}
}

// exhausted reports whether d is the last delivery allowed. Quorum queues set
// x-delivery-count to the number of earlier failed deliveries.
func (b *Broker) exhausted(d amqp.Delivery) bool {
	if b.maxTries <= 0 {
		return false
	}
	var prior int64
	switch v := d.Headers["x-delivery-count"].(type) {
	case int64:
		prior = v
	case int32:
		prior = int64(v)
	case int:
		prior = int64(v)
	}
	return prior+1 >= int64(b.maxTries)
}

// backoff delays a requeue so a failing dependency does not turn into a
// redelivery hot loop.
func (b *Broker) backoff(ctx context.Context) {
	if b.requeueIn <= 0 {
		return
	}
	t := time.NewTimer(b.requeueIn)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// invoke turns a handler panic into a permanent error so the message is
// dead-lettered instead of crashing the consumer.
func invoke(ctx context.Context, handler Handler, body []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperror.New("SYS_003", fmt.Sprintf("handler panic: %v\n%s", r, debug.Stack()), apperror.ClassPermanent)
		}
	}()
	return handler(ctx, body)
}

// Publish marshals v as JSON and routes it to topic. Delivery is best effort.
func (b *Broker) Publish(ctx context.Context, topic string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", topic, err)
	}

	b.pubMu.Lock()
	defer b.pubMu.Unlock()

	if b.pubCh == nil {
		ch, err := b.open(ctx)
		if err != nil {
			return err
		}
		if err := ch.ExchangeDeclare(b.exchange, "topic", true, false, false, false, nil); err != nil {
			ch.Close()
			return fmt.Errorf("declare exchange: %w", err)
		}
		b.pubCh = ch
	}

	err = b.pubCh.PublishWithContext(ctx, b.exchange, topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		b.pubCh.Close()
		b.pubCh = nil
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Close releases the publishing channel.
func (b *Broker) Close() error {
	b.pubMu.Lock()
	defer b.pubMu.Unlock()
	if b.pubCh == nil {
		return nil
	}
	err := b.pubCh.Close()
	b.pubCh = nil
	return err
}

// HealthCheck implements ports.HealthChecker for the AMQP connection.
type HealthCheck struct {
	conn *lazy.Handle[*amqp.Connection]
}

// NewHealthCheck creates an AMQP health checker.
func NewHealthCheck(conn *lazy.Handle[*amqp.Connection]) *HealthCheck {
	return &HealthCheck{conn: conn}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	c, err := h.conn.Get(ctx)
	if err != nil {
		return err
	}
	if c.IsClosed() {
		h.conn.Reset()
		return amqp.ErrClosed
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "rabbitmq"
}
