package rabbitmq_producer

import (
	"context"
	"fmt"
	"marketplace-service/pkg/rabbitmq/rabbitmq_common"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig describes the exchange a Publisher writes to.
type PublisherConfig struct {
	ExchangeName string
	ExchangeType string // direct, fanout, topic, headers
	Durable      bool
	// DeclareExchange declares the exchange on every (re)opened channel.
	DeclareExchange bool

	Logger rabbitmq_common.Logger
}

// Publisher writes messages to one exchange. The channel is reopened lazily
// after the broker drops it.
type Publisher struct {
	config      PublisherConfig
	connManager *rabbitmq_common.ConnectionManager
	logger      rabbitmq_common.Logger

	mu      sync.Mutex
	channel *amqp.Channel
}

func NewPublisher(cfg PublisherConfig, connManager *rabbitmq_common.ConnectionManager) (*Publisher, error) {
	if connManager == nil {
		return nil, fmt.Errorf("producer: connection manager cannot be nil")
	}
	if cfg.DeclareExchange && (cfg.ExchangeName == "" || cfg.ExchangeType == "") {
		return nil, fmt.Errorf("producer: exchange name and type are required to declare an exchange")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{config: cfg, connManager: connManager, logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.openChannel(); err != nil {
		return nil, err
	}
	return p, nil
}

// openChannel must be called with p.mu held.
func (p *Publisher) openChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	_, ch, err := p.connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("producer: failed to get channel from manager: %w", err)
	}

	if p.config.DeclareExchange {
		p.logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.Durable,
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.channel = ch
	return ch, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.openChannel()
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(
		ctx,
		p.config.ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	if err != nil {
		p.logger.Error(err, "Error closing channel")
		return err
	}
	p.logger.Info("Producer closed")
	return nil
}
