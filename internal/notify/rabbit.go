package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// channel is the slice of *amqp.Channel the publisher needs.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Conn struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func Connect(url string) (*Conn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Conn{Conn: conn, Ch: ch}, nil
}

func (c *Conn) Close() error {
	_ = c.Ch.Close()
	return c.Conn.Close()
}

// DeclareExchange creates the durable topic exchange email jobs are published to.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
}

type RabbitNotifier struct {
	ch       channel
	exchange string
	from     string
	timeout  time.Duration
}

func NewRabbitNotifier(ch channel, exchange, from string) *RabbitNotifier {
	return &RabbitNotifier{ch: ch, exchange: exchange, from: from, timeout: 5 * time.Second}
}

func (n *RabbitNotifier) SendWelcome(ctx context.Context, email, name string) error {
	return n.publish(ctx, RoutingKeyWelcome, WelcomeMessage(n.from, email, name))
}

func (n *RabbitNotifier) SendOTP(ctx context.Context, email, name, otp string) error {
	return n.publish(ctx, RoutingKeyOTP, OTPMessage(n.from, email, name, otp))
}

func (n *RabbitNotifier) publish(ctx context.Context, routingKey string, msg EmailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err = n.ch.PublishWithContext(ctx,
		n.exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}
