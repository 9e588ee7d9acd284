package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	sent []published
	err  error
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func TestRabbitNotifier_SendWelcome(t *testing.T) {
	ch := &fakeChannel{}
	n := NewRabbitNotifier(ch, "notifications", "hello@goldenspoon.test")

	require.NoError(t, n.SendWelcome(context.Background(), "asha@example.com", "Asha"))
	require.Len(t, ch.sent, 1)

	p := ch.sent[0]
	assert.Equal(t, "notifications", p.exchange)
	assert.Equal(t, RoutingKeyWelcome, p.key)
	assert.Equal(t, "application/json", p.msg.ContentType)
	assert.Equal(t, amqp.Persistent, p.msg.DeliveryMode)

	var msg EmailMessage
	require.NoError(t, json.Unmarshal(p.msg.Body, &msg))
	assert.Equal(t, TemplateWelcome, msg.Template)
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Equal(t, "Asha", msg.Name)
	assert.Equal(t, "hello@goldenspoon.test", msg.From)
	assert.Empty(t, msg.OTP)
}

func TestRabbitNotifier_SendOTP(t *testing.T) {
	ch := &fakeChannel{}
	n := NewRabbitNotifier(ch, "notifications", "")

	require.NoError(t, n.SendOTP(context.Background(), "asha@example.com", "Asha", "123456"))
	require.Len(t, ch.sent, 1)
	assert.Equal(t, RoutingKeyOTP, ch.sent[0].key)

	var msg EmailMessage
	require.NoError(t, json.Unmarshal(ch.sent[0].msg.Body, &msg))
	assert.Equal(t, "123456", msg.OTP)
	assert.Equal(t, TemplateOTP, msg.Template)
}

func TestRabbitNotifier_PublishError(t *testing.T) {
	n := NewRabbitNotifier(&fakeChannel{err: errors.New("channel closed")}, "notifications", "")
	err := n.SendOTP(context.Background(), "a@b.c", "A", "111111")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email.otp")
}

func TestLogNotifier_DoesNotLeakOTP(t *testing.T) {
	var buf bytes.Buffer
	n := &LogNotifier{Log: zerolog.New(&buf)}

	require.NoError(t, n.SendOTP(context.Background(), "a@b.c", "A", "654321"))
	assert.NotContains(t, buf.String(), "654321")
	assert.Contains(t, buf.String(), "a@b.c")
}
