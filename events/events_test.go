package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.PublishProperty(context.Background(), ActionCreate, "p1"))
}

func TestPublishProperty_RabbitMQ(t *testing.T) {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		t.Skip("RABBITMQ_URL not set")
	}
	queue := "properties_queue_test_" + time.Now().Format("150405.000000")

	p, err := NewRabbitMQPublisher(url, queue)
	require.NoError(t, err)
	defer p.Close()
	defer p.channel.QueueDelete(queue, false, false, false)

	require.NoError(t, p.PublishProperty(context.Background(), ActionUpdate, "p42"))

	var msg amqp.Delivery
	require.Eventually(t, func() bool {
		var ok bool
		msg, ok, err = p.channel.Get(queue, true)
		return err == nil && ok
	}, 5*time.Second, 50*time.Millisecond)

	var got PropertyMessage
	require.NoError(t, json.Unmarshal(msg.Body, &got))
	assert.Equal(t, ActionUpdate, got.Action)
	assert.Equal(t, "p42", got.PropertyID)
}

func TestPublishProperty_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &RabbitMQPublisher{queueName: DefaultQueue}
	assert.ErrorIs(t, p.PublishProperty(ctx, ActionDelete, "p1"), context.Canceled)
}
