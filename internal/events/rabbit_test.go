package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	confirmErr error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, "exchange:"+name+":"+kind)
	return nil
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, "queue:"+name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, "bind:"+name+":"+key+":"+exchange)
	return nil
}

func (f *fakeChannel) Confirm(bool) error { return f.confirmErr }

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func TestRabbitPublisher(t *testing.T) {
	ch := &fakeChannel{}
	p, err := NewRabbitPublisher(ch)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"exchange:storefront.events:topic",
		"queue:order.placed.q",
		"bind:order.placed.q:order.placed:storefront.events",
	}, ch.declared)

	o := orderdomain.Order{
		ID:          "MJR-000001",
		UserID:      "cust-1",
		TotalAmount: 20800,
		Status:      orderdomain.StatusPlaced,
		CreatedAt:   time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		Items:       []cartdomain.CartItem{{Product: catalogdomain.Product{ID: "1"}, Quantity: 2}},
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), NewOrderPlaced(o)))

	require.Len(t, ch.published, 1)
	assert.Equal(t, "order.placed", ch.keys[0])
	assert.Equal(t, "MJR-000001", ch.published[0].MessageId)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var got OrderPlaced
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &got))
	assert.Equal(t, 2, got.Items)
	assert.Equal(t, "Order Placed", got.Status)
}

func TestRabbitPublisherSetupError(t *testing.T) {
	_, err := NewRabbitPublisher(&fakeChannel{confirmErr: errors.New("not supported")})
	assert.ErrorContains(t, err, "confirm")
}
