package events

import (
	"context"
	"log/slog"
	"time"

	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

type OrderPlaced struct {
	OrderID     string    `json:"orderId"`
	UserID      string    `json:"userId"`
	TotalAmount int64     `json:"totalAmount"`
	Items       int       `json:"items"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewOrderPlaced(o orderdomain.Order) OrderPlaced {
	units := 0
	for _, it := range o.Items {
		units += it.Quantity
	}
	return OrderPlaced{
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Items:       units,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
	}
}

type Publisher interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlaced) error
}

// LogPublisher only logs; used when no broker is configured.
type LogPublisher struct {
	log *slog.Logger
}

func NewLogPublisher(log *slog.Logger) *LogPublisher {
	if log == nil {
		log = slog.Default()
	}
	return &LogPublisher{log: log.With("component", "events")}
}

func (p *LogPublisher) PublishOrderPlaced(_ context.Context, msg OrderPlaced) error {
	p.log.Info("order placed",
		slog.String("order_id", msg.OrderID),
		slog.String("user_id", msg.UserID),
		slog.Int64("total", msg.TotalAmount),
		slog.Int("units", msg.Items),
	)
	return nil
}
