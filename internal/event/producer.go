package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	pkgkafka "github.com/Eng-Domz/Book-Store/pkg/kafka"
)

// Kafka topic constants for bookstore domain events.
const (
	TopicOrderPlaced      = "bookstore.order.placed"
	TopicRestockConfirmed = "bookstore.restock.confirmed"
	TopicBookLowStock     = "bookstore.book.low_stock"
)

// Aggregate type constants.
const (
	AggregateTypeOrder          = "order"
	AggregateTypePublisherOrder = "publisher_order"
	AggregateTypeBook           = "book"
)

// Source identifier for events originating from the bookstore server.
const SourceBookstore = "bookstore"

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID    string          `json:"order_id"`
	CustomerID string          `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
}

// RestockConfirmedData is the payload for a restock.confirmed event.
type RestockConfirmedData struct {
	PublisherOrderID string `json:"publisher_order_id"`
	ISBN             string `json:"isbn"`
	Quantity         int    `json:"quantity"`
	NewStock         int    `json:"new_stock"`
}

// BookLowStockData is the payload for a book.low_stock event.
type BookLowStockData struct {
	ISBN             string `json:"isbn"`
	Title            string `json:"title"`
	StockQuantity    int    `json:"stock_quantity"`
	ReorderThreshold int    `json:"reorder_threshold"`
}

// Producer publishes bookstore domain events to Kafka. All events are
// published after the owning transaction has committed; a publish failure is
// logged by the caller and never fails the business operation.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishOrderPlaced publishes an order.placed event.
func (p *Producer) PublishOrderPlaced(ctx context.Context, data OrderPlacedData) error {
	event, err := pkgkafka.NewEvent(TopicOrderPlaced, data.OrderID, AggregateTypeOrder, SourceBookstore, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", data.OrderID),
		slog.String("customer_id", data.CustomerID),
	)

	return nil
}

// PublishRestockConfirmed publishes a restock.confirmed event.
func (p *Producer) PublishRestockConfirmed(ctx context.Context, data RestockConfirmedData) error {
	event, err := pkgkafka.NewEvent(TopicRestockConfirmed, data.PublisherOrderID, AggregateTypePublisherOrder, SourceBookstore, data)
	if err != nil {
		return fmt.Errorf("create restock.confirmed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicRestockConfirmed, event); err != nil {
		return fmt.Errorf("publish restock.confirmed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published restock.confirmed event",
		slog.String("publisher_order_id", data.PublisherOrderID),
		slog.String("isbn", data.ISBN),
	)

	return nil
}

// PublishBookLowStock publishes a book.low_stock event.
func (p *Producer) PublishBookLowStock(ctx context.Context, data BookLowStockData) error {
	event, err := pkgkafka.NewEvent(TopicBookLowStock, data.ISBN, AggregateTypeBook, SourceBookstore, data)
	if err != nil {
		return fmt.Errorf("create book.low_stock event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicBookLowStock, event); err != nil {
		return fmt.Errorf("publish book.low_stock event: %w", err)
	}

	p.logger.DebugContext(ctx, "published book.low_stock event",
		slog.String("isbn", data.ISBN),
		slog.Int("stock_quantity", data.StockQuantity),
	)

	return nil
}
