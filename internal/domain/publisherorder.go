package domain

import "time"

// Publisher order status constants.
const (
	PublisherOrderStatusPending   = "Pending"
	PublisherOrderStatusConfirmed = "Confirmed"
)

// PublisherOrder represents a restock request sent to a publisher. It is
// created Pending and moves to Confirmed exactly once, when the delivery
// arrives and the stock increment is applied.
type PublisherOrder struct {
	ID          string     `json:"id"`
	ISBN        string     `json:"isbn"`
	Title       string     `json:"title,omitempty"`
	Publisher   string     `json:"publisher"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	OrderDate   time.Time  `json:"order_date"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// IsPending reports whether the order is still awaiting delivery.
func (o *PublisherOrder) IsPending() bool {
	return o.Status == PublisherOrderStatusPending
}

// ValidPublisherOrderStatuses returns the set of valid publisher order statuses.
func ValidPublisherOrderStatuses() []string {
	return []string{PublisherOrderStatusPending, PublisherOrderStatusConfirmed}
}

// IsValidPublisherOrderStatus checks whether the given status is valid.
func IsValidPublisherOrderStatus(status string) bool {
	for _, s := range ValidPublisherOrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
