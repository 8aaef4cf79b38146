package orders

import "time"

// Payment status values. The only modeled transition is pending -> received;
// received is terminal.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusReceived = "received"
)

// Order is a customer order awaiting payment reconciliation.
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	TotalAmount   float64   `json:"totalAmount"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}
