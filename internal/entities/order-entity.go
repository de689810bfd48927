package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	OrderKindSale = "SALE"
	OrderKindDemo = "DEMO"
)

// Order — логическая группа транзакций с общим номером заказа.
// Демо-выдача хранится тем же типом с kind = DEMO.
type Order struct {
	OrderNumber string    `json:"order_number"`
	Kind        string    `json:"kind"`
	Dealer      string    `json:"dealer"`
	Client      string    `json:"client"`
	Location    string    `json:"location"`
	CreatedBy   uint64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	CancelledAt null.Time `json:"cancelled_at,omitempty"`
}
