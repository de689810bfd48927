package entities

import "time"

// Item — производная проекция "текущее состояние" одного серийного номера.
// Инвариант: CurrentStatus равен resulting_status транзакции с максимальным
// id среди транзакций этого серийного номера.
type Item struct {
	SerialNumber      string    `json:"serial_number"`
	CurrentStatus     string    `json:"current_status"`
	CurrentLocation   string    `json:"current_location"`
	LastTransactionID uint64    `json:"last_transaction_id"`
	TransactionCount  uint64    `json:"transaction_count"`
	LastActivity      time.Time `json:"last_activity"`
	Category          string    `json:"category"`
	Model             string    `json:"model"`
	Size              string    `json:"size"`
	Batch             string    `json:"batch"`
	UpdatedAt         time.Time `json:"updated_at"`
}
