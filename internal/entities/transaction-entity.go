package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Transaction — неизменяемая запись леджера: одно событие смены статуса
// для одного серийного номера. ID назначается глобальной последовательностью
// БД и является единственным ключом упорядочивания.
type Transaction struct {
	ID              uint64      `json:"id"`
	SerialNumber    string      `json:"serial_number"`
	EventType       string      `json:"event_type"`
	ResultingStatus string      `json:"resulting_status"`
	OrderNumber     null.String `json:"order_number,omitempty"`
	Category        string      `json:"category"`
	Model           string      `json:"model"`
	Size            string      `json:"size"`
	Batch           string      `json:"batch"`
	Location        string      `json:"location"`
	OccurredAt      time.Time   `json:"occurred_at"`
	Source          string      `json:"source"`
	Remark          string      `json:"remark"`
	CreatedBy       uint64      `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
}
