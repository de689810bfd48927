package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

// OrderDocument — ссылка на файл заказа (счёт, накладная). Движок хранит
// только непрозрачный file_id и извлечённые внешним OCR-сервисом поля.
type OrderDocument struct {
	ID             uuid.UUID `json:"id"`
	OrderNumber    string    `json:"order_number"`
	FileID         string    `json:"file_id"`
	FileType       string    `json:"file_type"`
	DeliveryNumber string    `json:"delivery_number,omitempty"`
	DocumentDate   null.Time `json:"document_date,omitempty"`
	CreatedBy      uint64    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}
