package dto

import "inventory-system/internal/entities"

// CreateOrderDTO — многопозиционный заказ: каждая единица должна быть
// в статусе ACTIVE, иначе заказ отклоняется целиком.
type CreateOrderDTO struct {
	OrderNumber   string   `json:"order_number" validate:"required,order_number"`
	Dealer        string   `json:"dealer" validate:"required"`
	Client        string   `json:"client,omitempty"`
	Location      string   `json:"location,omitempty"`
	SerialNumbers []string `json:"serial_numbers" validate:"required,min=1,dive,serial_number"`
	Remark        string   `json:"remark,omitempty"`
}

// AttachOrderFileDTO — привязка файла к заказу. INVOICE переводит единицы
// в INVOICED, DELIVERY_ORDER — в DELIVERED. Движок получает только
// непрозрачный file_id и извлечённые OCR-сервисом поля.
type AttachOrderFileDTO struct {
	FileID         string `json:"file_id" validate:"required"`
	FileType       string `json:"file_type" validate:"required,oneof=INVOICE DELIVERY_ORDER"`
	DeliveryNumber string `json:"delivery_number,omitempty"`
	DocumentDate   string `json:"document_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// OrderDTO — заказ вместе с его единицами и агрегатным статусом.
type OrderDTO struct {
	entities.Order
	AggregateStatus string                   `json:"aggregate_status"`
	Items           []entities.Item          `json:"items"`
	Documents       []entities.OrderDocument `json:"documents,omitempty"`
}

// OrderResultDTO — результат создания/изменения заказа.
type OrderResultDTO struct {
	OrderNumber     string   `json:"order_number"`
	AggregateStatus string   `json:"aggregate_status"`
	TransactionIDs  []uint64 `json:"transaction_ids"`
}

// EntryNumberDTO — подсказка следующего номера заказа. Только для
// отображения: уникальность гарантирует уникальный индекс в БД.
type EntryNumberDTO struct {
	NextEntryNumber string `json:"next_entry_number"`
}
