package dto

// CreateTransactionDTO — запрос на одиночное добавление события в леджер.
// Для первого Stock_In серийного номера заполняются карточные поля
// (категория, модель, размер, партия); для последующих событий они
// наследуются из проекции.
type CreateTransactionDTO struct {
	SerialNumber string `json:"serial_number" validate:"required,serial_number"`
	TargetStatus string `json:"target_status" validate:"required"`
	OrderNumber  string `json:"order_number,omitempty" validate:"omitempty,order_number"`
	Category     string `json:"category,omitempty"`
	Model        string `json:"model,omitempty"`
	Size         string `json:"size,omitempty"`
	Batch        string `json:"batch,omitempty"`
	Location     string `json:"location,omitempty"`
	OccurredAt   string `json:"occurred_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Source       string `json:"source,omitempty"`
	Remark       string `json:"remark,omitempty"`
}
