package dto

// CreateDemoLoanDTO — демо-выдача: единицы переходят из ACTIVE в DEMO.
type CreateDemoLoanDTO struct {
	OrderNumber   string   `json:"order_number" validate:"required,order_number"`
	Client        string   `json:"client" validate:"required"`
	Location      string   `json:"location,omitempty"`
	SerialNumbers []string `json:"serial_numbers" validate:"required,min=1,dive,serial_number"`
	Remark        string   `json:"remark,omitempty"`
}

// ReturnDemoLoanDTO — возврат с демо. Список может быть подмножеством
// выданного: невозвращённые единицы остаются в DEMO.
type ReturnDemoLoanDTO struct {
	SerialNumbers []string `json:"serial_numbers" validate:"required,min=1,dive,serial_number"`
	Remark        string   `json:"remark,omitempty"`
}
