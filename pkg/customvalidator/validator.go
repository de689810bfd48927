package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations регистрирует кастомные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("serial_number", isSerialNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("order_number", isOrderNumber); err != nil {
		return err
	}
	return nil
}

// Серийный номер: латиница/цифры/дефис, 3..64 символа, без пробелов.
func isSerialNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-]{2,63}$`)
	return re.MatchString(fl.Field().String())
}

// Номер заказа: латиница/цифры/дефис/подчёркивание, 3..32 символа.
func isOrderNumber(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\-_]{2,31}$`)
	return re.MatchString(fl.Field().String())
}
