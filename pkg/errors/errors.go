package errors

import "fmt"

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")

	// Авторизация
	ErrEmptyAuthHeader   = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader = fmt.Errorf("неверный формат заголовка авторизации")
	ErrUnauthorized      = fmt.Errorf("неавторизован")
	ErrForbidden         = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Движок леджера
	ErrInvalidTransition    = fmt.Errorf("недопустимый переход статуса")
	ErrConcurrencyConflict  = fmt.Errorf("конфликт одновременной записи")
	ErrDuplicateOrderNumber = fmt.Errorf("номер заказа уже существует")
)

// InvalidInputError — ошибка валидации входных данных.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// TransitionError несёт детали отклонённого перехода, чтобы UI мог
// показать осмысленное сообщение: серийный номер, текущий и целевой статус.
type TransitionError struct {
	SerialNumber  string
	CurrentStatus string
	TargetStatus  string
}

func (e *TransitionError) Error() string {
	if e.CurrentStatus == "" {
		return fmt.Sprintf("серийный номер %s ещё не существует, переход в %s невозможен", e.SerialNumber, e.TargetStatus)
	}
	return fmt.Sprintf("недопустимый переход статуса для %s: %s -> %s", e.SerialNumber, e.CurrentStatus, e.TargetStatus)
}

// Unwrap даёт работать errors.Is(err, ErrInvalidTransition).
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func NewTransitionError(serial, current, target string) error {
	return &TransitionError{SerialNumber: serial, CurrentStatus: current, TargetStatus: target}
}

// ConflictError — устаревшее предусловие записи: другой писатель успел раньше.
type ConflictError struct {
	SerialNumber   string
	ExpectedStatus string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("конфликт записи для %s: статус уже не %s", e.SerialNumber, e.ExpectedStatus)
}

func (e *ConflictError) Unwrap() error { return ErrConcurrencyConflict }

func NewConflictError(serial, expected string) error {
	return &ConflictError{SerialNumber: serial, ExpectedStatus: expected}
}
