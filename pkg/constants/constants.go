package constants

// --- РОЛИ ---
// Роли приходят из внешнего сервиса аутентификации в составе JWT.
const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
	RoleViewer   = "VIEWER"
)

// Максимальное количество повторов заказа при конфликте записи.
const OrderRetryLimit = 3

// Формат номера заказа для подсказки следующего номера.
const EntryNumberFormat = "ORD-%06d"
