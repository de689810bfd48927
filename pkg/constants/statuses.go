package constants

// --- СТАТУСЫ ЕДИНИЦ ОБОРУДОВАНИЯ (Совпадает с кодами в БД) ---
const (
	StatusActive    = "ACTIVE"
	StatusReserved  = "RESERVED"
	StatusInvoiced  = "INVOICED"
	StatusIssued    = "ISSUED"
	StatusDelivered = "DELIVERED"
	StatusDemo      = "DEMO"
)

// --- ТИПЫ СОБЫТИЙ ЛЕДЖЕРА ---
const (
	EventStockIn  = "STOCK_IN"
	EventStockOut = "STOCK_OUT"
)

// --- ИСТОЧНИКИ СОБЫТИЙ ---
const (
	SourceManual     = "manual"
	SourceImport     = "import"
	SourceOrder      = "order"
	SourceInvoice    = "invoice"
	SourceIssue      = "issue"
	SourceDelivery   = "delivery"
	SourceDemo       = "demo"
	SourceDemoReturn = "demo_return"
	SourceCancel     = "cancel"
)

// --- ТИПЫ ФАЙЛОВ ЗАКАЗА ---
const (
	FileTypeInvoice       = "INVOICE"
	FileTypeDeliveryOrder = "DELIVERY_ORDER"
)

// Агрегатный статус заказа, когда единицы разошлись (частичная поставка).
const OrderStatusMixed = "MIXED"

// transitions описывает все допустимые переходы статусов.
// Пустой ключ "" — рождение серийного номера через Stock_In.
// ISSUED — необязательный промежуточный шаг: поставка разрешена
// и из INVOICED, и из ISSUED.
var transitions = map[string][]string{
	"":              {StatusActive},
	StatusActive:    {StatusReserved, StatusDemo},
	StatusReserved:  {StatusInvoiced, StatusActive},
	StatusInvoiced:  {StatusIssued, StatusDelivered, StatusActive},
	StatusIssued:    {StatusDelivered},
	StatusDelivered: {},
	StatusDemo:      {StatusActive},
}

// IsValidStatus проверяет, что код статуса известен системе.
func IsValidStatus(code string) bool {
	_, ok := transitions[code]
	return ok && code != ""
}

// IsValidEventType проверяет тип события леджера.
func IsValidEventType(code string) bool {
	return code == EventStockIn || code == EventStockOut
}

// CanTransition отвечает, допустим ли переход from -> to.
// from == "" означает, что серийного номера ещё не существует.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsOnHand — статусы, при которых единица числится на складе при расчёте
// остатков. Зарезервированные и отгружаемые единицы уже выбыли из остатка;
// DEMO на руках у клиента, но остаётся на балансе.
func IsOnHand(status string) bool {
	return status == StatusActive || status == StatusDemo
}

// EventTypeFor возвращает тип события леджера для целевого статуса.
// Возврат в ACTIVE и рождение через Stock_In — приход, всё остальное — расход.
func EventTypeFor(targetStatus string) string {
	if targetStatus == StatusActive {
		return EventStockIn
	}
	return EventStockOut
}
