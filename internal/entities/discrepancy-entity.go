package entities

import "time"

// OrphanedTransaction — транзакция поставки без строки проекции.
type OrphanedTransaction struct {
	TransactionID uint64 `json:"transaction_id"`
	SerialNumber  string `json:"serial_number"`
	Status        string `json:"status"`
}

// DuplicateDelivery — серийный номер с более чем одной поставкой в истории.
// Легален после цикла возврат-перепоставка, иначе требует ручного аудита.
type DuplicateDelivery struct {
	SerialNumber   string   `json:"serial_number"`
	TransactionIDs []uint64 `json:"transaction_ids"`
}

// MissingStockIn — расходное событие без предшествующего прихода:
// жёсткое нарушение целостности леджера.
type MissingStockIn struct {
	SerialNumber       string `json:"serial_number"`
	FirstTransactionID uint64 `json:"first_transaction_id"`
}

// DiscrepancyReport — результат сверки леджера и проекции.
// Только чтение: отчёт никогда не чинит данные автоматически.
type DiscrepancyReport struct {
	GeneratedAt                time.Time             `json:"generated_at"`
	OrphanedTransactions       []OrphanedTransaction `json:"orphaned_transactions"`
	DuplicateDeliveries        []DuplicateDelivery   `json:"duplicate_deliveries"`
	MissingStockIns            []MissingStockIn      `json:"missing_stock_ins"`
	InconsistentPatternSerials []string              `json:"inconsistent_pattern_serials"`
}

// Empty reports whether the reconciliation found nothing suspicious.
func (r *DiscrepancyReport) Empty() bool {
	return len(r.OrphanedTransactions) == 0 &&
		len(r.DuplicateDeliveries) == 0 &&
		len(r.MissingStockIns) == 0 &&
		len(r.InconsistentPatternSerials) == 0
}
