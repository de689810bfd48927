package types

// Fingerprint — лёгкий отпечаток состояния леджера для дешёвого поллинга.
// Клиент сравнивает отпечаток с прошлым опросом и перезапрашивает данные
// только при расхождении.
type Fingerprint struct {
	TransactionCount  uint64 `json:"transaction_count"`
	LastTransactionID uint64 `json:"last_transaction_id"`
}

// Equal reports whether two fingerprints describe the same ledger state.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.TransactionCount == other.TransactionCount &&
		f.LastTransactionID == other.LastTransactionID
}
