package events

// TransactionAppendedEvent - событие, которое возникает после фиксации
// новой транзакции в леджере. Слушатели используют его для инвалидации
// кешированного фингерпринта.
type TransactionAppendedEvent struct {
	TransactionID uint64
	SerialNumber  string
}

// Name - реализуем интерфейс eventbus.Event
func (e TransactionAppendedEvent) Name() string {
	return "ledger.transaction.appended"
}
