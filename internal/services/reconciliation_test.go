package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
)

func itemFor(txns []entities.Transaction, serial string) entities.Item {
	var last *entities.Transaction
	for i := range txns {
		if txns[i].SerialNumber == serial {
			last = &txns[i]
		}
	}
	return entities.Item{
		SerialNumber:      serial,
		CurrentStatus:     last.ResultingStatus,
		LastTransactionID: last.ID,
	}
}

func TestAnalyze_CleanLedger(t *testing.T) {
	now := time.Now().UTC()
	txns := []entities.Transaction{
		makeTxn("TV-001", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-001", constants.StatusReserved, "TV", "55", now.Add(time.Hour)),
		makeTxn("TV-002", constants.StatusActive, "TV", "42", now),
	}
	items := []entities.Item{
		itemFor(txns, "TV-001"),
		itemFor(txns, "TV-002"),
	}

	report := Analyze(txns, items, now)
	assert.True(t, report.Empty())
}

func TestAnalyze_OrphanedTransaction(t *testing.T) {
	now := time.Now().UTC()
	txns := []entities.Transaction{
		makeTxn("TV-777", constants.StatusActive, "TV", "55", now),
	}

	report := Analyze(txns, nil, now)
	require.Len(t, report.OrphanedTransactions, 1)
	assert.Equal(t, "TV-777", report.OrphanedTransactions[0].SerialNumber)
	assert.Equal(t, constants.StatusActive, report.OrphanedTransactions[0].Status)
}

func TestAnalyze_MissingStockIn(t *testing.T) {
	now := time.Now().UTC()
	// История начинается с расхода: прихода никогда не было.
	bad := makeTxn("TV-666", constants.StatusReserved, "TV", "55", now)
	txns := []entities.Transaction{bad}
	items := []entities.Item{itemFor(txns, "TV-666")}

	report := Analyze(txns, items, now)
	require.Len(t, report.MissingStockIns, 1)
	assert.Equal(t, "TV-666", report.MissingStockIns[0].SerialNumber)
	assert.Equal(t, bad.ID, report.MissingStockIns[0].FirstTransactionID)
}

func TestAnalyze_DuplicateDelivery(t *testing.T) {
	now := time.Now().UTC()
	// Две транзакции DELIVERED в одной истории: корзина повторных
	// поставок смотрит на итоговый статус, а не на тип события.
	txns := []entities.Transaction{
		makeTxn("TV-555", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-555", constants.StatusDelivered, "TV", "55", now.Add(time.Hour)),
		makeTxn("TV-555", constants.StatusDelivered, "TV", "55", now.Add(2*time.Hour)),
	}
	items := []entities.Item{itemFor(txns, "TV-555")}

	report := Analyze(txns, items, now)
	require.Len(t, report.DuplicateDeliveries, 1)
	assert.Equal(t, "TV-555", report.DuplicateDeliveries[0].SerialNumber)
	assert.Equal(t, []uint64{txns[1].ID, txns[2].ID}, report.DuplicateDeliveries[0].TransactionIDs)
}

func TestAnalyze_RedeliveryCycleLandsInDuplicates(t *testing.T) {
	now := time.Now().UTC()
	// Цикл поставки повторился: обе транзакции DELIVERED попадают
	// в отчёт для ручного аудита независимо от остальной истории.
	txns := []entities.Transaction{
		makeTxn("TV-554", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-554", constants.StatusReserved, "TV", "55", now.Add(time.Hour)),
		makeTxn("TV-554", constants.StatusInvoiced, "TV", "55", now.Add(2*time.Hour)),
		makeTxn("TV-554", constants.StatusDelivered, "TV", "55", now.Add(3*time.Hour)),
		makeTxn("TV-554", constants.StatusActive, "TV", "55", now.Add(4*time.Hour)),
		makeTxn("TV-554", constants.StatusReserved, "TV", "55", now.Add(5*time.Hour)),
		makeTxn("TV-554", constants.StatusInvoiced, "TV", "55", now.Add(6*time.Hour)),
		makeTxn("TV-554", constants.StatusDelivered, "TV", "55", now.Add(7*time.Hour)),
	}
	items := []entities.Item{itemFor(txns, "TV-554")}

	report := Analyze(txns, items, now)
	require.Len(t, report.DuplicateDeliveries, 1)
	assert.Equal(t, []uint64{txns[3].ID, txns[7].ID}, report.DuplicateDeliveries[0].TransactionIDs)
}

func TestAnalyze_SingleDeliveryIsNotDuplicate(t *testing.T) {
	now := time.Now().UTC()
	txns := []entities.Transaction{
		makeTxn("TV-553", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-553", constants.StatusReserved, "TV", "55", now.Add(time.Hour)),
		makeTxn("TV-553", constants.StatusInvoiced, "TV", "55", now.Add(2*time.Hour)),
		makeTxn("TV-553", constants.StatusDelivered, "TV", "55", now.Add(3*time.Hour)),
	}
	items := []entities.Item{itemFor(txns, "TV-553")}

	report := Analyze(txns, items, now)
	assert.Empty(t, report.DuplicateDeliveries)
	assert.True(t, report.Empty())
}

func TestAnalyze_ConsecutiveStockInsAreInconsistent(t *testing.T) {
	now := time.Now().UTC()
	// Два прихода подряд без расхода между ними: такое минует машину
	// состояний и помечается как нарушенный паттерн, а не как
	// повторная поставка.
	txns := []entities.Transaction{
		makeTxn("TV-552", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-552", constants.StatusActive, "TV", "55", now.Add(time.Hour)),
	}
	items := []entities.Item{itemFor(txns, "TV-552")}

	report := Analyze(txns, items, now)
	assert.Empty(t, report.DuplicateDeliveries)
	assert.Equal(t, []string{"TV-552"}, report.InconsistentPatternSerials)
}

func TestAnalyze_RedeliveryAfterReturnIsLegal(t *testing.T) {
	now := time.Now().UTC()
	// Приход -> демо (расход) -> возврат (приход): легальный цикл.
	txns := []entities.Transaction{
		makeTxn("TV-444", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-444", constants.StatusDemo, "TV", "55", now.Add(time.Hour)),
		makeTxn("TV-444", constants.StatusActive, "TV", "55", now.Add(2*time.Hour)),
	}
	items := []entities.Item{itemFor(txns, "TV-444")}

	report := Analyze(txns, items, now)
	assert.Empty(t, report.DuplicateDeliveries)
	assert.True(t, report.Empty())
}

func TestAnalyze_ProjectionDivergedFromLedger(t *testing.T) {
	now := time.Now().UTC()
	txns := []entities.Transaction{
		makeTxn("TV-333", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-333", constants.StatusReserved, "TV", "55", now.Add(time.Hour)),
	}
	// Проекция отстала: статус не совпадает с последней транзакцией.
	items := []entities.Item{{
		SerialNumber:      "TV-333",
		CurrentStatus:     constants.StatusActive,
		LastTransactionID: txns[0].ID,
	}}

	report := Analyze(txns, items, now)
	assert.Equal(t, []string{"TV-333"}, report.InconsistentPatternSerials)
}

func TestAnalyze_DeliveredMustBeFinal(t *testing.T) {
	now := time.Now().UTC()
	txns := []entities.Transaction{
		makeTxn("TV-222", constants.StatusActive, "TV", "55", now),
		makeTxn("TV-222", constants.StatusDelivered, "TV", "55", now.Add(time.Hour)),
		makeTxn("TV-222", constants.StatusActive, "TV", "55", now.Add(2*time.Hour)),
	}
	items := []entities.Item{itemFor(txns, "TV-222")}

	report := Analyze(txns, items, now)
	assert.Contains(t, report.InconsistentPatternSerials, "TV-222")
}

func TestAnalyze_ProjectionRowWithoutHistory(t *testing.T) {
	now := time.Now().UTC()
	items := []entities.Item{{
		SerialNumber:  "GHOST-1",
		CurrentStatus: constants.StatusActive,
	}}

	report := Analyze(nil, items, now)
	assert.Equal(t, []string{"GHOST-1"}, report.InconsistentPatternSerials)
}
