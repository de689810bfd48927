package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
)

var nextTestTxID uint64

func makeTxn(serial, status, category, size string, occurredAt time.Time) entities.Transaction {
	nextTestTxID++
	return entities.Transaction{
		ID:              nextTestTxID,
		SerialNumber:    serial,
		EventType:       constants.EventTypeFor(status),
		ResultingStatus: status,
		Category:        category,
		Size:            size,
		OccurredAt:      occurredAt,
	}
}

func TestBuildMonthlySnapshot_DeliveredUnitLeavesRemaining(t *testing.T) {
	july := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

	txns := []entities.Transaction{
		makeTxn("TV-001", constants.StatusActive, "TV", "55", july),
		makeTxn("TV-001", constants.StatusReserved, "TV", "55", july.Add(time.Hour)),
		makeTxn("TV-001", constants.StatusInvoiced, "TV", "55", july.Add(2*time.Hour)),
		makeTxn("TV-001", constants.StatusDelivered, "TV", "55", july.Add(3*time.Hour)),
	}

	snapshot := BuildMonthlySnapshot(txns, 2026, 7)
	require.Len(t, snapshot.Groups, 1)

	g := snapshot.Groups[0]
	assert.Equal(t, "TV", g.Category)
	assert.Equal(t, "55", g.Size)
	assert.Equal(t, 1, g.StockIn)
	assert.Equal(t, 3, g.StockOut)
	assert.Equal(t, 0, g.Remaining)
}

func TestBuildMonthlySnapshot_DemoStaysOnHand(t *testing.T) {
	july := time.Date(2026, 7, 5, 9, 0, 0, 0, time.UTC)

	txns := []entities.Transaction{
		makeTxn("FR-100", constants.StatusActive, "FRIDGE", "L", july),
		makeTxn("FR-100", constants.StatusDemo, "FRIDGE", "L", july.Add(24*time.Hour)),
		makeTxn("FR-101", constants.StatusActive, "FRIDGE", "L", july),
	}

	snapshot := BuildMonthlySnapshot(txns, 2026, 7)
	require.Len(t, snapshot.Groups, 1)

	g := snapshot.Groups[0]
	assert.Equal(t, 2, g.StockIn)
	assert.Equal(t, 1, g.StockOut)
	// Демо-единица на руках у клиента, но остаётся на балансе.
	assert.Equal(t, 2, g.Remaining)
}

func TestBuildMonthlySnapshot_CutoffIgnoresLaterEvents(t *testing.T) {
	june := time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC)
	july := time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)

	// Переигрывается только история до отсечки: июльская поставка
	// не должна влиять на июньский снапшот.
	txns := []entities.Transaction{
		makeTxn("TV-010", constants.StatusActive, "TV", "42", june),
	}
	juneSnapshot := BuildMonthlySnapshot(txns, 2026, 6)
	require.Len(t, juneSnapshot.Groups, 1)
	assert.Equal(t, 1, juneSnapshot.Groups[0].Remaining)
	assert.Equal(t, 1, juneSnapshot.Groups[0].StockIn)

	txns = append(txns,
		makeTxn("TV-010", constants.StatusReserved, "TV", "42", july),
		makeTxn("TV-010", constants.StatusInvoiced, "TV", "42", july.Add(time.Hour)),
		makeTxn("TV-010", constants.StatusDelivered, "TV", "42", july.Add(2*time.Hour)),
	)
	julySnapshot := BuildMonthlySnapshot(txns, 2026, 7)
	require.Len(t, julySnapshot.Groups, 1)

	g := julySnapshot.Groups[0]
	assert.Equal(t, 0, g.StockIn, "июньский приход не входит в июльское движение")
	assert.Equal(t, 3, g.StockOut)
	assert.Equal(t, 0, g.Remaining)
}

func TestBuildMonthlySnapshot_GroupsSortedByCategoryAndSize(t *testing.T) {
	july := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	txns := []entities.Transaction{
		makeTxn("W-001", constants.StatusActive, "WASHER", "M", july),
		makeTxn("TV-900", constants.StatusActive, "TV", "55", july),
		makeTxn("TV-901", constants.StatusActive, "TV", "42", july),
	}

	snapshot := BuildMonthlySnapshot(txns, 2026, 7)
	require.Len(t, snapshot.Groups, 3)
	assert.Equal(t, "TV", snapshot.Groups[0].Category)
	assert.Equal(t, "42", snapshot.Groups[0].Size)
	assert.Equal(t, "TV", snapshot.Groups[1].Category)
	assert.Equal(t, "55", snapshot.Groups[1].Size)
	assert.Equal(t, "WASHER", snapshot.Groups[2].Category)
}

func TestBuildMonthlySnapshot_Empty(t *testing.T) {
	snapshot := BuildMonthlySnapshot(nil, 2026, 7)
	assert.Equal(t, 2026, snapshot.Year)
	assert.Equal(t, 7, snapshot.Month)
	assert.Empty(t, snapshot.Groups)
}
