package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"рождение через Stock_In", "", StatusActive, true},
		{"рождение сразу в RESERVED запрещено", "", StatusReserved, false},
		{"резервирование", StatusActive, StatusReserved, true},
		{"демо-выдача", StatusActive, StatusDemo, true},
		{"ACTIVE сразу в DELIVERED запрещено", StatusActive, StatusDelivered, false},
		{"выставление счёта", StatusReserved, StatusInvoiced, true},
		{"снятие резерва", StatusReserved, StatusActive, true},
		{"выдача со склада", StatusInvoiced, StatusIssued, true},
		{"поставка минуя выдачу", StatusInvoiced, StatusDelivered, true},
		{"отмена после счёта", StatusInvoiced, StatusActive, true},
		{"поставка после выдачи", StatusIssued, StatusDelivered, true},
		{"возврат из ISSUED запрещён", StatusIssued, StatusActive, false},
		{"DELIVERED терминален", StatusDelivered, StatusActive, false},
		{"возврат с демо", StatusDemo, StatusActive, true},
		{"демо нельзя продать напрямую", StatusDemo, StatusReserved, false},
		{"повторное рождение запрещено", StatusActive, StatusActive, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusActive, StatusReserved, StatusInvoiced, StatusIssued, StatusDelivered, StatusDemo} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("SOLD"))
}

func TestIsOnHand(t *testing.T) {
	assert.True(t, IsOnHand(StatusActive))
	assert.True(t, IsOnHand(StatusDemo))
	assert.False(t, IsOnHand(StatusReserved))
	assert.False(t, IsOnHand(StatusInvoiced))
	assert.False(t, IsOnHand(StatusIssued))
	assert.False(t, IsOnHand(StatusDelivered))
}

func TestEventTypeFor(t *testing.T) {
	assert.Equal(t, EventStockIn, EventTypeFor(StatusActive))
	assert.Equal(t, EventStockOut, EventTypeFor(StatusReserved))
	assert.Equal(t, EventStockOut, EventTypeFor(StatusDelivered))
	assert.Equal(t, EventStockOut, EventTypeFor(StatusDemo))
}
