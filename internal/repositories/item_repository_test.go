package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/pkg/constants"
	"inventory-system/pkg/types"
)

func TestItemRepository_ListCursorPagination(t *testing.T) {
	require.NotNil(t, testPool, "testPool не инициализирован")
	cleanupTables(t, testPool)
	itemRepo := NewItemRepository(testPool)
	ctx := context.Background()

	seedStockIn(t, "TV-100", "TV", "42")
	seedStockIn(t, "TV-101", "TV", "55")
	seedStockIn(t, "TV-102", "TV", "55")

	page, err := itemRepo.List(ctx, types.Filter{Limit: 2, Filter: map[string]string{}})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "TV-101", page.NextCursor)
	assert.Equal(t, "TV-100", page.Items[0].SerialNumber)

	page, err = itemRepo.List(ctx, types.Filter{Limit: 2, Cursor: page.NextCursor, Filter: map[string]string{}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)
	assert.Equal(t, "TV-102", page.Items[0].SerialNumber)
}

func TestItemRepository_ListFilters(t *testing.T) {
	cleanupTables(t, testPool)
	itemRepo := NewItemRepository(testPool)
	ctx := context.Background()

	seedStockIn(t, "TV-110", "TV", "42")
	seedStockIn(t, "FR-110", "FRIDGE", "L")

	page, err := itemRepo.List(ctx, types.Filter{
		Limit:  50,
		Filter: map[string]string{"category": "FRIDGE", "status": constants.StatusActive},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "FR-110", page.Items[0].SerialNumber)

	// Неизвестные ключи фильтра игнорируются, а не ломают запрос.
	page, err = itemRepo.List(ctx, types.Filter{
		Limit:  50,
		Filter: map[string]string{"nonsense": "x"},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
}

func TestItemRepository_ListSearch(t *testing.T) {
	cleanupTables(t, testPool)
	itemRepo := NewItemRepository(testPool)
	ctx := context.Background()

	seedStockIn(t, "TV-120", "TV", "42")
	seedStockIn(t, "FR-120", "FRIDGE", "L")

	page, err := itemRepo.List(ctx, types.Filter{Limit: 50, Search: "fridge", Filter: map[string]string{}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "FR-120", page.Items[0].SerialNumber)
}
