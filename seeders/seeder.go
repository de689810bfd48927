package seeders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
)

// Run наполняет пустую БД демонстрационными данными: несколько серийных
// номеров в разных статусах, чтобы фронтенд и отчёты было на чем смотреть.
// Повторный запуск на непустом леджере пропускается.
func Run(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	ledgerRepo := repositories.NewLedgerRepository(pool)
	itemRepo := repositories.NewItemRepository(pool)

	fp, err := ledgerRepo.Fingerprint(ctx)
	if err != nil {
		return err
	}
	if fp.TransactionCount > 0 {
		logger.Info("Сидер пропущен: леджер не пуст",
			zap.Uint64("transactions", fp.TransactionCount))
		return nil
	}

	now := time.Now().UTC()
	stock := []struct {
		serial   string
		category string
		model    string
		size     string
		batch    string
	}{
		{"TV-2026-0001", "TV", "Vision X55", "55", "B-2607"},
		{"TV-2026-0002", "TV", "Vision X55", "55", "B-2607"},
		{"TV-2026-0003", "TV", "Vision X42", "42", "B-2607"},
		{"FR-2026-0001", "FRIDGE", "FrostLine L", "L", "B-2605"},
		{"WM-2026-0001", "WASHER", "AquaSpin M", "M", "B-2606"},
	}

	for _, s := range stock {
		txn := &entities.Transaction{
			SerialNumber:    s.serial,
			EventType:       constants.EventStockIn,
			ResultingStatus: constants.StatusActive,
			Category:        s.category,
			Model:           s.model,
			Size:            s.size,
			Batch:           s.batch,
			Location:        "Основной склад",
			OccurredAt:      now,
			Source:          constants.SourceImport,
			Remark:          "демо-данные",
			CreatedBy:       1,
		}
		err := repositories.WithTx(ctx, pool, func(tx pgx.Tx) error {
			if _, err := ledgerRepo.AppendInTx(ctx, tx, txn); err != nil {
				return err
			}
			return itemRepo.InsertInTx(ctx, tx, &entities.Item{
				SerialNumber:      txn.SerialNumber,
				CurrentStatus:     txn.ResultingStatus,
				CurrentLocation:   txn.Location,
				LastTransactionID: txn.ID,
				LastActivity:      txn.OccurredAt,
				Category:          txn.Category,
				Model:             txn.Model,
				Size:              txn.Size,
				Batch:             txn.Batch,
			})
		})
		if err != nil {
			return err
		}
	}

	logger.Info("Демо-данные загружены", zap.Int("items", len(stock)))
	return nil
}
