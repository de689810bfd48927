package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

type SnapshotServiceInterface interface {
	MonthlySnapshot(ctx context.Context, year, month int) (*entities.MonthlySnapshot, error)
}

type SnapshotService struct {
	ledgerRepository repositories.LedgerRepositoryInterface
	logger           *zap.Logger
}

func NewSnapshotService(ledgerRepository repositories.LedgerRepositoryInterface, logger *zap.Logger) SnapshotServiceInterface {
	return &SnapshotService{
		ledgerRepository: ledgerRepository,
		logger:           logger,
	}
}

// MonthlySnapshot восстанавливает состояние склада на конец месяца
// переигрыванием леджера до отсечки. Живая проекция не участвует:
// снапшот воспроизводим в любой момент и не зависит от текущих данных.
func (s *SnapshotService) MonthlySnapshot(ctx context.Context, year, month int) (*entities.MonthlySnapshot, error) {
	if month < 1 || month > 12 {
		return nil, apperrors.NewInvalidInputError("неверный месяц: %d", month)
	}
	cutoff := endOfMonth(year, month)
	if cutoff.After(time.Now().UTC()) {
		cutoff = time.Now().UTC()
	}

	txns, err := s.ledgerRepository.UpTo(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	snapshot := BuildMonthlySnapshot(txns, year, month)
	s.logger.Debug("Снапшот построен",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("transactions", len(txns)),
		zap.Int("groups", len(snapshot.Groups)),
	)
	return snapshot, nil
}

// BuildMonthlySnapshot — чистая функция переигрывания: на вход история
// до отсечки включительно, на выход движение и остаток по группам
// (категория, размер). Для остатка считается только последнее событие
// каждого серийного номера; приход и расход считаются по событиям
// внутри отчётного месяца.
func BuildMonthlySnapshot(txns []entities.Transaction, year, month int) *entities.MonthlySnapshot {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := endOfMonth(year, month)

	type serialState struct {
		category string
		size     string
		status   string
	}
	latest := make(map[string]serialState)
	groups := make(map[[2]string]*entities.SnapshotGroup)

	group := func(category, size string) *entities.SnapshotGroup {
		key := [2]string{category, size}
		g, ok := groups[key]
		if !ok {
			g = &entities.SnapshotGroup{Category: category, Size: size}
			groups[key] = g
		}
		return g
	}

	for i := range txns {
		t := &txns[i]

		// Карточные поля берём из самого события: леджер самодостаточен.
		latest[t.SerialNumber] = serialState{
			category: t.Category,
			size:     t.Size,
			status:   t.ResultingStatus,
		}

		if t.OccurredAt.Before(monthStart) || t.OccurredAt.After(monthEnd) {
			continue
		}
		g := group(t.Category, t.Size)
		if t.EventType == constants.EventStockIn {
			g.StockIn++
		} else {
			g.StockOut++
		}
	}

	for _, state := range latest {
		if constants.IsOnHand(state.status) {
			group(state.category, state.size).Remaining++
		} else {
			// Группа должна попасть в отчёт, даже если всё выбыло
			// до отчётного месяца.
			group(state.category, state.size)
		}
	}

	snapshot := &entities.MonthlySnapshot{
		Year:   year,
		Month:  month,
		Groups: make([]entities.SnapshotGroup, 0, len(groups)),
	}
	for _, g := range groups {
		snapshot.Groups = append(snapshot.Groups, *g)
	}
	sort.Slice(snapshot.Groups, func(i, j int) bool {
		if snapshot.Groups[i].Category != snapshot.Groups[j].Category {
			return snapshot.Groups[i].Category < snapshot.Groups[j].Category
		}
		return snapshot.Groups[i].Size < snapshot.Groups[j].Size
	})
	return snapshot
}

func endOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0).Add(-time.Nanosecond)
}
