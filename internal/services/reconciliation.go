package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
)

type ReconciliationServiceInterface interface {
	Reconcile(ctx context.Context) (*entities.DiscrepancyReport, error)
}

type ReconciliationService struct {
	ledgerRepository repositories.LedgerRepositoryInterface
	itemRepository   repositories.ItemRepositoryInterface
	logger           *zap.Logger
}

func NewReconciliationService(
	ledgerRepository repositories.LedgerRepositoryInterface,
	itemRepository repositories.ItemRepositoryInterface,
	logger *zap.Logger,
) ReconciliationServiceInterface {
	return &ReconciliationService{
		ledgerRepository: ledgerRepository,
		itemRepository:   itemRepository,
		logger:           logger,
	}
}

// Reconcile сверяет леджер с проекцией и ищет нарушения паттернов
// в историях. Отчёт только читает: никакие данные не исправляются.
func (s *ReconciliationService) Reconcile(ctx context.Context) (*entities.DiscrepancyReport, error) {
	txns, err := s.ledgerRepository.All(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepository.All(ctx)
	if err != nil {
		return nil, err
	}

	report := Analyze(txns, items, time.Now().UTC())
	if report.Empty() {
		s.logger.Info("Сверка завершена: расхождений нет",
			zap.Int("transactions", len(txns)),
			zap.Int("items", len(items)),
		)
	} else {
		s.logger.Warn("Сверка нашла расхождения",
			zap.Int("orphaned", len(report.OrphanedTransactions)),
			zap.Int("duplicate_deliveries", len(report.DuplicateDeliveries)),
			zap.Int("missing_stock_ins", len(report.MissingStockIns)),
			zap.Int("inconsistent_patterns", len(report.InconsistentPatternSerials)),
		)
	}
	return report, nil
}

// Analyze — чистая функция сверки. Вход: полный леджер (по возрастанию id)
// и полная проекция. Четыре корзины расхождений:
//   - осиротевшие транзакции: история есть, строки проекции нет;
//   - повторные поставки: более одной транзакции DELIVERED в истории
//     (легально после цикла возврат-перепоставка, но требует ручного аудита);
//   - расход без прихода: история начинается со Stock_Out;
//   - нарушенные паттерны: DELIVERED не последним событием, два Stock_In
//     подряд без расхода между ними, проекция расходится с последней
//     транзакцией, либо строка проекции без истории.
func Analyze(txns []entities.Transaction, items []entities.Item, generatedAt time.Time) *entities.DiscrepancyReport {
	report := &entities.DiscrepancyReport{
		GeneratedAt:                generatedAt,
		OrphanedTransactions:       []entities.OrphanedTransaction{},
		DuplicateDeliveries:        []entities.DuplicateDelivery{},
		MissingStockIns:            []entities.MissingStockIn{},
		InconsistentPatternSerials: []string{},
	}

	projected := make(map[string]*entities.Item, len(items))
	for i := range items {
		projected[items[i].SerialNumber] = &items[i]
	}

	histories := make(map[string][]*entities.Transaction)
	serialOrder := make([]string, 0)
	for i := range txns {
		t := &txns[i]
		if _, seen := histories[t.SerialNumber]; !seen {
			serialOrder = append(serialOrder, t.SerialNumber)
		}
		histories[t.SerialNumber] = append(histories[t.SerialNumber], t)
	}

	inconsistent := make(map[string]struct{})

	for _, serial := range serialOrder {
		history := histories[serial]
		last := history[len(history)-1]

		if _, ok := projected[serial]; !ok {
			report.OrphanedTransactions = append(report.OrphanedTransactions, entities.OrphanedTransaction{
				TransactionID: last.ID,
				SerialNumber:  serial,
				Status:        last.ResultingStatus,
			})
		} else {
			item := projected[serial]
			if item.CurrentStatus != last.ResultingStatus || item.LastTransactionID != last.ID {
				inconsistent[serial] = struct{}{}
			}
		}

		if history[0].EventType != constants.EventStockIn {
			report.MissingStockIns = append(report.MissingStockIns, entities.MissingStockIn{
				SerialNumber:       serial,
				FirstTransactionID: history[0].ID,
			})
		}

		var deliveredIDs []uint64
		for _, t := range history {
			if t.ResultingStatus == constants.StatusDelivered {
				deliveredIDs = append(deliveredIDs, t.ID)
			}
		}
		if len(deliveredIDs) > 1 {
			report.DuplicateDeliveries = append(report.DuplicateDeliveries, entities.DuplicateDelivery{
				SerialNumber:   serial,
				TransactionIDs: deliveredIDs,
			})
		}

		// Два прихода подряд без расхода между ними машина состояний не
		// пропускает: такая история могла появиться только в обход движка.
		for i := 1; i < len(history); i++ {
			if history[i].EventType == constants.EventStockIn && history[i-1].EventType == constants.EventStockIn {
				inconsistent[serial] = struct{}{}
				break
			}
		}

		for i, t := range history {
			if t.ResultingStatus == constants.StatusDelivered && i != len(history)-1 {
				inconsistent[serial] = struct{}{}
				break
			}
		}
	}

	// Строки проекции, у которых вообще нет истории в леджере.
	for i := range items {
		if _, ok := histories[items[i].SerialNumber]; !ok {
			inconsistent[items[i].SerialNumber] = struct{}{}
		}
	}

	for serial := range inconsistent {
		report.InconsistentPatternSerials = append(report.InconsistentPatternSerials, serial)
	}
	sort.Strings(report.InconsistentPatternSerials)
	return report
}
