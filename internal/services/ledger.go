package services

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/utils"
)

type LedgerServiceInterface interface {
	Append(ctx context.Context, payload dto.CreateTransactionDTO) (*entities.Transaction, error)
	HistoryBySerial(ctx context.Context, serialNumber string) ([]entities.Transaction, error)
	HistoryByOrder(ctx context.Context, orderNumber string) ([]entities.Transaction, error)
	HistoryByDateRange(ctx context.Context, from, to time.Time) ([]entities.Transaction, error)
}

type LedgerService struct {
	storage          *pgxpool.Pool
	ledgerRepository repositories.LedgerRepositoryInterface
	itemRepository   repositories.ItemRepositoryInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewLedgerService(
	storage *pgxpool.Pool,
	ledgerRepository repositories.LedgerRepositoryInterface,
	itemRepository repositories.ItemRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) LedgerServiceInterface {
	return &LedgerService{
		storage:          storage,
		ledgerRepository: ledgerRepository,
		itemRepository:   itemRepository,
		bus:              bus,
		logger:           logger,
	}
}

// Append фиксирует одно событие смены статуса. Рождение серийного номера —
// это Stock_In в ACTIVE; для всех остальных событий карточные поля
// наследуются из проекции, а переход проверяется по машине состояний.
func (s *LedgerService) Append(ctx context.Context, payload dto.CreateTransactionDTO) (*entities.Transaction, error) {
	if !constants.IsValidStatus(payload.TargetStatus) {
		return nil, apperrors.NewInvalidInputError("неизвестный статус: %s", payload.TargetStatus)
	}

	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	occurredAt := time.Now().UTC()
	if payload.OccurredAt != "" {
		occurredAt, err = time.Parse(time.RFC3339, payload.OccurredAt)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат occurred_at: %s", payload.OccurredAt)
		}
	}

	source := payload.Source
	if source == "" {
		source = constants.SourceManual
	}

	item, err := s.itemRepository.Get(ctx, payload.SerialNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	currentStatus := ""
	if item != nil {
		currentStatus = item.CurrentStatus
	}
	if !constants.CanTransition(currentStatus, payload.TargetStatus) {
		return nil, apperrors.NewTransitionError(payload.SerialNumber, currentStatus, payload.TargetStatus)
	}

	t := &entities.Transaction{
		SerialNumber:    payload.SerialNumber,
		EventType:       constants.EventTypeFor(payload.TargetStatus),
		ResultingStatus: payload.TargetStatus,
		OrderNumber:     null.NewString(payload.OrderNumber, payload.OrderNumber != ""),
		Category:        payload.Category,
		Model:           payload.Model,
		Size:            payload.Size,
		Batch:           payload.Batch,
		Location:        payload.Location,
		OccurredAt:      occurredAt,
		Source:          source,
		Remark:          payload.Remark,
		CreatedBy:       userID,
	}
	if item != nil {
		inheritCardFields(t, item)
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		if _, err := s.ledgerRepository.AppendInTx(ctx, tx, t); err != nil {
			return err
		}
		if item == nil {
			return s.itemRepository.InsertInTx(ctx, tx, &entities.Item{
				SerialNumber:      t.SerialNumber,
				CurrentStatus:     t.ResultingStatus,
				CurrentLocation:   t.Location,
				LastTransactionID: t.ID,
				LastActivity:      t.OccurredAt,
				Category:          t.Category,
				Model:             t.Model,
				Size:              t.Size,
				Batch:             t.Batch,
			})
		}
		return s.itemRepository.AdvanceInTx(ctx, tx, t.SerialNumber, currentStatus, t)
	})
	if err != nil {
		s.logger.Error("Ошибка при добавлении транзакции в леджер",
			zap.String("serial_number", payload.SerialNumber),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Транзакция зафиксирована",
		zap.Uint64("id", t.ID),
		zap.String("serial_number", t.SerialNumber),
		zap.String("resulting_status", t.ResultingStatus),
	)
	s.bus.Publish(ctx, events.TransactionAppendedEvent{TransactionID: t.ID, SerialNumber: t.SerialNumber})
	return t, nil
}

func (s *LedgerService) HistoryBySerial(ctx context.Context, serialNumber string) ([]entities.Transaction, error) {
	txns, err := s.ledgerRepository.BySerial(ctx, serialNumber)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return txns, nil
}

func (s *LedgerService) HistoryByOrder(ctx context.Context, orderNumber string) ([]entities.Transaction, error) {
	return s.ledgerRepository.ByOrder(ctx, orderNumber)
}

func (s *LedgerService) HistoryByDateRange(ctx context.Context, from, to time.Time) ([]entities.Transaction, error) {
	if to.Before(from) {
		return nil, apperrors.NewInvalidInputError("конец периода раньше начала")
	}
	return s.ledgerRepository.ByDateRange(ctx, from, to)
}

// inheritCardFields копирует карточные поля из проекции в новое событие,
// если запрос их не переопределил. Леджер остаётся самодостаточным:
// каждая строка несёт полную карточку единицы.
func inheritCardFields(t *entities.Transaction, item *entities.Item) {
	if t.Category == "" {
		t.Category = item.Category
	}
	if t.Model == "" {
		t.Model = item.Model
	}
	if t.Size == "" {
		t.Size = item.Size
	}
	if t.Batch == "" {
		t.Batch = item.Batch
	}
	if t.Location == "" {
		t.Location = item.CurrentLocation
	}
}

// advanceItemInTx — общий шаг заказов и демо-выдач: проверка перехода,
// запись события в леджер и продвижение проекции с оптимистичной защитой,
// всё в рамках уже открытой транзакции БД.
func advanceItemInTx(
	ctx context.Context,
	tx pgx.Tx,
	ledgerRepository repositories.LedgerRepositoryInterface,
	itemRepository repositories.ItemRepositoryInterface,
	item *entities.Item,
	targetStatus, orderNumber, location, source, remark string,
	userID uint64,
	occurredAt time.Time,
) (uint64, error) {
	if !constants.CanTransition(item.CurrentStatus, targetStatus) {
		return 0, apperrors.NewTransitionError(item.SerialNumber, item.CurrentStatus, targetStatus)
	}

	t := &entities.Transaction{
		SerialNumber:    item.SerialNumber,
		EventType:       constants.EventTypeFor(targetStatus),
		ResultingStatus: targetStatus,
		OrderNumber:     null.NewString(orderNumber, orderNumber != ""),
		Category:        item.Category,
		Model:           item.Model,
		Size:            item.Size,
		Batch:           item.Batch,
		Location:        location,
		OccurredAt:      occurredAt,
		Source:          source,
		Remark:          remark,
		CreatedBy:       userID,
	}
	if t.Location == "" {
		t.Location = item.CurrentLocation
	}

	if _, err := ledgerRepository.AppendInTx(ctx, tx, t); err != nil {
		return 0, err
	}
	if err := itemRepository.AdvanceInTx(ctx, tx, item.SerialNumber, item.CurrentStatus, t); err != nil {
		return 0, err
	}
	return t.ID, nil
}
