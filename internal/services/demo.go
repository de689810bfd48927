package services

import (
	"context"
	"errors"
	"time"

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

type DemoServiceInterface interface {
	CreateDemoLoan(ctx context.Context, payload dto.CreateDemoLoanDTO) (*dto.OrderResultDTO, error)
	ReturnDemoLoan(ctx context.Context, payload dto.ReturnDemoLoanDTO) (*dto.OrderResultDTO, error)
	ReturnableItems(ctx context.Context, orderNumber string) ([]entities.Item, error)
}

// DemoService — демо-выдачи. Хранятся как заказы с kind = DEMO, единицы
// уходят в статус DEMO и остаются на балансе до возврата.
type DemoService struct {
	storage          *pgxpool.Pool
	orderRepository  repositories.OrderRepositoryInterface
	ledgerRepository repositories.LedgerRepositoryInterface
	itemRepository   repositories.ItemRepositoryInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewDemoService(
	storage *pgxpool.Pool,
	orderRepository repositories.OrderRepositoryInterface,
	ledgerRepository repositories.LedgerRepositoryInterface,
	itemRepository repositories.ItemRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) DemoServiceInterface {
	return &DemoService{
		storage:          storage,
		orderRepository:  orderRepository,
		ledgerRepository: ledgerRepository,
		itemRepository:   itemRepository,
		bus:              bus,
		logger:           logger,
	}
}

// CreateDemoLoan выдаёт единицы в демо атомарно: каждая должна быть ACTIVE.
// Гонки разрешаются так же, как при создании заказа.
func (s *DemoService) CreateDemoLoan(ctx context.Context, payload dto.CreateDemoLoanDTO) (*dto.OrderResultDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var result *dto.OrderResultDTO
	for attempt := 1; attempt <= constants.OrderRetryLimit; attempt++ {
		result, err = s.createDemoLoanOnce(ctx, userID, payload)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConcurrencyConflict) {
			return nil, err
		}

		var conflict *apperrors.ConflictError
		if errors.As(err, &conflict) {
			item, getErr := s.itemRepository.Get(ctx, conflict.SerialNumber)
			if getErr != nil {
				return nil, err
			}
			if item.CurrentStatus != constants.StatusActive {
				return nil, err
			}
		}
		s.logger.Warn("Конфликт при демо-выдаче, повтор",
			zap.String("order_number", payload.OrderNumber),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Демо-выдача оформлена",
		zap.String("order_number", result.OrderNumber),
		zap.Int("items", len(result.TransactionIDs)),
	)
	s.publishAppended(ctx, result.TransactionIDs)
	return result, nil
}

func (s *DemoService) createDemoLoanOnce(ctx context.Context, userID uint64, payload dto.CreateDemoLoanDTO) (*dto.OrderResultDTO, error) {
	now := time.Now().UTC()
	result := &dto.OrderResultDTO{
		OrderNumber:     payload.OrderNumber,
		AggregateStatus: constants.StatusDemo,
	}

	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		order := &entities.Order{
			OrderNumber: payload.OrderNumber,
			Kind:        entities.OrderKindDemo,
			Client:      payload.Client,
			Location:    payload.Location,
			CreatedBy:   userID,
		}
		if err := s.orderRepository.InsertInTx(ctx, tx, order); err != nil {
			return err
		}

		items, err := s.itemRepository.BySerials(ctx, tx, payload.SerialNumbers)
		if err != nil {
			return err
		}
		if missing := missingSerials(payload.SerialNumbers, items); missing != "" {
			return apperrors.NewInvalidInputError("серийный номер не найден: %s", missing)
		}

		result.TransactionIDs = result.TransactionIDs[:0]
		for i := range items {
			id, err := advanceItemInTx(ctx, tx,
				s.ledgerRepository, s.itemRepository, &items[i],
				constants.StatusDemo, payload.OrderNumber, payload.Location,
				constants.SourceDemo, payload.Remark, userID, now,
			)
			if err != nil {
				return err
			}
			result.TransactionIDs = append(result.TransactionIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReturnDemoLoan возвращает единицы с демо: DEMO -> ACTIVE через Stock_In.
// Список может быть подмножеством выданного — невозвращённые единицы
// остаются в DEMO, частичный возврат легален.
func (s *DemoService) ReturnDemoLoan(ctx context.Context, payload dto.ReturnDemoLoanDTO) (*dto.OrderResultDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &dto.OrderResultDTO{AggregateStatus: constants.StatusActive}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		items, err := s.itemRepository.BySerials(ctx, tx, payload.SerialNumbers)
		if err != nil {
			return err
		}
		if missing := missingSerials(payload.SerialNumbers, items); missing != "" {
			return apperrors.NewInvalidInputError("серийный номер не найден: %s", missing)
		}

		for i := range items {
			id, err := advanceItemInTx(ctx, tx,
				s.ledgerRepository, s.itemRepository, &items[i],
				constants.StatusActive, "", "",
				constants.SourceDemoReturn, payload.Remark, userID, now,
			)
			if err != nil {
				return err
			}
			result.TransactionIDs = append(result.TransactionIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Возврат с демо",
		zap.Int("items", len(result.TransactionIDs)),
	)
	s.publishAppended(ctx, result.TransactionIDs)
	return result, nil
}

// ReturnableItems возвращает единицы демо-выдачи, всё ещё находящиеся
// в DEMO. Уже возвращённые в список не попадают.
func (s *DemoService) ReturnableItems(ctx context.Context, orderNumber string) ([]entities.Item, error) {
	order, err := s.orderRepository.Find(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order.Kind != entities.OrderKindDemo {
		return nil, apperrors.NewInvalidInputError("заказ %s не является демо-выдачей", orderNumber)
	}

	serials, err := s.ledgerRepository.SerialsByOrder(ctx, nil, orderNumber)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepository.BySerials(ctx, nil, serials)
	if err != nil {
		return nil, err
	}

	returnable := make([]entities.Item, 0, len(items))
	for _, item := range items {
		if item.CurrentStatus == constants.StatusDemo {
			returnable = append(returnable, item)
		}
	}
	return returnable, nil
}

func (s *DemoService) publishAppended(ctx context.Context, transactionIDs []uint64) {
	if len(transactionIDs) == 0 {
		return
	}
	s.bus.Publish(ctx, events.TransactionAppendedEvent{
		TransactionID: transactionIDs[len(transactionIDs)-1],
	})
}
