package services

import (
	"context"
	"errors"
	"fmt"
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

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderResultDTO, error)
	GetOrder(ctx context.Context, orderNumber string) (*dto.OrderDTO, error)
	AttachOrderFile(ctx context.Context, orderNumber string, payload dto.AttachOrderFileDTO) (*dto.OrderResultDTO, error)
	IssueOrder(ctx context.Context, orderNumber string) (*dto.OrderResultDTO, error)
	CancelOrder(ctx context.Context, orderNumber string) (*dto.OrderResultDTO, error)
	NextEntryNumber(ctx context.Context) (*dto.EntryNumberDTO, error)
}

type OrderService struct {
	storage                  *pgxpool.Pool
	orderRepository          repositories.OrderRepositoryInterface
	orderDocumentsRepository repositories.OrderDocumentsRepositoryInterface
	ledgerRepository         repositories.LedgerRepositoryInterface
	itemRepository           repositories.ItemRepositoryInterface
	bus                      *eventbus.Bus
	logger                   *zap.Logger
}

func NewOrderService(
	storage *pgxpool.Pool,
	orderRepository repositories.OrderRepositoryInterface,
	orderDocumentsRepository repositories.OrderDocumentsRepositoryInterface,
	ledgerRepository repositories.LedgerRepositoryInterface,
	itemRepository repositories.ItemRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		storage:                  storage,
		orderRepository:          orderRepository,
		orderDocumentsRepository: orderDocumentsRepository,
		ledgerRepository:         ledgerRepository,
		itemRepository:           itemRepository,
		bus:                      bus,
		logger:                   logger,
	}
}

// CreateOrder резервирует все единицы заказа атомарно: либо каждая
// переходит ACTIVE -> RESERVED, либо заказ не создаётся вовсе.
// Проигрыш гонки за единицу повторяется до трёх раз; если после
// перечитывания единица уже не ACTIVE, конфликт постоянный.
func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderResultDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var result *dto.OrderResultDTO
	for attempt := 1; attempt <= constants.OrderRetryLimit; attempt++ {
		result, err = s.createOrderOnce(ctx, userID, payload)
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
		s.logger.Warn("Конфликт при резервировании, повтор",
			zap.String("order_number", payload.OrderNumber),
			zap.Int("attempt", attempt),
		)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заказ создан",
		zap.String("order_number", result.OrderNumber),
		zap.Int("items", len(result.TransactionIDs)),
	)
	s.publishAppended(ctx, result.TransactionIDs)
	return result, nil
}

func (s *OrderService) createOrderOnce(ctx context.Context, userID uint64, payload dto.CreateOrderDTO) (*dto.OrderResultDTO, error) {
	now := time.Now().UTC()
	result := &dto.OrderResultDTO{
		OrderNumber:     payload.OrderNumber,
		AggregateStatus: constants.StatusReserved,
	}

	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		order := &entities.Order{
			OrderNumber: payload.OrderNumber,
			Kind:        entities.OrderKindSale,
			Dealer:      payload.Dealer,
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
				constants.StatusReserved, payload.OrderNumber, payload.Location,
				constants.SourceOrder, payload.Remark, userID, now,
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

func (s *OrderService) GetOrder(ctx context.Context, orderNumber string) (*dto.OrderDTO, error) {
	order, err := s.orderRepository.Find(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	serials, err := s.ledgerRepository.SerialsByOrder(ctx, nil, orderNumber)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepository.BySerials(ctx, nil, serials)
	if err != nil {
		return nil, err
	}
	docs, err := s.orderDocumentsRepository.ByOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	return &dto.OrderDTO{
		Order:           *order,
		AggregateStatus: aggregateStatus(items),
		Items:           items,
		Documents:       docs,
	}, nil
}

// AttachOrderFile привязывает документ и продвигает единицы заказа:
// INVOICE переводит RESERVED -> INVOICED, DELIVERY_ORDER переводит
// отгружаемые единицы в DELIVERED. Единицы, для которых переход
// недопустим, остаются как есть — частичная поставка даёт MIXED.
func (s *OrderService) AttachOrderFile(ctx context.Context, orderNumber string, payload dto.AttachOrderFileDTO) (*dto.OrderResultDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	targetStatus := constants.StatusInvoiced
	if payload.FileType == constants.FileTypeDeliveryOrder {
		targetStatus = constants.StatusDelivered
	}

	var documentDate null.Time
	if payload.DocumentDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.DocumentDate)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("неверный формат document_date: %s", payload.DocumentDate)
		}
		documentDate = null.TimeFrom(parsed)
	}

	now := time.Now().UTC()
	result := &dto.OrderResultDTO{OrderNumber: orderNumber}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		order, err := s.orderRepository.Find(ctx, orderNumber)
		if err != nil {
			return err
		}
		if order.CancelledAt.Valid {
			return apperrors.NewInvalidInputError("заказ %s отменён", orderNumber)
		}

		items, err := s.orderItemsInTx(ctx, tx, orderNumber)
		if err != nil {
			return err
		}

		statuses := make([]string, 0, len(items))
		for i := range items {
			if !constants.CanTransition(items[i].CurrentStatus, targetStatus) {
				statuses = append(statuses, items[i].CurrentStatus)
				continue
			}
			id, err := advanceItemInTx(ctx, tx,
				s.ledgerRepository, s.itemRepository, &items[i],
				targetStatus, orderNumber, order.Location,
				sourceForFileType(payload.FileType), "", userID, now,
			)
			if err != nil {
				return err
			}
			result.TransactionIDs = append(result.TransactionIDs, id)
			statuses = append(statuses, targetStatus)
		}
		if len(result.TransactionIDs) == 0 {
			return apperrors.NewInvalidInputError("в заказе %s нет единиц, допускающих переход в %s", orderNumber, targetStatus)
		}
		result.AggregateStatus = aggregateStatuses(statuses)

		return s.orderDocumentsRepository.InsertInTx(ctx, tx, &entities.OrderDocument{
			OrderNumber:    orderNumber,
			FileID:         payload.FileID,
			FileType:       payload.FileType,
			DeliveryNumber: payload.DeliveryNumber,
			DocumentDate:   documentDate,
			CreatedBy:      userID,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Документ привязан к заказу",
		zap.String("order_number", orderNumber),
		zap.String("file_type", payload.FileType),
		zap.Int("advanced", len(result.TransactionIDs)),
	)
	s.publishAppended(ctx, result.TransactionIDs)
	return result, nil
}

// IssueOrder отмечает физический уход со склада: INVOICED -> ISSUED.
// Шаг необязателен — поставка допустима и напрямую из INVOICED.
func (s *OrderService) IssueOrder(ctx context.Context, orderNumber string) (*dto.OrderResultDTO, error) {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &dto.OrderResultDTO{OrderNumber: orderNumber}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		order, err := s.orderRepository.Find(ctx, orderNumber)
		if err != nil {
			return err
		}
		if order.CancelledAt.Valid {
			return apperrors.NewInvalidInputError("заказ %s отменён", orderNumber)
		}

		items, err := s.orderItemsInTx(ctx, tx, orderNumber)
		if err != nil {
			return err
		}

		statuses := make([]string, 0, len(items))
		for i := range items {
			if items[i].CurrentStatus != constants.StatusInvoiced {
				statuses = append(statuses, items[i].CurrentStatus)
				continue
			}
			id, err := advanceItemInTx(ctx, tx,
				s.ledgerRepository, s.itemRepository, &items[i],
				constants.StatusIssued, orderNumber, order.Location,
				constants.SourceIssue, "", userID, now,
			)
			if err != nil {
				return err
			}
			result.TransactionIDs = append(result.TransactionIDs, id)
			statuses = append(statuses, constants.StatusIssued)
		}
		if len(result.TransactionIDs) == 0 {
			return apperrors.NewInvalidInputError("в заказе %s нет единиц в статусе %s", orderNumber, constants.StatusInvoiced)
		}
		result.AggregateStatus = aggregateStatuses(statuses)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishAppended(ctx, result.TransactionIDs)
	return result, nil
}

// CancelOrder — привилегированная отмена: каждая невыбывшая единица
// возвращается в ACTIVE компенсирующим Stock_In. Единицы в ISSUED или
// DELIVERED блокируют отмену: товар уже покинул склад.
func (s *OrderService) CancelOrder(ctx context.Context, orderNumber string) (*dto.OrderResultDTO, error) {
	if err := utils.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &dto.OrderResultDTO{
		OrderNumber:     orderNumber,
		AggregateStatus: constants.StatusActive,
	}

	err = repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		order, err := s.orderRepository.Find(ctx, orderNumber)
		if err != nil {
			return err
		}
		if order.CancelledAt.Valid {
			return apperrors.NewInvalidInputError("заказ %s уже отменён", orderNumber)
		}

		items, err := s.orderItemsInTx(ctx, tx, orderNumber)
		if err != nil {
			return err
		}

		for i := range items {
			if items[i].CurrentStatus == constants.StatusActive {
				continue
			}
			if !constants.CanTransition(items[i].CurrentStatus, constants.StatusActive) {
				return apperrors.NewTransitionError(items[i].SerialNumber, items[i].CurrentStatus, constants.StatusActive)
			}
			id, err := advanceItemInTx(ctx, tx,
				s.ledgerRepository, s.itemRepository, &items[i],
				constants.StatusActive, orderNumber, "",
				constants.SourceCancel, "отмена заказа", userID, now,
			)
			if err != nil {
				return err
			}
			result.TransactionIDs = append(result.TransactionIDs, id)
		}
		return s.orderRepository.MarkCancelledInTx(ctx, tx, orderNumber)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Заказ отменён",
		zap.String("order_number", orderNumber),
		zap.Int("reverted", len(result.TransactionIDs)),
	)
	s.publishAppended(ctx, result.TransactionIDs)
	return result, nil
}

// NextEntryNumber — подсказка следующего входящего номера для формы.
// Только отображение: гарантию уникальности даёт ограничение БД.
func (s *OrderService) NextEntryNumber(ctx context.Context) (*dto.EntryNumberDTO, error) {
	n, err := s.orderRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.EntryNumberDTO{
		NextEntryNumber: fmt.Sprintf(constants.EntryNumberFormat, n+1),
	}, nil
}

func (s *OrderService) orderItemsInTx(ctx context.Context, tx pgx.Tx, orderNumber string) ([]entities.Item, error) {
	serials, err := s.ledgerRepository.SerialsByOrder(ctx, tx, orderNumber)
	if err != nil {
		return nil, err
	}
	if len(serials) == 0 {
		return nil, apperrors.NewInvalidInputError("заказ %s не содержит единиц", orderNumber)
	}
	return s.itemRepository.BySerials(ctx, tx, serials)
}

func (s *OrderService) publishAppended(ctx context.Context, transactionIDs []uint64) {
	if len(transactionIDs) == 0 {
		return
	}
	s.bus.Publish(ctx, events.TransactionAppendedEvent{
		TransactionID: transactionIDs[len(transactionIDs)-1],
	})
}

func sourceForFileType(fileType string) string {
	if fileType == constants.FileTypeDeliveryOrder {
		return constants.SourceDelivery
	}
	return constants.SourceInvoice
}

// aggregateStatus сводит статусы единиц заказа к одному: общий статус,
// если все совпадают, иначе MIXED.
func aggregateStatus(items []entities.Item) string {
	statuses := make([]string, len(items))
	for i := range items {
		statuses[i] = items[i].CurrentStatus
	}
	return aggregateStatuses(statuses)
}

func aggregateStatuses(statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}
	first := statuses[0]
	for _, s := range statuses[1:] {
		if s != first {
			return constants.OrderStatusMixed
		}
	}
	return first
}

func missingSerials(requested []string, found []entities.Item) string {
	if len(found) == len(requested) {
		return ""
	}
	present := make(map[string]struct{}, len(found))
	for i := range found {
		present[found[i].SerialNumber] = struct{}{}
	}
	for _, s := range requested {
		if _, ok := present[s]; !ok {
			return s
		}
	}
	return ""
}
