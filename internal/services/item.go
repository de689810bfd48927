package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type ItemServiceInterface interface {
	GetItems(ctx context.Context, filter types.Filter) (*types.Page[entities.Item], error)
	FindItem(ctx context.Context, serialNumber string) (*entities.Item, error)
	DeleteItem(ctx context.Context, serialNumber string) error
}

type ItemService struct {
	storage          *pgxpool.Pool
	itemRepository   repositories.ItemRepositoryInterface
	ledgerRepository repositories.LedgerRepositoryInterface
	bus              *eventbus.Bus
	logger           *zap.Logger
}

func NewItemService(
	storage *pgxpool.Pool,
	itemRepository repositories.ItemRepositoryInterface,
	ledgerRepository repositories.LedgerRepositoryInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) ItemServiceInterface {
	return &ItemService{
		storage:          storage,
		itemRepository:   itemRepository,
		ledgerRepository: ledgerRepository,
		bus:              bus,
		logger:           logger,
	}
}

func (s *ItemService) GetItems(ctx context.Context, filter types.Filter) (*types.Page[entities.Item], error) {
	return s.itemRepository.List(ctx, filter)
}

func (s *ItemService) FindItem(ctx context.Context, serialNumber string) (*entities.Item, error) {
	return s.itemRepository.Get(ctx, serialNumber)
}

// DeleteItem — привилегированное каскадное удаление: проекция и вся
// история серийного номера уходят одной транзакцией. Единственная
// операция, нарушающая append-only природу леджера.
func (s *ItemService) DeleteItem(ctx context.Context, serialNumber string) error {
	if err := utils.RequireAdmin(ctx); err != nil {
		return err
	}

	err := repositories.WithTx(ctx, s.storage, func(tx pgx.Tx) error {
		deleted, err := s.itemRepository.DeleteInTx(ctx, tx, serialNumber)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperrors.ErrNotFound
		}
		_, err = s.ledgerRepository.DeleteBySerialInTx(ctx, tx, serialNumber)
		return err
	})
	if err != nil {
		return err
	}

	s.logger.Info("Единица удалена вместе с историей",
		zap.String("serial_number", serialNumber),
	)
	s.bus.Publish(ctx, events.TransactionAppendedEvent{SerialNumber: serialNumber})
	return nil
}
