package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

type OrderRepositoryInterface interface {
	InsertInTx(ctx context.Context, q querier, order *entities.Order) error
	Find(ctx context.Context, orderNumber string) (*entities.Order, error)
	MarkCancelledInTx(ctx context.Context, q querier, orderNumber string) error
	Count(ctx context.Context) (uint64, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
}

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{storage: storage}
}

func (r *OrderRepository) InsertInTx(ctx context.Context, q querier, order *entities.Order) error {
	query := `
		INSERT INTO orders (order_number, kind, dealer, client, location, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := q.QueryRow(ctx, query,
		order.OrderNumber, order.Kind, order.Dealer, order.Client, order.Location, order.CreatedBy,
	).Scan(&order.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("ошибка создания заказа: %w", err)
	}
	return nil
}

func (r *OrderRepository) Find(ctx context.Context, orderNumber string) (*entities.Order, error) {
	query := `
		SELECT order_number, kind, dealer, client, location, created_by, created_at, cancelled_at
		FROM orders WHERE order_number = $1`

	var o entities.Order
	err := r.storage.QueryRow(ctx, query, orderNumber).Scan(
		&o.OrderNumber, &o.Kind, &o.Dealer, &o.Client, &o.Location, &o.CreatedBy, &o.CreatedAt, &o.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка чтения заказа: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) MarkCancelledInTx(ctx context.Context, q querier, orderNumber string) error {
	tag, err := q.Exec(ctx,
		`UPDATE orders SET cancelled_at = NOW() WHERE order_number = $1 AND cancelled_at IS NULL`,
		orderNumber,
	)
	if err != nil {
		return fmt.Errorf("ошибка отмены заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count — число когда-либо созданных заказов, основа подсказки следующего
// входящего номера. Отменённые заказы тоже считаются.
func (r *OrderRepository) Count(ctx context.Context) (uint64, error) {
	var n uint64
	if err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("ошибка подсчёта заказов: %w", err)
	}
	return n, nil
}
