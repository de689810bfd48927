package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type ItemRepositoryInterface interface {
	Get(ctx context.Context, serialNumber string) (*entities.Item, error)
	BySerials(ctx context.Context, q querier, serialNumbers []string) ([]entities.Item, error)
	List(ctx context.Context, filter types.Filter) (*types.Page[entities.Item], error)
	All(ctx context.Context) ([]entities.Item, error)
	InsertInTx(ctx context.Context, q querier, item *entities.Item) error
	AdvanceInTx(ctx context.Context, q querier, serialNumber, expectedStatus string, t *entities.Transaction) error
	Apply(ctx context.Context, t *entities.Transaction) error
	DeleteInTx(ctx context.Context, q querier, serialNumber string) (int64, error)
}

type ItemRepository struct {
	storage *pgxpool.Pool
}

func NewItemRepository(storage *pgxpool.Pool) ItemRepositoryInterface {
	return &ItemRepository{storage: storage}
}

const itemColumns = `serial_number, current_status, current_location, last_transaction_id,
	transaction_count, last_activity, category, model, size, batch, updated_at`

func scanItem(row pgx.Row) (*entities.Item, error) {
	var it entities.Item
	err := row.Scan(
		&it.SerialNumber, &it.CurrentStatus, &it.CurrentLocation, &it.LastTransactionID,
		&it.TransactionCount, &it.LastActivity, &it.Category, &it.Model, &it.Size, &it.Batch, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования проекции: %w", err)
	}
	return &it, nil
}

func (r *ItemRepository) Get(ctx context.Context, serialNumber string) (*entities.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items WHERE serial_number = $1`, itemColumns)
	return scanItem(r.storage.QueryRow(ctx, query, serialNumber))
}

func (r *ItemRepository) BySerials(ctx context.Context, q querier, serialNumbers []string) ([]entities.Item, error) {
	if q == nil {
		q = r.storage
	}
	query := fmt.Sprintf(`SELECT %s FROM items WHERE serial_number = ANY($1) ORDER BY serial_number`, itemColumns)
	rows, err := q.Query(ctx, query, serialNumbers)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения проекций: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Item, 0, len(serialNumbers))
	for rows.Next() {
		var it entities.Item
		err := rows.Scan(
			&it.SerialNumber, &it.CurrentStatus, &it.CurrentLocation, &it.LastTransactionID,
			&it.TransactionCount, &it.LastActivity, &it.Category, &it.Model, &it.Size, &it.Batch, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования проекции: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// allowedFilterColumns отображает имена фильтров запроса на колонки БД.
var allowedFilterColumns = map[string]string{
	"status":   "current_status",
	"category": "category",
	"location": "current_location",
	"size":     "size",
	"batch":    "batch",
}

// List — курсорная пагинация по serial_number: стабильный порядок без
// смещений, устойчивый к конкурентным записям. Запрашиваем limit+1 строк,
// чтобы понять, есть ли следующая страница.
func (r *ItemRepository) List(ctx context.Context, filter types.Filter) (*types.Page[entities.Item], error) {
	builder := sq.Select(
		"serial_number", "current_status", "current_location", "last_transaction_id",
		"transaction_count", "last_activity", "category", "model", "size", "batch", "updated_at",
	).From("items").PlaceholderFormat(sq.Dollar)

	for key, val := range filter.Filter {
		col, ok := allowedFilterColumns[key]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{col: val})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"serial_number": pattern},
			sq.ILike{"category": pattern},
			sq.ILike{"model": pattern},
		})
	}

	if filter.Cursor != "" {
		builder = builder.Where(sq.Gt{"serial_number": filter.Cursor})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 50
	}
	builder = builder.OrderBy("serial_number ASC").Limit(limit + 1)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса листинга: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка листинга проекций: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Item, 0, limit)
	for rows.Next() {
		var it entities.Item
		err := rows.Scan(
			&it.SerialNumber, &it.CurrentStatus, &it.CurrentLocation, &it.LastTransactionID,
			&it.TransactionCount, &it.LastActivity, &it.Category, &it.Model, &it.Size, &it.Batch, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования проекции в листинге: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := &types.Page[entities.Item]{Items: items}
	if uint64(len(items)) > limit {
		page.Items = items[:limit]
		page.HasMore = true
		page.NextCursor = page.Items[len(page.Items)-1].SerialNumber
	}
	return page, nil
}

func (r *ItemRepository) All(ctx context.Context) ([]entities.Item, error) {
	query := fmt.Sprintf(`SELECT %s FROM items ORDER BY serial_number`, itemColumns)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка полного чтения проекций: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Item, 0)
	for rows.Next() {
		var it entities.Item
		err := rows.Scan(
			&it.SerialNumber, &it.CurrentStatus, &it.CurrentLocation, &it.LastTransactionID,
			&it.TransactionCount, &it.LastActivity, &it.Category, &it.Model, &it.Size, &it.Batch, &it.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования проекции: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertInTx — рождение серийного номера первым Stock_In. Конкурирующая
// вставка того же номера проигрывает по ON CONFLICT и получает конфликт.
func (r *ItemRepository) InsertInTx(ctx context.Context, q querier, item *entities.Item) error {
	query := `
		INSERT INTO items
			(serial_number, current_status, current_location, last_transaction_id,
			 transaction_count, last_activity, category, model, size, batch, updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (serial_number) DO NOTHING`

	tag, err := q.Exec(ctx, query,
		item.SerialNumber, item.CurrentStatus, item.CurrentLocation, item.LastTransactionID,
		item.LastActivity, item.Category, item.Model, item.Size, item.Batch,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания проекции: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(item.SerialNumber, "")
	}
	return nil
}

// AdvanceInTx — оптимистичное обновление проекции: применяется только если
// статус всё ещё expectedStatus и новая транзакция свежее уже применённой.
// Ноль затронутых строк означает, что другой писатель успел раньше.
func (r *ItemRepository) AdvanceInTx(ctx context.Context, q querier, serialNumber, expectedStatus string, t *entities.Transaction) error {
	query := `
		UPDATE items
		SET current_status = $1,
		    current_location = $2,
		    last_transaction_id = $3,
		    transaction_count = transaction_count + 1,
		    last_activity = $4,
		    updated_at = NOW()
		WHERE serial_number = $5
		  AND current_status = $6
		  AND last_transaction_id < $3`

	location := t.Location
	tag, err := q.Exec(ctx, query, t.ResultingStatus, location, t.ID, t.OccurredAt, serialNumber, expectedStatus)
	if err != nil {
		return fmt.Errorf("ошибка обновления проекции: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(serialNumber, expectedStatus)
	}
	return nil
}

// Apply — идемпотентное применение транзакции к проекции при переигрывании:
// обновление происходит только если id транзакции больше сохранённого.
// Повторное применение той же транзакции — no-op.
func (r *ItemRepository) Apply(ctx context.Context, t *entities.Transaction) error {
	query := `
		INSERT INTO items
			(serial_number, current_status, current_location, last_transaction_id,
			 transaction_count, last_activity, category, model, size, batch, updated_at)
		VALUES ($1, $2, $3, $4, 1, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (serial_number) DO UPDATE
		SET current_status = EXCLUDED.current_status,
		    current_location = EXCLUDED.current_location,
		    last_transaction_id = EXCLUDED.last_transaction_id,
		    transaction_count = items.transaction_count + 1,
		    last_activity = EXCLUDED.last_activity,
		    updated_at = NOW()
		WHERE items.last_transaction_id < EXCLUDED.last_transaction_id`

	_, err := r.storage.Exec(ctx, query,
		t.SerialNumber, t.ResultingStatus, t.Location, t.ID,
		t.OccurredAt, t.Category, t.Model, t.Size, t.Batch,
	)
	if err != nil {
		return fmt.Errorf("ошибка применения транзакции к проекции: %w", err)
	}
	return nil
}

func (r *ItemRepository) DeleteInTx(ctx context.Context, q querier, serialNumber string) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM items WHERE serial_number = $1`, serialNumber)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления проекции: %w", err)
	}
	return tag.RowsAffected(), nil
}
