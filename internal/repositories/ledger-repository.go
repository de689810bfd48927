package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
	"inventory-system/pkg/types"
)

type LedgerRepositoryInterface interface {
	AppendInTx(ctx context.Context, q querier, t *entities.Transaction) (uint64, error)
	BySerial(ctx context.Context, serialNumber string) ([]entities.Transaction, error)
	ByOrder(ctx context.Context, orderNumber string) ([]entities.Transaction, error)
	ByDateRange(ctx context.Context, from, to time.Time) ([]entities.Transaction, error)
	UpTo(ctx context.Context, cutoff time.Time) ([]entities.Transaction, error)
	All(ctx context.Context) ([]entities.Transaction, error)
	SerialsByOrder(ctx context.Context, q querier, orderNumber string) ([]string, error)
	Fingerprint(ctx context.Context) (types.Fingerprint, error)
	DeleteBySerialInTx(ctx context.Context, q querier, serialNumber string) (int64, error)
}

type LedgerRepository struct {
	storage *pgxpool.Pool
}

func NewLedgerRepository(storage *pgxpool.Pool) LedgerRepositoryInterface {
	return &LedgerRepository{storage: storage}
}

const transactionColumns = `id, serial_number, event_type, resulting_status, order_number,
	category, model, size, batch, location, occurred_at, source, remark, created_by, created_at`

// AppendInTx вставляет событие и возвращает id, выданный глобальной
// последовательностью. Последовательность БД — единственная точка
// сериализации: кто получил больший id, тот и определяет текущий статус.
func (r *LedgerRepository) AppendInTx(ctx context.Context, q querier, t *entities.Transaction) (uint64, error) {
	query := `
		INSERT INTO transactions
			(serial_number, event_type, resulting_status, order_number,
			 category, model, size, batch, location, occurred_at, source, remark, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	var id uint64
	var createdAt time.Time
	err := q.QueryRow(ctx, query,
		t.SerialNumber, t.EventType, t.ResultingStatus, t.OrderNumber,
		t.Category, t.Model, t.Size, t.Batch, t.Location, t.OccurredAt, t.Source, t.Remark, t.CreatedBy,
	).Scan(&id, &createdAt)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи в леджер: %w", err)
	}
	t.ID = id
	t.CreatedAt = createdAt
	return id, nil
}

func scanTransactions(rows pgx.Rows) ([]entities.Transaction, error) {
	defer rows.Close()

	txns := make([]entities.Transaction, 0)
	for rows.Next() {
		var t entities.Transaction
		err := rows.Scan(
			&t.ID, &t.SerialNumber, &t.EventType, &t.ResultingStatus, &t.OrderNumber,
			&t.Category, &t.Model, &t.Size, &t.Batch, &t.Location,
			&t.OccurredAt, &t.Source, &t.Remark, &t.CreatedBy, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования транзакции: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// BySerial возвращает историю серийного номера по возрастанию id.
// Порядок — явный контракт API чтения, а не свойство хранилища.
func (r *LedgerRepository) BySerial(ctx context.Context, serialNumber string) ([]entities.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE serial_number = $1 ORDER BY id ASC`, transactionColumns)
	rows, err := r.storage.Query(ctx, query, serialNumber)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения истории серийного номера: %w", err)
	}
	return scanTransactions(rows)
}

func (r *LedgerRepository) ByOrder(ctx context.Context, orderNumber string) ([]entities.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE order_number = $1 ORDER BY id ASC`, transactionColumns)
	rows, err := r.storage.Query(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения транзакций заказа: %w", err)
	}
	return scanTransactions(rows)
}

func (r *LedgerRepository) ByDateRange(ctx context.Context, from, to time.Time) ([]entities.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE occurred_at >= $1 AND occurred_at <= $2 ORDER BY id ASC`, transactionColumns)
	rows, err := r.storage.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения транзакций за период: %w", err)
	}
	return scanTransactions(rows)
}

// UpTo — все события с occurred_at не позже отсечки. Основа месячного
// снапшота: переигрывание журнала, а не фильтрация живой проекции.
func (r *LedgerRepository) UpTo(ctx context.Context, cutoff time.Time) ([]entities.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE occurred_at <= $1 ORDER BY id ASC`, transactionColumns)
	rows, err := r.storage.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения транзакций до отсечки: %w", err)
	}
	return scanTransactions(rows)
}

func (r *LedgerRepository) All(ctx context.Context) ([]entities.Transaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM transactions ORDER BY id ASC`, transactionColumns)
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка полного чтения леджера: %w", err)
	}
	return scanTransactions(rows)
}

// SerialsByOrder — участники заказа: различные серийные номера,
// встречающиеся в транзакциях с этим номером заказа.
func (r *LedgerRepository) SerialsByOrder(ctx context.Context, q querier, orderNumber string) ([]string, error) {
	if q == nil {
		q = r.storage
	}
	rows, err := q.Query(ctx, `SELECT DISTINCT serial_number FROM transactions WHERE order_number = $1 ORDER BY serial_number`, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения состава заказа: %w", err)
	}
	defer rows.Close()

	serials := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("ошибка сканирования серийного номера: %w", err)
		}
		serials = append(serials, s)
	}
	return serials, rows.Err()
}

// Fingerprint — дешёвый отпечаток состояния леджера для поллинга.
func (r *LedgerRepository) Fingerprint(ctx context.Context) (types.Fingerprint, error) {
	var fp types.Fingerprint
	err := r.storage.QueryRow(ctx, `SELECT COUNT(*), COALESCE(MAX(id), 0) FROM transactions`).
		Scan(&fp.TransactionCount, &fp.LastTransactionID)
	if err != nil {
		return fp, fmt.Errorf("ошибка расчёта фингерпринта леджера: %w", err)
	}
	return fp, nil
}

// DeleteBySerialInTx — каскадная часть привилегированного удаления единицы.
// Единственная операция, которой позволено убирать строки из леджера.
func (r *LedgerRepository) DeleteBySerialInTx(ctx context.Context, q querier, serialNumber string) (int64, error) {
	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE serial_number = $1`, serialNumber)
	if err != nil {
		return 0, fmt.Errorf("ошибка удаления транзакций серийного номера: %w", err)
	}
	return tag.RowsAffected(), nil
}
