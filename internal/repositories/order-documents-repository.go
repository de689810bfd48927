package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
)

type OrderDocumentsRepositoryInterface interface {
	InsertInTx(ctx context.Context, q querier, doc *entities.OrderDocument) error
	ByOrder(ctx context.Context, orderNumber string) ([]entities.OrderDocument, error)
}

type OrderDocumentsRepository struct {
	storage *pgxpool.Pool
}

func NewOrderDocumentsRepository(storage *pgxpool.Pool) OrderDocumentsRepositoryInterface {
	return &OrderDocumentsRepository{storage: storage}
}

func (r *OrderDocumentsRepository) InsertInTx(ctx context.Context, q querier, doc *entities.OrderDocument) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	query := `
		INSERT INTO order_documents
			(id, order_number, file_id, file_type, delivery_number, document_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := q.QueryRow(ctx, query,
		doc.ID, doc.OrderNumber, doc.FileID, doc.FileType, doc.DeliveryNumber, doc.DocumentDate, doc.CreatedBy,
	).Scan(&doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка привязки документа к заказу: %w", err)
	}
	return nil
}

func (r *OrderDocumentsRepository) ByOrder(ctx context.Context, orderNumber string) ([]entities.OrderDocument, error) {
	query := `
		SELECT id, order_number, file_id, file_type, delivery_number, document_date, created_by, created_at
		FROM order_documents WHERE order_number = $1 ORDER BY created_at ASC`

	rows, err := r.storage.Query(ctx, query, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения документов заказа: %w", err)
	}
	defer rows.Close()

	docs := make([]entities.OrderDocument, 0)
	for rows.Next() {
		var d entities.OrderDocument
		err := rows.Scan(&d.ID, &d.OrderNumber, &d.FileID, &d.FileType, &d.DeliveryNumber, &d.DocumentDate, &d.CreatedBy, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования документа заказа: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
