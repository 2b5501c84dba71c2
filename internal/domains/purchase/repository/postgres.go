package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/purchase/model"
	"kiosk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Purchase) error {
	query := `
		INSERT INTO article_purchases (id, user_id, article_id, amount_paid)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, query, p.ID, p.UserID, p.ArticleID, p.AmountPaid).
		Scan(&p.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "article_purchases_user_id_article_id_key") {
			return model.ErrAlreadyPurchased
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, userID, articleID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM article_purchases WHERE user_id = $1 AND article_id = $2)`
	if err := database.Conn(ctx, r.pool).QueryRow(ctx, query, userID, articleID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check purchase: %w", err)
	}
	return exists, nil
}

const recordSelect = `
	SELECT p.id, p.user_id, p.article_id, p.amount_paid, p.created_at, a.title
	FROM article_purchases p
	JOIN articles a ON a.id = p.article_id
`

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.PurchaseRecord, error) {
	rows, err := database.Conn(ctx, r.pool).
		Query(ctx, recordSelect+`WHERE p.user_id = $1 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return collectRecords(rows)
}

func (r *postgresRepository) ListSalesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.PurchaseRecord, error) {
	rows, err := database.Conn(ctx, r.pool).
		Query(ctx, recordSelect+`WHERE a.author_id = $1 ORDER BY p.created_at ASC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]*model.PurchaseRecord, error) {
	defer rows.Close()

	var records []*model.PurchaseRecord
	for rows.Next() {
		var rec model.PurchaseRecord
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.ArticleID, &rec.AmountPaid, &rec.CreatedAt, &rec.ArticleTitle)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
