package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kiosk-backend/internal/domains/article/model"
	"kiosk-backend/internal/domains/content"
	"kiosk-backend/internal/shared/utils"
	"kiosk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const articleColumns = `id, title, content, thumbnail_url, price, author_id, journal_id, created_at, updated_at`

func scanArticle(row pgx.Row) (*model.Article, error) {
	var a model.Article
	var raw []byte
	err := row.Scan(&a.ID, &a.Title, &raw, &a.ThumbnailURL, &a.Price, &a.AuthorID, &a.JournalID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if a.Content, err = content.Parse(raw); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Article) error {
	doc, err := json.Marshal(a.Content)
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}

	query := `
		INSERT INTO articles (id, title, content, thumbnail_url, price, author_id, journal_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err = database.Conn(ctx, r.pool).
		QueryRow(ctx, query, a.ID, a.Title, doc, a.ThumbnailURL, a.Price, a.AuthorID, a.JournalID).
		Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	a, err := scanArticle(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find article: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.Article, int, error) {
	var where utils.WhereBuilder
	if filter.AuthorID != nil {
		where.Add("author_id = ?", *filter.AuthorID)
	}
	if filter.JournalID != nil {
		where.Add("journal_id = ?", *filter.JournalID)
	}

	db := database.Conn(ctx, r.pool)

	var total int
	countQuery := `SELECT COUNT(*) FROM articles ` + where.SQL()
	if err := db.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	next := where.Next()
	query := fmt.Sprintf(`
		SELECT %s
		FROM articles
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, where.SQL(), next, next+1)

	args := append(where.Args(), filter.Limit, utils.Offset(filter.Page, filter.Limit))
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []*model.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, total, rows.Err()
}
