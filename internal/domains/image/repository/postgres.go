package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"kiosk-backend/internal/domains/image/model"
	"kiosk-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const imageColumns = `id, url, key, owner_id, article_id, created_at`

func scanImage(row pgx.Row) (*model.Image, error) {
	var img model.Image
	if err := row.Scan(&img.ID, &img.URL, &img.Key, &img.OwnerID, &img.ArticleID, &img.CreatedAt); err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *postgresRepository) Create(ctx context.Context, img *model.Image) error {
	query := `
		INSERT INTO images (id, url, key, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := database.Conn(ctx, r.pool).
		QueryRow(ctx, query, img.ID, img.URL, img.Key, img.OwnerID).
		Scan(&img.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "images_key_key") {
			return model.ErrDuplicateKey
		}
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByKey(ctx context.Context, key string) (*model.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE key = $1`

	img, err := scanImage(database.Conn(ctx, r.pool).QueryRow(ctx, query, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find image by key: %w", err)
	}
	return img, nil
}

func (r *postgresRepository) DeleteByKey(ctx context.Context, key string) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM images WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrImageNotFound
	}
	return nil
}

func (r *postgresRepository) LinkOrphans(ctx context.Context, ownerID, articleID uuid.UUID, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}

	query := `
		UPDATE images
		SET article_id = $1
		WHERE owner_id = $2
		  AND article_id IS NULL
		  AND url = ANY($3)
	`
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, query, articleID, ownerID, pq.Array(urls))
	if err != nil {
		return 0, fmt.Errorf("link images: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) ListStaleOrphans(ctx context.Context, cutoff time.Time, limit int) ([]*model.Image, error) {
	query := `
		SELECT ` + imageColumns + `
		FROM images
		WHERE article_id IS NULL
		  AND created_at < $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2
	`
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale orphans: %w", err)
	}
	defer rows.Close()

	var images []*model.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteOrphansByKeys re-checks article_id so an image linked after it was
// listed survives.
func (r *postgresRepository) DeleteOrphansByKeys(ctx context.Context, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}

	query := `DELETE FROM images WHERE key = ANY($1) AND article_id IS NULL`
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, query, pq.Array(keys))
	if err != nil {
		return 0, fmt.Errorf("delete orphan images: %w", err)
	}
	return tag.RowsAffected(), nil
}
