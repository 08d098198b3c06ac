package postgres

import (
	"context"

	"github.com/cwrk-planet/bizos/internal/domain"
	q "github.com/cwrk-planet/bizos/internal/postgres/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ImageRepository struct {
	db *pgxpool.Pool
}

func NewImageRepository(db *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{db: db}
}

func scanImage(row pgx.Row) (*domain.GeneratedImage, error) {
	var img domain.GeneratedImage
	if err := row.Scan(&img.ID, &img.BusinessID, &img.Prompt, &img.Style, &img.ImageURL, &img.StoragePath, &img.CreatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return &img, nil
}

func (r *ImageRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.GeneratedImage, error) {
	rows, err := r.db.Query(ctx, q.QueryListImagesByBusiness, businessID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	out := make([]domain.GeneratedImage, 0, 8)
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, mapPgError(rows.Err())
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.GeneratedImage) (*domain.GeneratedImage, error) {
	return scanImage(r.db.QueryRow(ctx, q.QueryInsertImage,
		img.BusinessID, img.Prompt, img.Style, img.ImageURL, img.StoragePath))
}
