package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/boomtruck/siteapi/internal/models"
)

// Product repository interface
type ProductRepo interface {
	// List all products ordered by name
	List(ctx context.Context) ([]models.Product, error)

	// Get product by id or slug
	// If not found must return apperrors.ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	GetBySlug(ctx context.Context, slug string) (models.Product, error)

	// Save creates or replaces the product with the same id
	// If another product holds the slug must return apperrors.ErrAlreadyExists
	Save(ctx context.Context, product models.Product) (models.Product, error)

	// Delete by id
	// If not found must return apperrors.ErrNotFound
	Delete(ctx context.Context, id uuid.UUID) error
}

// Region repository interface, same contract over regions
type RegionRepo interface {
	List(ctx context.Context) ([]models.Region, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Region, error)
	GetBySlug(ctx context.Context, slug string) (models.Region, error)
	Save(ctx context.Context, region models.Region) (models.Region, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Storage aggregates the repositories over one backing store
type Storage interface {
	Product() ProductRepo
	Region() RegionRepo
}
