// Package catalog manages the pump truck listings and the regional
// navigation entries stored in the flat-file repositories.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/boomtruck/siteapi/internal/models"
	"github.com/boomtruck/siteapi/internal/repository"
)

type Service struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) (*Service, error) {
	if storage == nil {
		return nil, errors.New("storage must not be nil")
	}
	return &Service{storage: storage}, nil
}

// ProductInput carries the editable product fields
type ProductInput struct {
	Slug        string
	Name        string
	Brand       string
	BoomLength  string
	Output      string
	Year        int
	Price       string
	Description string
}

// RegionInput carries the editable region fields
type RegionInput struct {
	Slug     string
	Name     string
	Headline string
	Cities   []string
}

func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.storage.Product().List(ctx)
}

func (s *Service) GetProduct(ctx context.Context, slug string) (models.Product, error) {
	return s.storage.Product().GetBySlug(ctx, slug)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	now := time.Now()
	product := models.Product{
		ID:          uuid.New(),
		Slug:        in.Slug,
		Name:        in.Name,
		Brand:       in.Brand,
		BoomLength:  in.BoomLength,
		Output:      in.Output,
		Year:        in.Year,
		Price:       in.Price,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.storage.Product().Save(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("error creating product. Err: %w", err)
	}
	return saved, nil
}

// UpdateProduct replaces the editable fields of the product addressed by
// slug. The slug itself may change as long as it stays unique.
func (s *Service) UpdateProduct(ctx context.Context, slug string, in ProductInput) (models.Product, error) {
	product, err := s.storage.Product().GetBySlug(ctx, slug)
	if err != nil {
		return models.Product{}, err
	}

	product.Slug = in.Slug
	product.Name = in.Name
	product.Brand = in.Brand
	product.BoomLength = in.BoomLength
	product.Output = in.Output
	product.Year = in.Year
	product.Price = in.Price
	product.Description = in.Description
	product.UpdatedAt = time.Now()

	saved, err := s.storage.Product().Save(ctx, product)
	if err != nil {
		return models.Product{}, fmt.Errorf("error updating product. Err: %w", err)
	}
	return saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.storage.Product().GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.storage.Product().Delete(ctx, product.ID)
}

func (s *Service) ListRegions(ctx context.Context) ([]models.Region, error) {
	return s.storage.Region().List(ctx)
}

func (s *Service) GetRegion(ctx context.Context, slug string) (models.Region, error) {
	return s.storage.Region().GetBySlug(ctx, slug)
}

func (s *Service) CreateRegion(ctx context.Context, in RegionInput) (models.Region, error) {
	now := time.Now()
	region := models.Region{
		ID:        uuid.New(),
		Slug:      in.Slug,
		Name:      in.Name,
		Headline:  in.Headline,
		Cities:    in.Cities,
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.storage.Region().Save(ctx, region)
	if err != nil {
		return models.Region{}, fmt.Errorf("error creating region. Err: %w", err)
	}
	return saved, nil
}

func (s *Service) UpdateRegion(ctx context.Context, slug string, in RegionInput) (models.Region, error) {
	region, err := s.storage.Region().GetBySlug(ctx, slug)
	if err != nil {
		return models.Region{}, err
	}

	region.Slug = in.Slug
	region.Name = in.Name
	region.Headline = in.Headline
	region.Cities = in.Cities
	region.UpdatedAt = time.Now()

	saved, err := s.storage.Region().Save(ctx, region)
	if err != nil {
		return models.Region{}, fmt.Errorf("error updating region. Err: %w", err)
	}
	return saved, nil
}

func (s *Service) DeleteRegion(ctx context.Context, slug string) error {
	region, err := s.storage.Region().GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.storage.Region().Delete(ctx, region.ID)
}
