package flatfile

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/models"
)

type ProductRepo struct {
	col *collection[models.Product]
}

func (r *ProductRepo) List(_ context.Context) ([]models.Product, error) {
	products, err := r.col.load()
	if err != nil {
		return nil, err
	}

	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (r *ProductRepo) GetByID(_ context.Context, id uuid.UUID) (models.Product, error) {
	products, err := r.col.load()
	if err != nil {
		return models.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
}

func (r *ProductRepo) GetBySlug(_ context.Context, slug string) (models.Product, error) {
	products, err := r.col.load()
	if err != nil {
		return models.Product{}, err
	}

	for _, p := range products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("product %q: %w", slug, apperrors.ErrNotFound)
}

func (r *ProductRepo) Save(_ context.Context, product models.Product) (models.Product, error) {
	err := r.col.update(func(products []models.Product) ([]models.Product, error) {
		replaced := false
		for i, p := range products {
			if p.Slug == product.Slug && p.ID != product.ID {
				return nil, fmt.Errorf("slug %q: %w", product.Slug, apperrors.ErrAlreadyExists)
			}
			if p.ID == product.ID {
				products[i] = product
				replaced = true
			}
		}
		if !replaced {
			products = append(products, product)
		}
		return products, nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *ProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.col.update(func(products []models.Product) ([]models.Product, error) {
		for i, p := range products {
			if p.ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("product %s: %w", id, apperrors.ErrNotFound)
	})
}
