package flatfile

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/boomtruck/siteapi/internal/apperrors"
	"github.com/boomtruck/siteapi/internal/models"
)

type RegionRepo struct {
	col *collection[models.Region]
}

func (r *RegionRepo) List(_ context.Context) ([]models.Region, error) {
	regions, err := r.col.load()
	if err != nil {
		return nil, err
	}

	sort.Slice(regions, func(i, j int) bool { return regions[i].Name < regions[j].Name })
	return regions, nil
}

func (r *RegionRepo) GetByID(_ context.Context, id uuid.UUID) (models.Region, error) {
	regions, err := r.col.load()
	if err != nil {
		return models.Region{}, err
	}

	for _, reg := range regions {
		if reg.ID == id {
			return reg, nil
		}
	}
	return models.Region{}, fmt.Errorf("region %s: %w", id, apperrors.ErrNotFound)
}

func (r *RegionRepo) GetBySlug(_ context.Context, slug string) (models.Region, error) {
	regions, err := r.col.load()
	if err != nil {
		return models.Region{}, err
	}

	for _, reg := range regions {
		if reg.Slug == slug {
			return reg, nil
		}
	}
	return models.Region{}, fmt.Errorf("region %q: %w", slug, apperrors.ErrNotFound)
}

func (r *RegionRepo) Save(_ context.Context, region models.Region) (models.Region, error) {
	err := r.col.update(func(regions []models.Region) ([]models.Region, error) {
		replaced := false
		for i, reg := range regions {
			if reg.Slug == region.Slug && reg.ID != region.ID {
				return nil, fmt.Errorf("slug %q: %w", region.Slug, apperrors.ErrAlreadyExists)
			}
			if reg.ID == region.ID {
				regions[i] = region
				replaced = true
			}
		}
		if !replaced {
			regions = append(regions, region)
		}
		return regions, nil
	})
	if err != nil {
		return models.Region{}, err
	}
	return region, nil
}

func (r *RegionRepo) Delete(_ context.Context, id uuid.UUID) error {
	return r.col.update(func(regions []models.Region) ([]models.Region, error) {
		for i, reg := range regions {
			if reg.ID == id {
				return append(regions[:i], regions[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("region %s: %w", id, apperrors.ErrNotFound)
	})
}
