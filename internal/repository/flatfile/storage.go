// Package flatfile implements the repositories over id-keyed JSON files on
// disk, one file per collection. It is the only persistence this site has:
// a handful of products and regions, edited rarely, read on every request.
package flatfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/boomtruck/siteapi/internal/models"
	"github.com/boomtruck/siteapi/internal/repository"
)

const (
	productsFile = "products.json"
	regionsFile  = "regions.json"
)

type Storage struct {
	product *ProductRepo
	region  *RegionRepo
}

// NewStorage prepares the data directory and seeds empty collections with
// the default site content.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data dir. Err: %w", err)
	}

	s := &Storage{
		product: &ProductRepo{col: newCollection[models.Product](filepath.Join(dir, productsFile))},
		region:  &RegionRepo{col: newCollection[models.Region](filepath.Join(dir, regionsFile))},
	}

	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) Product() repository.ProductRepo { return s.product }
func (s *Storage) Region() repository.RegionRepo   { return s.region }

// collection is one JSON file holding a list of records. Writes go through
// a temp file and rename, so a crashed write never truncates the data.
type collection[T any] struct {
	path string
	mu   sync.RWMutex
}

func newCollection[T any](path string) *collection[T] {
	return &collection[T]{path: path}
}

func (c *collection[T]) load() ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.read()
}

// update applies fn to the loaded records and persists the result. fn runs
// under the write lock, so read-modify-write sequences are not interleaved.
func (c *collection[T]) update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.read()
	if err != nil {
		return err
	}

	records, err = fn(records)
	if err != nil {
		return err
	}

	return c.write(records)
}

func (c *collection[T]) exists() bool {
	_, err := os.Stat(c.path)
	return err == nil
}

func (c *collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("error reading %s. Err: %w", c.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error parsing %s. Err: %w", c.path, err)
	}
	return records, nil
}

func (c *collection[T]) write(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding %s. Err: %w", c.path, err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s. Err: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("error replacing %s. Err: %w", c.path, err)
	}
	return nil
}
