package cache

import (
	"context"
	"errors"

	"goldenspoon-backend/internal/models"
)

type CatalogCache interface {
	GetCategory(ctx context.Context, category string) ([]models.CategoryItem, error)
	SetCategory(ctx context.Context, category string, items []models.CategoryItem) error
	DeleteCategory(ctx context.Context, category string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Nop is used when no redis address is configured; every read misses.
type Nop struct{}

func (Nop) GetCategory(context.Context, string) ([]models.CategoryItem, error) {
	return nil, ErrCacheMiss
}

func (Nop) SetCategory(context.Context, string, []models.CategoryItem) error { return nil }

func (Nop) DeleteCategory(context.Context, string) error { return nil }
