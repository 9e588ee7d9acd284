package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"goldenspoon-backend/internal/apperr"
	"goldenspoon-backend/internal/cache"
	"goldenspoon-backend/internal/models"
	"goldenspoon-backend/internal/store"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type ProductPage struct {
	Success     bool                  `json:"success"`
	CurrentPage int64                 `json:"currentPage"`
	TotalPages  int64                 `json:"totalPages"`
	TotalItems  int64                 `json:"totalItems"`
	Data        []models.CategoryItem `json:"data"`
}

type CategoryItemInput struct {
	IDMeal       int64  `json:"idMeal" validate:"required"`
	ItemCategory string `json:"itemCategory" validate:"required"`
	StrMeal      string `json:"strMeal" validate:"required"`
	StrMealThumb string `json:"strMealThumb" validate:"required"`
}

type CatalogService struct {
	catalog store.CatalogRepository
	cache   cache.CatalogCache
	log     zerolog.Logger
	sfg     singleflight.Group
}

func NewCatalogService(catalog store.CatalogRepository, c cache.CatalogCache, log zerolog.Logger) *CatalogService {
	if c == nil {
		c = cache.Nop{}
	}
	return &CatalogService{catalog: catalog, cache: c, log: log}
}

// ListProducts pages through the whole catalog. Non-positive page or limit
// fall back to the defaults.
func (s *CatalogService) ListProducts(ctx context.Context, page, limit int64) (*ProductPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	items, err := s.catalog.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.catalog.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ProductPage{
		Success:     true,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		TotalItems:  total,
		Data:        items,
	}, nil
}

func (s *CatalogService) ItemsByCategory(ctx context.Context, category string) ([]models.CategoryItem, error) {
	key := strings.ToLower(category)
	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		items, err := s.cache.GetCategory(ctx, category)
		if err == nil {
			return items, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn().Err(err).Str("category", category).Msg("catalog cache get failed")
		}

		items, err = s.catalog.FindByCategory(ctx, category)
		if err != nil {
			return nil, err
		}

		if err := s.cache.SetCategory(ctx, category, items); err != nil {
			s.log.Warn().Err(err).Str("category", category).Msg("catalog cache set failed")
		}
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("items by category: %w", err)
	}
	return v.([]models.CategoryItem), nil
}

func (s *CatalogService) AddCategoryItem(ctx context.Context, in CategoryItemInput) (*models.CategoryItem, error) {
	if err := validate.Struct(in); err != nil {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Message: "All fields are required", Err: err}
	}

	item := &models.CategoryItem{
		IDMeal:       in.IDMeal,
		ItemCategory: in.ItemCategory,
		StrMeal:      in.StrMeal,
		StrMealThumb: in.StrMealThumb,
	}
	if err := s.catalog.Create(ctx, item); err != nil {
		return nil, err
	}

	if err := s.cache.DeleteCategory(ctx, in.ItemCategory); err != nil {
		s.log.Warn().Err(err).Str("category", in.ItemCategory).Msg("catalog cache invalidate failed")
	}
	return item, nil
}
