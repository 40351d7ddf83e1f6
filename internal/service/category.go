package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/schema"
	"studiofin-backend/internal/viewcache"
)

type categoryService struct {
	api   FinanceAPI
	cache *viewcache.Cache
}

func NewCategoryService(api FinanceAPI, cache *viewcache.Cache) CategoryService {
	return &categoryService{api: api, cache: cache}
}

func categoriesViewPath(tenantID string) string {
	return "/" + tenantID + "/categories"
}

func (s *categoryService) ListCategories(ctx context.Context, identity domain.Identity) ([]domain.Category, error) {
	raw, err := s.cache.GetOrBuild(ctx, categoriesViewPath(identity.TenantID), func(ctx context.Context) (json.RawMessage, error) {
		return s.api.Get(ctx, "/categories")
	})
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decoding category list: %w", err)
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, identity domain.Identity, form map[string]string) error {
	in, err := schema.ParseCategoryInput(form)
	if err != nil {
		return err
	}

	if _, err := s.api.Post(ctx, "/categories", in); err != nil {
		return err
	}

	s.cache.Invalidate(categoriesViewPath(identity.TenantID))
	return nil
}

// DeleteCategory also invalidates the bill views: rows referencing the removed
// category fall back to the "all" tab on the next render.
func (s *categoryService) DeleteCategory(ctx context.Context, identity domain.Identity, categoryID string) error {
	if err := s.api.Delete(ctx, "/categories/"+url.PathEscape(categoryID)); err != nil {
		return err
	}

	s.cache.Invalidate(
		categoriesViewPath(identity.TenantID),
		billsViewPath(identity.TenantID),
	)
	return nil
}
