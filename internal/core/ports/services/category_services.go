package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// CategorySvcFacade defines operations for report bucketing categories.
type CategorySvcFacade interface {
	// CreateCategory persists a new category, validating the optional parent
	// and linked account.
	CreateCategory(ctx context.Context, tenantID domain.TenantID, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)

	// GetCategoryByID retrieves a specific category.
	GetCategoryByID(ctx context.Context, tenantID domain.TenantID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories for a tenant.
	ListCategories(ctx context.Context, tenantID domain.TenantID) ([]domain.Category, error)
}
