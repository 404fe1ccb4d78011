package repositories

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for report bucketing
// categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, tenantID domain.TenantID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, tenantID domain.TenantID) ([]domain.Category, error)
	// ListCategoryAccounts returns leaf categories with a linked account, in
	// creation order. These are the rows the balance sheet sections are built
	// from.
	ListCategoryAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.CategoryAccount, error)
}

// CategoryNameResolver resolves category IDs to display names. The grouping
// and statement engines require it as a collaborator and never synthesize
// names themselves.
type CategoryNameResolver interface {
	FindCategoryNames(ctx context.Context, tenantID domain.TenantID, categoryIDs []string) (map[string]string, error)
}

// ReferenceDataRepository resolves department and fund IDs to display names
// for grouping reports.
type ReferenceDataRepository interface {
	FindDepartmentNames(ctx context.Context, tenantID domain.TenantID, departmentIDs []string) (map[string]string, error)
	FindFundNames(ctx context.Context, tenantID domain.TenantID, fundIDs []string) (map[string]string, error)
}
