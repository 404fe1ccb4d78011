package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// AccountRepository defines persistence operations for chart-of-accounts
// nodes. All lookups are tenant-scoped; a cross-tenant read is a bug.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, tenantID domain.TenantID, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, tenantID domain.TenantID, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, tenantID domain.TenantID, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.Account, error)
	ListChildAccounts(ctx context.Context, tenantID domain.TenantID, parentAccountID string) ([]domain.Account, error)
	UpdateAccountParent(ctx context.Context, tenantID domain.TenantID, accountID string, newParentID string, updatedBy string, now time.Time) error
	DeactivateAccount(ctx context.Context, tenantID domain.TenantID, accountID string, userID string, now time.Time) error
	DeleteAccount(ctx context.Context, tenantID domain.TenantID, accountID string) error
	// HasJournalPostings reports whether any journal line references the account.
	HasJournalPostings(ctx context.Context, tenantID domain.TenantID, accountID string) (bool, error)
}
