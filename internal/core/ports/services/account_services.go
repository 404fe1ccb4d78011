package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, tenantID domain.TenantID, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its tenant-unique code.
	GetAccountByCode(ctx context.Context, tenantID domain.TenantID, code string) (*domain.Account, error)

	// ListAccounts retrieves all accounts for a tenant.
	ListAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.Account, error)

	// ListChildAccounts retrieves the direct children of an account.
	ListChildAccounts(ctx context.Context, tenantID domain.TenantID, accountID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account after validating its code, the
	// type/direction pairing and the parent's type.
	CreateAccount(ctx context.Context, tenantID domain.TenantID, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// ReparentAccount moves an account under a new parent (or to the root
	// when the new parent is nil), rejecting type mismatches and cycles.
	ReparentAccount(ctx context.Context, tenantID domain.TenantID, accountID string, req dto.ReparentAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Accounts with active
	// children cannot be deactivated.
	DeactivateAccount(ctx context.Context, tenantID domain.TenantID, accountID string, userID string) error

	// DeleteAccount removes an account permanently. Accounts with children
	// or journal postings cannot be deleted.
	DeleteAccount(ctx context.Context, tenantID domain.TenantID, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
