package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// TransactionRepository defines persistence operations for income/expense
// transactions. Status transitions are check-and-set: the update applies only
// when the stored row is still in the expected prior state, so two concurrent
// approvals cannot both win.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, tenantID domain.TenantID, transactionID string) (*domain.Transaction, error)
	// UpdateTransactionDetails persists detail changes while the row is still
	// DRAFT; it returns apperrors.ErrConflict when the row left DRAFT in the
	// meantime.
	UpdateTransactionDetails(ctx context.Context, txn domain.Transaction) error
	// TransitionTransactionStatus persists the already-transitioned txn with a
	// WHERE status = expectedFrom guard; apperrors.ErrConflict when the guard
	// does not match.
	TransitionTransactionStatus(ctx context.Context, txn domain.Transaction, expectedFrom domain.TransactionStatus) error
	// ListApprovedTransactions returns APPROVED transactions with dates in
	// [start, end], both ends inclusive.
	ListApprovedTransactions(ctx context.Context, tenantID domain.TenantID, start, end time.Time) ([]domain.Transaction, error)
	// ListApprovedByCategory narrows ListApprovedTransactions to one category.
	ListApprovedByCategory(ctx context.Context, tenantID domain.TenantID, categoryID string, start, end time.Time) ([]domain.Transaction, error)
	// ListTransactions returns a keyset-paginated page of all transactions for
	// a tenant, newest first, plus a next token when more rows remain.
	ListTransactions(ctx context.Context, tenantID domain.TenantID, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TenantSettingsRepository resolves per-tenant bookkeeping configuration.
type TenantSettingsRepository interface {
	GetTenantSettings(ctx context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error)
}
