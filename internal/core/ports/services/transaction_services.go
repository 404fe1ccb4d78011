package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction.
	GetTransactionByID(ctx context.Context, tenantID domain.TenantID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions, newest
	// first.
	ListTransactions(ctx context.Context, tenantID domain.TenantID, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write and lifecycle operations for
// transaction data
type TransactionWriterSvc interface {
	// CreateTransaction records a new DRAFT transaction.
	CreateTransaction(ctx context.Context, tenantID domain.TenantID, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction amends details of a DRAFT transaction.
	UpdateTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// ApproveTransaction moves DRAFT -> APPROVED, stamping approver and time.
	ApproveTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, approverUserID string) (*domain.Transaction, error)

	// CancelTransaction moves DRAFT -> CANCELLED.
	CancelTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, userID string) (*domain.Transaction, error)

	// VoidTransaction moves APPROVED -> VOIDED with a mandatory reason.
	VoidTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, req dto.VoidTransactionRequest, userID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
