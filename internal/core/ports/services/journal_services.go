package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, tenantID domain.TenantID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves all journal entries for a tenant.
	ListEntries(ctx context.Context, tenantID domain.TenantID) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry opens a new DRAFT entry with no lines.
	CreateEntry(ctx context.Context, tenantID domain.TenantID, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// AddLine appends one debit-or-credit line to a DRAFT entry.
	AddLine(ctx context.Context, tenantID domain.TenantID, entryID string, req dto.AddJournalLineRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry validates balance and freezes the entry.
	PostEntry(ctx context.Context, tenantID domain.TenantID, entryID string, userID string) (*domain.JournalEntry, error)

	// GenerateFromTransaction derives a posted two-line entry from an
	// APPROVED transaction.
	GenerateFromTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, req dto.GenerateFromTransactionRequest, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts a mirror entry for a posted entry.
	ReverseEntry(ctx context.Context, tenantID domain.TenantID, entryID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
