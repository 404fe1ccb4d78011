package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// JournalRepository defines persistence operations for double-entry journal
// entries. An entry owns its lines; SaveJournalEntry persists header and
// lines atomically.
type JournalRepository interface {
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error
	// FindEntryByID returns the entry with its lines in insertion order.
	FindEntryByID(ctx context.Context, tenantID domain.TenantID, entryID string) (*domain.JournalEntry, error)
	AppendEntryLine(ctx context.Context, tenantID domain.TenantID, entryID string, line domain.JournalLine, position int) error
	// MarkEntryPosted flips DRAFT -> POSTED with a status guard;
	// apperrors.ErrConflict when the entry is no longer DRAFT.
	MarkEntryPosted(ctx context.Context, tenantID domain.TenantID, entryID string, postedAt time.Time, userID string) error
	// SetReversalLink records the reversing entry's ID on the original.
	SetReversalLink(ctx context.Context, tenantID domain.TenantID, entryID string, reversingEntryID string, userID string, now time.Time) error
	ListEntries(ctx context.Context, tenantID domain.TenantID) ([]domain.JournalEntry, error)
}
