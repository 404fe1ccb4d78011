package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a journal entry header row.
type JournalEntry struct {
	EntryID          string     `db:"entry_id"`
	TenantID         int64      `db:"tenant_id"`
	EntryDate        time.Time  `db:"entry_date"`
	Description      string     `db:"description"`
	Status           string     `db:"status"`
	SourceTxnID      string     `db:"source_txn_id"`      // Nullable
	OriginalEntryID  string     `db:"original_entry_id"`  // Nullable
	ReversingEntryID string     `db:"reversing_entry_id"` // Nullable
	PostedAt         *time.Time `db:"posted_at"`
	AuditFields
}

// JournalLine represents one side of a posting. Exactly one of DebitAmount
// or CreditAmount is non-NULL.
type JournalLine struct {
	LineID       string           `db:"line_id"`
	EntryID      string           `db:"entry_id"`
	TenantID     int64            `db:"tenant_id"`
	AccountID    string           `db:"account_id"`
	DebitAmount  *decimal.Decimal `db:"debit_amount"`
	CreditAmount *decimal.Decimal `db:"credit_amount"`
	CurrencyCode string           `db:"currency_code"`
	Description  string           `db:"description"`
	Position     int              `db:"position"`
}
