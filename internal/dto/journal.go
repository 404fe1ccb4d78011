package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryRequest defines the data needed to open a DRAFT journal
// entry with no lines.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time `json:"entryDate" binding:"required" time_format:"2006-01-02"`
	Description string    `json:"description" binding:"required"`
}

// AddJournalLineRequest appends one line to a DRAFT entry. Exactly one of
// Debit or Credit must be set; the service enforces this beyond binding.
type AddJournalLineRequest struct {
	AccountID    string           `json:"accountID" binding:"required"`
	Debit        *decimal.Decimal `json:"debit"`
	Credit       *decimal.Decimal `json:"credit"`
	CurrencyCode string           `json:"currencyCode" binding:"required,len=3"`
	Description  string           `json:"description"`
}

// GenerateFromTransactionRequest selects the two accounts for the entry
// derived from an approved transaction: the cash/receivable side and the
// revenue or expense counter side.
type GenerateFromTransactionRequest struct {
	CashAccountID    string `json:"cashAccountID" binding:"required"`
	CounterAccountID string `json:"counterAccountID" binding:"required"`
}

// JournalLineResponse mirrors domain.JournalLine.
type JournalLineResponse struct {
	LineID       string           `json:"lineID"`
	AccountID    string           `json:"accountID"`
	Debit        *decimal.Decimal `json:"debit,omitempty"`
	Credit       *decimal.Decimal `json:"credit,omitempty"`
	CurrencyCode string           `json:"currencyCode"`
	Description  string           `json:"description"`
}

// JournalEntryResponse mirrors domain.JournalEntry with its lines.
type JournalEntryResponse struct {
	EntryID          string                `json:"entryID"`
	TenantID         int64                 `json:"tenantID"`
	EntryDate        string                `json:"entryDate"`
	Description      string                `json:"description"`
	Status           string                `json:"status"`
	Lines            []JournalLineResponse `json:"lines"`
	SourceTxnID      string                `json:"sourceTxnID,omitempty"`
	OriginalEntryID  string                `json:"originalEntryID,omitempty"`
	ReversingEntryID string                `json:"reversingEntryID,omitempty"`
	PostedAt         *time.Time            `json:"postedAt,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	CreatedBy        string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to a DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lr := JournalLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			Description: line.Description,
		}
		if line.Debit != nil {
			amount := line.Debit.Amount
			lr.Debit = &amount
			lr.CurrencyCode = line.Debit.CurrencyCode
		}
		if line.Credit != nil {
			amount := line.Credit.Amount
			lr.Credit = &amount
			lr.CurrencyCode = line.Credit.CurrencyCode
		}
		lines[i] = lr
	}
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		TenantID:         int64(e.TenantID),
		EntryDate:        e.EntryDate.Format("2006-01-02"),
		Description:      e.Description,
		Status:           string(e.Status),
		Lines:            lines,
		SourceTxnID:      e.SourceTxnID,
		OriginalEntryID:  e.OriginalEntryID,
		ReversingEntryID: e.ReversingEntryID,
		PostedAt:         e.PostedAt,
		CreatedAt:        e.CreatedAt,
		CreatedBy:        e.CreatedBy,
	}
}
