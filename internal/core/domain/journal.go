package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	EntryDraft  JournalStatus = "DRAFT"
	EntryPosted JournalStatus = "POSTED"
)

var (
	// ErrInvalidLine indicates a line with both or neither of debit/credit set,
	// or a non-positive line amount.
	ErrInvalidLine = errors.New("journal line must set exactly one of debit or credit")
	// ErrUnbalancedEntry indicates debit and credit sums differ for a currency.
	ErrUnbalancedEntry = errors.New("journal entry does not balance")
	// ErrEmptyEntry indicates a post attempt on an entry with no lines.
	ErrEmptyEntry = errors.New("journal entry has no lines")
	// ErrEntryAlreadyPosted indicates a mutation attempt on a posted entry.
	ErrEntryAlreadyPosted = errors.New("journal entry is already posted")
)

// JournalLine is one side of a double-entry posting. Exactly one of Debit
// or Credit is set, never both and never neither.
type JournalLine struct {
	LineID      string `json:"lineID"`
	AccountID   string `json:"accountID"`
	Debit       *Money `json:"debit,omitempty"`
	Credit      *Money `json:"credit,omitempty"`
	Description string `json:"description"`
}

// Validate checks the exactly-one-side invariant and that the set side is
// strictly positive.
func (l JournalLine) Validate() error {
	if (l.Debit == nil) == (l.Credit == nil) {
		return fmt.Errorf("%w: account %s", ErrInvalidLine, l.AccountID)
	}
	amount := l.Debit
	if amount == nil {
		amount = l.Credit
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: line amount must be positive for account %s", ErrInvalidLine, l.AccountID)
	}
	return nil
}

// JournalEntry is a balanced financial event. Lines are mutable while DRAFT
// and frozen once POSTED; there is no unpost, corrections go through Reverse.
type JournalEntry struct {
	EntryID          string        `json:"entryID"`
	TenantID         TenantID      `json:"tenantID"`
	EntryDate        time.Time     `json:"entryDate"`
	Description      string        `json:"description"`
	Status           JournalStatus `json:"status"`
	Lines            []JournalLine `json:"lines"`
	SourceTxnID      string        `json:"sourceTxnID"`      // set when derived from a Transaction
	OriginalEntryID  string        `json:"originalEntryID"`  // set on a reversing entry
	ReversingEntryID string        `json:"reversingEntryID"` // set on a reversed entry
	PostedAt         *time.Time    `json:"postedAt"`
	AuditFields
}

// AddLine appends a validated line to a draft entry. A failed add leaves the
// entry unchanged.
func (e *JournalEntry) AddLine(line JournalLine) error {
	if e.Status == EntryPosted {
		return fmt.Errorf("%w: entry %s", ErrEntryAlreadyPosted, e.EntryID)
	}
	if err := line.Validate(); err != nil {
		return err
	}
	e.Lines = append(e.Lines, line)
	return nil
}

// ValidateBalance verifies that, grouped by currency, the debit sum equals
// the credit sum exactly.
func (e *JournalEntry) ValidateBalance() error {
	type sums struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	byCurrency := make(map[string]*sums)
	currencies := make([]string, 0, 1)
	for _, line := range e.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
		var amount Money
		if line.Debit != nil {
			amount = *line.Debit
		} else {
			amount = *line.Credit
		}
		s, ok := byCurrency[amount.CurrencyCode]
		if !ok {
			s = &sums{debit: decimal.Zero, credit: decimal.Zero}
			byCurrency[amount.CurrencyCode] = s
			currencies = append(currencies, amount.CurrencyCode)
		}
		if line.Debit != nil {
			s.debit = s.debit.Add(amount.Amount)
		} else {
			s.credit = s.credit.Add(amount.Amount)
		}
	}
	for _, code := range currencies {
		s := byCurrency[code]
		if !s.debit.Equal(s.credit) {
			return fmt.Errorf("%w: %s debits %s, credits %s",
				ErrUnbalancedEntry, code, s.debit.String(), s.credit.String())
		}
	}
	return nil
}

// Post validates and transitions DRAFT -> POSTED, freezing the lines.
func (e *JournalEntry) Post(now time.Time, userID string) error {
	if e.Status == EntryPosted {
		return fmt.Errorf("%w: entry %s", ErrEntryAlreadyPosted, e.EntryID)
	}
	if len(e.Lines) == 0 {
		return fmt.Errorf("%w: entry %s", ErrEmptyEntry, e.EntryID)
	}
	if err := e.ValidateBalance(); err != nil {
		return err
	}
	e.Status = EntryPosted
	e.PostedAt = &now
	e.LastUpdatedAt = now
	e.LastUpdatedBy = userID
	return nil
}

// IsReversal reports whether this entry offsets another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != ""
}
