package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
)

var (
	// ErrAccountInactive blocks posting lines against a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrEntryNotPosted blocks reversing an entry still in DRAFT.
	ErrEntryNotPosted = errors.New("journal entry is not posted")
	// ErrEntryAlreadyReversed blocks a second reversal of the same entry.
	ErrEntryAlreadyReversed = errors.New("journal entry is already reversed")
	// ErrCannotReverseReversal blocks reversing a reversing entry; corrections
	// chain from the original instead.
	ErrCannotReverseReversal = errors.New("cannot reverse a reversing entry")
	// ErrTransactionNotApproved blocks deriving a journal entry from a
	// transaction outside APPROVED.
	ErrTransactionNotApproved = errors.New("transaction is not approved")
	// ErrWrongAccountType indicates a generate request whose accounts do not
	// fit the transaction's type.
	ErrWrongAccountType = errors.New("account type does not fit the transaction")
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	txnRepo     portsrepo.TransactionRepository
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, txnRepo portsrepo.TransactionRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateEntry(ctx context.Context, tenantID domain.TenantID, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		EntryDate:   req.EntryDate,
		Description: req.Description,
		Status:      domain.EntryDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID))
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, tenantID domain.TenantID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, tenantID domain.TenantID) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.ListEntries(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, err
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

func (s *journalService) AddLine(ctx context.Context, tenantID domain.TenantID, entryID string, req dto.AddJournalLineRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, req.AccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid line account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, account.AccountID)
	}

	line := domain.JournalLine{
		LineID:      uuid.NewString(),
		AccountID:   req.AccountID,
		Description: req.Description,
	}
	if req.Debit != nil {
		m := domain.NewMoney(*req.Debit, req.CurrencyCode)
		line.Debit = &m
	}
	if req.Credit != nil {
		m := domain.NewMoney(*req.Credit, req.CurrencyCode)
		line.Credit = &m
	}

	// Validates the line and rejects posted entries
	if err := entry.AddLine(line); err != nil {
		return nil, err
	}

	position := len(entry.Lines) - 1
	if err := s.journalRepo.AppendEntryLine(ctx, tenantID, entryID, line, position); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
		}
		s.LogError(ctx, err, "Failed to append journal line",
			slog.String("entry_id", entryID),
			slog.String("account_id", req.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal line added",
		slog.String("entry_id", entryID),
		slog.String("account_id", req.AccountID))
	return entry, nil
}

func (s *journalService) PostEntry(ctx context.Context, tenantID domain.TenantID, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := entry.Post(now, userID); err != nil {
		return nil, err
	}

	if err := s.journalRepo.MarkEntryPosted(ctx, tenantID, entryID, now, userID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: entry %s", domain.ErrEntryAlreadyPosted, entryID)
		}
		s.LogError(ctx, err, "Failed to mark journal entry posted",
			slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID))
	return entry, nil
}

// GenerateFromTransaction derives a balanced two-line entry from an approved
// transaction: income debits the cash account and credits the counter
// account, expense debits the counter account and credits the cash account.
// Derivation is one-way; the transaction itself is never altered.
func (s *journalService) GenerateFromTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, req dto.GenerateFromTransactionRequest, userID string) (*domain.JournalEntry, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.Status != domain.TransactionApproved {
		return nil, fmt.Errorf("%w: status is %s", ErrTransactionNotApproved, txn.Status)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, tenantID, []string{req.CashAccountID, req.CounterAccountID})
	if err != nil {
		return nil, err
	}
	cash, err := activeAccountFrom(accounts, req.CashAccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid cash account: %w", err)
	}
	counter, err := activeAccountFrom(accounts, req.CounterAccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid counter account: %w", err)
	}

	if cash.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: cash account %s is %s, want ASSET",
			ErrWrongAccountType, cash.AccountID, cash.AccountType)
	}
	switch txn.TransactionType {
	case domain.IncomeTransaction:
		if counter.AccountType != domain.Revenue {
			return nil, fmt.Errorf("%w: counter account %s is %s, want REVENUE",
				ErrWrongAccountType, counter.AccountID, counter.AccountType)
		}
	case domain.ExpenseTransaction:
		if counter.AccountType != domain.Expense {
			return nil, fmt.Errorf("%w: counter account %s is %s, want EXPENSE",
				ErrWrongAccountType, counter.AccountID, counter.AccountType)
		}
	}

	amount := txn.Money
	debitAccountID, creditAccountID := cash.AccountID, counter.AccountID
	if txn.TransactionType == domain.ExpenseTransaction {
		debitAccountID, creditAccountID = counter.AccountID, cash.AccountID
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     uuid.NewString(),
		TenantID:    tenantID,
		EntryDate:   txn.TransactionDate,
		Description: txn.Description,
		Status:      domain.EntryDraft,
		SourceTxnID: txn.TransactionID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	debitMoney := amount
	creditMoney := amount
	if err := entry.AddLine(domain.JournalLine{
		LineID:    uuid.NewString(),
		AccountID: debitAccountID,
		Debit:     &debitMoney,
	}); err != nil {
		return nil, err
	}
	if err := entry.AddLine(domain.JournalLine{
		LineID:    uuid.NewString(),
		AccountID: creditAccountID,
		Credit:    &creditMoney,
	}); err != nil {
		return nil, err
	}
	if err := entry.Post(now, userID); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save generated journal entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry generated from transaction",
		slog.String("entry_id", entry.EntryID),
		slog.String("transaction_id", transactionID))
	return &entry, nil
}

// ReverseEntry creates and posts a mirror entry for a posted entry: the same
// lines with debit and credit swapped. The original records the reversal so a
// second reversal is rejected.
func (s *journalService) ReverseEntry(ctx context.Context, tenantID domain.TenantID, entryID string, userID string) (*domain.JournalEntry, error) {
	original, err := s.GetEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: entry %s", ErrEntryNotPosted, entryID)
	}
	if original.IsReversal() {
		return nil, fmt.Errorf("%w: entry %s", ErrCannotReverseReversal, entryID)
	}
	if original.ReversingEntryID != "" {
		return nil, fmt.Errorf("%w: entry %s", ErrEntryAlreadyReversed, entryID)
	}

	now := time.Now()
	reversal := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		TenantID:        tenantID,
		EntryDate:       now,
		Description:     fmt.Sprintf("Reversal of: %s", original.Description),
		Status:          domain.EntryDraft,
		OriginalEntryID: original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for _, line := range original.Lines {
		mirrored := domain.JournalLine{
			LineID:      uuid.NewString(),
			AccountID:   line.AccountID,
			Description: line.Description,
		}
		// Swap sides to offset the original
		if line.Debit != nil {
			m := *line.Debit
			mirrored.Credit = &m
		} else {
			m := *line.Credit
			mirrored.Debit = &m
		}
		if err := reversal.AddLine(mirrored); err != nil {
			return nil, err
		}
	}
	if err := reversal.Post(now, userID); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveJournalEntry(ctx, reversal); err != nil {
		s.LogError(ctx, err, "Failed to save reversal entry",
			slog.String("original_entry_id", entryID))
		return nil, err
	}
	if err := s.journalRepo.SetReversalLink(ctx, tenantID, entryID, reversal.EntryID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to link reversal entry",
			slog.String("entry_id", entryID),
			slog.String("reversal_entry_id", reversal.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return &reversal, nil
}

// activeAccountFrom picks one account out of a batch lookup, requiring
// presence and active status.
func activeAccountFrom(accounts map[string]domain.Account, accountID string) (*domain.Account, error) {
	account, ok := accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAccountInactive, accountID)
	}
	return &account, nil
}
