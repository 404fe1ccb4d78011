package services_test

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID domain.TenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, tenantID domain.TenantID, code string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, tenantID domain.TenantID, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListChildAccounts(ctx context.Context, tenantID domain.TenantID, parentAccountID string) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, parentAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountParent(ctx context.Context, tenantID domain.TenantID, accountID string, newParentID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, newParentID, updatedBy, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID domain.TenantID, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, tenantID domain.TenantID, accountID string) error {
	args := m.Called(ctx, tenantID, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) HasJournalPostings(ctx context.Context, tenantID domain.TenantID, accountID string) (bool, error) {
	args := m.Called(ctx, tenantID, accountID)
	return args.Bool(0), args.Error(1)
}

// --- Mock CategoryRepository ---

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, tenantID domain.TenantID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, tenantID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, tenantID domain.TenantID) ([]domain.Category, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoryAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.CategoryAccount, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAccount), args.Error(1)
}

// --- Mock CategoryNameResolver ---

type MockCategoryNameResolver struct {
	mock.Mock
}

func (m *MockCategoryNameResolver) FindCategoryNames(ctx context.Context, tenantID domain.TenantID, categoryIDs []string) (map[string]string, error) {
	args := m.Called(ctx, tenantID, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Mock ReferenceDataRepository ---

type MockReferenceDataRepository struct {
	mock.Mock
}

func (m *MockReferenceDataRepository) FindDepartmentNames(ctx context.Context, tenantID domain.TenantID, departmentIDs []string) (map[string]string, error) {
	args := m.Called(ctx, tenantID, departmentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockReferenceDataRepository) FindFundNames(ctx context.Context, tenantID domain.TenantID, fundIDs []string) (map[string]string, error) {
	args := m.Called(ctx, tenantID, fundIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Mock TransactionRepository ---

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, tenantID domain.TenantID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tenantID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionDetails(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) TransitionTransactionStatus(ctx context.Context, txn domain.Transaction, expectedFrom domain.TransactionStatus) error {
	args := m.Called(ctx, txn, expectedFrom)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListApprovedTransactions(ctx context.Context, tenantID domain.TenantID, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListApprovedByCategory(ctx context.Context, tenantID domain.TenantID, categoryID string, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(ctx, tenantID, categoryID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, tenantID domain.TenantID, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, tenantID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, tenantID domain.TenantID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) AppendEntryLine(ctx context.Context, tenantID domain.TenantID, entryID string, line domain.JournalLine, position int) error {
	args := m.Called(ctx, tenantID, entryID, line, position)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkEntryPosted(ctx context.Context, tenantID domain.TenantID, entryID string, postedAt time.Time, userID string) error {
	args := m.Called(ctx, tenantID, entryID, postedAt, userID)
	return args.Error(0)
}

func (m *MockJournalRepository) SetReversalLink(ctx context.Context, tenantID domain.TenantID, entryID string, reversingEntryID string, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, entryID, reversingEntryID, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, tenantID domain.TenantID) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock TenantSettingsRepository ---

type MockTenantSettingsRepository struct {
	mock.Mock
}

func (m *MockTenantSettingsRepository) GetTenantSettings(ctx context.Context, tenantID domain.TenantID) (*domain.TenantSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TenantSettings), args.Error(1)
}

// --- Mock BalanceSvc ---

type MockBalanceSvc struct {
	mock.Mock
}

func (m *MockBalanceSvc) BalanceForPeriod(ctx context.Context, tenantID domain.TenantID, categoryID *string, start, end time.Time) (domain.Money, error) {
	args := m.Called(ctx, tenantID, categoryID, start, end)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceSvc) BalanceUpToDate(ctx context.Context, tenantID domain.TenantID, categoryID *string, asOf time.Time) (domain.Money, error) {
	args := m.Called(ctx, tenantID, categoryID, asOf)
	return args.Get(0).(domain.Money), args.Error(1)
}

func (m *MockBalanceSvc) PeriodBalances(ctx context.Context, tenantID domain.TenantID, categoryID *string, asOf time.Time) (*domain.PeriodBalances, error) {
	args := m.Called(ctx, tenantID, categoryID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodBalances), args.Error(1)
}

func (m *MockBalanceSvc) NetIncome(ctx context.Context, tenantID domain.TenantID, asOf time.Time) (domain.Money, error) {
	args := m.Called(ctx, tenantID, asOf)
	return args.Get(0).(domain.Money), args.Error(1)
}
