package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StatementServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	mockNameResolver *MockCategoryNameResolver
	mockTxnRepo      *MockTransactionRepository
	mockSettingsRepo *MockTenantSettingsRepository
	mockBalanceSvc   *MockBalanceSvc
	service          portssvc.StatementSvc
}

func (suite *StatementServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockNameResolver = new(MockCategoryNameResolver)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockSettingsRepo = new(MockTenantSettingsRepository)
	suite.mockBalanceSvc = new(MockBalanceSvc)
	suite.service = services.NewStatementService(
		suite.mockCategoryRepo,
		suite.mockNameResolver,
		suite.mockTxnRepo,
		suite.mockSettingsRepo,
		suite.mockBalanceSvc,
	)
}

func (suite *StatementServiceTestSuite) settings() *domain.TenantSettings {
	return &domain.TenantSettings{
		TenantID:        testTenant,
		BooksStartDate:  time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		DefaultCurrency: "CNY",
	}
}

func (suite *StatementServiceTestSuite) periodBalances(current string) *domain.PeriodBalances {
	return &domain.PeriodBalances{
		CurrentMonth:  domain.NewMoney(decimal.RequireFromString(current), "CNY"),
		PreviousMonth: domain.ZeroMoney("CNY"),
		LastYearEnd:   domain.ZeroMoney("CNY"),
	}
}

func (suite *StatementServiceTestSuite) cnyAmount(s string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(s), "CNY")
}

func (suite *StatementServiceTestSuite) TestGenerateBalanceSheet_Balanced() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	cashCat := "cat-cash"
	loanCat := "cat-loan"

	suite.mockSettingsRepo.On("GetTenantSettings", ctx, testTenant).Return(suite.settings(), nil).Once()
	suite.mockCategoryRepo.On("ListCategoryAccounts", ctx, testTenant).Return([]domain.CategoryAccount{
		{CategoryID: cashCat, CategoryName: "Cash", AccountID: "acc-cash", AccountName: "Bank Account", AccountType: domain.Asset},
		{CategoryID: loanCat, CategoryName: "Loans", AccountID: "acc-loan", AccountName: "Bank Loan", AccountType: domain.Liability},
		{CategoryID: "cat-sales", CategoryName: "Sales", AccountID: "acc-sales", AccountName: "Sales Revenue", AccountType: domain.Revenue},
	}, nil).Once()
	suite.mockBalanceSvc.On("PeriodBalances", ctx, testTenant, &cashCat, asOf).Return(suite.periodBalances("1000.00"), nil).Once()
	suite.mockBalanceSvc.On("PeriodBalances", ctx, testTenant, &loanCat, asOf).Return(suite.periodBalances("400.00"), nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, asOf).Return(suite.cnyAmount("600.00"), nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)).Return(suite.cnyAmount("450.00"), nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)).Return(suite.cnyAmount("0.00"), nil).Once()

	sheet, err := suite.service.GenerateBalanceSheet(ctx, testTenant, asOf)

	suite.Require().NoError(err)
	suite.Equal("CNY", sheet.CurrencyCode)

	// Revenue accounts belong on the income statement, not here
	suite.Require().Len(sheet.Assets, 1)
	suite.Equal("Cash", sheet.Assets[0].CategoryName)
	suite.Require().Len(sheet.Assets[0].Rows, 1)
	suite.Equal("Bank Account", sheet.Assets[0].Rows[0].AccountName)
	suite.Require().Len(sheet.Liabilities, 1)

	// Net income shows up as a synthetic retained earnings line under equity
	suite.Require().Len(sheet.Equity, 1)
	suite.Equal(domain.RetainedEarningsName, sheet.Equity[0].CategoryName)
	suite.True(sheet.Equity[0].Rows[0].CurrentMonth.Equal(decimal.RequireFromString("600.00")))
	suite.True(sheet.Equity[0].Rows[0].PreviousMonth.Equal(decimal.RequireFromString("450.00")))

	suite.True(sheet.TotalAssets.Equal(decimal.RequireFromString("1000.00")))
	suite.True(sheet.TotalLiabilities.Equal(decimal.RequireFromString("400.00")))
	suite.True(sheet.TotalEquity.Equal(decimal.RequireFromString("600.00")))
	suite.True(sheet.IsBalanced)
	suite.mockBalanceSvc.AssertExpectations(suite.T())
}

func (suite *StatementServiceTestSuite) TestGenerateBalanceSheet_Unbalanced() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	cashCat := "cat-cash"

	suite.mockSettingsRepo.On("GetTenantSettings", ctx, testTenant).Return(suite.settings(), nil).Once()
	suite.mockCategoryRepo.On("ListCategoryAccounts", ctx, testTenant).Return([]domain.CategoryAccount{
		{CategoryID: cashCat, CategoryName: "Cash", AccountID: "acc-cash", AccountName: "Bank Account", AccountType: domain.Asset},
	}, nil).Once()
	suite.mockBalanceSvc.On("PeriodBalances", ctx, testTenant, &cashCat, asOf).Return(suite.periodBalances("1000.00"), nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, asOf).Return(suite.cnyAmount("999.00"), nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)).Return(suite.cnyAmount("0.00"), nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)).Return(suite.cnyAmount("0.00"), nil).Once()

	sheet, err := suite.service.GenerateBalanceSheet(ctx, testTenant, asOf)

	suite.Require().NoError(err)
	suite.False(sheet.IsBalanced)
}

func (suite *StatementServiceTestSuite) TestGenerateBalanceSheet_NoRetainedEarningsWhenNetIncomeZero() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	suite.mockSettingsRepo.On("GetTenantSettings", ctx, testTenant).Return(suite.settings(), nil).Once()
	suite.mockCategoryRepo.On("ListCategoryAccounts", ctx, testTenant).Return([]domain.CategoryAccount{}, nil).Once()
	suite.mockBalanceSvc.On("NetIncome", ctx, testTenant, asOf).Return(domain.ZeroMoney("CNY"), nil).Once()

	sheet, err := suite.service.GenerateBalanceSheet(ctx, testTenant, asOf)

	suite.Require().NoError(err)
	suite.Empty(sheet.Equity)
	suite.True(sheet.IsBalanced)

	// Zero net income means the other two columns are never computed
	suite.mockBalanceSvc.AssertNumberOfCalls(suite.T(), "NetIncome", 1)
}

func (suite *StatementServiceTestSuite) TestGenerateIncomeStatement() {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	txns := []domain.Transaction{
		{
			TransactionType: domain.IncomeTransaction,
			Money:           suite.cnyAmount("1000.00"),
			CategoryID:      "cat-consulting",
			Status:          domain.TransactionApproved,
		},
		{
			TransactionType: domain.IncomeTransaction,
			Money:           suite.cnyAmount("500.00"),
			CategoryID:      "cat-consulting",
			Status:          domain.TransactionApproved,
		},
		{
			TransactionType: domain.ExpenseTransaction,
			Money:           suite.cnyAmount("300.00"),
			Status:          domain.TransactionApproved,
		},
	}

	suite.mockSettingsRepo.On("GetTenantSettings", ctx, testTenant).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("ListApprovedTransactions", ctx, testTenant, start, end).Return(txns, nil).Once()
	suite.mockNameResolver.On("FindCategoryNames", ctx, testTenant, []string{"cat-consulting"}).Return(map[string]string{
		"cat-consulting": "Consulting",
	}, nil).Once()

	stmt, err := suite.service.GenerateIncomeStatement(ctx, testTenant, start, end)

	suite.Require().NoError(err)
	suite.True(stmt.TotalRevenue.Equal(decimal.RequireFromString("1500.00")))
	suite.True(stmt.TotalExpenses.Equal(decimal.RequireFromString("300.00")))
	suite.True(stmt.NetIncome.Equal(decimal.RequireFromString("1200.00")))
	suite.Equal(3, stmt.TransactionCount)

	suite.Require().Len(stmt.RevenueByCategory, 1)
	suite.Equal("Consulting", stmt.RevenueByCategory[0].CategoryName)
	suite.True(stmt.RevenueByCategory[0].Amount.Equal(decimal.RequireFromString("1500.00")))

	// The uncategorized expense lands in its own bucket
	suite.Require().Len(stmt.ExpensesByCategory, 1)
	suite.Equal("Uncategorized", stmt.ExpensesByCategory[0].CategoryName)
}

func (suite *StatementServiceTestSuite) TestGenerateIncomeStatement_EmptyPeriod() {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockSettingsRepo.On("GetTenantSettings", ctx, testTenant).Return(suite.settings(), nil).Once()
	suite.mockTxnRepo.On("ListApprovedTransactions", ctx, testTenant, start, end).Return([]domain.Transaction{}, nil).Once()

	stmt, err := suite.service.GenerateIncomeStatement(ctx, testTenant, start, end)

	suite.Require().NoError(err)
	suite.True(stmt.TotalRevenue.IsZero())
	suite.True(stmt.TotalExpenses.IsZero())
	suite.True(stmt.NetIncome.IsZero())
	suite.Equal(0, stmt.TransactionCount)
	suite.Empty(stmt.RevenueByCategory)
	suite.mockNameResolver.AssertNotCalled(suite.T(), "FindCategoryNames",
		ctx, testTenant, []string{})
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}
