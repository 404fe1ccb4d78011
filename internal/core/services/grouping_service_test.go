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

type GroupingServiceTestSuite struct {
	suite.Suite
	mockTxnRepo       *MockTransactionRepository
	mockNameResolver  *MockCategoryNameResolver
	mockReferenceRepo *MockReferenceDataRepository
	service           portssvc.GroupingSvc
}

func (suite *GroupingServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockNameResolver = new(MockCategoryNameResolver)
	suite.mockReferenceRepo = new(MockReferenceDataRepository)
	suite.service = services.NewGroupingService(suite.mockTxnRepo, suite.mockNameResolver, suite.mockReferenceRepo)
}

func (suite *GroupingServiceTestSuite) txn(amount string, txnType domain.TransactionType, categoryID string, date time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionType: txnType,
		Money:           domain.NewMoney(decimal.RequireFromString(amount), "CNY"),
		CategoryID:      categoryID,
		TransactionDate: date,
		Status:          domain.TransactionApproved,
	}
}

func (suite *GroupingServiceTestSuite) findSummary(list []domain.GroupSummary, key string) *domain.GroupSummary {
	for i := range list {
		if list[i].Key == key {
			return &list[i]
		}
	}
	return nil
}

func (suite *GroupingServiceTestSuite) TestGroupTransactions() {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	january := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	txns := []domain.Transaction{
		suite.txn("600.00", domain.IncomeTransaction, "cat-1", march),
		suite.txn("300.00", domain.ExpenseTransaction, "cat-1", january),
		suite.txn("100.00", domain.ExpenseTransaction, "", january),
	}

	suite.mockTxnRepo.On("ListApprovedTransactions", ctx, testTenant, start, end).Return(txns, nil).Once()
	suite.mockNameResolver.On("FindCategoryNames", ctx, testTenant, []string{"cat-1"}).Return(map[string]string{
		"cat-1": "Consulting",
	}, nil).Once()

	grouping, err := suite.service.GroupTransactions(ctx, testTenant, start, end)

	suite.Require().NoError(err)
	suite.Equal(3, grouping.TransactionCount)

	// Volume aggregation uses raw positive amounts, not signed balances
	suite.True(grouping.GrandTotal.Equal(decimal.RequireFromString("1000.00")))

	consulting := suite.findSummary(grouping.ByCategory, "Consulting")
	suite.Require().NotNil(consulting)
	suite.Equal(2, consulting.Count)
	suite.True(consulting.TotalAmount.Equal(decimal.RequireFromString("900.00")))
	suite.True(consulting.AverageAmount.Equal(decimal.RequireFromString("450.00")))
	suite.True(consulting.Percentage.Equal(decimal.RequireFromString("90.00")))

	unassigned := suite.findSummary(grouping.ByCategory, "Unassigned")
	suite.Require().NotNil(unassigned)
	suite.Equal(1, unassigned.Count)
	suite.True(unassigned.Percentage.Equal(decimal.RequireFromString("10.00")))

	income := suite.findSummary(grouping.ByType, string(domain.IncomeTransaction))
	suite.Require().NotNil(income)
	suite.True(income.TotalAmount.Equal(decimal.RequireFromString("600.00")))
	expense := suite.findSummary(grouping.ByType, string(domain.ExpenseTransaction))
	suite.Require().NotNil(expense)
	suite.Equal(2, expense.Count)

	// No transaction carried a department or fund
	suite.Require().Len(grouping.ByDepartment, 1)
	suite.Equal("Unassigned", grouping.ByDepartment[0].Key)
	suite.Equal(3, grouping.ByDepartment[0].Count)
	suite.Require().Len(grouping.ByFund, 1)

	// Months come back ascending even though March was seen first
	suite.Require().Len(grouping.ByMonth, 2)
	suite.Equal("2024-01", grouping.ByMonth[0].Key)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), grouping.ByMonth[0].FirstOfMonth)
	suite.Equal("2024-03", grouping.ByMonth[1].Key)
	suite.True(grouping.ByMonth[0].TotalAmount.Equal(decimal.RequireFromString("400.00")))

	suite.mockReferenceRepo.AssertNotCalled(suite.T(), "FindDepartmentNames",
		ctx, testTenant, []string{})
}

func (suite *GroupingServiceTestSuite) TestGroupTransactions_AverageRounding() {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	txns := []domain.Transaction{
		suite.txn("10.00", domain.ExpenseTransaction, "", date),
		suite.txn("10.00", domain.ExpenseTransaction, "", date),
		suite.txn("10.00", domain.ExpenseTransaction, "", date),
	}

	suite.mockTxnRepo.On("ListApprovedTransactions", ctx, testTenant, start, end).Return(txns, nil).Once()

	grouping, err := suite.service.GroupTransactions(ctx, testTenant, start, end)

	suite.Require().NoError(err)
	group := grouping.ByCategory[0]
	suite.Equal(3, group.Count)
	suite.True(group.AverageAmount.Equal(decimal.RequireFromString("10.00")))
	suite.True(group.Percentage.Equal(decimal.RequireFromString("100.00")))
}

func (suite *GroupingServiceTestSuite) TestGroupTransactions_EmptyPeriod() {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mockTxnRepo.On("ListApprovedTransactions", ctx, testTenant, start, end).Return([]domain.Transaction{}, nil).Once()

	grouping, err := suite.service.GroupTransactions(ctx, testTenant, start, end)

	suite.Require().NoError(err)
	suite.Equal(0, grouping.TransactionCount)
	suite.True(grouping.GrandTotal.IsZero())
	suite.Empty(grouping.ByCategory)
	suite.Empty(grouping.ByMonth)
}

func (suite *GroupingServiceTestSuite) TestGroupTransactions_DepartmentAndFundNames() {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	txn := suite.txn("50.00", domain.ExpenseTransaction, "", date)
	txn.DepartmentID = "dep-1"
	txn.FundID = "fund-1"

	suite.mockTxnRepo.On("ListApprovedTransactions", ctx, testTenant, start, end).Return([]domain.Transaction{txn}, nil).Once()
	suite.mockReferenceRepo.On("FindDepartmentNames", ctx, testTenant, []string{"dep-1"}).Return(map[string]string{
		"dep-1": "Operations",
	}, nil).Once()
	suite.mockReferenceRepo.On("FindFundNames", ctx, testTenant, []string{"fund-1"}).Return(map[string]string{
		"fund-1": "General Fund",
	}, nil).Once()

	grouping, err := suite.service.GroupTransactions(ctx, testTenant, start, end)

	suite.Require().NoError(err)
	suite.Require().Len(grouping.ByDepartment, 1)
	suite.Equal("Operations", grouping.ByDepartment[0].Key)
	suite.Require().Len(grouping.ByFund, 1)
	suite.Equal("General Fund", grouping.ByFund[0].Key)
	suite.mockReferenceRepo.AssertExpectations(suite.T())
}

func TestGroupingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GroupingServiceTestSuite))
}
