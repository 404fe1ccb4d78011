package services

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// BalanceSvc defines signed-sum balance calculations over approved
// transactions.
type BalanceSvc interface {
	// BalanceForPeriod sums signed amounts (income positive, expense
	// negative) of approved transactions dated in [start, end], optionally
	// narrowed to one category via a non-nil categoryID.
	BalanceForPeriod(ctx context.Context, tenantID domain.TenantID, categoryID *string, start, end time.Time) (domain.Money, error)

	// BalanceUpToDate sums from the tenant's books-start date through asOf.
	BalanceUpToDate(ctx context.Context, tenantID domain.TenantID, categoryID *string, asOf time.Time) (domain.Money, error)

	// PeriodBalances computes the three canonical reporting windows derived
	// from asOf: current month to date, full previous month, and cumulative
	// through the prior year end.
	PeriodBalances(ctx context.Context, tenantID domain.TenantID, categoryID *string, asOf time.Time) (*domain.PeriodBalances, error)

	// NetIncome computes income minus expense from January 1 of asOf's year
	// through asOf.
	NetIncome(ctx context.Context, tenantID domain.TenantID, asOf time.Time) (domain.Money, error)
}

// StatementSvc defines financial statement generation.
type StatementSvc interface {
	// GenerateBalanceSheet builds the three-section statement as of a date
	// and verifies the accounting equation.
	GenerateBalanceSheet(ctx context.Context, tenantID domain.TenantID, asOf time.Time) (*domain.BalanceSheet, error)

	// GenerateIncomeStatement summarizes revenue and expenses over a period
	// with per-category breakdowns.
	GenerateIncomeStatement(ctx context.Context, tenantID domain.TenantID, start, end time.Time) (*domain.IncomeStatement, error)
}

// GroupingSvc defines multidimensional aggregation over approved
// transactions.
type GroupingSvc interface {
	// GroupTransactions aggregates approved transactions in [start, end]
	// along category, department, fund, type and month dimensions.
	GroupTransactions(ctx context.Context, tenantID domain.TenantID, start, end time.Time) (*domain.FinancialGrouping, error)
}
