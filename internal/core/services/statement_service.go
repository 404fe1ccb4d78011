package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// uncategorizedBucket labels income statement rows whose transaction has no
// category assigned.
const uncategorizedBucket = "Uncategorized"

// statementService implements the StatementSvc interface.
type statementService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
	nameResolver portsrepo.CategoryNameResolver
	txnRepo      portsrepo.TransactionRepository
	settingsRepo portsrepo.TenantSettingsRepository
	balanceSvc   portssvc.BalanceSvc
}

// NewStatementService creates a new statement service
func NewStatementService(
	categoryRepo portsrepo.CategoryRepository,
	nameResolver portsrepo.CategoryNameResolver,
	txnRepo portsrepo.TransactionRepository,
	settingsRepo portsrepo.TenantSettingsRepository,
	balanceSvc portssvc.BalanceSvc,
) portssvc.StatementSvc {
	return &statementService{
		categoryRepo: categoryRepo,
		nameResolver: nameResolver,
		txnRepo:      txnRepo,
		settingsRepo: settingsRepo,
		balanceSvc:   balanceSvc,
	}
}

var _ portssvc.StatementSvc = (*statementService)(nil)

// GenerateBalanceSheet builds the three statement sections from leaf
// categories linked to accounts. Section totals come from the current-month
// column; the accounting equation is verified exactly on every call.
func (s *statementService) GenerateBalanceSheet(ctx context.Context, tenantID domain.TenantID, asOf time.Time) (*domain.BalanceSheet, error) {
	settings, err := s.settingsRepo.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant settings: %w", err)
	}

	rows, err := s.categoryRepo.ListCategoryAccounts(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list category accounts")
		return nil, err
	}

	sheet := &domain.BalanceSheet{
		AsOfDate:         asOf,
		CurrencyCode:     settings.DefaultCurrency,
		Assets:           []domain.CategoryGroup{},
		Liabilities:      []domain.CategoryGroup{},
		Equity:           []domain.CategoryGroup{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, ca := range rows {
		var section *[]domain.CategoryGroup
		switch ca.AccountType {
		case domain.Asset:
			section = &sheet.Assets
		case domain.Liability:
			section = &sheet.Liabilities
		case domain.Equity:
			section = &sheet.Equity
		default:
			// Revenue and expense accounts belong on the income statement
			continue
		}

		categoryID := ca.CategoryID
		balances, err := s.balanceSvc.PeriodBalances(ctx, tenantID, &categoryID, asOf)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute period balances",
				slog.String("category_id", ca.CategoryID))
			return nil, err
		}

		row := domain.AccountBalanceRow{
			AccountName:   ca.AccountName,
			CurrentMonth:  balances.CurrentMonth.Amount,
			PreviousMonth: balances.PreviousMonth.Amount,
			LastYearEnd:   balances.LastYearEnd.Amount,
		}
		appendRow(section, ca.CategoryName, row)

		switch ca.AccountType {
		case domain.Asset:
			sheet.TotalAssets = sheet.TotalAssets.Add(row.CurrentMonth)
		case domain.Liability:
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(row.CurrentMonth)
		case domain.Equity:
			sheet.TotalEquity = sheet.TotalEquity.Add(row.CurrentMonth)
		}
	}

	// Net income not yet closed to equity shows up as a synthetic Retained
	// Earnings line so the equation can hold mid-year.
	retained, err := s.retainedEarningsRow(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	if retained != nil {
		appendRow(&sheet.Equity, domain.RetainedEarningsName, *retained)
		sheet.TotalEquity = sheet.TotalEquity.Add(retained.CurrentMonth)
	}

	sheet.IsBalanced = sheet.TotalAssets.Equal(sheet.TotalLiabilities.Add(sheet.TotalEquity))
	return sheet, nil
}

// retainedEarningsRow computes the net income column values for the synthetic
// equity line. Returns nil when the current net income is zero.
func (s *statementService) retainedEarningsRow(ctx context.Context, tenantID domain.TenantID, asOf time.Time) (*domain.AccountBalanceRow, error) {
	current, err := s.balanceSvc.NetIncome(ctx, tenantID, asOf)
	if err != nil {
		return nil, err
	}
	if current.IsZero() {
		return nil, nil
	}

	// Each column carries the net income as of that column's end date.
	previous, err := s.balanceSvc.NetIncome(ctx, tenantID, accounting.PreviousMonthPeriod(asOf).End)
	if err != nil {
		return nil, err
	}
	lastYear, err := s.balanceSvc.NetIncome(ctx, tenantID, accounting.PriorYearEnd(asOf))
	if err != nil {
		return nil, err
	}

	return &domain.AccountBalanceRow{
		AccountName:   domain.RetainedEarningsName,
		CurrentMonth:  current.Amount,
		PreviousMonth: previous.Amount,
		LastYearEnd:   lastYear.Amount,
	}, nil
}

// appendRow adds a row to the group with the given category name, creating
// the group at the end of the section on first sight. Insertion order is the
// display order.
func appendRow(section *[]domain.CategoryGroup, categoryName string, row domain.AccountBalanceRow) {
	for i := range *section {
		if (*section)[i].CategoryName == categoryName {
			(*section)[i].Rows = append((*section)[i].Rows, row)
			return
		}
	}
	*section = append(*section, domain.CategoryGroup{
		CategoryName: categoryName,
		Rows:         []domain.AccountBalanceRow{row},
	})
}

// GenerateIncomeStatement summarizes approved transactions in [start, end]:
// total revenue, total expenses, their difference, and per-category
// breakdowns in first-seen order.
func (s *statementService) GenerateIncomeStatement(ctx context.Context, tenantID domain.TenantID, start, end time.Time) (*domain.IncomeStatement, error) {
	settings, err := s.settingsRepo.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant settings: %w", err)
	}

	txns, err := s.txnRepo.ListApprovedTransactions(ctx, tenantID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approved transactions for income statement")
		return nil, err
	}

	categoryIDs := make([]string, 0, len(txns))
	seen := make(map[string]bool)
	for i := range txns {
		if id := txns[i].CategoryID; id != "" && !seen[id] {
			seen[id] = true
			categoryIDs = append(categoryIDs, id)
		}
	}
	names := map[string]string{}
	if len(categoryIDs) > 0 {
		names, err = s.nameResolver.FindCategoryNames(ctx, tenantID, categoryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve category names")
			return nil, err
		}
	}

	stmt := &domain.IncomeStatement{
		PeriodStart:        start,
		PeriodEnd:          end,
		CurrencyCode:       settings.DefaultCurrency,
		TotalRevenue:       decimal.Zero,
		TotalExpenses:      decimal.Zero,
		RevenueByCategory:  []domain.CategoryAmount{},
		ExpensesByCategory: []domain.CategoryAmount{},
		TransactionCount:   len(txns),
	}

	for i := range txns {
		txn := &txns[i]
		bucket := uncategorizedBucket
		if name, ok := names[txn.CategoryID]; ok {
			bucket = name
		}
		amount := txn.Money.Amount
		if txn.TransactionType == domain.IncomeTransaction {
			stmt.TotalRevenue = stmt.TotalRevenue.Add(amount)
			stmt.RevenueByCategory = addCategoryAmount(stmt.RevenueByCategory, bucket, amount)
		} else {
			stmt.TotalExpenses = stmt.TotalExpenses.Add(amount)
			stmt.ExpensesByCategory = addCategoryAmount(stmt.ExpensesByCategory, bucket, amount)
		}
	}

	stmt.NetIncome = stmt.TotalRevenue.Sub(stmt.TotalExpenses)
	return stmt, nil
}

func addCategoryAmount(list []domain.CategoryAmount, name string, amount decimal.Decimal) []domain.CategoryAmount {
	for i := range list {
		if list[i].CategoryName == name {
			list[i].Amount = list[i].Amount.Add(amount)
			return list
		}
	}
	return append(list, domain.CategoryAmount{CategoryName: name, Amount: amount})
}
