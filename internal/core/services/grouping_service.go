package services

import (
	"context"
	"sort"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// unassignedBucket labels groups for transactions without a value on the
// grouped dimension.
const unassignedBucket = "Unassigned"

// groupingScale is the rounding scale for averages and percentages.
const groupingScale = 2

var hundred = decimal.NewFromInt(100)

// groupAccumulator collects one group's transactions before summary rows are
// materialized. Insertion order is preserved via the keys slice.
type groupAccumulator struct {
	keys   []string
	counts map[string]int
	totals map[string]decimal.Decimal
}

func newGroupAccumulator() *groupAccumulator {
	return &groupAccumulator{
		counts: make(map[string]int),
		totals: make(map[string]decimal.Decimal),
	}
}

func (g *groupAccumulator) add(key string, amount decimal.Decimal) {
	if _, ok := g.counts[key]; !ok {
		g.keys = append(g.keys, key)
		g.totals[key] = decimal.Zero
	}
	g.counts[key]++
	g.totals[key] = g.totals[key].Add(amount)
}

// summaries materializes one row per group in insertion order. Groups exist
// only for keys that were actually added, so Count is always positive.
func (g *groupAccumulator) summaries(grandTotal decimal.Decimal) []domain.GroupSummary {
	out := make([]domain.GroupSummary, 0, len(g.keys))
	for _, key := range g.keys {
		count := g.counts[key]
		total := g.totals[key]
		average := total.DivRound(decimal.NewFromInt(int64(count)), groupingScale)
		percentage := decimal.Zero
		if !grandTotal.IsZero() {
			percentage = total.Mul(hundred).DivRound(grandTotal, groupingScale)
		}
		out = append(out, domain.GroupSummary{
			Key:           key,
			Count:         count,
			TotalAmount:   total,
			AverageAmount: average,
			Percentage:    percentage,
		})
	}
	return out
}

// groupingService implements the GroupingSvc interface. Amounts are the raw
// positive transaction amounts; the income/expense sign convention belongs to
// balances, not volume aggregation.
type groupingService struct {
	BaseService
	txnRepo       portsrepo.TransactionRepository
	categoryNames portsrepo.CategoryNameResolver
	referenceRepo portsrepo.ReferenceDataRepository
}

// NewGroupingService creates a new grouping service
func NewGroupingService(txnRepo portsrepo.TransactionRepository, categoryNames portsrepo.CategoryNameResolver, referenceRepo portsrepo.ReferenceDataRepository) portssvc.GroupingSvc {
	return &groupingService{
		txnRepo:       txnRepo,
		categoryNames: categoryNames,
		referenceRepo: referenceRepo,
	}
}

var _ portssvc.GroupingSvc = (*groupingService)(nil)

func (s *groupingService) GroupTransactions(ctx context.Context, tenantID domain.TenantID, start, end time.Time) (*domain.FinancialGrouping, error) {
	txns, err := s.txnRepo.ListApprovedTransactions(ctx, tenantID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list approved transactions for grouping")
		return nil, err
	}

	categoryNames, departmentNames, fundNames, err := s.resolveNames(ctx, tenantID, txns)
	if err != nil {
		return nil, err
	}

	byCategory := newGroupAccumulator()
	byDepartment := newGroupAccumulator()
	byFund := newGroupAccumulator()
	byType := newGroupAccumulator()
	byMonth := newGroupAccumulator()
	monthStarts := make(map[string]time.Time)

	grandTotal := decimal.Zero
	for i := range txns {
		txn := &txns[i]
		amount := txn.Money.Amount
		grandTotal = grandTotal.Add(amount)

		byCategory.add(bucketName(txn.CategoryID, categoryNames), amount)
		byDepartment.add(bucketName(txn.DepartmentID, departmentNames), amount)
		byFund.add(bucketName(txn.FundID, fundNames), amount)
		byType.add(string(txn.TransactionType), amount)

		monthKey := accounting.MonthKey(txn.TransactionDate)
		byMonth.add(monthKey, amount)
		if _, ok := monthStarts[monthKey]; !ok {
			monthStarts[monthKey] = accounting.FirstOfMonth(txn.TransactionDate)
		}
	}

	months := make([]domain.MonthGroupSummary, 0, len(byMonth.keys))
	for _, summary := range byMonth.summaries(grandTotal) {
		months = append(months, domain.MonthGroupSummary{
			GroupSummary: summary,
			FirstOfMonth: monthStarts[summary.Key],
		})
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].FirstOfMonth.Before(months[j].FirstOfMonth)
	})

	return &domain.FinancialGrouping{
		PeriodStart:      start,
		PeriodEnd:        end,
		ByCategory:       byCategory.summaries(grandTotal),
		ByDepartment:     byDepartment.summaries(grandTotal),
		ByFund:           byFund.summaries(grandTotal),
		ByType:           byType.summaries(grandTotal),
		ByMonth:          months,
		GrandTotal:       grandTotal,
		TransactionCount: len(txns),
	}, nil
}

// resolveNames batches the dimension ID lookups through the repositories.
func (s *groupingService) resolveNames(ctx context.Context, tenantID domain.TenantID, txns []domain.Transaction) (map[string]string, map[string]string, map[string]string, error) {
	categoryIDs := collectIDs(txns, func(t *domain.Transaction) string { return t.CategoryID })
	departmentIDs := collectIDs(txns, func(t *domain.Transaction) string { return t.DepartmentID })
	fundIDs := collectIDs(txns, func(t *domain.Transaction) string { return t.FundID })

	categoryNames := map[string]string{}
	departmentNames := map[string]string{}
	fundNames := map[string]string{}
	var err error

	if len(categoryIDs) > 0 {
		categoryNames, err = s.categoryNames.FindCategoryNames(ctx, tenantID, categoryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve category names")
			return nil, nil, nil, err
		}
	}
	if len(departmentIDs) > 0 {
		departmentNames, err = s.referenceRepo.FindDepartmentNames(ctx, tenantID, departmentIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve department names")
			return nil, nil, nil, err
		}
	}
	if len(fundIDs) > 0 {
		fundNames, err = s.referenceRepo.FindFundNames(ctx, tenantID, fundIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to resolve fund names")
			return nil, nil, nil, err
		}
	}
	return categoryNames, departmentNames, fundNames, nil
}

func collectIDs(txns []domain.Transaction, pick func(*domain.Transaction) string) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for i := range txns {
		if id := pick(&txns[i]); id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func bucketName(id string, names map[string]string) string {
	if id == "" {
		return unassignedBucket
	}
	if name, ok := names[id]; ok {
		return name
	}
	return unassignedBucket
}
