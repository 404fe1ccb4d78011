package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
)

// balanceService implements the BalanceSvc interface. Balances are signed
// sums over approved transactions: income adds, expense subtracts.
type balanceService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	settingsRepo portsrepo.TenantSettingsRepository
}

// NewBalanceService creates a new balance service
func NewBalanceService(txnRepo portsrepo.TransactionRepository, settingsRepo portsrepo.TenantSettingsRepository) portssvc.BalanceSvc {
	return &balanceService{txnRepo: txnRepo, settingsRepo: settingsRepo}
}

var _ portssvc.BalanceSvc = (*balanceService)(nil)

func (s *balanceService) BalanceForPeriod(ctx context.Context, tenantID domain.TenantID, categoryID *string, start, end time.Time) (domain.Money, error) {
	settings, err := s.settingsRepo.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to resolve tenant settings: %w", err)
	}
	return s.sumSigned(ctx, tenantID, categoryID, start, end, settings.DefaultCurrency)
}

func (s *balanceService) BalanceUpToDate(ctx context.Context, tenantID domain.TenantID, categoryID *string, asOf time.Time) (domain.Money, error) {
	settings, err := s.settingsRepo.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to resolve tenant settings: %w", err)
	}
	return s.sumSigned(ctx, tenantID, categoryID, settings.BooksStartDate, asOf, settings.DefaultCurrency)
}

func (s *balanceService) PeriodBalances(ctx context.Context, tenantID domain.TenantID, categoryID *string, asOf time.Time) (*domain.PeriodBalances, error) {
	settings, err := s.settingsRepo.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant settings: %w", err)
	}

	current := accounting.CurrentMonthPeriod(asOf)
	previous := accounting.PreviousMonthPeriod(asOf)

	currentBalance, err := s.sumSigned(ctx, tenantID, categoryID, current.Start, current.End, settings.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	previousBalance, err := s.sumSigned(ctx, tenantID, categoryID, previous.Start, previous.End, settings.DefaultCurrency)
	if err != nil {
		return nil, err
	}
	lastYearEnd, err := s.sumSigned(ctx, tenantID, categoryID, settings.BooksStartDate, accounting.PriorYearEnd(asOf), settings.DefaultCurrency)
	if err != nil {
		return nil, err
	}

	return &domain.PeriodBalances{
		CurrentMonth:  currentBalance,
		PreviousMonth: previousBalance,
		LastYearEnd:   lastYearEnd,
	}, nil
}

func (s *balanceService) NetIncome(ctx context.Context, tenantID domain.TenantID, asOf time.Time) (domain.Money, error) {
	settings, err := s.settingsRepo.GetTenantSettings(ctx, tenantID)
	if err != nil {
		return domain.Money{}, fmt.Errorf("failed to resolve tenant settings: %w", err)
	}
	return s.sumSigned(ctx, tenantID, nil, accounting.StartOfYear(asOf), asOf, settings.DefaultCurrency)
}

// sumSigned folds approved transactions in [start, end] into one signed
// total. An empty window yields zero in the tenant's default currency.
func (s *balanceService) sumSigned(ctx context.Context, tenantID domain.TenantID, categoryID *string, start, end time.Time, defaultCurrency string) (domain.Money, error) {
	var (
		txns []domain.Transaction
		err  error
	)
	if categoryID != nil {
		txns, err = s.txnRepo.ListApprovedByCategory(ctx, tenantID, *categoryID, start, end)
	} else {
		txns, err = s.txnRepo.ListApprovedTransactions(ctx, tenantID, start, end)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list approved transactions for balance")
		return domain.Money{}, err
	}

	total := domain.ZeroMoney(defaultCurrency)
	for i := range txns {
		total, err = total.Add(txns[i].SignedAmount())
		if err != nil {
			return domain.Money{}, fmt.Errorf("balance aggregation: %w", err)
		}
	}
	return total, nil
}
