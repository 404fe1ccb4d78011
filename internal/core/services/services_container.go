package services

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.AccountRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.CategoryRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.TransactionRepo)

	// Balance feeds both statement generation and its own endpoints
	container.Balance = NewBalanceService(repos.TransactionRepo, repos.SettingsRepo)
	container.Statement = NewStatementService(
		repos.CategoryRepo,
		repos.CategoryNames,
		repos.TransactionRepo,
		repos.SettingsRepo,
		container.Balance,
	)
	container.Grouping = NewGroupingService(repos.TransactionRepo, repos.CategoryNames, repos.ReferenceDataRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.CategorySvcFacade    = (*categoryService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.JournalSvcFacade     = (*journalService)(nil)
	_ portssvc.BalanceSvc           = (*balanceService)(nil)
	_ portssvc.StatementSvc         = (*statementService)(nil)
	_ portssvc.GroupingSvc          = (*groupingService)(nil)
)
