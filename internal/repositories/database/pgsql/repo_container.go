package pgsql

import (
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	referenceRepo := newPgxReferenceDataRepository(dbPool)
	settingsRepo := newPgxTenantSettingsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       accountRepo,
		CategoryRepo:      categoryRepo,
		CategoryNames:     categoryRepo,
		ReferenceDataRepo: referenceRepo,
		TransactionRepo:   transactionRepo,
		JournalRepo:       journalRepo,
		SettingsRepo:      settingsRepo,
	}
}
