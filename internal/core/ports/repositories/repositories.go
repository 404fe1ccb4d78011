package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo       AccountRepository
	CategoryRepo      CategoryRepository
	CategoryNames     CategoryNameResolver
	ReferenceDataRepo ReferenceDataRepository
	TransactionRepo   TransactionRepository
	JournalRepo       JournalRepository
	SettingsRepo      TenantSettingsRepository
}
