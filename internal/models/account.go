package models

// Account represents a chart-of-accounts row.
// Note: ParentAccountID uses string for nullable foreign key; DB handling may vary.
type Account struct {
	AccountID        string `db:"account_id"`
	TenantID         int64  `db:"tenant_id"`
	Code             string `db:"code"`
	Name             string `db:"name"`
	AccountType      string `db:"account_type"`
	BalanceDirection string `db:"balance_direction"`
	ParentAccountID  string `db:"parent_account_id"` // Nullable
	Description      string `db:"description"`
	IsActive         bool   `db:"is_active"`
	AuditFields
}

// Category represents a report bucketing row.
type Category struct {
	CategoryID       string `db:"category_id"`
	TenantID         int64  `db:"tenant_id"`
	Name             string `db:"name"`
	CategoryType     string `db:"category_type"`
	ParentCategoryID string `db:"parent_category_id"` // Nullable
	AccountID        string `db:"account_id"`         // Nullable link to accounts
	AuditFields
}
