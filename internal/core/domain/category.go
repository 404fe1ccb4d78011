package domain

// CategoryType classifies a report bucketing node as income or expense side.
type CategoryType string

const (
	IncomeCategory  CategoryType = "INCOME"
	ExpenseCategory CategoryType = "EXPENSE"
)

// Category is a classification node used for report bucketing. It mirrors
// the Account hierarchy rules at a lighter weight: an optional parent of the
// same type and tenant, but no balance-direction coupling. A leaf category
// linked to an Account feeds the balance sheet sections.
type Category struct {
	CategoryID       string       `json:"categoryID"`
	TenantID         TenantID     `json:"tenantID"`
	Name             string       `json:"name"`
	CategoryType     CategoryType `json:"categoryType"`
	ParentCategoryID string       `json:"parentCategoryID"`
	AccountID        string       `json:"accountID"` // optional link to a chart-of-accounts node
	AuditFields
}
