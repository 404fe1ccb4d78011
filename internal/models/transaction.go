package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents an income/expense row with its approval lifecycle
// columns. Amount is always stored positive; transaction_type carries the
// sign convention.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	TenantID        int64           `db:"tenant_id"`
	TransactionType string          `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	CategoryID      string          `db:"category_id"`   // Nullable
	DepartmentID    string          `db:"department_id"` // Nullable
	FundID          string          `db:"fund_id"`       // Nullable
	PaymentMethod   string          `db:"payment_method"`
	ReferenceNumber string          `db:"reference_number"`
	IsRecurring     bool            `db:"is_recurring"`
	IsTaxable       bool            `db:"is_taxable"`
	Status          string          `db:"status"`
	ApprovedBy      string          `db:"approved_by"` // Nullable
	ApprovedAt      *time.Time      `db:"approved_at"`
	VoidedBy        string          `db:"voided_by"` // Nullable
	VoidReason      string          `db:"void_reason"`
	AuditFields
}
