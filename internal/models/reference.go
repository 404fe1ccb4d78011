package models

import "time"

// Department is a reference row used to label grouping reports.
type Department struct {
	DepartmentID string `db:"department_id"`
	TenantID     int64  `db:"tenant_id"`
	Name         string `db:"name"`
	AuditFields
}

// Fund is a reference row used to label grouping reports.
type Fund struct {
	FundID   string `db:"fund_id"`
	TenantID int64  `db:"tenant_id"`
	Name     string `db:"name"`
	AuditFields
}

// TenantSettings holds per-tenant bookkeeping configuration.
type TenantSettings struct {
	TenantID        int64     `db:"tenant_id"`
	BooksStartDate  time.Time `db:"books_start_date"`
	DefaultCurrency string    `db:"default_currency"`
}
