package domain

import (
	"strconv"
	"time"
)

// TenantID identifies an isolated company whose books never mix with
// another's. Every repository query and balance computation is scoped by
// exactly one TenantID.
type TenantID int64

func (t TenantID) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// ParseTenantID parses a path/query representation of a tenant identifier.
func ParseTenantID(s string) (TenantID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TenantID(v), nil
}

// TenantSettings carries per-tenant bookkeeping configuration. BooksStartDate
// is the origin for cumulative balances; it is configuration, not a compiled-in
// constant.
type TenantSettings struct {
	TenantID        TenantID  `json:"tenantID"`
	BooksStartDate  time.Time `json:"booksStartDate"`
	DefaultCurrency string    `json:"defaultCurrency"`
}

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
