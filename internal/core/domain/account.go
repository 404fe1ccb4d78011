package domain

import (
	"errors"
	"fmt"
	"regexp"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceDirection is the side an account's natural positive balance sits on.
type BalanceDirection string

const (
	DebitDirection  BalanceDirection = "DEBIT"
	CreditDirection BalanceDirection = "CREDIT"
)

var (
	// ErrInvalidAccountCombination indicates a type/direction pairing that
	// breaks accounting convention.
	ErrInvalidAccountCombination = errors.New("invalid account type and balance direction combination")
	// ErrInvalidAccountCode indicates an account code outside the 2-10
	// alphanumeric character format.
	ErrInvalidAccountCode = errors.New("account code must be 2-10 alphanumeric characters")
)

var accountCodePattern = regexp.MustCompile(`^[A-Za-z0-9]{2,10}$`)

// Account is a chart-of-accounts node. Code is unique per tenant; the
// parent, when set, must belong to the same tenant and share the same type.
type Account struct {
	AccountID        string           `json:"accountID"`
	TenantID         TenantID         `json:"tenantID"`
	Code             string           `json:"code"`
	Name             string           `json:"name"`
	AccountType      AccountType      `json:"accountType"`
	BalanceDirection BalanceDirection `json:"balanceDirection"`
	ParentAccountID  string           `json:"parentAccountID"`
	Description      string           `json:"description"`
	IsActive         bool             `json:"isActive"`
	AuditFields
}

// NaturalDirection returns the conventional balance direction for an account
// type: ASSET/EXPENSE are debit-natured, LIABILITY/EQUITY/REVENUE credit-natured.
func NaturalDirection(t AccountType) (BalanceDirection, error) {
	switch t {
	case Asset, Expense:
		return DebitDirection, nil
	case Liability, Equity, Revenue:
		return CreditDirection, nil
	default:
		return "", fmt.Errorf("unknown account type %q", t)
	}
}

// ValidateTypeDirection checks the type/direction pairing against convention.
func ValidateTypeDirection(t AccountType, d BalanceDirection) error {
	natural, err := NaturalDirection(t)
	if err != nil {
		return err
	}
	if d != natural {
		return fmt.Errorf("%w: %s accounts carry a %s balance", ErrInvalidAccountCombination, t, natural)
	}
	return nil
}

// ValidateAccountCode checks the 2-10 alphanumeric code format.
func ValidateAccountCode(code string) error {
	if !accountCodePattern.MatchString(code) {
		return fmt.Errorf("%w: got %q", ErrInvalidAccountCode, code)
	}
	return nil
}
