package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction records income or expense.
// The stored amount is always positive; the sign of its contribution to a
// balance is carried by the type.
type TransactionType string

const (
	IncomeTransaction  TransactionType = "INCOME"
	ExpenseTransaction TransactionType = "EXPENSE"
)

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionDraft     TransactionStatus = "DRAFT"
	TransactionApproved  TransactionStatus = "APPROVED"
	TransactionCancelled TransactionStatus = "CANCELLED"
	TransactionVoided    TransactionStatus = "VOIDED"
)

var (
	// ErrInvalidStateTransition indicates a lifecycle transition outside the
	// state machine: DRAFT->APPROVED, DRAFT->CANCELLED, APPROVED->VOIDED.
	ErrInvalidStateTransition = errors.New("invalid transaction state transition")
	// ErrTransactionNotModifiable indicates an update attempt on a
	// transaction that left DRAFT; approved transactions are immutable facts.
	ErrTransactionNotModifiable = errors.New("transaction is not modifiable in its current state")
	// ErrVoidReasonRequired indicates a void attempt without a reason.
	ErrVoidReasonRequired = errors.New("void reason is required")
	// ErrNonPositiveAmount indicates a transaction amount that is not
	// strictly positive.
	ErrNonPositiveAmount = errors.New("transaction amount must be positive")
)

// Transaction is a single-amount income/expense record with an approval
// lifecycle. Only APPROVED transactions contribute to balances and
// statements; DRAFT, CANCELLED and VOIDED are never financial facts.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	TenantID        TenantID          `json:"tenantID"`
	TransactionType TransactionType   `json:"transactionType"`
	Money           Money             `json:"money"`
	TransactionDate time.Time         `json:"transactionDate"`
	Description     string            `json:"description"`
	CategoryID      string            `json:"categoryID"`
	DepartmentID    string            `json:"departmentID"`
	FundID          string            `json:"fundID"`
	PaymentMethod   string            `json:"paymentMethod"`
	ReferenceNumber string            `json:"referenceNumber"`
	IsRecurring     bool              `json:"isRecurring"`
	IsTaxable       bool              `json:"isTaxable"`
	Status          TransactionStatus `json:"status"`
	ApprovedBy      string            `json:"approvedBy"`
	ApprovedAt      *time.Time        `json:"approvedAt"`
	VoidedBy        string            `json:"voidedBy"`
	VoidReason      string            `json:"voidReason"`
	AuditFields
}

// Validate checks the construction invariants: positive amount and a known type.
func (t *Transaction) Validate() error {
	if !t.Money.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, t.Money.DisplayString())
	}
	switch t.TransactionType {
	case IncomeTransaction, ExpenseTransaction:
	default:
		return fmt.Errorf("unknown transaction type %q", t.TransactionType)
	}
	return nil
}

// Approve transitions DRAFT -> APPROVED, recording the approver and timestamp.
func (t *Transaction) Approve(approverID string, now time.Time) error {
	if t.Status != TransactionDraft {
		return fmt.Errorf("%w: cannot approve from %s", ErrInvalidStateTransition, t.Status)
	}
	t.Status = TransactionApproved
	t.ApprovedBy = approverID
	t.ApprovedAt = &now
	t.LastUpdatedAt = now
	t.LastUpdatedBy = approverID
	return nil
}

// Cancel transitions DRAFT -> CANCELLED.
func (t *Transaction) Cancel(userID string, now time.Time) error {
	if t.Status != TransactionDraft {
		return fmt.Errorf("%w: cannot cancel from %s", ErrInvalidStateTransition, t.Status)
	}
	t.Status = TransactionCancelled
	t.LastUpdatedAt = now
	t.LastUpdatedBy = userID
	return nil
}

// Void transitions APPROVED -> VOIDED with a mandatory reason.
func (t *Transaction) Void(voidedBy, reason string, now time.Time) error {
	if strings.TrimSpace(reason) == "" {
		return ErrVoidReasonRequired
	}
	if t.Status != TransactionApproved {
		return fmt.Errorf("%w: cannot void from %s", ErrInvalidStateTransition, t.Status)
	}
	t.Status = TransactionVoided
	t.VoidedBy = voidedBy
	t.VoidReason = reason
	t.LastUpdatedAt = now
	t.LastUpdatedBy = voidedBy
	return nil
}

// CanModify reports whether detail updates are still permitted.
func (t *Transaction) CanModify() bool {
	return t.Status == TransactionDraft
}

// SignedAmount is the transaction's contribution to a balance: positive for
// income, negative for expense.
func (t *Transaction) SignedAmount() Money {
	if t.TransactionType == ExpenseTransaction {
		return t.Money.Neg()
	}
	return t.Money
}

// TaxAmount applies a tax rate to a taxable transaction; a non-taxable
// transaction contributes zero tax.
func (t *Transaction) TaxAmount(rate decimal.Decimal) Money {
	if !t.IsTaxable {
		return ZeroMoney(t.Money.CurrencyCode)
	}
	return t.Money.Mul(rate)
}
