package domain_test

import (
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftTransaction(txnType domain.TransactionType, amount string) domain.Transaction {
	return domain.Transaction{
		TransactionID:   "txn-1",
		TenantID:        1,
		TransactionType: txnType,
		Money:           cny(amount),
		TransactionDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:          domain.TransactionDraft,
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		txn     domain.Transaction
		wantErr error
	}{
		{"valid income", draftTransaction(domain.IncomeTransaction, "1000.00"), nil},
		{"valid expense", draftTransaction(domain.ExpenseTransaction, "0.01"), nil},
		{"zero amount", draftTransaction(domain.IncomeTransaction, "0"), domain.ErrNonPositiveAmount},
		{"negative amount", draftTransaction(domain.ExpenseTransaction, "-5"), domain.ErrNonPositiveAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Validate_UnknownType(t *testing.T) {
	txn := draftTransaction("TRANSFER", "100")
	assert.Error(t, txn.Validate())
}

func TestTransaction_Approve(t *testing.T) {
	now := time.Now().UTC()
	txn := draftTransaction(domain.IncomeTransaction, "100")

	err := txn.Approve("approver-1", now)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionApproved, txn.Status)
	assert.Equal(t, "approver-1", txn.ApprovedBy)
	require.NotNil(t, txn.ApprovedAt)
	assert.Equal(t, now, *txn.ApprovedAt)
	assert.Equal(t, "approver-1", txn.LastUpdatedBy)
}

func TestTransaction_Approve_OnlyFromDraft(t *testing.T) {
	now := time.Now().UTC()
	for _, status := range []domain.TransactionStatus{
		domain.TransactionApproved,
		domain.TransactionCancelled,
		domain.TransactionVoided,
	} {
		txn := draftTransaction(domain.IncomeTransaction, "100")
		txn.Status = status
		err := txn.Approve("approver-1", now)
		assert.ErrorIs(t, err, domain.ErrInvalidStateTransition, "status %s", status)
	}
}

func TestTransaction_Cancel(t *testing.T) {
	now := time.Now().UTC()
	txn := draftTransaction(domain.ExpenseTransaction, "50")

	require.NoError(t, txn.Cancel("user-1", now))
	assert.Equal(t, domain.TransactionCancelled, txn.Status)

	// CANCELLED is terminal
	assert.ErrorIs(t, txn.Cancel("user-1", now), domain.ErrInvalidStateTransition)
	assert.ErrorIs(t, txn.Approve("user-1", now), domain.ErrInvalidStateTransition)
}

func TestTransaction_Void(t *testing.T) {
	now := time.Now().UTC()
	txn := draftTransaction(domain.IncomeTransaction, "100")
	require.NoError(t, txn.Approve("approver-1", now))

	err := txn.Void("auditor-1", "duplicate entry", now)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionVoided, txn.Status)
	assert.Equal(t, "auditor-1", txn.VoidedBy)
	assert.Equal(t, "duplicate entry", txn.VoidReason)
}

func TestTransaction_Void_RequiresReason(t *testing.T) {
	now := time.Now().UTC()
	txn := draftTransaction(domain.IncomeTransaction, "100")
	require.NoError(t, txn.Approve("approver-1", now))

	assert.ErrorIs(t, txn.Void("auditor-1", "", now), domain.ErrVoidReasonRequired)
	assert.ErrorIs(t, txn.Void("auditor-1", "   ", now), domain.ErrVoidReasonRequired)
	// Failed void leaves status untouched
	assert.Equal(t, domain.TransactionApproved, txn.Status)
}

func TestTransaction_Void_OnlyFromApproved(t *testing.T) {
	now := time.Now().UTC()
	txn := draftTransaction(domain.IncomeTransaction, "100")
	assert.ErrorIs(t, txn.Void("auditor-1", "wrong amount", now), domain.ErrInvalidStateTransition)
}

func TestTransaction_CanModify(t *testing.T) {
	txn := draftTransaction(domain.IncomeTransaction, "100")
	assert.True(t, txn.CanModify())

	require.NoError(t, txn.Approve("approver-1", time.Now()))
	assert.False(t, txn.CanModify())
}

func TestTransaction_SignedAmount(t *testing.T) {
	income := draftTransaction(domain.IncomeTransaction, "250.00")
	assert.True(t, income.SignedAmount().Equal(cny("250.00")))

	expense := draftTransaction(domain.ExpenseTransaction, "250.00")
	assert.True(t, expense.SignedAmount().Equal(cny("-250.00")))
}

func TestTransaction_TaxAmount(t *testing.T) {
	rate := decimal.RequireFromString("0.13")

	taxable := draftTransaction(domain.IncomeTransaction, "100.00")
	taxable.IsTaxable = true
	assert.True(t, taxable.TaxAmount(rate).Equal(cny("13.00")))

	exempt := draftTransaction(domain.IncomeTransaction, "100.00")
	assert.True(t, exempt.TaxAmount(rate).IsZero())
	assert.Equal(t, "CNY", exempt.TaxAmount(rate).CurrencyCode)
}
