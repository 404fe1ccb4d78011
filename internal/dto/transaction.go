package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a new DRAFT
// transaction.
type CreateTransactionRequest struct {
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required,len=3"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required" time_format:"2006-01-02"`
	Description     string                 `json:"description"`
	CategoryID      *string                `json:"categoryID"`
	DepartmentID    *string                `json:"departmentID"`
	FundID          *string                `json:"fundID"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ReferenceNumber string                 `json:"referenceNumber"`
	IsRecurring     bool                   `json:"isRecurring"`
	IsTaxable       bool                   `json:"isTaxable"`
}

// UpdateTransactionRequest defines detail updates allowed while DRAFT.
// Pointers distinguish "not provided" from zero values.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	TransactionDate *time.Time       `json:"transactionDate" time_format:"2006-01-02"`
	Description     *string          `json:"description"`
	CategoryID      *string          `json:"categoryID"`
	DepartmentID    *string          `json:"departmentID"`
	FundID          *string          `json:"fundID"`
	PaymentMethod   *string          `json:"paymentMethod"`
	ReferenceNumber *string          `json:"referenceNumber"`
}

// VoidTransactionRequest carries the mandatory void reason.
type VoidTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionResponse mirrors domain.Transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	TenantID        int64           `json:"tenantID"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	TransactionDate string          `json:"transactionDate"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"categoryID,omitempty"`
	DepartmentID    string          `json:"departmentID,omitempty"`
	FundID          string          `json:"fundID,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	IsRecurring     bool            `json:"isRecurring"`
	IsTaxable       bool            `json:"isTaxable"`
	Status          string          `json:"status"`
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	ApprovedAt      *time.Time      `json:"approvedAt,omitempty"`
	VoidReason      string          `json:"voidReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListTransactionsParams holds pagination parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of transactions plus the token for the
// next page, when one exists.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		TenantID:        int64(txn.TenantID),
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Money.Amount,
		CurrencyCode:    txn.Money.CurrencyCode,
		TransactionDate: txn.TransactionDate.Format("2006-01-02"),
		Description:     txn.Description,
		CategoryID:      txn.CategoryID,
		DepartmentID:    txn.DepartmentID,
		FundID:          txn.FundID,
		PaymentMethod:   txn.PaymentMethod,
		ReferenceNumber: txn.ReferenceNumber,
		IsRecurring:     txn.IsRecurring,
		IsTaxable:       txn.IsTaxable,
		Status:          string(txn.Status),
		ApprovedBy:      txn.ApprovedBy,
		ApprovedAt:      txn.ApprovedAt,
		VoidReason:      txn.VoidReason,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
