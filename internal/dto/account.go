package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code             string                  `json:"code" binding:"required,accountcode"`
	Name             string                  `json:"name" binding:"required"`
	AccountType      domain.AccountType      `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	BalanceDirection domain.BalanceDirection `json:"balanceDirection" binding:"required,oneof=DEBIT CREDIT"`
	ParentAccountID  *string                 `json:"parentAccountID"`
	Description      string                  `json:"description"`
}

// ReparentAccountRequest moves an account under a new parent. A nil parent
// promotes the account to the hierarchy root.
type ReparentAccountRequest struct {
	NewParentAccountID *string `json:"newParentAccountID"`
}

// AccountResponse mirrors domain.Account.
type AccountResponse struct {
	AccountID        string                  `json:"accountID"`
	TenantID         int64                   `json:"tenantID"`
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	AccountType      domain.AccountType      `json:"accountType"`
	BalanceDirection domain.BalanceDirection `json:"balanceDirection"`
	ParentAccountID  string                  `json:"parentAccountID"`
	Description      string                  `json:"description"`
	IsActive         bool                    `json:"isActive"`
	CreatedAt        time.Time               `json:"createdAt"`
	CreatedBy        string                  `json:"createdBy"`
	LastUpdatedAt    time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy    string                  `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		TenantID:         int64(acc.TenantID),
		Code:             acc.Code,
		Name:             acc.Name,
		AccountType:      acc.AccountType,
		BalanceDirection: acc.BalanceDirection,
		ParentAccountID:  acc.ParentAccountID,
		Description:      acc.Description,
		IsActive:         acc.IsActive,
		CreatedAt:        acc.CreatedAt,
		CreatedBy:        acc.CreatedBy,
		LastUpdatedAt:    acc.LastUpdatedAt,
		LastUpdatedBy:    acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account to DTOs.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
