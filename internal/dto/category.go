package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a report bucketing
// category.
type CreateCategoryRequest struct {
	Name             string              `json:"name" binding:"required"`
	CategoryType     domain.CategoryType `json:"categoryType" binding:"required,oneof=INCOME EXPENSE"`
	ParentCategoryID *string             `json:"parentCategoryID"`
	AccountID        *string             `json:"accountID"`
}

// CategoryResponse mirrors domain.Category.
type CategoryResponse struct {
	CategoryID       string              `json:"categoryID"`
	TenantID         int64               `json:"tenantID"`
	Name             string              `json:"name"`
	CategoryType     domain.CategoryType `json:"categoryType"`
	ParentCategoryID string              `json:"parentCategoryID"`
	AccountID        string              `json:"accountID"`
	CreatedAt        time.Time           `json:"createdAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:       cat.CategoryID,
		TenantID:         int64(cat.TenantID),
		Name:             cat.Name,
		CategoryType:     cat.CategoryType,
		ParentCategoryID: cat.ParentCategoryID,
		AccountID:        cat.AccountID,
		CreatedAt:        cat.CreatedAt,
	}
}

// ToCategoryResponses converts a slice of domain.Category to DTOs.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}
