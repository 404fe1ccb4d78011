package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
)

// ErrCategoryTypeMismatch indicates a parent category of the opposite type.
var ErrCategoryTypeMismatch = errors.New("parent category type does not match")

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
	accountRepo  portsrepo.AccountRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo portsrepo.CategoryRepository, accountRepo portsrepo.AccountRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo, accountRepo: accountRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, tenantID domain.TenantID, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	parentID := ""
	if req.ParentCategoryID != nil {
		parentID = *req.ParentCategoryID
		parent, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, parentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent category",
				slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent category: %w", err)
		}
		if parent.CategoryType != req.CategoryType {
			return nil, fmt.Errorf("%w: parent is %s, child is %s",
				ErrCategoryTypeMismatch, parent.CategoryType, req.CategoryType)
		}
	}

	accountID := ""
	if req.AccountID != nil {
		accountID = *req.AccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID); err != nil {
			s.LogError(ctx, err, "Failed to find linked account",
				slog.String("account_id", accountID))
			return nil, fmt.Errorf("invalid linked account: %w", err)
		}
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:       uuid.NewString(),
		TenantID:         tenantID,
		Name:             req.Name,
		CategoryType:     req.CategoryType,
		ParentCategoryID: parentID,
		AccountID:        accountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category",
			slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created successfully",
		slog.String("category_id", category.CategoryID),
		slog.String("name", category.Name))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, tenantID domain.TenantID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category by ID",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, tenantID domain.TenantID) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories for tenant %s: %w", tenantID, err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}
