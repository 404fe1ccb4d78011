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

var (
	// ErrDuplicateAccountCode indicates the code is already taken within the
	// tenant.
	ErrDuplicateAccountCode = errors.New("account code already exists")
	// ErrParentTypeMismatch indicates a parent of a different account type.
	ErrParentTypeMismatch = errors.New("parent account type does not match")
	// ErrCircularHierarchy indicates a reparenting that would make an account
	// its own ancestor.
	ErrCircularHierarchy = errors.New("reparenting would create a cycle")
	// ErrHasActiveChildren blocks deactivating an account whose children are
	// still active.
	ErrHasActiveChildren = errors.New("account has active child accounts")
	// ErrHasChildren blocks deleting an account that still has children.
	ErrHasChildren = errors.New("account has child accounts")
	// ErrAccountHasPostings blocks deleting an account referenced by journal
	// lines.
	ErrAccountHasPostings = errors.New("account has journal postings")
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(repo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, tenantID domain.TenantID, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := domain.ValidateAccountCode(req.Code); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}
	if err := domain.ValidateTypeDirection(req.AccountType, req.BalanceDirection); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	// Tenant-unique code check
	existing, err := s.accountRepo.FindAccountByCode(ctx, tenantID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness",
			slog.String("code", req.Code))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateAccountCode, req.Code)
	}

	parentID := ""
	if req.ParentAccountID != nil {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, parentID)
		if err != nil {
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", parentID))
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent is %s, child is %s",
				ErrParentTypeMismatch, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		TenantID:         tenantID,
		Code:             req.Code,
		Name:             req.Name,
		AccountType:      req.AccountType,
		BalanceDirection: req.BalanceDirection,
		ParentAccountID:  parentID,
		Description:      req.Description,
		IsActive:         true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccountCode, req.Code)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, tenantID domain.TenantID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, tenantID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, tenantID domain.TenantID, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, tenantID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code",
				slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, tenantID domain.TenantID) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, tenantID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts for tenant %s: %w", tenantID, err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) ListChildAccounts(ctx context.Context, tenantID domain.TenantID, accountID string) ([]domain.Account, error) {
	if _, err := s.GetAccountByID(ctx, tenantID, accountID); err != nil {
		return nil, err
	}
	children, err := s.accountRepo.ListChildAccounts(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list child accounts",
			slog.String("account_id", accountID))
		return nil, err
	}
	if children == nil {
		return []domain.Account{}, nil
	}
	return children, nil
}

func (s *accountService) ReparentAccount(ctx context.Context, tenantID domain.TenantID, accountID string, req dto.ReparentAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, tenantID, accountID)
	if err != nil {
		return nil, err
	}

	newParentID := ""
	if req.NewParentAccountID != nil {
		newParentID = *req.NewParentAccountID
		if newParentID == accountID {
			return nil, fmt.Errorf("%w: account cannot parent itself", ErrCircularHierarchy)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, tenantID, newParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent account: %w", err)
		}
		if parent.AccountType != account.AccountType {
			return nil, fmt.Errorf("%w: parent is %s, child is %s",
				ErrParentTypeMismatch, parent.AccountType, account.AccountType)
		}
		// Walk the new parent's ancestor chain; finding the account there
		// means the move would close a loop.
		for cursor := parent; cursor.ParentAccountID != ""; {
			if cursor.ParentAccountID == accountID {
				return nil, fmt.Errorf("%w: %s is a descendant of %s",
					ErrCircularHierarchy, newParentID, accountID)
			}
			cursor, err = s.accountRepo.FindAccountByID(ctx, tenantID, cursor.ParentAccountID)
			if err != nil {
				return nil, fmt.Errorf("broken parent chain: %w", err)
			}
		}
	}

	now := time.Now()
	if err := s.accountRepo.UpdateAccountParent(ctx, tenantID, accountID, newParentID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reparent account",
			slog.String("account_id", accountID),
			slog.String("new_parent_id", newParentID))
		return nil, err
	}

	account.ParentAccountID = newParentID
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	s.LogInfo(ctx, "Account reparented successfully",
		slog.String("account_id", accountID),
		slog.String("new_parent_id", newParentID))
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, tenantID domain.TenantID, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, tenantID, accountID); err != nil {
		return err
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list child accounts",
			slog.String("account_id", accountID))
		return err
	}
	for _, child := range children {
		if child.IsActive {
			return fmt.Errorf("%w: %s", ErrHasActiveChildren, child.AccountID)
		}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, tenantID, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully",
		slog.String("account_id", accountID))
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, tenantID domain.TenantID, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, tenantID, accountID); err != nil {
		return err
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list child accounts",
			slog.String("account_id", accountID))
		return err
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: %d children", ErrHasChildren, len(children))
	}

	hasPostings, err := s.accountRepo.HasJournalPostings(ctx, tenantID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal postings",
			slog.String("account_id", accountID))
		return err
	}
	if hasPostings {
		return fmt.Errorf("%w: %s", ErrAccountHasPostings, accountID)
	}

	if err := s.accountRepo.DeleteAccount(ctx, tenantID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully",
		slog.String("account_id", accountID),
		slog.String("deleted_by", userID))
	return nil
}
