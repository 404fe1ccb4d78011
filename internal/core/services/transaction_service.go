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

const defaultTransactionPageSize = 25

// transactionService implements the TransactionSvcFacade interface
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txnRepo portsrepo.TransactionRepository, categoryRepo portsrepo.CategoryRepository) portssvc.TransactionSvcFacade {
	return &transactionService{txnRepo: txnRepo, categoryRepo: categoryRepo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, tenantID domain.TenantID, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, *req.CategoryID); err != nil {
			s.LogError(ctx, err, "Failed to find category for transaction",
				slog.String("category_id", *req.CategoryID))
			return nil, fmt.Errorf("invalid category: %w", err)
		}
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		TenantID:        tenantID,
		TransactionType: req.TransactionType,
		Money:           domain.NewMoney(req.Amount, req.CurrencyCode),
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		CategoryID:      deref(req.CategoryID),
		DepartmentID:    deref(req.DepartmentID),
		FundID:          deref(req.FundID),
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		IsRecurring:     req.IsRecurring,
		IsTaxable:       req.IsTaxable,
		Status:          domain.TransactionDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, tenantID domain.TenantID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, tenantID domain.TenantID, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionPageSize
	}
	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, tenantID, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}
	if !txn.CanModify() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrTransactionNotModifiable, txn.Status)
	}

	if req.Amount != nil {
		txn.Money = domain.NewMoney(*req.Amount, txn.Money.CurrencyCode)
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.categoryRepo.FindCategoryByID(ctx, tenantID, *req.CategoryID); err != nil {
				return nil, fmt.Errorf("invalid category: %w", err)
			}
		}
		txn.CategoryID = *req.CategoryID
	}
	if req.DepartmentID != nil {
		txn.DepartmentID = *req.DepartmentID
	}
	if req.FundID != nil {
		txn.FundID = *req.FundID
	}
	if req.PaymentMethod != nil {
		txn.PaymentMethod = *req.PaymentMethod
	}
	if req.ReferenceNumber != nil {
		txn.ReferenceNumber = *req.ReferenceNumber
	}

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	now := time.Now()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransactionDetails(ctx, *txn); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction left DRAFT concurrently", domain.ErrTransactionNotModifiable)
		}
		s.LogError(ctx, err, "Failed to update transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionService) ApproveTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, approverUserID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := txn.Approve(approverUserID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.txnRepo.TransitionTransactionStatus(ctx, *txn, domain.TransactionDraft); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction left DRAFT concurrently", domain.ErrInvalidStateTransition)
		}
		s.LogError(ctx, err, "Failed to approve transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction approved",
		slog.String("transaction_id", transactionID),
		slog.String("approved_by", approverUserID))
	return txn, nil
}

func (s *transactionService) CancelTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, userID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := txn.Cancel(userID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.txnRepo.TransitionTransactionStatus(ctx, *txn, domain.TransactionDraft); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction left DRAFT concurrently", domain.ErrInvalidStateTransition)
		}
		s.LogError(ctx, err, "Failed to cancel transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction cancelled",
		slog.String("transaction_id", transactionID))
	return txn, nil
}

func (s *transactionService) VoidTransaction(ctx context.Context, tenantID domain.TenantID, transactionID string, req dto.VoidTransactionRequest, userID string) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}

	if err := txn.Void(userID, req.Reason, time.Now()); err != nil {
		return nil, err
	}

	if err := s.txnRepo.TransitionTransactionStatus(ctx, *txn, domain.TransactionApproved); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction left APPROVED concurrently", domain.ErrInvalidStateTransition)
		}
		s.LogError(ctx, err, "Failed to void transaction",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction voided",
		slog.String("transaction_id", transactionID),
		slog.String("voided_by", userID))
	return txn, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
