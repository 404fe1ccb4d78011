package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockCategoryRepo)
}

func (suite *TransactionServiceTestSuite) draftTxn(status domain.TransactionStatus) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   "txn-1",
		TenantID:        testTenant,
		TransactionType: domain.IncomeTransaction,
		Money:           domain.NewMoney(decimal.NewFromInt(100), "CNY"),
		TransactionDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:          status,
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TransactionType: domain.IncomeTransaction,
		Amount:          decimal.RequireFromString("1000.00"),
		CurrencyCode:    "CNY",
		TransactionDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:     "Consulting fee",
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, testTenant, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.TransactionDraft, txn.Status)
	suite.Equal("user-1", txn.CreatedBy)
	suite.True(txn.Money.Equal(domain.NewMoney(decimal.RequireFromString("1000.00"), "CNY")))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		TransactionType: domain.ExpenseTransaction,
		Amount:          decimal.Zero,
		CurrencyCode:    "CNY",
		TransactionDate: time.Now(),
	}

	_, err := suite.service.CreateTransaction(ctx, testTenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownCategory() {
	ctx := context.Background()
	categoryID := "missing-cat"
	req := dto.CreateTransactionRequest{
		TransactionType: domain.IncomeTransaction,
		Amount:          decimal.NewFromInt(50),
		CurrencyCode:    "CNY",
		TransactionDate: time.Now(),
		CategoryID:      &categoryID,
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, testTenant, categoryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, testTenant, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Draft() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionDraft)
	newAmount := decimal.RequireFromString("250.00")
	newDescription := "Adjusted"

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionDetails", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, testTenant, "txn-1", dto.UpdateTransactionRequest{
		Amount:      &newAmount,
		Description: &newDescription,
	}, "user-2")

	suite.Require().NoError(err)
	suite.True(updated.Money.Amount.Equal(newAmount))
	suite.Equal("Adjusted", updated.Description)
	suite.Equal("user-2", updated.LastUpdatedBy)
	// Currency is never changed by an amount update
	suite.Equal("CNY", updated.Money.CurrencyCode)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotModifiable() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionApproved)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, testTenant, "txn-1", dto.UpdateTransactionRequest{}, "user-1")

	suite.ErrorIs(err, domain.ErrTransactionNotModifiable)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionDetails", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_ConcurrentApproval() {
	// Row left DRAFT between the read and the guarded update
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionDraft)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionDetails", ctx, mock.AnythingOfType("domain.Transaction")).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.UpdateTransaction(ctx, testTenant, "txn-1", dto.UpdateTransactionRequest{}, "user-1")

	suite.ErrorIs(err, domain.ErrTransactionNotModifiable)
}

func (suite *TransactionServiceTestSuite) TestApproveTransaction_Success() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionDraft)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()
	suite.mockTxnRepo.On("TransitionTransactionStatus", ctx, mock.AnythingOfType("domain.Transaction"), domain.TransactionDraft).Return(nil).Once()

	approved, err := suite.service.ApproveTransaction(ctx, testTenant, "txn-1", "approver-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionApproved, approved.Status)
	suite.Equal("approver-1", approved.ApprovedBy)
	suite.NotNil(approved.ApprovedAt)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestApproveTransaction_AlreadyApproved() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionApproved)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()

	_, err := suite.service.ApproveTransaction(ctx, testTenant, "txn-1", "approver-1")

	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "TransitionTransactionStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestApproveTransaction_LostRace() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionDraft)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()
	suite.mockTxnRepo.On("TransitionTransactionStatus", ctx, mock.AnythingOfType("domain.Transaction"), domain.TransactionDraft).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ApproveTransaction(ctx, testTenant, "txn-1", "approver-1")

	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_Success() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionDraft)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()
	suite.mockTxnRepo.On("TransitionTransactionStatus", ctx, mock.AnythingOfType("domain.Transaction"), domain.TransactionDraft).Return(nil).Once()

	cancelled, err := suite.service.CancelTransaction(ctx, testTenant, "txn-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionCancelled, cancelled.Status)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_Success() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionApproved)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()
	suite.mockTxnRepo.On("TransitionTransactionStatus", ctx, mock.AnythingOfType("domain.Transaction"), domain.TransactionApproved).Return(nil).Once()

	voided, err := suite.service.VoidTransaction(ctx, testTenant, "txn-1", dto.VoidTransactionRequest{Reason: "duplicate"}, "auditor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionVoided, voided.Status)
	suite.Equal("duplicate", voided.VoidReason)
	suite.Equal("auditor-1", voided.VoidedBy)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_MissingReason() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionApproved)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()

	_, err := suite.service.VoidTransaction(ctx, testTenant, "txn-1", dto.VoidTransactionRequest{}, "auditor-1")

	suite.ErrorIs(err, domain.ErrVoidReasonRequired)
}

func (suite *TransactionServiceTestSuite) TestVoidTransaction_FromDraft() {
	ctx := context.Background()
	txn := suite.draftTxn(domain.TransactionDraft)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, testTenant, "txn-1").Return(txn, nil).Once()

	_, err := suite.service.VoidTransaction(ctx, testTenant, "txn-1", dto.VoidTransactionRequest{Reason: "oops"}, "auditor-1")

	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultLimit() {
	ctx := context.Background()
	txns := []domain.Transaction{*suite.draftTxn(domain.TransactionDraft)}
	token := "next-page"

	suite.mockTxnRepo.On("ListTransactions", ctx, testTenant, 25, (*string)(nil)).Return(txns, &token, nil).Once()

	page, err := suite.service.ListTransactions(ctx, testTenant, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Len(page.Transactions, 1)
	suite.Require().NotNil(page.NextToken)
	suite.Equal("next-page", *page.NextToken)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
