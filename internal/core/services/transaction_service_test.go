package services_test

import (
	"context"
	"testing"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }
func stringPtr(s string) *string                    { return &s }
func boolPtr(b bool) *bool                          { return &b }

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	service  portssvc.TransactionSvcFacade
	ownerID  string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	suite.service = services.NewTransactionService(suite.mockRepo)
	suite.ownerID = uuid.NewString()
}

// --- CreateTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "weekly groceries",
		Amount:      decimalPtr(decimal.NewFromInt(500)),
		Category:    "food",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.OwnerID == suite.ownerID &&
			txn.Description == "weekly groceries" &&
			txn.Amount.Equal(decimal.NewFromInt(500)) &&
			!txn.Done &&
			txn.TransactionID != ""
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	// New transactions always start pending.
	suite.False(txn.Done)
	suite.Equal(suite.ownerID, txn.CreatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Description: "groceries", Category: "food"}

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BlankDescription() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "   ",
		Amount:      decimalPtr(decimal.NewFromInt(100)),
		Category:    "food",
	}

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction")
}

// --- ListTransactions Tests ---

func (suite *TransactionServiceTestSuite) TestListTransactions_NilBecomesEmptySlice() {
	ctx := context.Background()
	filter := domain.TransactionFilter{}
	suite.mockRepo.On("FindTransactions", ctx, suite.ownerID, filter).Return(nil, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.ownerID, filter)

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- UpdateTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoFields() {
	ctx := context.Background()

	txn, err := suite.service.UpdateTransaction(ctx, "txn-1", suite.ownerID, dto.UpdateTransactionRequest{})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransactionFields")
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EmptyCategoryRejected() {
	ctx := context.Background()
	req := dto.UpdateTransactionRequest{Category: stringPtr("  ")}

	txn, err := suite.service.UpdateTransaction(ctx, "txn-1", suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransactionFields")
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_PassesOnlySuppliedFields() {
	ctx := context.Background()
	newAmount := decimalPtr(decimal.NewFromInt(-2500))
	req := dto.UpdateTransactionRequest{Amount: newAmount}
	updated := &domain.Transaction{TransactionID: "txn-1", Amount: *newAmount}

	suite.mockRepo.On("UpdateTransactionFields", ctx, "txn-1", suite.ownerID, mock.MatchedBy(func(u portsrepo.TransactionUpdate) bool {
		return u.Description == nil && u.Category == nil && u.Amount != nil && u.Amount.Equal(*newAmount)
	}), suite.ownerID).Return(updated, nil).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "txn-1", suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Equal(updated, txn)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	req := dto.UpdateTransactionRequest{Description: stringPtr("renamed")}

	suite.mockRepo.On("UpdateTransactionFields", ctx, "missing", suite.ownerID, mock.AnythingOfType("repositories.TransactionUpdate"), suite.ownerID).
		Return(nil, apperrors.ErrNotFound).Once()

	txn, err := suite.service.UpdateTransaction(ctx, "missing", suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- SetTransactionDone Tests ---

func (suite *TransactionServiceTestSuite) TestSetTransactionDone_ExplicitValueSets() {
	ctx := context.Background()
	updated := &domain.Transaction{TransactionID: "txn-1", Done: true}

	suite.mockRepo.On("SetTransactionDone", ctx, "txn-1", suite.ownerID, true, suite.ownerID).Return(updated, nil).Once()

	txn, err := suite.service.SetTransactionDone(ctx, "txn-1", suite.ownerID, boolPtr(true))

	suite.Require().NoError(err)
	suite.True(txn.Done)
	suite.mockRepo.AssertNotCalled(suite.T(), "ToggleTransactionDone")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestSetTransactionDone_NilValueToggles() {
	ctx := context.Background()
	updated := &domain.Transaction{TransactionID: "txn-1", Done: true}

	suite.mockRepo.On("ToggleTransactionDone", ctx, "txn-1", suite.ownerID, suite.ownerID).Return(updated, nil).Once()

	txn, err := suite.service.SetTransactionDone(ctx, "txn-1", suite.ownerID, nil)

	suite.Require().NoError(err)
	suite.True(txn.Done)
	suite.mockRepo.AssertNotCalled(suite.T(), "SetTransactionDone")
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeleteTransaction Tests ---

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFoundPropagates() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteTransaction", ctx, "missing", suite.ownerID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, "missing", suite.ownerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_Success() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteTransaction", ctx, "txn-1", suite.ownerID).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, "txn-1", suite.ownerID)

	assert.NoError(suite.T(), err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
