package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/dto"
	"github.com/google/uuid"
)

// transactionService is the mutation gateway for transaction records. It
// validates input and enforces owner scoping before anything reaches the
// store; each operation touches exactly one record.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{transactionRepo: repo}
}

// Ensure transactionService implements the facade
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount == nil {
		return nil, fmt.Errorf("amount is required: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		Description:   strings.TrimSpace(req.Description),
		Amount:        *req.Amount,
		Category:      strings.TrimSpace(req.Category),
		Done:          false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := txn.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrValidation)
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction in repository", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("category", txn.Category))
	return &txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.FindTransactions(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions from repository")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}

	s.LogDebug(ctx, "Transactions listed", slog.Int("count", len(txns)))
	return txns, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID in repository", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

// UpdateTransaction applies a partial update: only supplied fields change.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID, ownerID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	if req.Description == nil && req.Amount == nil && req.Category == nil {
		return nil, fmt.Errorf("no fields to update: %w", apperrors.ErrValidation)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return nil, fmt.Errorf("description cannot be empty: %w", apperrors.ErrValidation)
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return nil, fmt.Errorf("category cannot be empty: %w", apperrors.ErrValidation)
	}

	update := portsrepo.TransactionUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}

	txn, err := s.transactionRepo.UpdateTransactionFields(ctx, transactionID, ownerID, update, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update transaction in repository", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

// SetTransactionDone sets the completion flag. With an explicit value the
// write is a plain idempotent set; without one the store flips the current
// value atomically.
func (s *transactionService) SetTransactionDone(ctx context.Context, transactionID, ownerID string, done *bool) (*domain.Transaction, error) {
	var txn *domain.Transaction
	var err error

	if done != nil {
		txn, err = s.transactionRepo.SetTransactionDone(ctx, transactionID, ownerID, *done, ownerID)
	} else {
		txn, err = s.transactionRepo.ToggleTransactionDone(ctx, transactionID, ownerID, ownerID)
	}
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to set done on transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction done flag set", slog.String("transaction_id", transactionID), slog.Bool("done", txn.Done))
	return txn, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID, ownerID string) error {
	err := s.transactionRepo.DeleteTransaction(ctx, transactionID, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction in repository", slog.String("transaction_id", transactionID))
		}
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
