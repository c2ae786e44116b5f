package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/expensio/expensio_backend/internal/dto"
)

// TransactionSvcFacade defines the mutation and listing operations over a
// user's transactions. The ownerID of every call is the already
// authenticated caller; services never authenticate.
type TransactionSvcFacade interface {
	// CreateTransaction validates and persists a new transaction for the owner.
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// ListTransactions returns the owner's transactions matching the filter.
	ListTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// GetTransactionByID returns a single transaction scoped by (id, ownerID).
	GetTransactionByID(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error)

	// UpdateTransaction applies a partial update; omitted fields are untouched.
	UpdateTransaction(ctx context.Context, transactionID, ownerID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// SetTransactionDone sets the done flag to the supplied value, or flips
	// the current value when done is nil.
	SetTransactionDone(ctx context.Context, transactionID, ownerID string, done *bool) (*domain.Transaction, error)

	// DeleteTransaction permanently removes the record.
	DeleteTransaction(ctx context.Context, transactionID, ownerID string) error
}
