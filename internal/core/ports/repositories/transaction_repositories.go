package repositories

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionUpdate carries the optional fields of a partial update. Nil
// fields are left untouched by the store.
type TransactionUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
}

// TransactionReader defines read operations for transaction data. Every
// lookup is scoped to an owner; a record owned by someone else is
// indistinguishable from an absent one.
type TransactionReader interface {
	// FindTransactions retrieves the owner's transactions matching the
	// filter, in insertion (created_at) order.
	FindTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error)

	// FindTransactionByID retrieves a single transaction by (id, ownerID).
	// Returns apperrors.ErrNotFound when absent or not owned.
	FindTransactionByID(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data. Each
// operation touches a single record and is atomic at the row level.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransactionFields applies a partial update and returns the
	// resulting record. Returns apperrors.ErrNotFound when absent or not owned.
	UpdateTransactionFields(ctx context.Context, transactionID, ownerID string, update TransactionUpdate, updatedBy string) (*domain.Transaction, error)

	// SetTransactionDone sets the done flag to an explicit value.
	SetTransactionDone(ctx context.Context, transactionID, ownerID string, done bool, updatedBy string) (*domain.Transaction, error)

	// ToggleTransactionDone flips the done flag in a single atomic statement
	// and returns the resulting record.
	ToggleTransactionDone(ctx context.Context, transactionID, ownerID string, updatedBy string) (*domain.Transaction, error)

	// DeleteTransaction permanently removes the record.
	// Returns apperrors.ErrNotFound when absent or not owned.
	DeleteTransaction(ctx context.Context, transactionID, ownerID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
