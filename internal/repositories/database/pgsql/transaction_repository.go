package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/apperrors"
	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	"github.com/expensio/expensio_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

// Ensure PgxTransactionRepository implements the facade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, owner_id, description, amount, category, done, created_at, created_by, last_updated_at, last_updated_by`

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		Description:   m.Description,
		Amount:        m.Amount,
		Category:      m.Category,
		Done:          m.Done,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Description,
		&m.Amount,
		&m.Category,
		&m.Done,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
        INSERT INTO transactions (transaction_id, owner_id, description, amount, category, done, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.OwnerID,
		txn.Description,
		txn.Amount,
		txn.Category,
		txn.Done,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// FindTransactions returns the owner's transactions matching the filter in
// insertion order. The category constraint mirrors the filter resolver: a
// case-insensitive substring match.
func (r *PgxTransactionRepository) FindTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1`
	args := []any{ownerID}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category ILIKE '%%' || $%d || '%%'", len(args))
	}
	switch filter.Done {
	case domain.DoneOnly:
		query += " AND done = TRUE"
	case domain.UndoneOnly:
		query += " AND done = FALSE"
	}
	query += " ORDER BY created_at ASC, transaction_id ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND owner_id = $2;`

	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// UpdateTransactionFields applies only the non-nil fields of the update.
func (r *PgxTransactionRepository) UpdateTransactionFields(ctx context.Context, transactionID, ownerID string, update portsrepo.TransactionUpdate, updatedBy string) (*domain.Transaction, error) {
	setClauses := []string{}
	args := []any{}

	addSet := func(column string, value any) {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Description != nil {
		addSet("description", *update.Description)
	}
	if update.Amount != nil {
		addSet("amount", *update.Amount)
	}
	if update.Category != nil {
		addSet("category", *update.Category)
	}
	addSet("last_updated_at", time.Now())
	addSet("last_updated_by", updatedBy)

	args = append(args, transactionID, ownerID)
	query := fmt.Sprintf(`
        UPDATE transactions SET %s
        WHERE transaction_id = $%d AND owner_id = $%d
        RETURNING %s;`,
		strings.Join(setClauses, ", "), len(args)-1, len(args), transactionColumns)

	m, err := scanTransaction(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

func (r *PgxTransactionRepository) SetTransactionDone(ctx context.Context, transactionID, ownerID string, done bool, updatedBy string) (*domain.Transaction, error) {
	query := `
        UPDATE transactions
        SET done = $1, last_updated_at = $2, last_updated_by = $3
        WHERE transaction_id = $4 AND owner_id = $5
        RETURNING ` + transactionColumns + `;`

	m, err := scanTransaction(r.db.QueryRow(ctx, query, done, time.Now(), updatedBy, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to set done on transaction %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

// ToggleTransactionDone flips the done flag in one statement. The negation
// happens inside the database, so concurrent bare toggles serialize on the
// row instead of racing through a read-then-write.
func (r *PgxTransactionRepository) ToggleTransactionDone(ctx context.Context, transactionID, ownerID string, updatedBy string) (*domain.Transaction, error) {
	query := `
        UPDATE transactions
        SET done = NOT done, last_updated_at = $1, last_updated_by = $2
        WHERE transaction_id = $3 AND owner_id = $4
        RETURNING ` + transactionColumns + `;`

	m, err := scanTransaction(r.db.QueryRow(ctx, query, time.Now(), updatedBy, transactionID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle done on transaction %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	return &d, nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, ownerID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1 AND owner_id = $2;`

	cmdTag, err := r.db.Exec(ctx, query, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
