package dto

import (
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// The owner is taken from the authenticated caller, never from the body.
// Amount follows the sign convention: positive = expense, negative = income.
type CreateTransactionRequest struct {
	Description string           `json:"description" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
}

// SetDoneRequest carries the optional explicit done value. When Done is nil
// the current value is flipped.
type SetDoneRequest struct {
	Done *bool `json:"done"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Category string `form:"category"`
	Done     string `form:"done"`
	Search   string `form:"search"`
	Grouped  bool   `form:"grouped"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Done          bool            `json:"done"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// MutationResponse wraps a single transaction with the success/message shape
// the clients consume.
type MutationResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ListTransactionsResponse wraps the transaction list.
type ListTransactionsResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Transactions []TransactionResponse `json:"transactions"`
}

// DayGroupResponse is one calendar day of the grouped transaction view.
type DayGroupResponse struct {
	Date         string                `json:"date"` // "YYYY-MM-DD"
	Label        string                `json:"label"`
	Transactions []TransactionResponse `json:"transactions"`
}

// GroupedTransactionsResponse wraps the day-grouped transaction view.
type GroupedTransactionsResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Groups  []DayGroupResponse `json:"groups"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Description:   t.Description,
		Amount:        t.Amount,
		Category:      t.Category,
		Done:          t.Done,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// ToDayGroupResponses converts domain day groups to their response DTOs.
func ToDayGroupResponses(groups []domain.DayGroup) []DayGroupResponse {
	out := make([]DayGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = DayGroupResponse{
			Date:         g.Date.Format("2006-01-02"),
			Label:        g.Label,
			Transactions: ToTransactionResponses(g.Transactions),
		}
	}
	return out
}
