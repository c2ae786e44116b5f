package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense record belonging to one user.
//
// Sign convention: a positive amount is an expense, a negative amount is an
// income, and the magnitude is the money value. Every aggregate in the
// reporting layer is derived from this rule.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID)
	OwnerID       string          `json:"ownerID"`       // FK -> users.user_id; set at creation, never mutated
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"` // free text; the suggested category list is a UI affordance
	Done          bool            `json:"done"`     // completion flag, orthogonal to the income/expense sign
	AuditFields
}

// SuggestedCategories is the enumerated set offered by clients. It is not a
// validated domain constraint; any non-empty string is a legal category.
var SuggestedCategories = []string{
	"bills", "entertainment", "food", "groceries", "miscellaneous",
	"rent", "shopping", "subscription", "salary",
}

// Validate checks the field constraints required at creation time.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("description is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

// IsExpense reports whether the transaction is an expense (amount > 0).
// A zero amount is neither an expense nor an income.
func (t Transaction) IsExpense() bool {
	return t.Amount.Sign() > 0
}

// IsIncome reports whether the transaction is an income (amount < 0).
func (t Transaction) IsIncome() bool {
	return t.Amount.Sign() < 0
}

// EffectiveDate is the timestamp used for all period and month bucketing.
func (t Transaction) EffectiveDate() time.Time {
	return t.CreatedAt
}
