package models

import "github.com/shopspring/decimal"

// Transaction is the database representation of a transaction row.
type Transaction struct {
	TransactionID string
	OwnerID       string
	Description   string
	Amount        decimal.Decimal
	Category      string
	Done          bool
	AuditFields
}
