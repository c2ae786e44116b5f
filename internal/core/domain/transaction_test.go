package domain_test

import (
	"testing"

	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_SignConvention(t *testing.T) {
	tests := []struct {
		name        string
		amount      decimal.Decimal
		wantExpense bool
		wantIncome  bool
	}{
		{"positive amount is an expense", decimal.NewFromInt(500), true, false},
		{"negative amount is an income", decimal.NewFromInt(-3000), false, true},
		{"zero amount is neither", decimal.Zero, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{Amount: tt.amount}
			assert.Equal(t, tt.wantExpense, txn.IsExpense())
			assert.Equal(t, tt.wantIncome, txn.IsIncome())
		})
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		txn     domain.Transaction
		wantErr string
	}{
		{
			name: "valid transaction",
			txn:  domain.Transaction{Description: "groceries", Category: "food"},
		},
		{
			name:    "missing description",
			txn:     domain.Transaction{Description: "  ", Category: "food"},
			wantErr: "description is required",
		},
		{
			name:    "missing category",
			txn:     domain.Transaction{Description: "groceries", Category: ""},
			wantErr: "category is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.txn.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}
