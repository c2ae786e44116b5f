package dto

import (
	"github.com/expensio/expensio_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodTotalsResponse is the expense/income pair for one time window.
type PeriodTotalsResponse struct {
	Expense decimal.Decimal `json:"expense"`
	Income  decimal.Decimal `json:"income"`
}

// TrendPointResponse is one month of the trend series. ExpenseNegated is the
// sign-flipped expense total used for downward bar rendering; the raw value
// stays available alongside it.
type TrendPointResponse struct {
	Month          string          `json:"month"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	ExpenseNegated decimal.Decimal `json:"expenseNegated"`
}

// OverviewResponse is the dashboard report payload.
type OverviewResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetSavings   decimal.Decimal `json:"netSavings"`
	TotalPending decimal.Decimal `json:"totalPending"`

	Today     PeriodTotalsResponse `json:"today"`
	ThisWeek  PeriodTotalsResponse `json:"thisWeek"`
	ThisMonth PeriodTotalsResponse `json:"thisMonth"`
	ThisYear  PeriodTotalsResponse `json:"thisYear"`

	MonthlyTrend []TrendPointResponse `json:"monthlyTrend"`
}

// CategoryDistributionParams defines query parameters for the distribution report.
type CategoryDistributionParams struct {
	Month  string `form:"month" binding:"omitempty,yearmonth"`
	Filter string `form:"filter"`
	Sort   string `form:"sort,default=amount" binding:"omitempty,oneof=amount name"`
}

// CategoryAmountResponse is one category's aggregated total.
type CategoryAmountResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryDistributionResponse is the month-keyed distribution payload.
type CategoryDistributionResponse struct {
	Month        string                   `json:"month"`
	Expense      []CategoryAmountResponse `json:"expense"`
	Income       []CategoryAmountResponse `json:"income"`
	TotalExpense decimal.Decimal          `json:"totalExpense"`
	TotalIncome  decimal.Decimal          `json:"totalIncome"`
}

// ToOverviewResponse converts a domain overview report to its response DTO.
func ToOverviewResponse(r *domain.OverviewReport) OverviewResponse {
	resp := OverviewResponse{
		TotalIncome:  r.TotalIncome,
		TotalExpense: r.TotalExpense,
		NetSavings:   r.NetSavings,
		TotalPending: r.TotalPending,
		Today:        PeriodTotalsResponse(r.Today),
		ThisWeek:     PeriodTotalsResponse(r.ThisWeek),
		ThisMonth:    PeriodTotalsResponse(r.ThisMonth),
		ThisYear:     PeriodTotalsResponse(r.ThisYear),
		MonthlyTrend: make([]TrendPointResponse, len(r.MonthlyTrend)),
	}
	for i, p := range r.MonthlyTrend {
		resp.MonthlyTrend[i] = TrendPointResponse{
			Month:          p.Month,
			Income:         p.Income,
			Expense:        p.Expense,
			ExpenseNegated: p.Expense.Neg(),
		}
	}
	return resp
}

// ToCategoryDistributionResponse converts a domain distribution to its response DTO.
func ToCategoryDistributionResponse(d *domain.CategoryDistribution) CategoryDistributionResponse {
	resp := CategoryDistributionResponse{
		Month:        d.Month,
		Expense:      make([]CategoryAmountResponse, len(d.Expense)),
		Income:       make([]CategoryAmountResponse, len(d.Income)),
		TotalExpense: d.TotalExpense,
		TotalIncome:  d.TotalIncome,
	}
	for i, e := range d.Expense {
		resp.Expense[i] = CategoryAmountResponse{Category: e.Category, Total: e.Total}
	}
	for i, in := range d.Income {
		resp.Income[i] = CategoryAmountResponse{Category: in.Category, Total: in.Total}
	}
	return resp
}
