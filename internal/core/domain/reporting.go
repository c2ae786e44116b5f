package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodTotals holds the expense and income sub-totals for one time window,
// both as absolute magnitudes.
type PeriodTotals struct {
	Expense decimal.Decimal `json:"expense"`
	Income  decimal.Decimal `json:"income"`
}

// MonthlyTrendPoint is one month of the twelve-point trend series. Expense
// is the raw (positive) total; chart-oriented sign flipping belongs to the
// presentation layer.
type MonthlyTrendPoint struct {
	Month   string          `json:"month"` // "Jan" .. "Dec"
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// OverviewReport is the dashboard aggregate for one owner's transactions.
//
// TotalIncome/TotalExpense/NetSavings cover the whole transaction set.
// TotalPending is the signed sum over not-done transactions, an at-a-glance
// outstanding figure distinct from the sign-split totals. The four period
// windows are cumulative from their start, not trailing durations. The
// monthly trend always has exactly 12 entries and only current-year
// transactions contribute to it, even though they still count toward the
// global totals.
type OverviewReport struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetSavings   decimal.Decimal `json:"netSavings"`
	TotalPending decimal.Decimal `json:"totalPending"`

	Today     PeriodTotals `json:"today"`
	ThisWeek  PeriodTotals `json:"thisWeek"`
	ThisMonth PeriodTotals `json:"thisMonth"`
	ThisYear  PeriodTotals `json:"thisYear"`

	MonthlyTrend []MonthlyTrendPoint `json:"monthlyTrend"`
}

// CategoryAmount is an aggregated total for one category.
type CategoryAmount struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// DistributionSort selects the ordering of category distribution lists.
type DistributionSort string

const (
	// SortByAmount orders categories by total, descending.
	SortByAmount DistributionSort = "amount"
	// SortByName orders categories lexicographically by name, ascending.
	SortByName DistributionSort = "name"
)

// CategoryDistribution partitions one month's transactions into per-category
// expense and income totals. Income totals are stored as magnitudes.
type CategoryDistribution struct {
	Month        string           `json:"month"` // "YYYY-MM" key
	Expense      []CategoryAmount `json:"expense"`
	Income       []CategoryAmount `json:"income"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	TotalIncome  decimal.Decimal  `json:"totalIncome"`
}

// DayGroup is a display grouping of transactions sharing a calendar day.
// Within a group the original relative order of the list is preserved.
type DayGroup struct {
	Date         time.Time     `json:"date"`
	Label        string        `json:"label"` // e.g. "March 05, 2025"
	Transactions []Transaction `json:"transactions"`
}
