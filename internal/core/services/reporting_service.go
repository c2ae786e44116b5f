package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService is the aggregation engine. It reads an owner-scoped
// transaction snapshot from the store and folds it into the derived views;
// it never writes and holds no state between calls.
type reportingService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	now             func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service.
type ReportingServiceOption func(*reportingService)

// WithClock overrides the reference "now" used for period bucketing.
func WithClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options.
func NewReportingService(repo portsrepo.TransactionRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingSvcFacade {
	svc := &reportingService{
		transactionRepo: repo,
		now:             time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure reportingService implements the facade
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// Overview computes the dashboard aggregate over every transaction the
// owner has.
func (s *reportingService) Overview(ctx context.Context, ownerID string) (*domain.OverviewReport, error) {
	txns, err := s.transactionRepo.FindTransactions(ctx, ownerID, domain.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for overview")
		return nil, fmt.Errorf("failed to retrieve transactions for overview: %w", err)
	}

	report := computeOverview(txns, s.now())

	s.LogInfo(ctx, "Overview report generated",
		slog.Int("transaction_count", len(txns)))
	return report, nil
}

// CategoryDistribution computes per-category totals for one "YYYY-MM" month.
func (s *reportingService) CategoryDistribution(ctx context.Context, ownerID, monthKey, nameFilter string, sortMode domain.DistributionSort) (*domain.CategoryDistribution, error) {
	txns, err := s.transactionRepo.FindTransactions(ctx, ownerID, domain.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for category distribution",
			slog.String("month", monthKey))
		return nil, fmt.Errorf("failed to retrieve transactions for category distribution: %w", err)
	}

	dist := computeDistribution(txns, monthKey, nameFilter, sortMode)

	s.LogInfo(ctx, "Category distribution generated",
		slog.String("month", monthKey),
		slog.Int("expense_categories", len(dist.Expense)),
		slog.Int("income_categories", len(dist.Income)))
	return dist, nil
}

// TransactionGroups returns the filtered, searched list grouped by calendar day.
func (s *reportingService) TransactionGroups(ctx context.Context, ownerID string, filter domain.TransactionFilter, search string) ([]domain.DayGroup, error) {
	txns, err := s.transactionRepo.FindTransactions(ctx, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve transactions for grouping")
		return nil, fmt.Errorf("failed to retrieve transactions for grouping: %w", err)
	}

	matched := txns[:0:0]
	for _, t := range txns {
		if domain.MatchesSearch(t, search) {
			matched = append(matched, t)
		}
	}

	return groupByDay(matched), nil
}

// computeOverview folds the transaction set into the overview report.
//
// Sign split: positive amounts accumulate into expense totals, negative
// amounts into income totals as magnitudes; zero amounts contribute to
// neither. The pending total is the signed sum over not-done transactions.
func computeOverview(txns []domain.Transaction, now time.Time) *domain.OverviewReport {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	// Sunday-based week, matching the reference design.
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfYear := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	report := &domain.OverviewReport{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		NetSavings:   decimal.Zero,
		TotalPending: decimal.Zero,
		Today:        zeroPeriod(),
		ThisWeek:     zeroPeriod(),
		ThisMonth:    zeroPeriod(),
		ThisYear:     zeroPeriod(),
	}

	trendIncome := make([]decimal.Decimal, 12)
	trendExpense := make([]decimal.Decimal, 12)
	for i := range trendIncome {
		trendIncome[i] = decimal.Zero
		trendExpense[i] = decimal.Zero
	}

	for _, t := range txns {
		date := t.EffectiveDate()
		abs := t.Amount.Abs()

		if t.IsIncome() {
			report.TotalIncome = report.TotalIncome.Add(abs)
		}
		if t.IsExpense() {
			report.TotalExpense = report.TotalExpense.Add(abs)
		}
		if !t.Done {
			report.TotalPending = report.TotalPending.Add(t.Amount)
		}

		// Windows are cumulative from their start, not trailing durations.
		if sameCalendarDay(date, now) {
			addToPeriod(&report.Today, t, abs)
		}
		if date.After(startOfWeek) {
			addToPeriod(&report.ThisWeek, t, abs)
		}
		if date.After(startOfMonth) {
			addToPeriod(&report.ThisMonth, t, abs)
		}
		if date.After(startOfYear) {
			addToPeriod(&report.ThisYear, t, abs)
		}

		// Only current-year transactions feed the trend; they still count
		// toward the global totals above.
		if date.Year() == now.Year() && date.After(startOfYear) {
			idx := int(date.Month()) - 1
			if t.IsIncome() {
				trendIncome[idx] = trendIncome[idx].Add(abs)
			}
			if t.IsExpense() {
				trendExpense[idx] = trendExpense[idx].Add(abs)
			}
		}
	}

	report.NetSavings = report.TotalIncome.Sub(report.TotalExpense)

	// Always 12 entries, January through December, zero-filled.
	report.MonthlyTrend = make([]domain.MonthlyTrendPoint, 12)
	for i := 0; i < 12; i++ {
		report.MonthlyTrend[i] = domain.MonthlyTrendPoint{
			Month:   time.Month(i + 1).String()[:3],
			Income:  trendIncome[i],
			Expense: trendExpense[i],
		}
	}

	return report
}

func zeroPeriod() domain.PeriodTotals {
	return domain.PeriodTotals{Expense: decimal.Zero, Income: decimal.Zero}
}

func addToPeriod(p *domain.PeriodTotals, t domain.Transaction, abs decimal.Decimal) {
	if t.IsExpense() {
		p.Expense = p.Expense.Add(abs)
	}
	if t.IsIncome() {
		p.Income = p.Income.Add(abs)
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// computeDistribution partitions one month's transactions into per-category
// expense and income totals. Amounts >= 0 land on the expense side (zero
// included, matching the reference), negative amounts land on the income
// side as magnitudes. The name filter applies to both sides independently
// and the grand totals are reduced from the filtered lists.
func computeDistribution(txns []domain.Transaction, monthKey, nameFilter string, sortMode domain.DistributionSort) *domain.CategoryDistribution {
	expenseTotals := map[string]decimal.Decimal{}
	incomeTotals := map[string]decimal.Decimal{}
	// Category order of first appearance keeps amount-sort tie-breaks
	// deterministic under a stable sort.
	expenseOrder := []string{}
	incomeOrder := []string{}

	for _, t := range txns {
		if t.EffectiveDate().Format("2006-01") != monthKey {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = "Others"
		}

		if t.Amount.Sign() >= 0 {
			if _, seen := expenseTotals[cat]; !seen {
				expenseOrder = append(expenseOrder, cat)
			}
			expenseTotals[cat] = expenseTotals[cat].Add(t.Amount)
		} else {
			if _, seen := incomeTotals[cat]; !seen {
				incomeOrder = append(incomeOrder, cat)
			}
			incomeTotals[cat] = incomeTotals[cat].Add(t.Amount.Abs())
		}
	}

	dist := &domain.CategoryDistribution{
		Month:   monthKey,
		Expense: toSortedCategoryList(expenseTotals, expenseOrder, nameFilter, sortMode),
		Income:  toSortedCategoryList(incomeTotals, incomeOrder, nameFilter, sortMode),
	}

	dist.TotalExpense = sumCategoryTotals(dist.Expense)
	dist.TotalIncome = sumCategoryTotals(dist.Income)
	return dist
}

func toSortedCategoryList(totals map[string]decimal.Decimal, order []string, nameFilter string, sortMode domain.DistributionSort) []domain.CategoryAmount {
	nameFilter = strings.ToLower(strings.TrimSpace(nameFilter))

	list := make([]domain.CategoryAmount, 0, len(order))
	for _, cat := range order {
		if nameFilter != "" && !strings.Contains(strings.ToLower(cat), nameFilter) {
			continue
		}
		list = append(list, domain.CategoryAmount{Category: cat, Total: totals[cat]})
	}

	switch sortMode {
	case domain.SortByName:
		sort.Slice(list, func(i, j int) bool {
			return list[i].Category < list[j].Category
		})
	default:
		// Descending by total; stable keeps first-appearance order on ties.
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Total.GreaterThan(list[j].Total)
		})
	}

	return list
}

func sumCategoryTotals(list []domain.CategoryAmount) decimal.Decimal {
	total := decimal.Zero
	for _, c := range list {
		total = total.Add(c.Total)
	}
	return total
}

// groupByDay partitions the list by calendar day, most recent day first.
// Input order is preserved within each group.
func groupByDay(txns []domain.Transaction) []domain.DayGroup {
	groups := []domain.DayGroup{}
	index := map[string]int{}

	for _, t := range txns {
		date := t.EffectiveDate()
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		key := day.Format("2006-01-02")

		i, ok := index[key]
		if !ok {
			groups = append(groups, domain.DayGroup{
				Date:  day,
				Label: day.Format("January 02, 2006"),
			})
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date.After(groups[j].Date)
	})

	return groups
}
