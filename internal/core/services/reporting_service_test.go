package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/expensio/expensio_backend/internal/core/domain"
	portsrepo "github.com/expensio/expensio_backend/internal/core/ports/repositories"
	portssvc "github.com/expensio/expensio_backend/internal/core/ports/services"
	"github.com/expensio/expensio_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository (shared by the service test suites) ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactions(ctx context.Context, ownerID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, filter)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID, ownerID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionFields(ctx context.Context, transactionID, ownerID string, update portsrepo.TransactionUpdate, updatedBy string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerID, update, updatedBy)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) SetTransactionDone(ctx context.Context, transactionID, ownerID string, done bool, updatedBy string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerID, done, updatedBy)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ToggleTransactionDone(ctx context.Context, transactionID, ownerID string, updatedBy string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID, ownerID, updatedBy)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID, ownerID string) error {
	args := m.Called(ctx, transactionID, ownerID)
	return args.Error(0)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	now      time.Time
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTransactionRepository)
	// Saturday, March 15th 2025. The Sunday-based week starts March 9th.
	suite.now = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewReportingService(suite.mockRepo, services.WithClock(func() time.Time {
		return suite.now
	}))
}

func (suite *ReportingServiceTestSuite) txn(amount int64, category string, done bool, createdAt time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: category + createdAt.Format("20060102150405"),
		OwnerID:       "owner-1",
		Description:   category + " purchase",
		Amount:        decimal.NewFromInt(amount),
		Category:      category,
		Done:          done,
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			LastUpdatedAt: createdAt,
		},
	}
}

func (suite *ReportingServiceTestSuite) assertDecimal(expected int64, actual decimal.Decimal, msgAndArgs ...any) {
	suite.True(actual.Equal(decimal.NewFromInt(expected)), append([]any{"expected %d, got %s"}, expected, actual.String())...)
}

// --- Overview Tests ---

func (suite *ReportingServiceTestSuite) TestOverview_SignSplitAndPending() {
	ctx := context.Background()
	txns := []domain.Transaction{
		suite.txn(500, "food", false, suite.now),
		suite.txn(-3000, "salary", true, suite.now.AddDate(0, 0, -5)),
		suite.txn(200, "food", false, suite.now),
	}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return(txns, nil).Once()

	report, err := suite.service.Overview(ctx, "owner-1")

	suite.Require().NoError(err)
	suite.assertDecimal(700, report.TotalExpense)
	suite.assertDecimal(3000, report.TotalIncome)
	suite.assertDecimal(2300, report.NetSavings)
	// Pending is the signed sum over not-done transactions: 500 + 200.
	suite.assertDecimal(700, report.TotalPending)

	suite.assertDecimal(700, report.Today.Expense)
	suite.assertDecimal(0, report.Today.Income)
	suite.assertDecimal(700, report.ThisMonth.Expense)
	suite.assertDecimal(3000, report.ThisMonth.Income)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestOverview_EmptySetHasTwelveZeroTrendPoints() {
	ctx := context.Background()
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return([]domain.Transaction{}, nil).Once()

	report, err := suite.service.Overview(ctx, "owner-1")

	suite.Require().NoError(err)
	suite.Require().Len(report.MonthlyTrend, 12)
	suite.Equal("Jan", report.MonthlyTrend[0].Month)
	suite.Equal("Dec", report.MonthlyTrend[11].Month)
	for _, p := range report.MonthlyTrend {
		suite.assertDecimal(0, p.Income)
		suite.assertDecimal(0, p.Expense)
	}
	suite.assertDecimal(0, report.TotalIncome)
	suite.assertDecimal(0, report.TotalExpense)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestOverview_PriorYearCountsInTotalsButNotTrend() {
	ctx := context.Background()
	lastYear := time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		suite.txn(1000, "rent", true, lastYear),
	}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return(txns, nil).Once()

	report, err := suite.service.Overview(ctx, "owner-1")

	suite.Require().NoError(err)
	suite.assertDecimal(1000, report.TotalExpense)
	suite.assertDecimal(0, report.ThisYear.Expense)
	for _, p := range report.MonthlyTrend {
		suite.assertDecimal(0, p.Expense)
	}
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestOverview_PeriodWindowBoundaries() {
	ctx := context.Background()
	weekStart := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		// Exactly at the week start: excluded from the week (strict After),
		// still inside the month.
		suite.txn(100, "bills", true, weekStart),
		// The day after the week start: inside the week.
		suite.txn(50, "bills", true, weekStart.AddDate(0, 0, 1)),
		// Previous month, same year: in the year window only.
		suite.txn(30, "bills", true, time.Date(2025, time.February, 20, 9, 0, 0, 0, time.UTC)),
	}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return(txns, nil).Once()

	report, err := suite.service.Overview(ctx, "owner-1")

	suite.Require().NoError(err)
	suite.assertDecimal(0, report.Today.Expense)
	suite.assertDecimal(50, report.ThisWeek.Expense)
	suite.assertDecimal(150, report.ThisMonth.Expense)
	suite.assertDecimal(180, report.ThisYear.Expense)

	// February and March trend entries pick up their own months.
	suite.assertDecimal(30, report.MonthlyTrend[1].Expense)
	suite.assertDecimal(150, report.MonthlyTrend[2].Expense)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- CategoryDistribution Tests ---

func (suite *ReportingServiceTestSuite) TestCategoryDistribution_SignSplitWithZeroOnExpenseSide() {
	ctx := context.Background()
	txns := []domain.Transaction{
		suite.txn(500, "food", false, suite.now),
		suite.txn(200, "food", true, suite.now),
		suite.txn(0, "miscellaneous", true, suite.now),
		suite.txn(-3000, "salary", true, suite.now),
		// Different month, must be ignored.
		suite.txn(999, "rent", true, suite.now.AddDate(0, -1, 0)),
	}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return(txns, nil).Once()

	dist, err := suite.service.CategoryDistribution(ctx, "owner-1", "2025-03", "", domain.SortByAmount)

	suite.Require().NoError(err)
	suite.Equal("2025-03", dist.Month)

	suite.Require().Len(dist.Expense, 2)
	suite.Equal("food", dist.Expense[0].Category)
	suite.assertDecimal(700, dist.Expense[0].Total)
	// Zero amounts land on the expense side.
	suite.Equal("miscellaneous", dist.Expense[1].Category)
	suite.assertDecimal(0, dist.Expense[1].Total)

	suite.Require().Len(dist.Income, 1)
	suite.Equal("salary", dist.Income[0].Category)
	suite.assertDecimal(3000, dist.Income[0].Total)

	suite.assertDecimal(700, dist.TotalExpense)
	suite.assertDecimal(3000, dist.TotalIncome)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCategoryDistribution_NameFilterReducesTotals() {
	ctx := context.Background()
	txns := []domain.Transaction{
		suite.txn(500, "food", false, suite.now),
		suite.txn(300, "rent", true, suite.now),
		suite.txn(-3000, "salary", true, suite.now),
	}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return(txns, nil).Once()

	dist, err := suite.service.CategoryDistribution(ctx, "owner-1", "2025-03", "FOO", domain.SortByAmount)

	suite.Require().NoError(err)
	suite.Require().Len(dist.Expense, 1)
	suite.Equal("food", dist.Expense[0].Category)
	// Grand totals are reduced from the filtered lists, not the raw set.
	suite.assertDecimal(500, dist.TotalExpense)
	suite.Empty(dist.Income)
	suite.assertDecimal(0, dist.TotalIncome)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCategoryDistribution_SortModes() {
	ctx := context.Background()
	txns := []domain.Transaction{
		suite.txn(100, "rent", true, suite.now),
		suite.txn(400, "bills", true, suite.now),
		suite.txn(400, "food", true, suite.now),
	}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return(txns, nil).Twice()

	byAmount, err := suite.service.CategoryDistribution(ctx, "owner-1", "2025-03", "", domain.SortByAmount)
	suite.Require().NoError(err)
	suite.Require().Len(byAmount.Expense, 3)
	// Descending by total; ties keep first-appearance order.
	suite.Equal("bills", byAmount.Expense[0].Category)
	suite.Equal("food", byAmount.Expense[1].Category)
	suite.Equal("rent", byAmount.Expense[2].Category)

	byName, err := suite.service.CategoryDistribution(ctx, "owner-1", "2025-03", "", domain.SortByName)
	suite.Require().NoError(err)
	suite.Require().Len(byName.Expense, 3)
	suite.Equal("bills", byName.Expense[0].Category)
	suite.Equal("food", byName.Expense[1].Category)
	suite.Equal("rent", byName.Expense[2].Category)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCategoryDistribution_EmptyCategoryBucketsAsOthers() {
	ctx := context.Background()
	blank := suite.txn(250, "", true, suite.now)
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", domain.TransactionFilter{}).Return([]domain.Transaction{blank}, nil).Once()

	dist, err := suite.service.CategoryDistribution(ctx, "owner-1", "2025-03", "", domain.SortByAmount)

	suite.Require().NoError(err)
	suite.Require().Len(dist.Expense, 1)
	suite.Equal("Others", dist.Expense[0].Category)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- TransactionGroups Tests ---

func (suite *ReportingServiceTestSuite) TestTransactionGroups_NewestDayFirstInsertionOrderWithin() {
	ctx := context.Background()
	day1 := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)
	a := suite.txn(100, "food", false, day1)
	b := suite.txn(200, "rent", true, day2)
	c := suite.txn(300, "bills", false, day1.Add(4*time.Hour))

	filter := domain.TransactionFilter{}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", filter).Return([]domain.Transaction{a, b, c}, nil).Once()

	groups, err := suite.service.TransactionGroups(ctx, "owner-1", filter, "")

	suite.Require().NoError(err)
	suite.Require().Len(groups, 2)
	suite.Equal("March 12, 2025", groups[0].Label)
	suite.Require().Len(groups[0].Transactions, 1)
	suite.Equal("March 10, 2025", groups[1].Label)
	suite.Require().Len(groups[1].Transactions, 2)
	// Input order is preserved inside a day group.
	suite.Equal(a.TransactionID, groups[1].Transactions[0].TransactionID)
	suite.Equal(c.TransactionID, groups[1].Transactions[1].TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestTransactionGroups_SearchAppliesToDescriptionAndCategory() {
	ctx := context.Background()
	a := suite.txn(100, "food", false, suite.now)
	b := suite.txn(200, "rent", true, suite.now)

	filter := domain.TransactionFilter{}
	suite.mockRepo.On("FindTransactions", ctx, "owner-1", filter).Return([]domain.Transaction{a, b}, nil).Once()

	groups, err := suite.service.TransactionGroups(ctx, "owner-1", filter, "foo")

	suite.Require().NoError(err)
	suite.Require().Len(groups, 1)
	suite.Require().Len(groups[0].Transactions, 1)
	suite.Equal(a.TransactionID, groups[0].Transactions[0].TransactionID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
