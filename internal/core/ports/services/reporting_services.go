package services

import (
	"context"

	"github.com/expensio/expensio_backend/internal/core/domain"
)

// ReportingSvcFacade defines the aggregation operations over a user's
// transactions. All reads are owner-scoped and side-effect free.
type ReportingSvcFacade interface {
	// Overview computes sign-split totals, the signed pending total, the
	// four cumulative period windows and the 12-point monthly trend.
	Overview(ctx context.Context, ownerID string) (*domain.OverviewReport, error)

	// CategoryDistribution computes per-category expense and income totals
	// for the given "YYYY-MM" month, optionally filtered by a
	// case-insensitive category-name substring and sorted by the given mode.
	CategoryDistribution(ctx context.Context, ownerID, monthKey, nameFilter string, sort domain.DistributionSort) (*domain.CategoryDistribution, error)

	// TransactionGroups returns the filtered and searched transaction list
	// partitioned by calendar day, most recent day first.
	TransactionGroups(ctx context.Context, ownerID string, filter domain.TransactionFilter, search string) ([]domain.DayGroup, error)
}
