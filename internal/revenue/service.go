package revenue

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/testmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/testmart-backend/pkg/errors"
	"github.com/angelmondragon/testmart-backend/pkg/types"
)

const (
	DefaultComparisonPeriod = enums.RevenuePeriodMonth
	DefaultComparePeriods   = 2
	allCategories           = "all"
)

// PeriodRevenue is one bucket of RevenueByPeriod. Which keys are populated
// depends on the period: date for day, year and month for month, year for year.
type PeriodRevenue struct {
	Date        *types.Date `json:"date,omitempty"`
	Year        int         `json:"year,omitempty"`
	Month       int         `json:"month,omitempty"`
	TotalAmount string      `json:"total_amount"`
}

// ComparisonRow is one labelled bucket of RevenueComparison.
type ComparisonRow struct {
	Period      string `json:"period"`
	TotalAmount string `json:"total_amount"`
	Category    string `json:"category"`
}

// ComparisonInput selects the comparison window. Empty Period means month and
// a nil ComparePeriods means two.
type ComparisonInput struct {
	Period         string
	Category       *string
	ComparePeriods *int
}

// Service aggregates sales into calendar buckets.
type Service interface {
	RevenueByPeriod(ctx context.Context, period string) ([]PeriodRevenue, error)
	RevenueComparison(ctx context.Context, input ComparisonInput) ([]ComparisonRow, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("revenue repository required")
	}
	return &service{repo: repo}, nil
}

// RevenueByPeriod totals all sales per day, month or year in chronological
// order. Any other period value yields an empty result rather than an error.
func (s *service) RevenueByPeriod(ctx context.Context, period string) ([]PeriodRevenue, error) {
	p := enums.RevenuePeriod(period)
	switch p {
	case enums.RevenuePeriodDay, enums.RevenuePeriodMonth, enums.RevenuePeriodYear:
	default:
		return []PeriodRevenue{}, nil
	}

	acc := newAccumulator(p)
	if err := s.repo.EachSale(ctx, nil, acc.add); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate revenue")
	}

	buckets := acc.chronological()
	out := make([]PeriodRevenue, 0, len(buckets))
	for _, b := range buckets {
		row := PeriodRevenue{TotalAmount: b.total.StringFixed(2)}
		switch p {
		case enums.RevenuePeriodDay:
			date := types.NewDate(b.start)
			row.Date = &date
		case enums.RevenuePeriodMonth:
			row.Year = b.start.Year()
			row.Month = int(b.start.Month())
		default:
			row.Year = b.start.Year()
		}
		out = append(out, row)
	}
	return out, nil
}

// RevenueComparison returns the most recent ComparePeriods buckets, newest
// first, optionally restricted to one product category.
func (s *service) RevenueComparison(ctx context.Context, input ComparisonInput) ([]ComparisonRow, error) {
	period := DefaultComparisonPeriod
	if raw := strings.TrimSpace(input.Period); raw != "" {
		parsed, err := enums.ParseRevenuePeriod(raw)
		if err != nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "period must be one of day, week, month, year (got %q)", input.Period)
		}
		period = parsed
	}

	comparePeriods := DefaultComparePeriods
	if input.ComparePeriods != nil {
		comparePeriods = *input.ComparePeriods
	}
	if comparePeriods < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "compare_periods must be at least 1")
	}

	var category *string
	label := allCategories
	if input.Category != nil {
		if trimmed := strings.TrimSpace(*input.Category); trimmed != "" {
			category = &trimmed
			label = trimmed
		}
	}

	acc := newAccumulator(period)
	if err := s.repo.EachSale(ctx, category, acc.add); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate revenue")
	}

	buckets := acc.mostRecent(comparePeriods)
	out := make([]ComparisonRow, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ComparisonRow{
			Period:      Label(period, b.start),
			TotalAmount: b.total.StringFixed(2),
			Category:    label,
		})
	}
	return out, nil
}
