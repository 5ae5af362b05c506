package revenue

import (
	"fmt"
	"sort"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// bucket accumulates revenue for one calendar-aligned period.
type bucket struct {
	start time.Time
	total decimal.Decimal
}

// bucketStart returns the first instant of the period containing t. Weeks
// start on Monday so that they line up with ISO week numbers.
func bucketStart(period enums.RevenuePeriod, t time.Time) time.Time {
	y, m, d := t.Date()
	switch period {
	case enums.RevenuePeriodDay:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case enums.RevenuePeriodWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case enums.RevenuePeriodMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
}

// Label formats the bucket start as YYYY-MM-DD, YYYY-Www, YYYY-MM or YYYY.
func Label(period enums.RevenuePeriod, start time.Time) string {
	switch period {
	case enums.RevenuePeriodDay:
		return start.Format("2006-01-02")
	case enums.RevenuePeriodWeek:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case enums.RevenuePeriodMonth:
		return start.Format("2006-01")
	default:
		return start.Format("2006")
	}
}

type accumulator struct {
	period  enums.RevenuePeriod
	buckets map[time.Time]*bucket
}

func newAccumulator(period enums.RevenuePeriod) *accumulator {
	return &accumulator{period: period, buckets: make(map[time.Time]*bucket)}
}

func (a *accumulator) add(row SaleAmount) error {
	start := bucketStart(a.period, row.SaleDate)
	b, ok := a.buckets[start]
	if !ok {
		b = &bucket{start: start, total: decimal.Zero}
		a.buckets[start] = b
	}
	b.total = b.total.Add(row.TotalAmount)
	return nil
}

// chronological returns buckets oldest first.
func (a *accumulator) chronological() []bucket {
	out := make([]bucket, 0, len(a.buckets))
	for _, b := range a.buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}

// mostRecent returns at most n buckets, newest first.
func (a *accumulator) mostRecent(n int) []bucket {
	out := a.chronological()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}
