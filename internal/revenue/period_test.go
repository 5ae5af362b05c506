package revenue

import (
	"testing"
	"time"

	"github.com/angelmondragon/testmart-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLabels(t *testing.T) {
	ts := date(2024, 3, 7)
	assert.Equal(t, "2024-03-07", Label(enums.RevenuePeriodDay, bucketStart(enums.RevenuePeriodDay, ts)))
	assert.Equal(t, "2024-W10", Label(enums.RevenuePeriodWeek, bucketStart(enums.RevenuePeriodWeek, ts)))
	assert.Equal(t, "2024-03", Label(enums.RevenuePeriodMonth, bucketStart(enums.RevenuePeriodMonth, ts)))
	assert.Equal(t, "2024", Label(enums.RevenuePeriodYear, bucketStart(enums.RevenuePeriodYear, ts)))
}

func TestWeekBucketsFollowISOYear(t *testing.T) {
	// 2024-12-30 is the Monday of ISO week 1 of 2025.
	start := bucketStart(enums.RevenuePeriodWeek, date(2025, 1, 2))
	assert.Equal(t, date(2024, 12, 30), start)
	assert.Equal(t, "2025-W01", Label(enums.RevenuePeriodWeek, start))

	// A Sunday belongs to the week that started the previous Monday.
	assert.Equal(t, date(2024, 3, 4), bucketStart(enums.RevenuePeriodWeek, date(2024, 3, 10)))
	// 2021-01-03 is still in the last ISO week of 2020.
	assert.Equal(t, "2020-W53", Label(enums.RevenuePeriodWeek, bucketStart(enums.RevenuePeriodWeek, date(2021, 1, 3))))
}

func TestAccumulatorOrdering(t *testing.T) {
	acc := newAccumulator(enums.RevenuePeriodMonth)
	for _, row := range []SaleAmount{
		{SaleDate: date(2024, 2, 10), TotalAmount: decimal.RequireFromString("5.25")},
		{SaleDate: date(2023, 12, 1), TotalAmount: decimal.RequireFromString("1.00")},
		{SaleDate: date(2024, 2, 28), TotalAmount: decimal.RequireFromString("4.75")},
		{SaleDate: date(2024, 1, 15), TotalAmount: decimal.RequireFromString("2.00")},
	} {
		require.NoError(t, acc.add(row))
	}

	chrono := acc.chronological()
	require.Len(t, chrono, 3)
	assert.Equal(t, date(2023, 12, 1), chrono[0].start)
	assert.Equal(t, "10.00", chrono[2].total.StringFixed(2))

	recent := acc.mostRecent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, date(2024, 2, 1), recent[0].start)
	assert.Equal(t, date(2024, 1, 1), recent[1].start)

	assert.Len(t, acc.mostRecent(10), 3)
}
