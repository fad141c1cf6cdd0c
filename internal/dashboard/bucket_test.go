package dashboard

import (
	"testing"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dailyPoint(t time.Time, v int64) entity.RangeData {
	rd := dayBucket(t)
	rd.Value = decimal.NewFromInt(v)
	return rd
}

func sum(series []entity.RangeData) decimal.Decimal {
	total := decimal.Zero
	for _, s := range series {
		total = total.Add(s.Value)
	}
	return total
}

func testDailySeries(from time.Time, days int) []entity.RangeData {
	var series []entity.RangeData
	for i := 0; i < days; i++ {
		if i%3 == 1 {
			continue
		}
		series = append(series, dailyPoint(from.AddDate(0, 0, i), int64(i*7+3)))
	}
	return series
}

func TestCompressDayIsIdentity(t *testing.T) {
	daily := testDailySeries(date(2024, 1, 1), 20)
	assert.Equal(t, daily, Compress(daily, entity.MetricsGranularityDay))
}

func TestCompressWeek(t *testing.T) {
	// 2024-01-01 is a Monday.
	daily := []entity.RangeData{
		dailyPoint(date(2024, 1, 1), 10),
		dailyPoint(date(2024, 1, 7), 5),
		dailyPoint(date(2024, 1, 8), 1),
		dailyPoint(date(2024, 1, 20), 2),
	}
	weeks := Compress(daily, entity.MetricsGranularityWeek)
	require.Len(t, weeks, 3)

	assert.Equal(t, "2024-W01", weeks[0].Key)
	assert.Equal(t, date(2024, 1, 1), weeks[0].FromDate)
	assert.Equal(t, date(2024, 1, 7), weeks[0].ToDate)
	assert.True(t, weeks[0].Value.Equal(decimal.NewFromInt(15)))

	assert.Equal(t, "2024-W02", weeks[1].Key)
	assert.True(t, weeks[1].Value.Equal(decimal.NewFromInt(1)))

	assert.Equal(t, "2024-W03", weeks[2].Key)
	assert.Equal(t, date(2024, 1, 15), weeks[2].FromDate)
	assert.Equal(t, date(2024, 1, 21), weeks[2].ToDate)
}

func TestCompressWeekAcrossYearBoundary(t *testing.T) {
	// 2024-12-30 (Mon) .. 2025-01-05 (Sun) is ISO week 2025-W01.
	daily := []entity.RangeData{
		dailyPoint(date(2024, 12, 29), 1),
		dailyPoint(date(2024, 12, 30), 2),
		dailyPoint(date(2025, 1, 3), 3),
	}
	weeks := Compress(daily, entity.MetricsGranularityWeek)
	require.Len(t, weeks, 2)
	assert.Equal(t, "2024-W52", weeks[0].Key)
	assert.Equal(t, "2025-W01", weeks[1].Key)
	assert.Equal(t, date(2024, 12, 30), weeks[1].FromDate)
	assert.Equal(t, date(2025, 1, 5), weeks[1].ToDate)
	assert.True(t, weeks[1].Value.Equal(decimal.NewFromInt(5)))
}

func TestCompressPreservesTotal(t *testing.T) {
	daily := testDailySeries(date(2024, 2, 10), 120)
	total := sum(daily)

	assert.True(t, total.Equal(sum(Compress(daily, entity.MetricsGranularityWeek))))
	assert.True(t, total.Equal(sum(Compress(daily, entity.MetricsGranularityMonth))))
}

func TestCompressMonth(t *testing.T) {
	daily := []entity.RangeData{
		dailyPoint(date(2024, 1, 31), 4),
		dailyPoint(date(2024, 2, 1), 6),
		dailyPoint(date(2024, 2, 29), 10),
	}
	months := Compress(daily, entity.MetricsGranularityMonth)
	require.Len(t, months, 2)

	assert.Equal(t, "2024-01", months[0].Key)
	assert.Equal(t, date(2024, 1, 1), months[0].FromDate)
	assert.Equal(t, date(2024, 1, 31), months[0].ToDate)
	assert.True(t, months[0].Value.Equal(decimal.NewFromInt(4)))

	assert.Equal(t, "2024-02", months[1].Key)
	assert.Equal(t, date(2024, 2, 29), months[1].ToDate)
	assert.True(t, months[1].Value.Equal(decimal.NewFromInt(16)))
}

func TestFillGapsDay(t *testing.T) {
	from := date(2024, 1, 1)
	to := time.Date(2024, 1, 10, 18, 30, 0, 0, time.UTC)
	series := []entity.RangeData{
		dailyPoint(date(2024, 1, 3), 7),
		dailyPoint(date(2024, 1, 9), 2),
	}

	filled := FillGaps(series, from, to, entity.MetricsGranularityDay)
	require.Len(t, filled, 10)
	for i, f := range filled {
		d := from.AddDate(0, 0, i)
		assert.Equal(t, d.Format(dayKeyLayout), f.Key)
		assert.Equal(t, d, f.FromDate)
		switch f.Key {
		case "2024-01-03":
			assert.True(t, f.Value.Equal(decimal.NewFromInt(7)))
		case "2024-01-09":
			assert.True(t, f.Value.Equal(decimal.NewFromInt(2)))
		default:
			assert.True(t, f.Value.IsZero())
		}
	}
}

func TestFillGapsWeekAndMonth(t *testing.T) {
	from := date(2024, 1, 3)
	to := date(2024, 2, 14)

	weeks := FillGaps(Compress([]entity.RangeData{dailyPoint(date(2024, 1, 17), 5)}, entity.MetricsGranularityWeek),
		from, to, entity.MetricsGranularityWeek)
	require.Len(t, weeks, 7)
	assert.Equal(t, "2024-W01", weeks[0].Key)
	assert.Equal(t, "2024-W07", weeks[6].Key)
	assert.True(t, weeks[2].Value.Equal(decimal.NewFromInt(5)))
	assert.True(t, sum(weeks).Equal(decimal.NewFromInt(5)))

	months := FillGaps(nil, date(2023, 11, 15), date(2024, 2, 1), entity.MetricsGranularityMonth)
	require.Len(t, months, 4)
	assert.Equal(t, []string{"2023-11", "2023-12", "2024-01", "2024-02"},
		[]string{months[0].Key, months[1].Key, months[2].Key, months[3].Key})
	assert.True(t, sum(months).IsZero())
}

func TestFillGapsSingleDay(t *testing.T) {
	from := time.Date(2024, 5, 5, 8, 0, 0, 0, time.UTC)
	filled := FillGaps(nil, from, from, entity.MetricsGranularityDay)
	require.Len(t, filled, 1)
	assert.Equal(t, "2024-05-05", filled[0].Key)
}
