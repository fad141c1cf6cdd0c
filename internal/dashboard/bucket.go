package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
)

const dayKeyLayout = "2006-01-02"

// Compress merges a chronological daily series into the requested granularity.
// Each daily entry lands in exactly one bucket determined by its own date.
func Compress(daily []entity.RangeData, g entity.MetricsGranularity) []entity.RangeData {
	switch g {
	case entity.MetricsGranularityWeek, entity.MetricsGranularityMonth:
	default:
		return daily
	}

	var result []entity.RangeData
	index := make(map[string]int)
	for _, d := range daily {
		b := bucketFor(d.FromDate, g)
		i, ok := index[b.Key]
		if !ok {
			index[b.Key] = len(result)
			b.Value = d.Value
			result = append(result, b)
			continue
		}
		result[i].Value = result[i].Value.Add(d.Value)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].FromDate.Before(result[j].FromDate)
	})
	return result
}

// FillGaps returns a dense series with one bucket per granularity unit between
// from and to inclusive; missing buckets get a zero value.
func FillGaps(series []entity.RangeData, from, to time.Time, g entity.MetricsGranularity) []entity.RangeData {
	byKey := make(map[string]entity.RangeData, len(series))
	for _, s := range series {
		byKey[s.Key] = s
	}

	var result []entity.RangeData
	cur := bucketFor(from, g)
	end := bucketFor(to, g)
	for !cur.FromDate.After(end.FromDate) {
		if s, ok := byKey[cur.Key]; ok {
			result = append(result, s)
		} else {
			cur.Value = decimal.Zero
			result = append(result, cur)
		}
		cur = bucketFor(bucketNext(cur.FromDate, g), g)
	}
	return result
}

// dayBucket is the single-day bucket for t in t's location.
func dayBucket(t time.Time) entity.RangeData {
	start := startOfDay(t)
	return entity.RangeData{
		FromDate: start,
		ToDate:   start,
		Key:      start.Format(dayKeyLayout),
	}
}

func bucketFor(t time.Time, g entity.MetricsGranularity) entity.RangeData {
	switch g {
	case entity.MetricsGranularityWeek:
		// ISO-8601: Monday starts the week, the week belongs to the year of its Thursday.
		start := startOfDay(t)
		daysBack := (int(start.Weekday()) + 6) % 7
		monday := start.AddDate(0, 0, -daysBack)
		year, week := monday.ISOWeek()
		return entity.RangeData{
			FromDate: monday,
			ToDate:   monday.AddDate(0, 0, 6),
			Key:      fmt.Sprintf("%d-W%02d", year, week),
		}
	case entity.MetricsGranularityMonth:
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return entity.RangeData{
			FromDate: first,
			ToDate:   first.AddDate(0, 1, -1),
			Key:      first.Format("2006-01"),
		}
	default:
		return dayBucket(t)
	}
}

func bucketNext(t time.Time, g entity.MetricsGranularity) time.Time {
	switch g {
	case entity.MetricsGranularityWeek:
		return t.AddDate(0, 0, 7)
	case entity.MetricsGranularityMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
