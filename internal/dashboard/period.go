package dashboard

import (
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
)

const day = 24 * time.Hour

// Thresholds are the inclusive upper bounds, in days, of the day and week granularities.
type Thresholds struct {
	DayMaxDays  int
	WeekMaxDays int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		DayMaxDays:  30,
		WeekMaxDays: 90,
	}
}

// ResolvePeriod mirrors [from, to] into the equal-length window right before it
// and picks the bucket granularity. No calendar adjustment is applied.
// The caller guarantees to >= from.
func ResolvePeriod(from, to time.Time, th Thresholds) entity.ResolvedPeriod {
	cur := entity.TimeRange{From: from, To: to}
	length := cur.Length()
	return entity.ResolvedPeriod{
		Current: cur,
		Previous: entity.TimeRange{
			From: from.Add(-length),
			To:   to.Add(-length),
		},
		Granularity: GranularityFor(length, th),
	}
}

// GranularityFor classifies a range length: day up to DayMaxDays, week up to WeekMaxDays, month above.
func GranularityFor(length time.Duration, th Thresholds) entity.MetricsGranularity {
	if length < 0 {
		length = -length
	}
	switch {
	case length <= time.Duration(th.DayMaxDays)*day:
		return entity.MetricsGranularityDay
	case length <= time.Duration(th.WeekMaxDays)*day:
		return entity.MetricsGranularityWeek
	default:
		return entity.MetricsGranularityMonth
	}
}
