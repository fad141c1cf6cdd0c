package dashboard

import (
	"testing"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/dto"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 11, 12, 0, 0, 0, time.UTC)

	p := ResolvePeriod(from, to, DefaultThresholds())

	assert.Equal(t, from, p.Current.From)
	assert.Equal(t, to, p.Current.To)
	assert.Equal(t, time.Date(2024, 2, 19, 12, 0, 0, 0, time.UTC), p.Previous.From)
	assert.Equal(t, from, p.Previous.To)
	assert.Equal(t, p.Current.Length(), p.Previous.Length())
	assert.Equal(t, entity.MetricsGranularityDay, p.Granularity)
}

func TestResolvePeriodBareDates(t *testing.T) {
	from, to, err := dto.ParseDateRange("2024-01-01", "2024-01-02", time.UTC)
	require.NoError(t, err)

	p := ResolvePeriod(from, to, DefaultThresholds())
	// A bare to ends one nanosecond before midnight, so the mirrored start is
	// one nanosecond after it.
	assert.Equal(t, time.Date(2023, 12, 30, 0, 0, 0, 1, time.UTC), p.Previous.From)
	assert.Equal(t, from, p.Previous.To)
	assert.Equal(t, 2*24*time.Hour-time.Nanosecond, p.Previous.Length())
}

func TestResolvePeriodNoCalendarAdjustment(t *testing.T) {
	// March has 31 days, February 2024 has 29: the previous window is a plain shift.
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	p := ResolvePeriod(from, to, DefaultThresholds())
	assert.Equal(t, time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), p.Previous.From)
	assert.Equal(t, entity.MetricsGranularityWeek, p.Granularity)
}

func TestGranularityFor(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name   string
		length time.Duration
		want   entity.MetricsGranularity
	}{
		{"zero length", 0, entity.MetricsGranularityDay},
		{"one day", day, entity.MetricsGranularityDay},
		{"exactly 30 days", 30 * day, entity.MetricsGranularityDay},
		{"just over 30 days", 30*day + time.Millisecond, entity.MetricsGranularityWeek},
		{"31 days", 31 * day, entity.MetricsGranularityWeek},
		{"exactly 90 days", 90 * day, entity.MetricsGranularityWeek},
		{"91 days", 91 * day, entity.MetricsGranularityMonth},
		{"one year", 365 * day, entity.MetricsGranularityMonth},
		{"negative 10 days", -10 * day, entity.MetricsGranularityDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GranularityFor(tt.length, th))
		})
	}
}

func TestGranularityForCustomThreshold(t *testing.T) {
	th := Thresholds{DayMaxDays: 32, WeekMaxDays: 90}
	assert.Equal(t, entity.MetricsGranularityDay, GranularityFor(31*day, th))
	assert.Equal(t, entity.MetricsGranularityDay, GranularityFor(32*day, th))
	assert.Equal(t, entity.MetricsGranularityWeek, GranularityFor(33*day, th))
}
