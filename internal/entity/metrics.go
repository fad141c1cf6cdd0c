package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetricsGranularity controls time bucket size for time series (day, week, month).
type MetricsGranularity string

const (
	MetricsGranularityDay   MetricsGranularity = "day"
	MetricsGranularityWeek  MetricsGranularity = "week"
	MetricsGranularityMonth MetricsGranularity = "month"
)

// MetricKind selects which per-line value an accumulator extracts.
type MetricKind string

const (
	MetricSaleValue   MetricKind = "sale_value"
	MetricCostValue   MetricKind = "cost_value"
	MetricProfitValue MetricKind = "profit_value"
	MetricOrdersCount MetricKind = "orders_count"
)

type TimeRange struct {
	From time.Time
	To   time.Time
}

// Length is the exact duration of the range.
func (tr TimeRange) Length() time.Duration {
	return tr.To.Sub(tr.From)
}

// ResolvedPeriod is the requested range, the equal-length range preceding it
// and the bucket granularity chosen for it.
type ResolvedPeriod struct {
	Current     TimeRange
	Previous    TimeRange
	Granularity MetricsGranularity
}

// RangeData is one bucket of a time series. It is never persisted.
type RangeData struct {
	FromDate time.Time
	ToDate   time.Time
	Key      string
	Value    decimal.Decimal
}

type MetricWithComparison struct {
	Value        decimal.Decimal
	CompareValue decimal.Decimal
	ChangePct    decimal.Decimal
	// Comparable is false when the previous value is zero and ChangePct is
	// reported as 0 without being meaningful.
	Comparable bool
}

// AdSpendReport is the ad account spend for a date range.
type AdSpendReport struct {
	// Spend is converted to the local currency.
	Spend    decimal.Decimal
	SpendUSD decimal.Decimal
	Reach    int64
	CPM      decimal.Decimal
	CPC      decimal.Decimal
	CTR      decimal.Decimal
}

type AdSpendSection struct {
	Current  AdSpendReport
	Previous AdSpendReport
	Spend    MetricWithComparison
}

type ProfitSection struct {
	Total       MetricWithComparison
	ByTimeFrame []RangeData
}

// OrdersDashboard contains all computed metrics for a reporting period.
type OrdersDashboard struct {
	Period ResolvedPeriod

	TotalSaleValue   MetricWithComparison
	TotalCostValue   MetricWithComparison
	TotalOrdersCount MetricWithComparison

	OrdersCountByTimeFrame []RangeData
	SaleValueByTimeFrame   []RangeData
	CostValueByTimeFrame   []RangeData

	Profit  ProfitSection
	AdSpend AdSpendSection
}
