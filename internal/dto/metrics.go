package dto

import (
	"time"

	"github.com/jekabolt/retail-dashboard/internal/currency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
)

type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type MetricWithComparison struct {
	Value        decimal.Decimal `json:"value"`
	CompareValue decimal.Decimal `json:"compare_value"`
	ChangePct    decimal.Decimal `json:"change_pct"`
	Comparable   bool            `json:"comparable"`
}

type RangeData struct {
	FromDate string          `json:"from_date"`
	ToDate   string          `json:"to_date"`
	Key      string          `json:"key"`
	Value    decimal.Decimal `json:"value"`
}

type AdSpendReport struct {
	Spend    decimal.Decimal `json:"spend"`
	SpendUSD decimal.Decimal `json:"spend_usd"`
	Reach    int64           `json:"reach"`
	CPM      decimal.Decimal `json:"cpm"`
	CPC      decimal.Decimal `json:"cpc"`
	CTR      decimal.Decimal `json:"ctr"`
}

type AdSpend struct {
	Current  AdSpendReport        `json:"current"`
	Previous AdSpendReport        `json:"previous"`
	Spend    MetricWithComparison `json:"spend"`
}

type Profit struct {
	Total       MetricWithComparison `json:"total"`
	ByTimeFrame []RangeData          `json:"by_time_frame"`
}

// OrdersDashboard is the JSON body of the orders dashboard endpoint.
type OrdersDashboard struct {
	Period                 TimeRange            `json:"period"`
	ComparePeriod          TimeRange            `json:"compare_period"`
	Granularity            string               `json:"granularity"`
	Currency               string               `json:"currency"`
	TotalSaleValue         MetricWithComparison `json:"total_sale_value"`
	TotalCostValue         MetricWithComparison `json:"total_cost_value"`
	TotalOrdersCount       MetricWithComparison `json:"total_orders_count"`
	OrdersCountByTimeFrame []RangeData          `json:"orders_count_by_time_frame"`
	SaleValueByTimeFrame   []RangeData          `json:"sale_value_by_time_frame"`
	CostValueByTimeFrame   []RangeData          `json:"cost_value_by_time_frame"`
	Profit                 Profit               `json:"profit"`
	AdSpend                AdSpend              `json:"ad_spend"`
}

func ConvertEntityOrdersDashboardToDto(d *entity.OrdersDashboard, cur string) *OrdersDashboard {
	if d == nil {
		return nil
	}
	return &OrdersDashboard{
		Period:                 timeRangeToDto(d.Period.Current),
		ComparePeriod:          timeRangeToDto(d.Period.Previous),
		Granularity:            string(d.Period.Granularity),
		Currency:               cur,
		TotalSaleValue:         metricWithComparisonToDto(d.TotalSaleValue, cur),
		TotalCostValue:         metricWithComparisonToDto(d.TotalCostValue, cur),
		TotalOrdersCount:       metricWithComparisonToDto(d.TotalOrdersCount, cur),
		OrdersCountByTimeFrame: rangeDataToDto(d.OrdersCountByTimeFrame, cur),
		SaleValueByTimeFrame:   rangeDataToDto(d.SaleValueByTimeFrame, cur),
		CostValueByTimeFrame:   rangeDataToDto(d.CostValueByTimeFrame, cur),
		Profit: Profit{
			Total:       metricWithComparisonToDto(d.Profit.Total, cur),
			ByTimeFrame: rangeDataToDto(d.Profit.ByTimeFrame, cur),
		},
		AdSpend: AdSpend{
			Current:  adSpendReportToDto(d.AdSpend.Current),
			Previous: adSpendReportToDto(d.AdSpend.Previous),
			Spend:    metricWithComparisonToDto(d.AdSpend.Spend, cur),
		},
	}
}

func timeRangeToDto(tr entity.TimeRange) TimeRange {
	return TimeRange{From: tr.From, To: tr.To}
}

func metricWithComparisonToDto(m entity.MetricWithComparison, cur string) MetricWithComparison {
	return MetricWithComparison{
		Value:        currency.Round(m.Value, cur),
		CompareValue: currency.Round(m.CompareValue, cur),
		ChangePct:    m.ChangePct,
		Comparable:   m.Comparable,
	}
}

func rangeDataToDto(list []entity.RangeData, cur string) []RangeData {
	out := make([]RangeData, 0, len(list))
	for _, rd := range list {
		out = append(out, RangeData{
			FromDate: rd.FromDate.Format(DateLayout),
			ToDate:   rd.ToDate.Format(DateLayout),
			Key:      rd.Key,
			Value:    currency.Round(rd.Value, cur),
		})
	}
	return out
}

func adSpendReportToDto(r entity.AdSpendReport) AdSpendReport {
	return AdSpendReport{
		Spend:    r.Spend,
		SpendUSD: r.SpendUSD,
		Reach:    r.Reach,
		CPM:      r.CPM,
		CPC:      r.CPC,
		CTR:      r.CTR,
	}
}
