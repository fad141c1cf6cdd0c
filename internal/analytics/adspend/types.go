package adspend

import (
	"fmt"
	"strconv"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
)

type insightsTimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

// insightRow is one row of the insights payload. The API sends numbers as strings.
type insightRow struct {
	Spend     string `json:"spend"`
	Reach     string `json:"reach"`
	CPM       string `json:"cpm"`
	CPC       string `json:"cpc"`
	CTR       string `json:"ctr"`
	DateStart string `json:"date_start"`
	DateStop  string `json:"date_stop"`
}

type insightsResponse struct {
	Data []insightRow `json:"data"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// report sums spend and reach over all rows; ratios are averaged.
func (r *insightsResponse) report() (*entity.AdSpendReport, error) {
	rep := &entity.AdSpendReport{}
	if len(r.Data) == 0 {
		return rep, nil
	}
	var cpm, cpc, ctr decimal.Decimal
	for i, row := range r.Data {
		spend, err := parseDecimal(row.Spend)
		if err != nil {
			return nil, fmt.Errorf("row %d spend: %w", i, err)
		}
		if spend.IsNegative() {
			return nil, fmt.Errorf("row %d spend is negative: %s", i, row.Spend)
		}
		reach, err := parseInt(row.Reach)
		if err != nil {
			return nil, fmt.Errorf("row %d reach: %w", i, err)
		}
		rowCPM, err := parseDecimal(row.CPM)
		if err != nil {
			return nil, fmt.Errorf("row %d cpm: %w", i, err)
		}
		rowCPC, err := parseDecimal(row.CPC)
		if err != nil {
			return nil, fmt.Errorf("row %d cpc: %w", i, err)
		}
		rowCTR, err := parseDecimal(row.CTR)
		if err != nil {
			return nil, fmt.Errorf("row %d ctr: %w", i, err)
		}
		rep.SpendUSD = rep.SpendUSD.Add(spend)
		rep.Reach += reach
		cpm = cpm.Add(rowCPM)
		cpc = cpc.Add(rowCPC)
		ctr = ctr.Add(rowCTR)
	}
	n := decimal.NewFromInt(int64(len(r.Data)))
	rep.CPM = cpm.Div(n).Round(4)
	rep.CPC = cpc.Div(n).Round(4)
	rep.CTR = ctr.Div(n).Round(4)
	return rep, nil
}

// parseDecimal treats a missing value as zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
