// Package adspend fetches account level ad spend from the Graph API insights endpoint.
package adspend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
)

const (
	defaultBaseURL    = "https://graph.facebook.com"
	defaultAPIVersion = "v19.0"
	defaultTimeout    = 10 * time.Second
	insightFields     = "spend,reach,cpm,cpc,ctr"
	dayLayout         = "2006-01-02"
)

// Config holds ad-spend client configuration.
type Config struct {
	Enabled     bool          `mapstructure:"enabled"`
	BaseURL     string        `mapstructure:"base_url"`
	APIVersion  string        `mapstructure:"api_version"`
	AccountID   string        `mapstructure:"account_id"`
	AccessToken string        `mapstructure:"access_token"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Client wraps the insights endpoint. A disabled client reports zero spend.
type Client struct {
	cli     *resty.Client
	rates   dependency.RatesService
	path    string
	enabled bool
}

// New creates a new ad-spend client.
func New(ctx context.Context, c *Config, rates dependency.RatesService) (*Client, error) {
	if c == nil || !c.Enabled {
		slog.Default().InfoContext(ctx, "ad spend report disabled")
		return &Client{enabled: false}, nil
	}
	if c.AccountID == "" {
		return nil, fmt.Errorf("ad_spend account_id is required")
	}
	if c.AccessToken == "" {
		return nil, fmt.Errorf("ad_spend access_token is required")
	}
	if rates == nil {
		return nil, fmt.Errorf("ad_spend needs a rates service")
	}

	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	version := c.APIVersion
	if version == "" {
		version = defaultAPIVersion
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cli := resty.New()
	cli.SetBaseURL(strings.TrimRight(baseURL, "/"))
	cli.SetTimeout(timeout)
	cli.SetQueryParam("access_token", c.AccessToken)

	slog.Default().InfoContext(ctx, "ad spend client initialized",
		slog.String("account_id", c.AccountID),
		slog.String("api_version", version),
	)

	return &Client{
		cli:     cli,
		rates:   rates,
		path:    fmt.Sprintf("/%s/act_%s/insights", version, strings.TrimPrefix(c.AccountID, "act_")),
		enabled: true,
	}, nil
}

// reportDays maps [from, to] onto the inclusive calendar days of the insights API.
// A to at exactly midnight adds nothing of its day, so that day is left out.
func reportDays(from, to time.Time) insightsTimeRange {
	end := to
	h, m, s := to.Clock()
	if to.After(from) && h == 0 && m == 0 && s == 0 && to.Nanosecond() == 0 {
		end = to.Add(-time.Nanosecond)
	}
	return insightsTimeRange{
		Since: from.Format(dayLayout),
		Until: end.Format(dayLayout),
	}
}

// GetReport returns the account spend for the calendar days covered by [from, to].
// Spend is converted from USD into the local currency.
func (c *Client) GetReport(ctx context.Context, from, to time.Time) (*entity.AdSpendReport, error) {
	if !c.enabled {
		return &entity.AdSpendReport{}, nil
	}

	timeRange, err := json.Marshal(reportDays(from, to))
	if err != nil {
		return nil, fmt.Errorf("can't encode time range: %w", err)
	}

	var (
		res    insightsResponse
		errRes errorResponse
	)
	resp, err := c.cli.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":     insightFields,
			"level":      "account",
			"time_range": string(timeRange),
		}).
		SetResult(&res).
		SetError(&errRes).
		Get(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrAdReportUnavailable, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d: %s", gerr.ErrAdReportUnavailable, resp.StatusCode(), errRes.Error.Message)
	}

	report, err := res.report()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrBadAdReport, err)
	}
	report.Spend = c.rates.ConvertUsdToLocal(report.SpendUSD).Round(2)
	return report, nil
}
