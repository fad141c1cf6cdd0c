package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Config holds the dashboard settings.
type Config struct {
	// Source selects the order store feeding the dashboard: mysql or mongo.
	Source      string `mapstructure:"source"`
	DayMaxDays  int    `mapstructure:"day_max_days"`
	WeekMaxDays int    `mapstructure:"week_max_days"`
	// Timezone is the IANA zone used for calendar day boundaries.
	Timezone string `mapstructure:"timezone"`
}

func DefaultConfig() Config {
	th := DefaultThresholds()
	return Config{
		Source:      "mysql",
		DayMaxDays:  th.DayMaxDays,
		WeekMaxDays: th.WeekMaxDays,
		Timezone:    "UTC",
	}
}

// Composer builds the orders dashboard from the four metric accumulators and the ad-spend report.
type Composer struct {
	sale   *Accumulator
	cost   *Accumulator
	count  *Accumulator
	profit *Accumulator
	ads    dependency.AdSpendReporter
	th     Thresholds
	loc    *time.Location
}

// New creates a new dashboard composer.
func New(
	c *Config,
	orders dependency.OrderReader,
	products dependency.ProductResolver,
	rates dependency.RatesService,
	ads dependency.AdSpendReporter,
) (*Composer, error) {
	if c == nil {
		dc := DefaultConfig()
		c = &dc
	}
	th := DefaultThresholds()
	if c.DayMaxDays > 0 {
		th.DayMaxDays = c.DayMaxDays
	}
	if c.WeekMaxDays > 0 {
		th.WeekMaxDays = c.WeekMaxDays
	}
	if th.WeekMaxDays < th.DayMaxDays {
		return nil, fmt.Errorf("week_max_days %d is below day_max_days %d", th.WeekMaxDays, th.DayMaxDays)
	}
	loc := time.UTC
	if c.Timezone != "" {
		l, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return nil, fmt.Errorf("can't load timezone %q: %w", c.Timezone, err)
		}
		loc = l
	}
	return &Composer{
		sale:   NewAccumulator(entity.MetricSaleValue, orders, products, rates, loc),
		cost:   NewAccumulator(entity.MetricCostValue, orders, products, rates, loc),
		count:  NewAccumulator(entity.MetricOrdersCount, orders, products, rates, loc),
		profit: NewAccumulator(entity.MetricProfitValue, orders, products, rates, loc),
		ads:    ads,
		th:     th,
		loc:    loc,
	}, nil
}

// Location is the zone calendar buckets are cut in.
func (c *Composer) Location() *time.Location {
	return c.loc
}

// GetOrdersDashboard computes the report for [from, to] against the preceding period of equal length.
// Any failed read fails the whole report.
func (c *Composer) GetOrdersDashboard(ctx context.Context, from, to time.Time) (*entity.OrdersDashboard, error) {
	from, to = from.In(c.loc), to.In(c.loc)
	period := ResolvePeriod(from, to, c.th)
	cur, prev := period.Current, period.Previous

	slog.Default().DebugContext(ctx, "building orders dashboard",
		slog.Time("from", from),
		slog.Time("to", to),
		slog.String("granularity", string(period.Granularity)),
	)

	var (
		curTotals, prevTotals [4]decimal.Decimal
		series                [4][]entity.RangeData
		curAds, prevAds       *entity.AdSpendReport
	)
	accs := [4]*Accumulator{c.sale, c.cost, c.count, c.profit}

	g, gctx := errgroup.WithContext(ctx)
	for i, acc := range accs {
		i, acc := i, acc
		g.Go(func() error {
			v, err := acc.TotalFor(gctx, cur.From, cur.To)
			if err != nil {
				return fmt.Errorf("total %s: %w", acc.Kind(), err)
			}
			curTotals[i] = v
			return nil
		})
		g.Go(func() error {
			v, err := acc.TotalFor(gctx, prev.From, prev.To)
			if err != nil {
				return fmt.Errorf("previous total %s: %w", acc.Kind(), err)
			}
			prevTotals[i] = v
			return nil
		})
		g.Go(func() error {
			s, err := acc.ByTimeFrame(gctx, cur.From, cur.To, period.Granularity)
			if err != nil {
				return fmt.Errorf("%s by time frame: %w", acc.Kind(), err)
			}
			series[i] = FillGaps(s, cur.From, cur.To, period.Granularity)
			return nil
		})
	}
	g.Go(func() error {
		r, err := c.ads.GetReport(gctx, cur.From, cur.To)
		if err != nil {
			return fmt.Errorf("ad spend: %w", err)
		}
		curAds = r
		return nil
	})
	g.Go(func() error {
		r, err := c.ads.GetReport(gctx, prev.From, prev.To)
		if err != nil {
			return fmt.Errorf("previous ad spend: %w", err)
		}
		prevAds = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if curAds == nil {
		curAds = &entity.AdSpendReport{}
	}
	if prevAds == nil {
		prevAds = &entity.AdSpendReport{}
	}

	const (
		sale = iota
		cost
		count
		profit
	)
	return &entity.OrdersDashboard{
		Period:                 period,
		TotalSaleValue:         compare(curTotals[sale], prevTotals[sale]),
		TotalCostValue:         compare(curTotals[cost], prevTotals[cost]),
		TotalOrdersCount:       compare(curTotals[count], prevTotals[count]),
		OrdersCountByTimeFrame: series[count],
		SaleValueByTimeFrame:   series[sale],
		CostValueByTimeFrame:   series[cost],
		Profit: entity.ProfitSection{
			Total:       compare(curTotals[profit], prevTotals[profit]),
			ByTimeFrame: series[profit],
		},
		AdSpend: entity.AdSpendSection{
			Current:  *curAds,
			Previous: *prevAds,
			Spend:    compare(curAds.Spend, prevAds.Spend),
		},
	}, nil
}

// ChangePct returns (current - previous) / previous * 100. It is 0 and not
// comparable when previous is zero.
func ChangePct(current, previous decimal.Decimal) (decimal.Decimal, bool) {
	if previous.IsZero() {
		return decimal.Zero, false
	}
	return current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2), true
}

func compare(current, previous decimal.Decimal) entity.MetricWithComparison {
	pct, ok := ChangePct(current, previous)
	return entity.MetricWithComparison{
		Value:        current,
		CompareValue: previous,
		ChangePct:    pct,
		Comparable:   ok,
	}
}
