package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
)

// Accumulator sums one metric over the orders created within a date range.
type Accumulator struct {
	kind     entity.MetricKind
	orders   dependency.OrderReader
	products dependency.ProductResolver
	rates    dependency.RatesService
	loc      *time.Location
}

// NewAccumulator creates an accumulator for kind. Daily keys are computed in loc.
func NewAccumulator(
	kind entity.MetricKind,
	orders dependency.OrderReader,
	products dependency.ProductResolver,
	rates dependency.RatesService,
	loc *time.Location,
) *Accumulator {
	if loc == nil {
		loc = time.UTC
	}
	return &Accumulator{
		kind:     kind,
		orders:   orders,
		products: products,
		rates:    rates,
		loc:      loc,
	}
}

func (a *Accumulator) Kind() entity.MetricKind {
	return a.kind
}

// TotalFor returns the metric summed over all orders created in [from, to].
func (a *Accumulator) TotalFor(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	daily, err := a.daily(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, v := range daily {
		total = total.Add(v)
	}
	return total, nil
}

// ByTimeFrame returns the metric bucketed by granularity in chronological order.
// Buckets without orders are absent; see FillGaps.
func (a *Accumulator) ByTimeFrame(ctx context.Context, from, to time.Time, g entity.MetricsGranularity) ([]entity.RangeData, error) {
	daily, err := a.daily(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return Compress(dailySeries(daily, a.loc), g), nil
}

// daily maps YYYY-MM-DD of created_at to the summed per-order values.
func (a *Accumulator) daily(ctx context.Context, from, to time.Time) (map[string]decimal.Decimal, error) {
	orders, err := a.orders.GetOrdersCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("can't get orders for %s: %w", a.kind, err)
	}

	var products map[int]entity.Product
	if a.kind != entity.MetricOrdersCount {
		products, err = a.products.ResolveProducts(ctx, productIds(orders))
		if err != nil {
			return nil, fmt.Errorf("can't resolve products for %s: %w", a.kind, err)
		}
	}

	daily := make(map[string]decimal.Decimal)
	for _, o := range orders {
		key := o.CreatedAt.In(a.loc).Format(dayKeyLayout)
		daily[key] = daily[key].Add(a.orderValue(ctx, &o, products))
	}
	return daily, nil
}

func (a *Accumulator) orderValue(ctx context.Context, o *entity.Order, products map[int]entity.Product) decimal.Decimal {
	if a.kind == entity.MetricOrdersCount {
		return decimal.NewFromInt(1)
	}
	total := decimal.Zero
	for _, it := range o.Items {
		prd, ok := products[it.ProductId]
		if !ok {
			slog.Default().DebugContext(ctx, "order item references missing product",
				slog.String("order_uuid", o.UUID),
				slog.Int("product_id", it.ProductId),
			)
			continue
		}
		unit, ok := a.unitValue(&prd)
		if !ok {
			slog.Default().DebugContext(ctx, "order item product has no cost basis",
				slog.String("order_uuid", o.UUID),
				slog.Int("product_id", it.ProductId),
				slog.String("metric", string(a.kind)),
			)
			continue
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(it.Quantity()))))
	}
	return total
}

// unitValue is the per-unit value of a product for the metric; false means the line is skipped.
func (a *Accumulator) unitValue(prd *entity.Product) (decimal.Decimal, bool) {
	switch a.kind {
	case entity.MetricSaleValue:
		return prd.PriceSale, true
	case entity.MetricCostValue:
		cost := a.rates.CostPrice(prd)
		if cost.IsZero() {
			return decimal.Zero, false
		}
		return cost, true
	case entity.MetricProfitValue:
		cost := a.rates.CostPrice(prd)
		if cost.IsZero() {
			return decimal.Zero, false
		}
		return prd.PriceSale.Sub(cost), true
	default:
		return decimal.Zero, false
	}
}

func productIds(orders []entity.Order) []int {
	seen := make(map[int]struct{})
	var ids []int
	for i := range orders {
		for _, id := range orders[i].ProductIds() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func dailySeries(daily map[string]decimal.Decimal, loc *time.Location) []entity.RangeData {
	series := make([]entity.RangeData, 0, len(daily))
	for key, v := range daily {
		t, err := time.ParseInLocation(dayKeyLayout, key, loc)
		if err != nil {
			continue
		}
		rd := dayBucket(t)
		rd.Value = v
		series = append(series, rd)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Key < series[j].Key
	})
	return series
}
