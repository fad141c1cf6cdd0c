package rates

import (
	"fmt"
	"strings"

	"github.com/jekabolt/retail-dashboard/internal/currency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
)

var baseCurrency = "UAH"

// Config holds the fixed rates used to derive product cost.
type Config struct {
	BaseCurrency string `mapstructure:"base_currency"`
	// UsdToLocal is how many local currency units one USD buys.
	UsdToLocal float64 `mapstructure:"usd_to_local"`
	// ShippingUsdPerGram is the inbound shipping rate.
	ShippingUsdPerGram float64 `mapstructure:"shipping_usd_per_gram"`
}

type Provider struct {
	baseCurrency       string
	usdToLocal         decimal.Decimal
	shippingUsdPerGram decimal.Decimal
}

func New(c *Config) (*Provider, error) {
	if c == nil {
		return nil, fmt.Errorf("rates config is required")
	}
	if c.UsdToLocal <= 0 {
		return nil, fmt.Errorf("usd_to_local must be positive, got %v", c.UsdToLocal)
	}
	if c.ShippingUsdPerGram < 0 {
		return nil, fmt.Errorf("shipping_usd_per_gram must not be negative, got %v", c.ShippingUsdPerGram)
	}
	bc := baseCurrency
	if strings.TrimSpace(c.BaseCurrency) != "" {
		var err error
		if bc, err = currency.Normalize(c.BaseCurrency); err != nil {
			return nil, err
		}
	}
	return &Provider{
		baseCurrency:       bc,
		usdToLocal:         decimal.NewFromFloat(c.UsdToLocal),
		shippingUsdPerGram: decimal.NewFromFloat(c.ShippingUsdPerGram),
	}, nil
}

func (p *Provider) BaseCurrency() string {
	return p.baseCurrency
}

func (p *Provider) UsdToLocal() decimal.Decimal {
	return p.usdToLocal
}

func (p *Provider) ShippingUsdPerGram() decimal.Decimal {
	return p.shippingUsdPerGram
}

// CostPrice returns (weight_grams * shipping_usd_per_gram + unit_cost_usd) * usd_to_local.
func (p *Provider) CostPrice(prd *entity.Product) decimal.Decimal {
	if prd == nil {
		return decimal.Zero
	}
	shipping := prd.WeightGrams.Mul(p.shippingUsdPerGram)
	return shipping.Add(prd.UnitCostUSD).Mul(p.usdToLocal)
}

func (p *Provider) ConvertUsdToLocal(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(p.usdToLocal)
}
