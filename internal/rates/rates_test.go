package rates

import (
	"testing"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects non positive usd rate", func(t *testing.T) {
		_, err := New(&Config{UsdToLocal: 0})
		assert.Error(t, err)
	})
	t.Run("rejects negative shipping rate", func(t *testing.T) {
		_, err := New(&Config{UsdToLocal: 40, ShippingUsdPerGram: -1})
		assert.Error(t, err)
	})
	t.Run("defaults base currency", func(t *testing.T) {
		p, err := New(&Config{UsdToLocal: 40})
		require.NoError(t, err)
		assert.Equal(t, "UAH", p.BaseCurrency())
	})
	t.Run("rejects bad base currency", func(t *testing.T) {
		_, err := New(&Config{BaseCurrency: "hryvnia", UsdToLocal: 40})
		assert.Error(t, err)
	})
	t.Run("nil config", func(t *testing.T) {
		_, err := New(nil)
		assert.Error(t, err)
	})
}

func TestCostPrice(t *testing.T) {
	p, err := New(&Config{BaseCurrency: "uah", UsdToLocal: 40, ShippingUsdPerGram: 0.02})
	require.NoError(t, err)
	assert.Equal(t, "UAH", p.BaseCurrency())

	prd := &entity.Product{ProductInsert: entity.ProductInsert{
		UnitCostUSD: decimal.NewFromInt(10),
		WeightGrams: decimal.NewFromInt(500),
	}}
	// (500 * 0.02 + 10) * 40 = 800
	assert.True(t, p.CostPrice(prd).Equal(decimal.NewFromInt(800)), p.CostPrice(prd).String())

	assert.True(t, p.CostPrice(nil).IsZero())
	assert.True(t, p.CostPrice(&entity.Product{}).IsZero())
}

func TestConvertUsdToLocal(t *testing.T) {
	p, err := New(&Config{UsdToLocal: 41.5})
	require.NoError(t, err)
	assert.True(t, p.ConvertUsdToLocal(decimal.NewFromInt(2)).Equal(decimal.NewFromInt(83)))
}
