package entity

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/shopspring/decimal"
)

// ProductInsert holds the writable catalog fields of a product.
type ProductInsert struct {
	Name string `db:"name" json:"name" valid:"required"`
	SKU  string `db:"sku" json:"sku" valid:"required"`
	// PriceSale is the sale price in the local currency.
	PriceSale decimal.Decimal `db:"price_sale" json:"price_sale"`
	// UnitCostUSD is the purchase cost of one unit in USD.
	UnitCostUSD decimal.Decimal `db:"unit_cost_usd" json:"unit_cost_usd"`
	// WeightGrams is the shipping weight used to derive the landed cost.
	WeightGrams decimal.Decimal `db:"weight_grams" json:"weight_grams"`
	Hidden      bool            `db:"hidden" json:"hidden"`
}

// ValidateProductInsert validates the ProductInsert struct
func (pi *ProductInsert) ValidateProductInsert() error {
	_, err := govalidator.ValidateStruct(pi)
	if err != nil {
		return err
	}
	if pi.PriceSale.IsNegative() {
		return fmt.Errorf("price_sale must not be negative")
	}
	if pi.UnitCostUSD.IsNegative() {
		return fmt.Errorf("unit_cost_usd must not be negative")
	}
	if pi.WeightGrams.IsNegative() {
		return fmt.Errorf("weight_grams must not be negative")
	}
	return nil
}

// Product represents the product table
type Product struct {
	Id        int       `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	ProductInsert
}
