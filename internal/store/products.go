package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
)

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing product interface
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{
		MYSQLStore: ms,
	}
}

const productColumns = `
	p.id,
	p.created_at,
	p.updated_at,
	p.name,
	p.sku,
	p.price_sale,
	p.unit_cost_usd,
	p.weight_grams,
	p.hidden`

// AddProduct adds a new product and returns its id.
func (ms *MYSQLStore) AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error) {
	if prd == nil {
		return 0, fmt.Errorf("%w: product is nil", gerr.ErrBadRequest)
	}
	if err := prd.ValidateProductInsert(); err != nil {
		return 0, fmt.Errorf("%w: %v", gerr.ErrBadRequest, err)
	}

	query := `
	INSERT INTO product
	(name, sku, price_sale, unit_cost_usd, weight_grams, hidden)
	VALUES (:name, :sku, :priceSale, :unitCostUsd, :weightGrams, :hidden)`

	id, err := ExecNamedLastId(ctx, ms.DB(), query, map[string]any{
		"name":        prd.Name,
		"sku":         prd.SKU,
		"priceSale":   prd.PriceSale.Round(2),
		"unitCostUsd": prd.UnitCostUSD.Round(4),
		"weightGrams": prd.WeightGrams.Round(2),
		"hidden":      prd.Hidden,
	})
	if err != nil {
		if ms.IsErrUniqueViolation(err) {
			return 0, fmt.Errorf("%w: sku %q already exists", gerr.ErrBadRequest, prd.SKU)
		}
		return 0, fmt.Errorf("can't insert product: %w", err)
	}
	return id, nil
}

// GetProductById returns a product by its ID.
func (ms *MYSQLStore) GetProductById(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM product p WHERE p.id = :id`
	prd, err := QueryNamedOne[entity.Product](ctx, ms.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", gerr.ProductNotFound, id)
		}
		return nil, fmt.Errorf("can't get product by id: %w", err)
	}
	return &prd, nil
}

// GetProductsByIds returns the products that exist among ids, hidden ones included.
func (ms *MYSQLStore) GetProductsByIds(ctx context.Context, ids []int) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	query := `SELECT ` + productColumns + ` FROM product p WHERE p.id IN (:productIds)`
	prds, err := QueryListNamed[entity.Product](ctx, ms.DB(), query, map[string]any{
		"productIds": ids,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	if prds == nil {
		prds = []entity.Product{}
	}
	return prds, nil
}

// DeleteProductById deletes a product by its ID. Order items keep referencing it.
func (ms *MYSQLStore) DeleteProductById(ctx context.Context, id int) error {
	query := "DELETE FROM product WHERE id = :id"
	n, err := ExecNamed(ctx, ms.DB(), query, map[string]any{
		"id": id,
	})
	if err != nil {
		return fmt.Errorf("can't delete product: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", gerr.ProductNotFound, id)
	}
	return nil
}
