package cache

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
)

// Resolver is a read-through product lookup. Cache failures are logged and
// fall through to the store.
type Resolver struct {
	products dependency.ProductReader
	cache    dependency.ProductCache
}

func NewResolver(products dependency.ProductReader, cache dependency.ProductCache) *Resolver {
	return &Resolver{
		products: products,
		cache:    cache,
	}
}

// ResolveProducts returns the products found for ids keyed by id. Unknown ids are absent.
func (r *Resolver) ResolveProducts(ctx context.Context, ids []int) (map[int]entity.Product, error) {
	res := make(map[int]entity.Product, len(ids))
	seen := make(map[int]struct{}, len(ids))
	var misses []int
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if r.cache != nil {
			prd, ok, err := r.cache.Get(ctx, id)
			if err != nil {
				slog.Default().WarnContext(ctx, "product cache get failed",
					slog.Int("product_id", id),
					slog.String("err", err.Error()),
				)
			}
			if ok {
				res[id] = *prd
				continue
			}
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return res, nil
	}

	prds, err := r.products.GetProductsByIds(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("can't get products by ids: %w", err)
	}
	for _, prd := range prds {
		res[prd.Id] = prd
		if r.cache == nil {
			continue
		}
		if err := r.cache.Set(ctx, prd); err != nil {
			slog.Default().WarnContext(ctx, "product cache set failed",
				slog.Int("product_id", prd.Id),
				slog.String("err", err.Error()),
			)
		}
	}
	return res, nil
}

// Invalidate drops a product snapshot after it was changed or deleted.
func (r *Resolver) Invalidate(ctx context.Context, id int) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Invalidate(ctx, id)
}

// Flush drops every product snapshot.
func (r *Resolver) Flush(ctx context.Context) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Flush(ctx)
}
