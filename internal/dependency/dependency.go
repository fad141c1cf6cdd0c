package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type (
	ContextStore interface {
		Tx(ctx context.Context, fn func(ctx context.Context, store Repository) error) error
	}

	// ProductReader is the catalog lookup used by aggregation.
	ProductReader interface {
		// GetProductsByIds returns the products that exist among ids. Missing ids are omitted.
		GetProductsByIds(ctx context.Context, ids []int) ([]entity.Product, error)
	}

	// OrderReader is the order lookup used by aggregation.
	OrderReader interface {
		// GetOrdersCreatedBetween returns orders with created_at in [from, to], items attached, oldest first.
		GetOrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Order, error)
	}

	// DashboardSource is a store able to feed the orders dashboard.
	DashboardSource interface {
		OrderReader
		ProductReader
	}

	Products interface {
		ContextStore
		ProductReader
		// AddProduct adds a new product and returns its id.
		AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error)
		// GetProductById returns a product by its ID.
		GetProductById(ctx context.Context, id int) (*entity.Product, error)
		// DeleteProductById deletes a product by its ID. Orders keep referencing it.
		DeleteProductById(ctx context.Context, id int) error
	}

	Order interface {
		OrderReader
		CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.Order, error)
		GetOrderByUUID(ctx context.Context, orderUUID string) (*entity.Order, error)
		UpdateOrderStatus(ctx context.Context, orderUUID string, status entity.OrderStatusName) error
		SetTrackingNumber(ctx context.Context, orderUUID string, trackingCode string) error
	}

	Repository interface {
		Products() Products
		Order() Order
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Close()
		Ping(ctx context.Context) error
		IsErrorRepeat(err error) bool
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}

	// ProductCache stores product snapshots keyed by id.
	ProductCache interface {
		Get(ctx context.Context, id int) (*entity.Product, bool, error)
		Set(ctx context.Context, prd entity.Product) error
		Invalidate(ctx context.Context, id int) error
		Flush(ctx context.Context) error
	}

	// ProductResolver expands product references into product snapshots.
	ProductResolver interface {
		ResolveProducts(ctx context.Context, ids []int) (map[int]entity.Product, error)
	}

	// ProductInvalidator drops cached product snapshots after catalog changes.
	ProductInvalidator interface {
		Invalidate(ctx context.Context, id int) error
		Flush(ctx context.Context) error
	}

	RatesService interface {
		BaseCurrency() string
		UsdToLocal() decimal.Decimal
		ShippingUsdPerGram() decimal.Decimal
		// CostPrice is the landed unit cost of a product in the local currency.
		CostPrice(prd *entity.Product) decimal.Decimal
		ConvertUsdToLocal(amount decimal.Decimal) decimal.Decimal
	}

	AdSpendReporter interface {
		GetReport(ctx context.Context, from, to time.Time) (*entity.AdSpendReport, error)
	}

	OrdersDashboard interface {
		GetOrdersDashboard(ctx context.Context, from, to time.Time) (*entity.OrdersDashboard, error)
	}
)
