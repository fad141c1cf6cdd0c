// Package mongo reads orders and products from a MongoDB database where order
// items are embedded in the order document.
package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jekabolt/retail-dashboard/internal/entity"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	collectionOrders   = "orders"
	collectionProducts = "products"
)

type Config struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Store is a read-only order and product source backed by MongoDB.
type Store struct {
	client  *mongo.Client
	db      *mongo.Database
	timeout time.Duration
}

type dimensionDoc struct {
	Color    string `bson:"color"`
	Size     string `bson:"size"`
	Material string `bson:"material"`
	Quantity int    `bson:"quantity"`
}

type itemDoc struct {
	ProductId  int            `bson:"product_id"`
	Dimensions []dimensionDoc `bson:"dimensions"`
}

type orderDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	UUID           string        `bson:"uuid"`
	CreatedAt      time.Time     `bson:"created_at"`
	Modified       time.Time     `bson:"modified"`
	Status         string        `bson:"status"`
	PaymentType    string        `bson:"payment_type"`
	TrackingNumber string        `bson:"tracking_number,omitempty"`
	Items          []itemDoc     `bson:"items"`
}

type productDoc struct {
	ID          int             `bson:"_id"`
	CreatedAt   time.Time       `bson:"created_at"`
	UpdatedAt   time.Time       `bson:"updated_at"`
	Name        string          `bson:"name"`
	SKU         string          `bson:"sku"`
	PriceSale   bson.Decimal128 `bson:"price_sale"`
	UnitCostUSD bson.Decimal128 `bson:"unit_cost_usd"`
	WeightGrams bson.Decimal128 `bson:"weight_grams"`
	Hidden      bool            `bson:"hidden"`
}

// New connects to MongoDB and pings the primary.
func New(ctx context.Context, c *Config) (*Store, error) {
	if c == nil || c.URI == "" {
		return nil, fmt.Errorf("mongo uri is empty")
	}
	if c.Database == "" {
		return nil, fmt.Errorf("mongo database is empty")
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client, err := mongo.Connect(options.Client().ApplyURI(c.URI).SetTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("can't connect to mongo: %w", err)
	}
	s := &Store{
		client:  client,
		db:      client.Database(c.Database),
		timeout: timeout,
	}
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	slog.Default().InfoContext(ctx, "connected to mongo", slog.String("database", c.Database))
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		slog.Default().Error("can't disconnect from mongo", slog.String("err", err.Error()))
	}
}

// GetOrdersCreatedBetween returns the orders with created_at in [from, to], oldest first.
func (s *Store) GetOrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	filter := bson.M{"created_at": bson.M{"$gte": from.UTC(), "$lte": to.UTC()}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cur, err := s.db.Collection(collectionOrders).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("can't find orders: %w", err)
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("can't decode orders: %w", err)
	}

	orders := make([]entity.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.toEntity())
	}
	return orders, nil
}

// GetProductsByIds returns the products that exist among ids.
func (s *Store) GetProductsByIds(ctx context.Context, ids []int) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	cur, err := s.db.Collection(collectionProducts).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("can't find products: %w", err)
	}
	var docs []productDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("can't decode products: %w", err)
	}

	prds := make([]entity.Product, 0, len(docs))
	for _, d := range docs {
		prd, err := d.toEntity()
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", d.ID, err)
		}
		prds = append(prds, prd)
	}
	return prds, nil
}

func (d *orderDoc) toEntity() entity.Order {
	o := entity.Order{
		UUID:        d.UUID,
		CreatedAt:   d.CreatedAt.UTC(),
		Modified:    d.Modified.UTC(),
		Status:      entity.OrderStatusName(d.Status),
		PaymentType: entity.PaymentType(d.PaymentType),
		Items:       make([]entity.OrderedItem, 0, len(d.Items)),
	}
	o.TrackingNumber.String = d.TrackingNumber
	o.TrackingNumber.Valid = d.TrackingNumber != ""
	for _, it := range d.Items {
		oi := entity.OrderedItem{ProductId: it.ProductId}
		for _, dim := range it.Dimensions {
			oi.Dimensions = append(oi.Dimensions, entity.Dimension(dim))
		}
		o.Items = append(o.Items, oi)
	}
	return o
}

func (d *productDoc) toEntity() (entity.Product, error) {
	sale, err := toDecimal(d.PriceSale)
	if err != nil {
		return entity.Product{}, fmt.Errorf("price_sale: %w", err)
	}
	cost, err := toDecimal(d.UnitCostUSD)
	if err != nil {
		return entity.Product{}, fmt.Errorf("unit_cost_usd: %w", err)
	}
	weight, err := toDecimal(d.WeightGrams)
	if err != nil {
		return entity.Product{}, fmt.Errorf("weight_grams: %w", err)
	}
	return entity.Product{
		Id:        d.ID,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
		ProductInsert: entity.ProductInsert{
			Name:        d.Name,
			SKU:         d.SKU,
			PriceSale:   sale,
			UnitCostUSD: cost,
			WeightGrams: weight,
			Hidden:      d.Hidden,
		},
	}, nil
}

// toDecimal converts a Decimal128; an unset field is zero.
func toDecimal(d bson.Decimal128) (decimal.Decimal, error) {
	h, l := d.GetBytes()
	if h == 0 && l == 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(d.String())
}
