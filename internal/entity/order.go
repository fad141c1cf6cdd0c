package entity

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
)

type OrderStatusName string

const (
	Placed    OrderStatusName = "placed"
	Confirmed OrderStatusName = "confirmed"
	Shipped   OrderStatusName = "shipped"
	Delivered OrderStatusName = "delivered"
	Cancelled OrderStatusName = "cancelled"
	Refunded  OrderStatusName = "refunded"
)

var ValidOrderStatuses = map[OrderStatusName]bool{
	Placed:    true,
	Confirmed: true,
	Shipped:   true,
	Delivered: true,
	Cancelled: true,
	Refunded:  true,
}

type PaymentType string

const (
	PaymentTypeCard           PaymentType = "card"
	PaymentTypeBankInvoice    PaymentType = "bank_invoice"
	PaymentTypeCashOnDelivery PaymentType = "cash_on_delivery"
)

var ValidPaymentTypes = map[PaymentType]bool{
	PaymentTypeCard:           true,
	PaymentTypeBankInvoice:    true,
	PaymentTypeCashOnDelivery: true,
}

// Dimension is a stocked variant of a product and how many units of it were ordered.
type Dimension struct {
	Color    string `db:"color" json:"color" bson:"color"`
	Size     string `db:"size" json:"size" bson:"size"`
	Material string `db:"material" json:"material" bson:"material"`
	Quantity int    `db:"quantity" json:"quantity" bson:"quantity"`
}

// OrderedItem is a line within an order.
type OrderedItem struct {
	ProductId  int         `db:"product_id" json:"product_id" bson:"product_id"`
	Dimensions []Dimension `db:"-" json:"dimensions" bson:"dimensions"`
}

// Quantity returns the number of units ordered across all dimensions.
func (oi *OrderedItem) Quantity() int {
	q := 0
	for _, d := range oi.Dimensions {
		q += d.Quantity
	}
	return q
}

type OrderNew struct {
	PaymentType PaymentType   `json:"payment_type" valid:"required"`
	Items       []OrderedItem `json:"items" valid:"-"`
	// CreatedAt overrides the creation time, used by imports. Zero means now.
	CreatedAt time.Time `json:"created_at" valid:"-"`
}

// ValidateOrderNew validates the OrderNew struct
func (on *OrderNew) ValidateOrderNew() error {
	_, err := govalidator.ValidateStruct(on)
	if err != nil {
		return err
	}
	if !ValidPaymentTypes[on.PaymentType] {
		return fmt.Errorf("unknown payment type %q", on.PaymentType)
	}
	if len(on.Items) == 0 {
		return fmt.Errorf("order has no items")
	}
	for _, it := range on.Items {
		if it.ProductId <= 0 {
			return fmt.Errorf("bad product id %d", it.ProductId)
		}
		if len(it.Dimensions) == 0 {
			return fmt.Errorf("product %d has no dimensions", it.ProductId)
		}
		for _, d := range it.Dimensions {
			if d.Quantity <= 0 {
				return fmt.Errorf("product %d: quantity must be positive", it.ProductId)
			}
		}
	}
	return nil
}

// Order represents the customer_order table with its items attached.
type Order struct {
	Id             int             `db:"id" json:"id"`
	UUID           string          `db:"uuid" json:"uuid"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	Modified       time.Time       `db:"modified" json:"modified"`
	Status         OrderStatusName `db:"status" json:"status"`
	PaymentType    PaymentType     `db:"payment_type" json:"payment_type"`
	TrackingNumber sql.NullString  `db:"tracking_number" json:"-"`
	Items          []OrderedItem   `db:"-" json:"items"`
}

// ProductIds returns the distinct product ids referenced by the order items.
func (o *Order) ProductIds() []int {
	seen := make(map[int]struct{}, len(o.Items))
	ids := make([]int, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductId]; ok {
			continue
		}
		seen[it.ProductId] = struct{}{}
		ids = append(ids, it.ProductId)
	}
	return ids
}
