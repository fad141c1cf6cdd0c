package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jekabolt/retail-dashboard/internal/dependency"
	"github.com/jekabolt/retail-dashboard/internal/entity"
	gerr "github.com/jekabolt/retail-dashboard/internal/errors"
)

type orderStore struct {
	*MYSQLStore
}

// Order returns an object implementing order interface
func (ms *MYSQLStore) Order() dependency.Order {
	return &orderStore{
		MYSQLStore: ms,
	}
}

// ValidStatusTransitions defines allowed status transitions
// Key: current status, Value: slice of allowed next statuses
var ValidStatusTransitions = map[entity.OrderStatusName][]entity.OrderStatusName{
	entity.Placed: {
		entity.Confirmed,
		entity.Cancelled,
	},
	entity.Confirmed: {
		entity.Shipped,
		entity.Refunded,
		entity.Cancelled,
	},
	entity.Shipped: {
		entity.Delivered,
		entity.Refunded,
	},
	entity.Delivered: {
		entity.Refunded,
	},
	// Terminal states - no transitions allowed
	entity.Cancelled: {},
	entity.Refunded:  {},
}

// isValidStatusTransition checks if transition from currentStatus to newStatus is allowed
func isValidStatusTransition(currentStatus, newStatus entity.OrderStatusName) bool {
	return slices.Contains(ValidStatusTransitions[currentStatus], newStatus)
}

func insertOrder(ctx context.Context, rep dependency.Repository, order *entity.Order) (int, error) {
	query := `
	INSERT INTO customer_order
	 (uuid, created_at, status, payment_type)
	 VALUES (:uuid, :createdAt, :status, :paymentType)
	`
	id, err := ExecNamedLastId(ctx, rep.DB(), query, map[string]any{
		"uuid":        order.UUID,
		"createdAt":   order.CreatedAt,
		"status":      order.Status,
		"paymentType": order.PaymentType,
	})
	if err != nil {
		return 0, fmt.Errorf("can't insert order: %w", err)
	}
	return id, nil
}

func insertOrderItems(ctx context.Context, rep dependency.Repository, items []entity.OrderedItem, orderId int) error {
	if len(items) == 0 {
		return fmt.Errorf("no order items to insert")
	}
	for _, item := range items {
		query := `INSERT INTO order_item (order_id, product_id) VALUES (:orderId, :productId)`
		itemId, err := ExecNamedLastId(ctx, rep.DB(), query, map[string]any{
			"orderId":   orderId,
			"productId": item.ProductId,
		})
		if err != nil {
			return fmt.Errorf("can't insert order item: %w", err)
		}

		rows := make([]map[string]any, 0, len(item.Dimensions))
		for _, d := range item.Dimensions {
			rows = append(rows, map[string]any{
				"order_item_id": itemId,
				"color":         d.Color,
				"size":          d.Size,
				"material":      d.Material,
				"quantity":      d.Quantity,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "order_item_dimension", rows); err != nil {
			return fmt.Errorf("can't insert order item dimensions: %w", err)
		}
	}
	return nil
}

// CreateOrder stores a new order in status placed together with its items.
func (ms *MYSQLStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.Order, error) {
	if orderNew == nil {
		return nil, fmt.Errorf("%w: order is nil", gerr.ErrBadRequest)
	}
	if err := orderNew.ValidateOrderNew(); err != nil {
		return nil, fmt.Errorf("%w: %v", gerr.ErrBadRequest, err)
	}

	createdAt := orderNew.CreatedAt
	if createdAt.IsZero() {
		createdAt = ms.Now()
	}
	order := &entity.Order{
		UUID:        uuid.New().String(),
		CreatedAt:   createdAt.UTC().Truncate(time.Millisecond),
		Status:      entity.Placed,
		PaymentType: orderNew.PaymentType,
		Items:       orderNew.Items,
	}

	err := ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		id, err := insertOrder(ctx, rep, order)
		if err != nil {
			return err
		}
		order.Id = id
		return insertOrderItems(ctx, rep, order.Items, id)
	})
	if err != nil {
		return nil, fmt.Errorf("can't create order: %w", err)
	}
	return order, nil
}

func getOrderByUUID(ctx context.Context, rep dependency.Repository, uuid string, forUpdate bool) (*entity.Order, error) {
	query := `
	SELECT id, uuid, created_at, modified, status, payment_type, tracking_number
	FROM customer_order WHERE uuid = :uuid`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	order, err := QueryNamedOne[entity.Order](ctx, rep.DB(), query, map[string]any{
		"uuid": uuid,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", gerr.OrderNotFound, uuid)
		}
		return nil, fmt.Errorf("can't get order by uuid: %w", err)
	}
	return &order, nil
}

// GetOrderByUUID returns the order with its items.
func (ms *MYSQLStore) GetOrderByUUID(ctx context.Context, uuid string) (*entity.Order, error) {
	order, err := getOrderByUUID(ctx, ms, uuid, false)
	if err != nil {
		return nil, err
	}
	orders := []entity.Order{*order}
	if err := attachOrderItems(ctx, ms, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func updateOrderStatus(ctx context.Context, rep dependency.Repository, orderId int, status entity.OrderStatusName) error {
	query := `UPDATE customer_order SET status = :status WHERE id = :orderId`
	_, err := ExecNamed(ctx, rep.DB(), query, map[string]any{
		"status":  status,
		"orderId": orderId,
	})
	if err != nil {
		return fmt.Errorf("can't update order status: %w", err)
	}
	return nil
}

// UpdateOrderStatus moves the order to status if the transition is allowed.
func (ms *MYSQLStore) UpdateOrderStatus(ctx context.Context, orderUUID string, status entity.OrderStatusName) error {
	if !entity.ValidOrderStatuses[status] {
		return fmt.Errorf("%w: unknown order status %q", gerr.ErrBadRequest, status)
	}
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := getOrderByUUID(ctx, rep, orderUUID, true)
		if err != nil {
			return err
		}
		if order.Status == status {
			return nil
		}
		if !isValidStatusTransition(order.Status, status) {
			return fmt.Errorf("%w: can't move order from %s to %s", gerr.ErrBadRequest, order.Status, status)
		}
		return updateOrderStatus(ctx, rep, order.Id, status)
	})
}

// SetTrackingNumber stores the tracking code and marks a confirmed order as shipped.
func (ms *MYSQLStore) SetTrackingNumber(ctx context.Context, orderUUID string, trackingCode string) error {
	if trackingCode == "" {
		return fmt.Errorf("%w: tracking code is empty", gerr.ErrBadRequest)
	}
	return ms.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		order, err := getOrderByUUID(ctx, rep, orderUUID, true)
		if err != nil {
			return err
		}
		if order.Status != entity.Confirmed && order.Status != entity.Shipped {
			return fmt.Errorf("%w: bad order status for setting tracking number: %s", gerr.ErrBadRequest, order.Status)
		}

		query := `UPDATE customer_order SET tracking_number = :trackingNumber WHERE id = :orderId`
		_, err = ExecNamed(ctx, rep.DB(), query, map[string]any{
			"trackingNumber": trackingCode,
			"orderId":        order.Id,
		})
		if err != nil {
			return fmt.Errorf("can't set tracking number: %w", err)
		}
		if order.Status == entity.Confirmed {
			return updateOrderStatus(ctx, rep, order.Id, entity.Shipped)
		}
		return nil
	})
}

// GetOrdersCreatedBetween returns the orders with created_at in [from, to], oldest first, items attached.
func (ms *MYSQLStore) GetOrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]entity.Order, error) {
	query := `
	SELECT id, uuid, created_at, modified, status, payment_type, tracking_number
	FROM customer_order
	WHERE created_at BETWEEN :from AND :to
	ORDER BY created_at ASC, id ASC`

	orders, err := QueryListNamed[entity.Order](ctx, ms.DB(), query, map[string]any{
		"from": from.UTC(),
		"to":   to.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("can't get orders created between: %w", err)
	}
	if err := attachOrderItems(ctx, ms, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachOrderItems loads the items and their dimensions for orders in one query.
func attachOrderItems(ctx context.Context, rep dependency.Repository, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	orderIds := make([]int, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.Id)
	}

	query := `
	SELECT
		oi.id AS item_id,
		oi.order_id,
		oi.product_id,
		COALESCE(d.color, '') AS color,
		COALESCE(d.size, '') AS size,
		COALESCE(d.material, '') AS material,
		COALESCE(d.quantity, 0) AS quantity
	FROM order_item oi
	LEFT JOIN order_item_dimension d ON d.order_item_id = oi.id
	WHERE oi.order_id IN (:orderIds)
	ORDER BY oi.order_id, oi.id, d.id`

	type itemRow struct {
		ItemId    int `db:"item_id"`
		OrderId   int `db:"order_id"`
		ProductId int `db:"product_id"`
		entity.Dimension
	}

	rows, err := QueryListNamed[itemRow](ctx, rep.DB(), query, map[string]any{
		"orderIds": orderIds,
	})
	if err != nil {
		return fmt.Errorf("can't get order items: %w", err)
	}

	items := make(map[int][]entity.OrderedItem, len(orders))
	lastItem := make(map[int]int, len(orders))
	for _, r := range rows {
		its := items[r.OrderId]
		if len(its) == 0 || lastItem[r.OrderId] != r.ItemId {
			its = append(its, entity.OrderedItem{ProductId: r.ProductId})
			lastItem[r.OrderId] = r.ItemId
		}
		if r.Quantity > 0 {
			its[len(its)-1].Dimensions = append(its[len(its)-1].Dimensions, r.Dimension)
		}
		items[r.OrderId] = its
	}
	for i := range orders {
		orders[i].Items = items[orders[i].Id]
	}
	return nil
}
