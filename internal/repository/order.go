package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/repository/postgres"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (id, customer_id, restaurant_id, tracking_id, street, postal_code, city, price, status, failure_messages)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	insertOrderItemQuery = `
						INSERT INTO order_items (order_id, product_id, quantity, price, sub_total)
						VALUES ($1, $2, $3, $4, $5)
`
	selectOrderByIDForUpdateQuery = `
						SELECT id, customer_id, restaurant_id, tracking_id, street, postal_code, city, price, status, failure_messages FROM orders
						WHERE id = $1
						FOR UPDATE
`
	selectOrderByTrackingIDQuery = `
						SELECT id, customer_id, restaurant_id, tracking_id, street, postal_code, city, price, status, failure_messages FROM orders
						WHERE tracking_id = $1
`
	selectOrderItemsQuery = `
						SELECT product_id, quantity, price, sub_total FROM order_items
						WHERE order_id = $1
`
	updateOrderQuery = `
						UPDATE orders
						SET status = $1, failure_messages = $2
						WHERE id = $3
`
)

// OrderRepository implements service.OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new order with its items in one transaction
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.WithinTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insertOrderQuery,
			order.ID, order.CustomerID, order.RestaurantID, order.TrackingID,
			order.DeliveryAddress.Street, order.DeliveryAddress.PostalCode, order.DeliveryAddress.City,
			order.Price.Cents(), order.Status, joinFailureMessages(order.FailureMessages))
		if err != nil {
			return err
		}

		for _, item := range order.Items {
			_, err = tx.Exec(ctx, insertOrderItemQuery,
				order.ID, item.ProductID, item.Quantity, item.Price.Cents(), item.Subtotal.Cents())
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByTrackingID returns order by tracking id
func (or *OrderRepository) GetOrderByTrackingID(ctx context.Context, trackingID uuid.UUID) (*models.Order, error) {
	order, err := scanOrder(or.db.QueryRow(ctx, selectOrderByTrackingIDQuery, trackingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	items, err := or.queryOrderItems(ctx, or.db, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// UpdateOrderInTx loads the order with a row lock, applies fn and
// persists the mutated status and failure messages, all inside one
// transaction. The row lock serializes concurrent saga steps touching
// the same order.
func (or *OrderRepository) UpdateOrderInTx(ctx context.Context, orderID uuid.UUID, fn func(order *models.Order) error) error {
	return or.db.WithinTx(ctx, func(tx pgx.Tx) error {
		order, err := scanOrder(tx.QueryRow(ctx, selectOrderByIDForUpdateQuery, orderID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("order with id [%s] could not be found: %w", orderID, models.ErrDataNotFound)
			}
			return err
		}

		items, err := or.queryOrderItems(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		order.Items = items

		if err := fn(order); err != nil {
			return err
		}

		cmd, err := tx.Exec(ctx, updateOrderQuery,
			order.Status, joinFailureMessages(order.FailureMessages), order.ID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return models.ErrDataNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanOrder(row rowScanner) (*models.Order, error) {
	order := models.Order{}
	var price int64
	var failureMessages string

	err := row.Scan(&order.ID, &order.CustomerID, &order.RestaurantID, &order.TrackingID,
		&order.DeliveryAddress.Street, &order.DeliveryAddress.PostalCode, &order.DeliveryAddress.City,
		&price, &order.Status, &failureMessages)
	if err != nil {
		return nil, err
	}

	order.Price = models.NewMoney(price)
	order.FailureMessages = splitFailureMessages(failureMessages)
	return &order, nil
}

func (or *OrderRepository) queryOrderItems(ctx context.Context, q querier, orderID uuid.UUID) ([]models.OrderItem, error) {
	rows, err := q.Query(ctx, selectOrderItemsQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem

	for rows.Next() {
		item := models.OrderItem{}
		var price, subTotal int64
		if err := rows.Scan(&item.ProductID, &item.Quantity, &price, &subTotal); err != nil {
			return nil, err
		}
		item.Price = models.NewMoney(price)
		item.Subtotal = models.NewMoney(subTotal)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
