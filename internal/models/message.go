package models

import (
	"time"

	"github.com/google/uuid"
)

// payment request order status: which payment operation is requested
const (
	PaymentOrderStatusPending   = "PENDING"
	PaymentOrderStatusCancelled = "CANCELLED"
)

// CreateOrderCommand is inbound order placement command
type CreateOrderCommand struct {
	CustomerID      uuid.UUID
	RestaurantID    uuid.UUID
	DeliveryAddress Address
	Price           Money
	Items           []OrderItem
}

// PaymentRequest asks the payment service to complete or cancel a payment
type PaymentRequest struct {
	OrderID    uuid.UUID `json:"order_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Price      float64   `json:"price"`
	Status     string    `json:"payment_order_status"`
	CreatedAt  time.Time `json:"created_at"`
}

// PaymentResponse reports the outcome of a payment operation
type PaymentResponse struct {
	OrderID         uuid.UUID `json:"order_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	Price           float64   `json:"price"`
	Status          string    `json:"payment_status"`
	FailureMessages []string  `json:"failure_messages"`
	CreatedAt       time.Time `json:"created_at"`
}

// ApprovalProduct is ordered product position inside an approval request
type ApprovalProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// RestaurantApprovalRequest asks the restaurant service to approve a paid order
type RestaurantApprovalRequest struct {
	OrderID      uuid.UUID         `json:"order_id"`
	RestaurantID uuid.UUID         `json:"restaurant_id"`
	OrderStatus  string            `json:"order_status"`
	Products     []ApprovalProduct `json:"products"`
	Price        float64           `json:"price"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RestaurantApprovalResponse reports the restaurant verdict
type RestaurantApprovalResponse struct {
	OrderID         uuid.UUID `json:"order_id"`
	RestaurantID    uuid.UUID `json:"restaurant_id"`
	Status          string    `json:"order_approval_status"`
	FailureMessages []string  `json:"failure_messages"`
	CreatedAt       time.Time `json:"created_at"`
}
