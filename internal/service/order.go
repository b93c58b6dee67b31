package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order with its items
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByTrackingID returns order by tracking id
	GetOrderByTrackingID(ctx context.Context, trackingID uuid.UUID) (*models.Order, error)
	// UpdateOrderInTx loads the order with a row lock, applies fn and
	// persists the mutation, all inside one transaction
	UpdateOrderInTx(ctx context.Context, orderID uuid.UUID, fn func(order *models.Order) error) error
}

// CustomerRepository is interface for interacting with customer data
type CustomerRepository interface {
	// GetCustomerByID returns customer by id
	GetCustomerByID(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
}

// RestaurantRepository is interface for interacting with restaurant data
type RestaurantRepository interface {
	// GetRestaurantInformation returns restaurant with catalog entries
	// restricted to the given products
	GetRestaurantInformation(ctx context.Context, restaurantID uuid.UUID, productIDs []uuid.UUID) (*models.Restaurant, error)
}

// OrderService implements order placement and tracking
type OrderService struct {
	domain         OrderDomainService
	orderRepo      OrderRepository
	customerRepo   CustomerRepository
	restaurantRepo RestaurantRepository
}

// NewOrderService creates new OrderService instance
func NewOrderService(orderRepo OrderRepository, customerRepo CustomerRepository, restaurantRepo RestaurantRepository) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		restaurantRepo: restaurantRepo,
	}
}

// CreateOrder validates the command against customer, restaurant and
// pricing data, persists the PENDING order and returns the OrderCreated
// event for the caller to dispatch after commit.
func (os *OrderService) CreateOrder(ctx context.Context, cmd models.CreateOrderCommand) (*models.Order, models.Event, error) {
	if _, err := os.customerRepo.GetCustomerByID(ctx, cmd.CustomerID); err != nil {
		return nil, models.EventNone, fmt.Errorf("could not find customer with customer id [%s]: %w", cmd.CustomerID, err)
	}

	productIDs := make([]uuid.UUID, 0, len(cmd.Items))
	for _, item := range cmd.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	restaurant, err := os.restaurantRepo.GetRestaurantInformation(ctx, cmd.RestaurantID, productIDs)
	if err != nil {
		return nil, models.EventNone, fmt.Errorf("could not find restaurant with restaurant id [%s]: %w", cmd.RestaurantID, err)
	}

	order := &models.Order{
		CustomerID:      cmd.CustomerID,
		RestaurantID:    cmd.RestaurantID,
		DeliveryAddress: cmd.DeliveryAddress,
		Price:           cmd.Price,
		Items:           cmd.Items,
	}

	event, err := os.domain.ValidateAndInitiateOrder(order, restaurant)
	if err != nil {
		return nil, models.EventNone, err
	}

	if _, err := os.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, models.EventNone, fmt.Errorf("could not save order with id [%s]: %w", order.ID, err)
	}

	logger.Log.Debug("order is saved", zap.String("order_id", order.ID.String()))
	return order, event, nil
}

// TrackOrder returns order by tracking id
func (os *OrderService) TrackOrder(ctx context.Context, trackingID uuid.UUID) (*models.Order, error) {
	return os.orderRepo.GetOrderByTrackingID(ctx, trackingID)
}
