package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// OrderApprovalRepository is interface for interacting with approval records
type OrderApprovalRepository interface {
	// SaveOrderApproval inserts new approval record
	SaveOrderApproval(ctx context.Context, approval *models.OrderApproval) error
}

// RestaurantDomainService enforces restaurant approval rules
type RestaurantDomainService struct{}

// ValidateOrder validates the paid order projection against the catalog,
// constructs a fresh approval record and returns the matching event
func (RestaurantDomainService) ValidateOrder(restaurant *models.Restaurant) models.Event {
	logger.Log.Debug("validating order", zap.String("order_id", restaurant.OrderDetail.ID.String()))

	failureMessages := restaurant.ValidateOrder()

	if len(failureMessages) > 0 {
		logger.Log.Error("order is rejected", zap.String("order_id", restaurant.OrderDetail.ID.String()))
		restaurant.ConstructOrderApproval(models.OrderApprovalStatusRejected)
		return models.NewOrderApprovalEvent(models.EventKindOrderRejected,
			&restaurant.OrderApproval, restaurant.ID, failureMessages)
	}

	logger.Log.Debug("order is approved", zap.String("order_id", restaurant.OrderDetail.ID.String()))
	restaurant.ConstructOrderApproval(models.OrderApprovalStatusApproved)
	return models.NewOrderApprovalEvent(models.EventKindOrderApproved,
		&restaurant.OrderApproval, restaurant.ID, failureMessages)
}

// RestaurantService implements the restaurant side of the order saga
type RestaurantService struct {
	domain         RestaurantDomainService
	restaurantRepo RestaurantRepository
	approvalRepo   OrderApprovalRepository
}

// NewRestaurantService creates new RestaurantService instance
func NewRestaurantService(restaurantRepo RestaurantRepository, approvalRepo OrderApprovalRepository) *RestaurantService {
	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		approvalRepo:   approvalRepo,
	}
}

// ProcessApproval validates the approval request against the restaurant
// catalog, records the verdict and returns the approval event
func (rs *RestaurantService) ProcessApproval(ctx context.Context, req models.RestaurantApprovalRequest) (models.Event, error) {
	logger.Log.Debug("processing restaurant approval for order", zap.String("order_id", req.OrderID.String()))

	restaurant, err := rs.findRestaurant(ctx, req)
	if err != nil {
		return models.EventNone, err
	}

	event := rs.domain.ValidateOrder(restaurant)

	if err := rs.approvalRepo.SaveOrderApproval(ctx, &restaurant.OrderApproval); err != nil {
		return models.EventNone, fmt.Errorf("could not save order approval for order [%s]: %w", req.OrderID, err)
	}

	return event, nil
}

// findRestaurant loads the restaurant catalog and merges the confirmed
// name, price and availability into the requested products
func (rs *RestaurantService) findRestaurant(ctx context.Context, req models.RestaurantApprovalRequest) (*models.Restaurant, error) {
	productIDs := make([]uuid.UUID, 0, len(req.Products))
	for _, product := range req.Products {
		productIDs = append(productIDs, product.ProductID)
	}

	entity, err := rs.restaurantRepo.GetRestaurantInformation(ctx, req.RestaurantID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("restaurant with id [%s] could not be found: %w", req.RestaurantID, err)
	}

	catalog := make(map[uuid.UUID]models.Product, len(entity.OrderDetail.Products))
	for _, product := range entity.OrderDetail.Products {
		catalog[product.ID] = product
	}

	products := make([]models.Product, 0, len(req.Products))
	for _, requested := range req.Products {
		product := models.Product{ID: requested.ProductID, Quantity: requested.Quantity}
		if confirmed, ok := catalog[requested.ProductID]; ok {
			product.UpdateWithConfirmedFields(confirmed.Name, confirmed.Price, confirmed.Available)
		}
		products = append(products, product)
	}

	return &models.Restaurant{
		ID:     entity.ID,
		Active: entity.Active,
		OrderDetail: models.OrderDetail{
			ID:          req.OrderID,
			Status:      req.OrderStatus,
			Products:    products,
			TotalAmount: models.MoneyFromFloat(req.Price),
		},
	}, nil
}
