package service

import (
	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// OrderDomainService enforces order invariants and state transitions.
// It is stateless: it mutates the supplied aggregate in memory and
// returns the produced domain event; persistence is the caller's job.
type OrderDomainService struct{}

// ValidateAndInitiateOrder validates the order against the restaurant,
// initializes it and returns OrderCreated event
func (OrderDomainService) ValidateAndInitiateOrder(order *models.Order, restaurant *models.Restaurant) (models.Event, error) {
	if !restaurant.Active {
		return models.EventNone, models.NewDomainError(
			"Restaurant with id [%s] is currently not active!", restaurant.ID)
	}

	if err := validateItemsAgainstCatalog(order, restaurant); err != nil {
		return models.EventNone, err
	}

	if err := order.ValidateOrder(); err != nil {
		return models.EventNone, err
	}
	order.InitializeOrder()

	logger.Log.Debug("order is initiated", zap.String("order_id", order.ID.String()))
	return models.NewOrderEvent(models.EventKindOrderCreated, order), nil
}

// validateItemsAgainstCatalog confirms each ordered item price against the
// restaurant catalog
func validateItemsAgainstCatalog(order *models.Order, restaurant *models.Restaurant) error {
	catalog := make(map[uuid.UUID]models.Product, len(restaurant.OrderDetail.Products))
	for _, product := range restaurant.OrderDetail.Products {
		catalog[product.ID] = product
	}

	for _, item := range order.Items {
		product, ok := catalog[item.ProductID]
		if !ok || item.Price != product.Price {
			return models.NewDomainError("Order item price [%s] is not valid for product [%s]",
				item.Price, item.ProductID)
		}
	}
	return nil
}

// PayOrder moves order to PAID and returns OrderPaid event
func (OrderDomainService) PayOrder(order *models.Order) (models.Event, error) {
	if err := order.Pay(); err != nil {
		return models.EventNone, err
	}

	logger.Log.Debug("order is paid", zap.String("order_id", order.ID.String()))
	return models.NewOrderEvent(models.EventKindOrderPaid, order), nil
}

// ApproveOrder moves order to APPROVED, the terminal success state
func (OrderDomainService) ApproveOrder(order *models.Order) error {
	if err := order.Approve(); err != nil {
		return err
	}

	logger.Log.Debug("order is approved", zap.String("order_id", order.ID.String()))
	return nil
}

// CancelOrderPayment moves paid order to CANCELLING and returns
// OrderCancelled event that triggers the compensating payment cancel
func (OrderDomainService) CancelOrderPayment(order *models.Order, failureMessages []string) (models.Event, error) {
	if err := order.InitCancel(failureMessages); err != nil {
		return models.EventNone, err
	}

	logger.Log.Debug("order payment is cancelling", zap.String("order_id", order.ID.String()))
	return models.NewOrderEvent(models.EventKindOrderCancelled, order), nil
}

// CancelOrder completes cancellation, the terminal failure state
func (OrderDomainService) CancelOrder(order *models.Order, failureMessages []string) error {
	if err := order.Cancel(failureMessages); err != nil {
		return err
	}

	logger.Log.Debug("order is cancelled", zap.String("order_id", order.ID.String()))
	return nil
}
