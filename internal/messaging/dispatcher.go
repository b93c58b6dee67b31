package messaging

import (
	"context"

	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// TopicPublisher is interface for appending messages to a topic
type TopicPublisher interface {
	Publish(ctx context.Context, topic string, message any) error
}

// Dispatcher maps a domain event kind to its outbound topic and wire
// message. Publish failures are logged, never propagated: the aggregate
// mutation is already committed and outer redelivery is the retry path.
type Dispatcher struct {
	pub TopicPublisher
}

// NewDispatcher creates new Dispatcher instance
func NewDispatcher(pub TopicPublisher) *Dispatcher {
	return &Dispatcher{pub: pub}
}

// Dispatch publishes the event to its transport topic. EventKindNone is
// a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, event models.Event) {
	var (
		topic   string
		message any
	)

	switch event.Kind {
	case models.EventKindNone:
		return
	case models.EventKindOrderCreated:
		topic = TopicPaymentRequest
		message = paymentRequestFromOrder(event, models.PaymentOrderStatusPending)
	case models.EventKindOrderCancelled:
		topic = TopicPaymentRequest
		message = paymentRequestFromOrder(event, models.PaymentOrderStatusCancelled)
	case models.EventKindOrderPaid:
		topic = TopicApprovalRequest
		message = approvalRequestFromOrder(event)
	case models.EventKindPaymentCompleted, models.EventKindPaymentCancelled, models.EventKindPaymentFailed:
		topic = TopicPaymentResponse
		message = paymentResponseFromEvent(event)
	case models.EventKindOrderApproved, models.EventKindOrderRejected:
		topic = TopicApprovalResponse
		message = approvalResponseFromEvent(event)
	default:
		logger.Log.Error("no topic bound for event", zap.String("kind", event.Kind.String()))
		return
	}

	if err := d.pub.Publish(ctx, topic, message); err != nil {
		logger.Log.Error("event publish failed",
			zap.String("kind", event.Kind.String()), zap.String("topic", topic), zap.Error(err))
		return
	}

	logger.Log.Debug("event published",
		zap.String("kind", event.Kind.String()), zap.String("topic", topic))
}

func paymentRequestFromOrder(event models.Event, status string) models.PaymentRequest {
	return models.PaymentRequest{
		OrderID:    event.Order.ID,
		CustomerID: event.Order.CustomerID,
		Price:      event.Order.Price.Float64(),
		Status:     status,
		CreatedAt:  event.CreatedAt,
	}
}

func approvalRequestFromOrder(event models.Event) models.RestaurantApprovalRequest {
	products := make([]models.ApprovalProduct, 0, len(event.Order.Items))
	for _, item := range event.Order.Items {
		products = append(products, models.ApprovalProduct{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return models.RestaurantApprovalRequest{
		OrderID:      event.Order.ID,
		RestaurantID: event.Order.RestaurantID,
		OrderStatus:  event.Order.Status,
		Products:     products,
		Price:        event.Order.Price.Float64(),
		CreatedAt:    event.CreatedAt,
	}
}

func paymentResponseFromEvent(event models.Event) models.PaymentResponse {
	return models.PaymentResponse{
		OrderID:         event.Payment.OrderID,
		CustomerID:      event.Payment.CustomerID,
		Price:           event.Payment.Price.Float64(),
		Status:          event.Payment.Status,
		FailureMessages: event.FailureMessages,
		CreatedAt:       event.CreatedAt,
	}
}

func approvalResponseFromEvent(event models.Event) models.RestaurantApprovalResponse {
	return models.RestaurantApprovalResponse{
		OrderID:         event.OrderApproval.OrderID,
		RestaurantID:    event.RestaurantID,
		Status:          event.OrderApproval.Status,
		FailureMessages: event.FailureMessages,
		CreatedAt:       event.CreatedAt,
	}
}
