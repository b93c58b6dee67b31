package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic   string
	message any
}

type fakeTopicPublisher struct {
	published []published
	err       error
}

func (p *fakeTopicPublisher) Publish(_ context.Context, topic string, message any) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, published{topic: topic, message: message})
	return nil
}

func testDispatchOrder(status string) *models.Order {
	return &models.Order{
		ID:           uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb40"),
		CustomerID:   uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb41"),
		RestaurantID: uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb45"),
		Price:        models.MoneyFromFloat(200.00),
		Status:       status,
		Items: []models.OrderItem{
			{ProductID: uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb48"), Quantity: 4},
		},
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	tests := []struct {
		name      string
		event     models.Event
		wantTopic string
	}{
		{
			name:      "order_created_goes_to_payment_request",
			event:     models.NewOrderEvent(models.EventKindOrderCreated, testDispatchOrder(models.OrderStatusPending)),
			wantTopic: TopicPaymentRequest,
		},
		{
			name:      "order_cancelled_goes_to_payment_request",
			event:     models.NewOrderEvent(models.EventKindOrderCancelled, testDispatchOrder(models.OrderStatusCancelling)),
			wantTopic: TopicPaymentRequest,
		},
		{
			name:      "order_paid_goes_to_approval_request",
			event:     models.NewOrderEvent(models.EventKindOrderPaid, testDispatchOrder(models.OrderStatusPaid)),
			wantTopic: TopicApprovalRequest,
		},
		{
			name: "payment_completed_goes_to_payment_response",
			event: models.NewPaymentEvent(models.EventKindPaymentCompleted,
				&models.Payment{Status: models.PaymentStatusCompleted}, nil),
			wantTopic: TopicPaymentResponse,
		},
		{
			name: "payment_failed_goes_to_payment_response",
			event: models.NewPaymentEvent(models.EventKindPaymentFailed,
				&models.Payment{Status: models.PaymentStatusFailed}, []string{"Total price must be greater than zero!"}),
			wantTopic: TopicPaymentResponse,
		},
		{
			name: "order_rejected_goes_to_approval_response",
			event: models.NewOrderApprovalEvent(models.EventKindOrderRejected,
				&models.OrderApproval{Status: models.OrderApprovalStatusRejected},
				uuid.New(), []string{"Product with id [x] is not available"}),
			wantTopic: TopicApprovalResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakeTopicPublisher{}
			NewDispatcher(pub).Dispatch(context.Background(), tt.event)

			require.Len(t, pub.published, 1)
			assert.Equal(t, tt.wantTopic, pub.published[0].topic)
		})
	}
}

func TestDispatcher_Dispatch_None(t *testing.T) {
	pub := &fakeTopicPublisher{}
	NewDispatcher(pub).Dispatch(context.Background(), models.EventNone)
	assert.Empty(t, pub.published)
}

func TestDispatcher_Dispatch_PublishFailureIsSwallowed(t *testing.T) {
	pub := &fakeTopicPublisher{err: errors.New("broker is down")}

	// the aggregate mutation is already committed; dispatch must not panic
	// or propagate transport errors
	NewDispatcher(pub).Dispatch(context.Background(),
		models.NewOrderEvent(models.EventKindOrderCreated, testDispatchOrder(models.OrderStatusPending)))
	assert.Empty(t, pub.published)
}

func TestDispatcher_PaymentRequestMessage(t *testing.T) {
	pub := &fakeTopicPublisher{}
	order := testDispatchOrder(models.OrderStatusPending)

	NewDispatcher(pub).Dispatch(context.Background(),
		models.NewOrderEvent(models.EventKindOrderCreated, order))

	require.Len(t, pub.published, 1)
	req, ok := pub.published[0].message.(models.PaymentRequest)
	require.True(t, ok)

	assert.Equal(t, order.ID, req.OrderID)
	assert.Equal(t, order.CustomerID, req.CustomerID)
	assert.Equal(t, 200.00, req.Price)
	assert.Equal(t, models.PaymentOrderStatusPending, req.Status)
}

func TestDispatcher_ApprovalRequestMessage(t *testing.T) {
	pub := &fakeTopicPublisher{}
	order := testDispatchOrder(models.OrderStatusPaid)

	NewDispatcher(pub).Dispatch(context.Background(),
		models.NewOrderEvent(models.EventKindOrderPaid, order))

	require.Len(t, pub.published, 1)
	req, ok := pub.published[0].message.(models.RestaurantApprovalRequest)
	require.True(t, ok)

	assert.Equal(t, order.ID, req.OrderID)
	assert.Equal(t, order.RestaurantID, req.RestaurantID)
	assert.Equal(t, models.OrderStatusPaid, req.OrderStatus)
	require.Len(t, req.Products, 1)
	assert.Equal(t, order.Items[0].ProductID, req.Products[0].ProductID)
	assert.Equal(t, 4, req.Products[0].Quantity)
}
