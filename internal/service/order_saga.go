package service

import (
	"context"

	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/saga"
	"go.uber.org/zap"
)

// OrderPaymentStep reacts to payment responses. Process moves the order
// PENDING -> PAID and forwards the workflow to restaurant approval;
// Rollback completes cancellation after a declined or cancelled payment.
type OrderPaymentStep struct {
	domain OrderDomainService
	repo   OrderRepository
}

var _ saga.Step[models.PaymentResponse] = (*OrderPaymentStep)(nil)

// NewOrderPaymentStep creates new OrderPaymentStep instance
func NewOrderPaymentStep(repo OrderRepository) *OrderPaymentStep {
	return &OrderPaymentStep{repo: repo}
}

// Process completes payment for the order
func (s *OrderPaymentStep) Process(ctx context.Context, response models.PaymentResponse) (saga.Outcome, error) {
	logger.Log.Debug("completing payment for order", zap.String("order_id", response.OrderID.String()))

	var event models.Event
	err := s.repo.UpdateOrderInTx(ctx, response.OrderID, func(order *models.Order) error {
		e, err := s.domain.PayOrder(order)
		if err != nil {
			return err
		}
		event = e
		return nil
	})
	if err != nil {
		return saga.Outcome{}, err
	}

	return saga.Forwarded(event), nil
}

// Rollback cancels the order after an unsuccessful payment
func (s *OrderPaymentStep) Rollback(ctx context.Context, response models.PaymentResponse) (saga.Outcome, error) {
	logger.Log.Debug("cancelling order", zap.String("order_id", response.OrderID.String()))

	err := s.repo.UpdateOrderInTx(ctx, response.OrderID, func(order *models.Order) error {
		return s.domain.CancelOrder(order, response.FailureMessages)
	})
	if err != nil {
		return saga.Outcome{}, err
	}

	return saga.Compensated(models.EventNone), nil
}

// OrderApprovalStep reacts to restaurant approval responses. Process
// moves the order PAID -> APPROVED and ends the saga; Rollback moves it
// to CANCELLING and emits the compensating payment cancel request.
type OrderApprovalStep struct {
	domain OrderDomainService
	repo   OrderRepository
}

var _ saga.Step[models.RestaurantApprovalResponse] = (*OrderApprovalStep)(nil)

// NewOrderApprovalStep creates new OrderApprovalStep instance
func NewOrderApprovalStep(repo OrderRepository) *OrderApprovalStep {
	return &OrderApprovalStep{repo: repo}
}

// Process approves the order
func (s *OrderApprovalStep) Process(ctx context.Context, response models.RestaurantApprovalResponse) (saga.Outcome, error) {
	logger.Log.Debug("approving order", zap.String("order_id", response.OrderID.String()))

	err := s.repo.UpdateOrderInTx(ctx, response.OrderID, func(order *models.Order) error {
		return s.domain.ApproveOrder(order)
	})
	if err != nil {
		return saga.Outcome{}, err
	}

	return saga.Forwarded(models.EventNone), nil
}

// Rollback starts cancellation of a rejected order
func (s *OrderApprovalStep) Rollback(ctx context.Context, response models.RestaurantApprovalResponse) (saga.Outcome, error) {
	logger.Log.Debug("cancelling rejected order", zap.String("order_id", response.OrderID.String()))

	var event models.Event
	err := s.repo.UpdateOrderInTx(ctx, response.OrderID, func(order *models.Order) error {
		e, err := s.domain.CancelOrderPayment(order, response.FailureMessages)
		if err != nil {
			return err
		}
		event = e
		return nil
	})
	if err != nil {
		return saga.Outcome{}, err
	}

	return saga.Compensated(event), nil
}
