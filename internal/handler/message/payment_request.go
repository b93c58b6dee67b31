package message

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// PaymentService is interface for the payment side of the order saga
type PaymentService interface {
	// CompletePayment settles the payment for an order
	CompletePayment(ctx context.Context, req models.PaymentRequest) (models.Event, error)
	// CancelPayment reverses a previously completed payment
	CancelPayment(ctx context.Context, req models.PaymentRequest) (models.Event, error)
}

// PaymentRequestHandler routes payment requests to the payment service
type PaymentRequestHandler struct {
	svc        PaymentService
	dispatcher EventDispatcher
}

// NewPaymentRequestHandler creates new PaymentRequestHandler instance
func NewPaymentRequestHandler(svc PaymentService, dispatcher EventDispatcher) *PaymentRequestHandler {
	return &PaymentRequestHandler{
		svc:        svc,
		dispatcher: dispatcher,
	}
}

// Handle processes one payment request payload
func (h *PaymentRequestHandler) Handle(ctx context.Context, payload []byte) error {
	var req models.PaymentRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		logger.Log.Error("malformed payment request", zap.Error(err))
		return nil
	}

	var (
		event models.Event
		err   error
	)

	switch req.Status {
	case models.PaymentOrderStatusPending:
		event, err = h.svc.CompletePayment(ctx, req)
	case models.PaymentOrderStatusCancelled:
		event, err = h.svc.CancelPayment(ctx, req)
	default:
		logger.Log.Error("payment request with unknown status",
			zap.String("order_id", req.OrderID.String()), zap.String("status", req.Status))
		return nil
	}

	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			logger.Log.Error("dropping payment request with missing reference",
				zap.String("order_id", req.OrderID.String()), zap.Error(err))
			return nil
		}
		return err
	}

	h.dispatcher.Dispatch(ctx, event)

	logger.Log.Debug("payment request handled", zap.String("order_id", req.OrderID.String()))
	return nil
}
