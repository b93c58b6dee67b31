package message

import (
	"context"
	"encoding/json"

	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/saga"
	"go.uber.org/zap"
)

// PaymentResponseHandler routes payment responses into the payment saga
// step: COMPLETED drives the forward transition, CANCELLED and FAILED
// drive the compensation.
type PaymentResponseHandler struct {
	step       saga.Step[models.PaymentResponse]
	dispatcher EventDispatcher
}

// NewPaymentResponseHandler creates new PaymentResponseHandler instance
func NewPaymentResponseHandler(step saga.Step[models.PaymentResponse], dispatcher EventDispatcher) *PaymentResponseHandler {
	return &PaymentResponseHandler{
		step:       step,
		dispatcher: dispatcher,
	}
}

// Handle processes one payment response payload
func (h *PaymentResponseHandler) Handle(ctx context.Context, payload []byte) error {
	var response models.PaymentResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		logger.Log.Error("malformed payment response", zap.Error(err))
		return nil
	}

	var (
		outcome saga.Outcome
		err     error
	)

	switch response.Status {
	case models.PaymentStatusCompleted:
		outcome, err = h.step.Process(ctx, response)
	case models.PaymentStatusCancelled, models.PaymentStatusFailed:
		outcome, err = h.step.Rollback(ctx, response)
	default:
		logger.Log.Error("payment response with unknown status",
			zap.String("order_id", response.OrderID.String()), zap.String("status", response.Status))
		return nil
	}

	if err != nil {
		// a redelivered response finds the order already past the
		// guarded transition; dropping it is the idempotent outcome
		if models.IsDomainError(err) {
			logger.Log.Warn("dropping payment response for order in conflicting state",
				zap.String("order_id", response.OrderID.String()), zap.Error(err))
			return nil
		}
		return err
	}

	h.dispatcher.Dispatch(ctx, outcome.Event)

	logger.Log.Debug("payment response handled",
		zap.String("order_id", response.OrderID.String()),
		zap.String("result", outcome.Result.String()))
	return nil
}
