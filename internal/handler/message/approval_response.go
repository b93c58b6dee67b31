package message

import (
	"context"
	"encoding/json"

	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/saga"
	"go.uber.org/zap"
)

// ApprovalResponseHandler routes restaurant approval responses into the
// approval saga step: APPROVED ends the saga, REJECTED starts the
// compensating payment cancellation.
type ApprovalResponseHandler struct {
	step       saga.Step[models.RestaurantApprovalResponse]
	dispatcher EventDispatcher
}

// NewApprovalResponseHandler creates new ApprovalResponseHandler instance
func NewApprovalResponseHandler(step saga.Step[models.RestaurantApprovalResponse], dispatcher EventDispatcher) *ApprovalResponseHandler {
	return &ApprovalResponseHandler{
		step:       step,
		dispatcher: dispatcher,
	}
}

// Handle processes one restaurant approval response payload
func (h *ApprovalResponseHandler) Handle(ctx context.Context, payload []byte) error {
	var response models.RestaurantApprovalResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		logger.Log.Error("malformed approval response", zap.Error(err))
		return nil
	}

	var (
		outcome saga.Outcome
		err     error
	)

	switch response.Status {
	case models.OrderApprovalStatusApproved:
		outcome, err = h.step.Process(ctx, response)
	case models.OrderApprovalStatusRejected:
		outcome, err = h.step.Rollback(ctx, response)
	default:
		logger.Log.Error("approval response with unknown status",
			zap.String("order_id", response.OrderID.String()), zap.String("status", response.Status))
		return nil
	}

	if err != nil {
		if models.IsDomainError(err) {
			logger.Log.Warn("dropping approval response for order in conflicting state",
				zap.String("order_id", response.OrderID.String()), zap.Error(err))
			return nil
		}
		return err
	}

	h.dispatcher.Dispatch(ctx, outcome.Event)

	logger.Log.Debug("approval response handled",
		zap.String("order_id", response.OrderID.String()),
		zap.String("result", outcome.Result.String()))
	return nil
}
