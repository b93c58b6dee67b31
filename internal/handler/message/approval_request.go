package message

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rookgm/foodorder/internal/logger"
	"github.com/rookgm/foodorder/internal/models"
	"go.uber.org/zap"
)

// RestaurantService is interface for the restaurant side of the order saga
type RestaurantService interface {
	// ProcessApproval validates the request and records the verdict
	ProcessApproval(ctx context.Context, req models.RestaurantApprovalRequest) (models.Event, error)
}

// ApprovalRequestHandler routes approval requests to the restaurant service
type ApprovalRequestHandler struct {
	svc        RestaurantService
	dispatcher EventDispatcher
}

// NewApprovalRequestHandler creates new ApprovalRequestHandler instance
func NewApprovalRequestHandler(svc RestaurantService, dispatcher EventDispatcher) *ApprovalRequestHandler {
	return &ApprovalRequestHandler{
		svc:        svc,
		dispatcher: dispatcher,
	}
}

// Handle processes one restaurant approval request payload
func (h *ApprovalRequestHandler) Handle(ctx context.Context, payload []byte) error {
	var req models.RestaurantApprovalRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		logger.Log.Error("malformed approval request", zap.Error(err))
		return nil
	}

	event, err := h.svc.ProcessApproval(ctx, req)
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			logger.Log.Error("dropping approval request with missing reference",
				zap.String("order_id", req.OrderID.String()), zap.Error(err))
			return nil
		}
		return err
	}

	h.dispatcher.Dispatch(ctx, event)

	logger.Log.Debug("approval request handled", zap.String("order_id", req.OrderID.String()))
	return nil
}
