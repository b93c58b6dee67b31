package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/rookgm/foodorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRestaurantService struct {
	requests []models.RestaurantApprovalRequest
	event    models.Event
	err      error
}

func (s *fakeRestaurantService) ProcessApproval(_ context.Context, req models.RestaurantApprovalRequest) (models.Event, error) {
	s.requests = append(s.requests, req)
	return s.event, s.err
}

func approvalRequestPayload(t *testing.T) []byte {
	t.Helper()
	payload, err := json.Marshal(models.RestaurantApprovalRequest{
		OrderID:     testOrderID,
		OrderStatus: models.OrderStatusPaid,
		Price:       200.00,
	})
	require.NoError(t, err)
	return payload
}

func TestApprovalRequestHandler_Handle(t *testing.T) {
	approvedEvent := models.NewOrderApprovalEvent(models.EventKindOrderApproved,
		&models.OrderApproval{OrderID: testOrderID, Status: models.OrderApprovalStatusApproved},
		testOrderID, nil)

	tests := []struct {
		name           string
		payload        func(t *testing.T) []byte
		event          models.Event
		svcErr         error
		wantProcessed  int
		wantDispatched int
		wantErr        bool
	}{
		{
			name:           "valid_request_is_processed_and_dispatched",
			payload:        approvalRequestPayload,
			event:          approvedEvent,
			wantProcessed:  1,
			wantDispatched: 1,
		},
		{
			name:    "malformed_payload_is_dropped",
			payload: func(t *testing.T) []byte { return []byte("{not json") },
		},
		{
			name:          "missing_reference_is_dropped",
			payload:       approvalRequestPayload,
			svcErr:        fmt.Errorf("restaurant with id [x] could not be found: %w", models.ErrDataNotFound),
			wantProcessed: 1,
		},
		{
			name:          "transient_error_is_returned_for_redelivery",
			payload:       approvalRequestPayload,
			svcErr:        errors.New("connection reset"),
			wantProcessed: 1,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeRestaurantService{event: tt.event, err: tt.svcErr}
			dispatcher := &fakeDispatcher{}
			handler := NewApprovalRequestHandler(svc, dispatcher)

			err := handler.Handle(context.Background(), tt.payload(t))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.Len(t, svc.requests, tt.wantProcessed)
			assert.Len(t, dispatcher.events, tt.wantDispatched)
		})
	}
}
