package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rookgm/foodorder/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeApprovalRepo struct {
	saved []models.OrderApproval
	err   error
}

func (r *fakeApprovalRepo) SaveOrderApproval(_ context.Context, approval *models.OrderApproval) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, *approval)
	return nil
}

func approvalRequest() models.RestaurantApprovalRequest {
	return models.RestaurantApprovalRequest{
		OrderID:      testOrderID,
		RestaurantID: testRestaurantID,
		OrderStatus:  models.OrderStatusPaid,
		Products: []models.ApprovalProduct{
			{ProductID: testProductID1, Quantity: 1},
			{ProductID: testProductID2, Quantity: 3},
		},
		Price: 200.00,
	}
}

func TestRestaurantService_ProcessApproval(t *testing.T) {
	approvalRepo := &fakeApprovalRepo{}
	svc := NewRestaurantService(&fakeRestaurantRepo{restaurant: testRestaurant(true)}, approvalRepo)

	event, err := svc.ProcessApproval(context.Background(), approvalRequest())
	require.NoError(t, err)

	assert.Equal(t, models.EventKindOrderApproved, event.Kind)
	assert.Equal(t, models.OrderApprovalStatusApproved, event.OrderApproval.Status)
	assert.Equal(t, testRestaurantID, event.RestaurantID)
	assert.Empty(t, event.FailureMessages)

	require.Len(t, approvalRepo.saved, 1)
	assert.Equal(t, testOrderID, approvalRepo.saved[0].OrderID)
	assert.Equal(t, models.OrderApprovalStatusApproved, approvalRepo.saved[0].Status)
}

func TestRestaurantService_ProcessApproval_Rejections(t *testing.T) {
	unavailable := testRestaurant(true)
	unavailable.OrderDetail.Products[1].Available = false

	tests := []struct {
		name       string
		restaurant *models.Restaurant
		mutateReq  func(req *models.RestaurantApprovalRequest)
		wantMsgs   []string
	}{
		{
			name:       "order_not_paid",
			restaurant: testRestaurant(true),
			mutateReq: func(req *models.RestaurantApprovalRequest) {
				req.OrderStatus = models.OrderStatusPending
			},
			wantMsgs: []string{
				fmt.Sprintf("Payment is not completed for order [%s]", testOrderID),
			},
		},
		{
			name:       "product_unavailable",
			restaurant: unavailable,
			mutateReq:  func(req *models.RestaurantApprovalRequest) {},
			wantMsgs: []string{
				fmt.Sprintf("Product with id [%s] is not available", testProductID2),
			},
		},
		{
			name:       "price_total_mismatch",
			restaurant: testRestaurant(true),
			mutateReq: func(req *models.RestaurantApprovalRequest) {
				req.Price = 250.00
			},
			wantMsgs: []string{
				fmt.Sprintf("Price total is not correct for order [%s]", testOrderID),
			},
		},
		{
			name:       "unknown_product_fails_price_check",
			restaurant: testRestaurant(true),
			mutateReq: func(req *models.RestaurantApprovalRequest) {
				req.Products[1].ProductID = uuid.MustParse("d215b5f8-0249-4dc5-89a3-51fd148cfb99")
			},
			// product outside the catalog carries no confirmed fields
			wantMsgs: []string{
				fmt.Sprintf("Product with id [%s] is not available", "d215b5f8-0249-4dc5-89a3-51fd148cfb99"),
				fmt.Sprintf("Price total is not correct for order [%s]", testOrderID),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			approvalRepo := &fakeApprovalRepo{}
			svc := NewRestaurantService(&fakeRestaurantRepo{restaurant: tt.restaurant}, approvalRepo)

			req := approvalRequest()
			tt.mutateReq(&req)

			event, err := svc.ProcessApproval(context.Background(), req)
			require.NoError(t, err)

			assert.Equal(t, models.EventKindOrderRejected, event.Kind)
			assert.Equal(t, models.OrderApprovalStatusRejected, event.OrderApproval.Status)
			assert.Equal(t, tt.wantMsgs, event.FailureMessages)

			// the rejection verdict is recorded as well
			require.Len(t, approvalRepo.saved, 1)
			assert.Equal(t, models.OrderApprovalStatusRejected, approvalRepo.saved[0].Status)
		})
	}
}

func TestRestaurantService_ProcessApproval_UnknownRestaurant(t *testing.T) {
	svc := NewRestaurantService(&fakeRestaurantRepo{err: models.ErrDataNotFound}, &fakeApprovalRepo{})

	_, err := svc.ProcessApproval(context.Background(), approvalRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrDataNotFound)
	assert.Contains(t, err.Error(), fmt.Sprintf("restaurant with id [%s] could not be found", testRestaurantID))
}
