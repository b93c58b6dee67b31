package repository

import (
	"context"

	"github.com/rookgm/foodorder/internal/models"
	"github.com/rookgm/foodorder/internal/repository/postgres"
)

const insertOrderApprovalQuery = `
						INSERT INTO order_approvals (id, restaurant_id, order_id, status)
						VALUES ($1, $2, $3, $4)
`

// OrderApprovalRepository implements service.OrderApprovalRepository interface
type OrderApprovalRepository struct {
	db *postgres.DB
}

// NewOrderApprovalRepository creates new OrderApprovalRepository instance
func NewOrderApprovalRepository(db *postgres.DB) *OrderApprovalRepository {
	return &OrderApprovalRepository{db: db}
}

// SaveOrderApproval inserts new approval record
func (ar *OrderApprovalRepository) SaveOrderApproval(ctx context.Context, approval *models.OrderApproval) error {
	_, err := ar.db.Exec(ctx, insertOrderApprovalQuery,
		approval.ID, approval.RestaurantID, approval.OrderID, approval.Status)
	return err
}
