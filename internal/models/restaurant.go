package models

import (
	"fmt"

	"github.com/google/uuid"
)

// order approval status
const (
	OrderApprovalStatusApproved = "APPROVED"
	OrderApprovalStatusRejected = "REJECTED"
)

// Product is restaurant catalog position projected onto an ordered quantity
type Product struct {
	ID        uuid.UUID
	Name      string
	Price     Money
	Quantity  int
	Available bool
}

// UpdateWithConfirmedFields replaces request-supplied fields with catalog data
func (p *Product) UpdateWithConfirmedFields(name string, price Money, available bool) {
	p.Name = name
	p.Price = price
	p.Available = available
}

// OrderDetail is projection of the order under approval
type OrderDetail struct {
	ID          uuid.UUID
	Status      string
	Products    []Product
	TotalAmount Money
}

// OrderApproval is restaurant verdict on a paid order.
// A fresh approval is constructed on every validation cycle.
type OrderApproval struct {
	ID           uuid.UUID
	RestaurantID uuid.UUID
	OrderID      uuid.UUID
	Status       string
}

// Restaurant is restaurant aggregate used for order approval
type Restaurant struct {
	ID            uuid.UUID
	Active        bool
	OrderDetail   OrderDetail
	OrderApproval OrderApproval
}

// ValidateOrder checks the order projection against the catalog and
// returns accumulated failure reasons. Empty result means approval.
func (r *Restaurant) ValidateOrder() []string {
	var failureMessages []string

	if r.OrderDetail.Status != OrderStatusPaid {
		failureMessages = append(failureMessages,
			fmt.Sprintf("Payment is not completed for order [%s]", r.OrderDetail.ID))
	}

	totalAmount := ZeroMoney
	for _, product := range r.OrderDetail.Products {
		if !product.Available {
			failureMessages = append(failureMessages,
				fmt.Sprintf("Product with id [%s] is not available", product.ID))
		}
		totalAmount = totalAmount.Add(product.Price.Multiply(product.Quantity))
	}

	if totalAmount != r.OrderDetail.TotalAmount {
		failureMessages = append(failureMessages,
			fmt.Sprintf("Price total is not correct for order [%s]", r.OrderDetail.ID))
	}

	return failureMessages
}

// ConstructOrderApproval builds a fresh approval record with given status
func (r *Restaurant) ConstructOrderApproval(status string) {
	r.OrderApproval = OrderApproval{
		ID:           uuid.New(),
		RestaurantID: r.ID,
		OrderID:      r.OrderDetail.ID,
		Status:       status,
	}
}
