package models

import (
	"github.com/google/uuid"
)

// order status state machine:
// PENDING -> PAID -> APPROVED            terminal success
// PENDING -> CANCELLED                   pre-payment failure
// PAID -> CANCELLING -> CANCELLED        post-payment compensation
const (
	OrderStatusPending    = "PENDING"
	OrderStatusPaid       = "PAID"
	OrderStatusApproved   = "APPROVED"
	OrderStatusCancelling = "CANCELLING"
	OrderStatusCancelled  = "CANCELLED"
)

// FailureMessagesDelimiter joins failure messages in persisted form
const FailureMessagesDelimiter = ","

// Address is order delivery address
type Address struct {
	Street     string
	PostalCode string
	City       string
}

// OrderItem is single ordered product position
type OrderItem struct {
	ProductID uuid.UUID
	Quantity  int
	Price     Money
	Subtotal  Money
}

// IsPriceValid reports whether item price is positive and consistent with subtotal
func (i OrderItem) IsPriceValid() bool {
	return i.Price.IsGreaterThanZero() && i.Subtotal == i.Price.Multiply(i.Quantity)
}

// Order is order aggregate. Status changes only through the
// guarded transition methods below.
type Order struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	RestaurantID    uuid.UUID
	TrackingID      uuid.UUID
	DeliveryAddress Address
	Price           Money
	Items           []OrderItem
	Status          string
	FailureMessages []string
}

// ValidateOrder checks invariants of a not-yet-initialized order
func (o *Order) ValidateOrder() error {
	if o.ID != uuid.Nil || o.Status != "" {
		return NewDomainError("Order is not in correct state for initialization!")
	}
	if !o.Price.IsGreaterThanZero() {
		return NewDomainError("Total price must be greater than zero!")
	}
	return o.validateItemsPrice()
}

func (o *Order) validateItemsPrice() error {
	itemsTotal := ZeroMoney
	for _, item := range o.Items {
		if !item.IsPriceValid() {
			return NewDomainError("Order item price [%s] is not valid for product [%s]",
				item.Price, item.ProductID)
		}
		itemsTotal = itemsTotal.Add(item.Subtotal)
	}

	if o.Price != itemsTotal {
		return NewDomainError("Total price [%s] is not equal to Order items total [%s]!",
			o.Price, itemsTotal)
	}
	return nil
}

// InitializeOrder assigns identifiers once and moves order to PENDING
func (o *Order) InitializeOrder() {
	o.ID = uuid.New()
	o.TrackingID = uuid.New()
	o.Status = OrderStatusPending
}

// Pay moves order from PENDING to PAID
func (o *Order) Pay() error {
	if o.Status != OrderStatusPending {
		return NewDomainError("Order is not in correct state for pay operation!")
	}
	o.Status = OrderStatusPaid
	return nil
}

// Approve moves order from PAID to APPROVED
func (o *Order) Approve() error {
	if o.Status != OrderStatusPaid {
		return NewDomainError("Order is not in correct state for approve operation!")
	}
	o.Status = OrderStatusApproved
	return nil
}

// InitCancel moves paid order to CANCELLING and records failure reasons
func (o *Order) InitCancel(failureMessages []string) error {
	if o.Status != OrderStatusPaid {
		return NewDomainError("Order is not in correct state for initCancel operation!")
	}
	o.Status = OrderStatusCancelling
	o.appendFailureMessages(failureMessages)
	return nil
}

// Cancel completes cancellation from PENDING or CANCELLING
func (o *Order) Cancel(failureMessages []string) error {
	if o.Status != OrderStatusPending && o.Status != OrderStatusCancelling {
		return NewDomainError("Order is not in correct state for cancel operation!")
	}
	o.Status = OrderStatusCancelled
	o.appendFailureMessages(failureMessages)
	return nil
}

func (o *Order) appendFailureMessages(failureMessages []string) {
	for _, msg := range failureMessages {
		if msg == "" {
			continue
		}
		o.FailureMessages = append(o.FailureMessages, msg)
	}
}
