package models

import (
	"time"

	"github.com/google/uuid"
)

// EventKind tags a domain event. Events are plain values; a dispatcher
// maps each kind to its transport, so aggregates never see a publisher.
type EventKind int

const (
	EventKindNone EventKind = iota
	EventKindOrderCreated
	EventKindOrderPaid
	EventKindOrderCancelled
	EventKindPaymentCompleted
	EventKindPaymentCancelled
	EventKindPaymentFailed
	EventKindOrderApproved
	EventKindOrderRejected
)

func (k EventKind) String() string {
	switch k {
	case EventKindNone:
		return "None"
	case EventKindOrderCreated:
		return "OrderCreated"
	case EventKindOrderPaid:
		return "OrderPaid"
	case EventKindOrderCancelled:
		return "OrderCancelled"
	case EventKindPaymentCompleted:
		return "PaymentCompleted"
	case EventKindPaymentCancelled:
		return "PaymentCancelled"
	case EventKindPaymentFailed:
		return "PaymentFailed"
	case EventKindOrderApproved:
		return "OrderApproved"
	case EventKindOrderRejected:
		return "OrderRejected"
	}
	return "Unknown"
}

// Event is an immutable record of a committed state change.
// It carries the mutated aggregate snapshot for the kind it is tagged with.
type Event struct {
	Kind            EventKind
	CreatedAt       time.Time
	Order           *Order
	Payment         *Payment
	OrderApproval   *OrderApproval
	RestaurantID    uuid.UUID
	FailureMessages []string
}

// EventNone is the sentinel "nothing to publish" event
var EventNone = Event{Kind: EventKindNone}

// NewOrderEvent creates order event carrying the order snapshot
func NewOrderEvent(kind EventKind, order *Order) Event {
	return Event{
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
		Order:     order,
	}
}

// NewPaymentEvent creates payment event carrying the payment snapshot
func NewPaymentEvent(kind EventKind, payment *Payment, failureMessages []string) Event {
	return Event{
		Kind:            kind,
		CreatedAt:       time.Now().UTC(),
		Payment:         payment,
		FailureMessages: failureMessages,
	}
}

// NewOrderApprovalEvent creates restaurant approval event
func NewOrderApprovalEvent(kind EventKind, approval *OrderApproval, restaurantID uuid.UUID, failureMessages []string) Event {
	return Event{
		Kind:            kind,
		CreatedAt:       time.Now().UTC(),
		OrderApproval:   approval,
		RestaurantID:    restaurantID,
		FailureMessages: failureMessages,
	}
}
