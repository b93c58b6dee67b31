// Package message translates inbound saga messages into domain-service
// or saga-step calls and forwards produced events to the dispatcher.
//
// Handlers return an error only when the attempt may succeed on
// redelivery (persistence failures). Business rejections and missing
// references are logged and acknowledged: redelivering them can never
// change the outcome.
package message

import (
	"context"

	"github.com/rookgm/foodorder/internal/models"
)

// EventDispatcher is interface for publishing domain events to their transport
type EventDispatcher interface {
	Dispatch(ctx context.Context, event models.Event)
}
