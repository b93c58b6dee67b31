// Package saga defines the generic saga step contract.
//
// A saga is a distributed transaction expressed as independently-committed
// local steps plus compensating steps for rollback. Each step reacts to a
// response message from another service: Process drives the workflow
// forward, Rollback performs the compensating transition. Every call must
// execute its load + mutate + persist as one atomic unit of work.
package saga

import (
	"context"

	"github.com/rookgm/foodorder/internal/models"
)

// Result tags the direction a step moved the workflow
type Result int

const (
	ResultForwarded Result = iota
	ResultCompensated
)

func (r Result) String() string {
	if r == ResultCompensated {
		return "Compensated"
	}
	return "Forwarded"
}

// Outcome is the tagged result of a step execution. Event is
// models.EventNone when the step has nothing to publish.
type Outcome struct {
	Result Result
	Event  models.Event
}

// Forwarded builds a forward outcome
func Forwarded(event models.Event) Outcome {
	return Outcome{Result: ResultForwarded, Event: event}
}

// Compensated builds a compensation outcome
func Compensated(event models.Event) Outcome {
	return Outcome{Result: ResultCompensated, Event: event}
}

// Step is a single saga unit reacting to response R.
// Rollback must be safe even if Process never ran for that response.
type Step[R any] interface {
	Process(ctx context.Context, response R) (Outcome, error)
	Rollback(ctx context.Context, response R) (Outcome, error)
}
