package commands

import (
	"context"
)

// RequestDispatchCommandHandler hands dispatch triggers to the coordinator.
type RequestDispatchCommandHandler struct {
	dispatcher DispatchRequester
}

// NewRequestDispatchCommandHandler creates a handler for dispatch triggers.
func NewRequestDispatchCommandHandler(dispatcher DispatchRequester) RequestDispatchCommandHandler {
	return RequestDispatchCommandHandler{
		dispatcher: dispatcher,
	}
}

// Handle triggers the courier workflow. Per the coordinator's contract a
// transient delivery-network failure is retried in the background and does
// not surface here.
func (h *RequestDispatchCommandHandler) Handle(ctx context.Context, cmd RequestDispatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.dispatcher.RequestDispatch(ctx, cmd.OrderID())
}
