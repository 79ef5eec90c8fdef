package order

// OrderState implements the state pattern for order lifecycle transitions.
type OrderState interface {
	Status() Status
	OnCancel(o *Order, reason string) (OrderState, error)
	OnComplete(o *Order) (OrderState, error)
}

func stateOf(s Status) OrderState {
	switch s {
	case StatusCancelled:
		return cancelledState{}
	case StatusCompleted:
		return completedState{}
	default:
		return placedState{}
	}
}

type placedState struct{}

func (placedState) Status() Status { return StatusPlaced }

func (placedState) OnCancel(o *Order, reason string) (OrderState, error) {
	o.CancelReason = reason
	return cancelledState{}, nil
}

func (placedState) OnComplete(*Order) (OrderState, error) {
	return completedState{}, nil
}

type cancelledState struct{}

func (cancelledState) Status() Status { return StatusCancelled }

func (cancelledState) OnCancel(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (cancelledState) OnComplete(*Order) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

type completedState struct{}

func (completedState) Status() Status { return StatusCompleted }

func (completedState) OnCancel(*Order, string) (OrderState, error) {
	return nil, ErrInvalidStateTransition
}

func (completedState) OnComplete(*Order) (OrderState, error) {
	return completedState{}, nil
}
