package order

import "github.com/go-faster/errors"

// Status is a fulfilment state of an order.
type Status string

const (
	StatusPlaced          Status = "placed"
	StatusConfirmed       Status = "confirmed"
	StatusPacked          Status = "packed"
	StatusShipped         Status = "shipped"
	StatusOutForDelivery  Status = "out_for_delivery"
	StatusDelivered       Status = "delivered"
	StatusCancelled       Status = "cancelled"
	StatusReturnRequested Status = "return_requested"
)

var (
	// ErrUnknownStatus is returned when a status string is not recognized.
	ErrUnknownStatus = errors.New("unknown order status")
	// ErrInvalidTransition is returned when a status change is not allowed
	// from the order's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ParseStatus converts a wire string into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPlaced, StatusConfirmed, StatusPacked, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled, StatusReturnRequested:
		return st, nil
	}
	return "", errors.Wrapf(ErrUnknownStatus, "%q", s)
}

// transitions is the forward fulfilment chain plus the cancel and return
// branches. Cancellation is open until the parcel is delivered; a delivered
// order can only move to return_requested. Cancelled and return_requested are
// terminal.
var transitions = map[Status][]Status{
	StatusPlaced:          {StatusConfirmed, StatusCancelled},
	StatusConfirmed:       {StatusPacked, StatusCancelled},
	StatusPacked:          {StatusShipped, StatusCancelled},
	StatusShipped:         {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery:  {StatusDelivered, StatusCancelled},
	StatusDelivered:       {StatusReturnRequested},
	StatusCancelled:       nil,
	StatusReturnRequested: nil,
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible from s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}
