package mail

import (
	"errors"
	"fmt"
)

// ErrDelivery matches every failed send.
var ErrDelivery = errors.New("email delivery failed")

// DeliveryError carries the transport's reason for a failed send.
type DeliveryError struct {
	Recipient string
	Cause     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver email to %s: %v", e.Recipient, e.Cause)
}

func (e *DeliveryError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrDelivery) match any DeliveryError.
func (e *DeliveryError) Is(target error) bool {
	return target == ErrDelivery
}
