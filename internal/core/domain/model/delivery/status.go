package delivery

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions so deliveries
// follow the payment/dispatch/fulfillment workflow.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PaymentPending is the initial status after creation.
	// The delivery is invisible to drivers until payment is confirmed.
	PaymentPending

	// Pending indicates payment is confirmed and the delivery is
	// discoverable by drivers with a compatible vehicle.
	Pending

	// Accepted indicates a driver has claimed the delivery.
	// The driver may release it back to Pending or complete it.
	Accepted

	// Completed indicates the delivery was fulfilled.
	// This is a terminal state.
	Completed

	// Cancelled indicates the delivery was abandoned before completion.
	// Reachable from every non-terminal state; terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		PaymentPending: "payment_pending",
		Pending:        "pending",
		Accepted:       "accepted",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PaymentPending: "payment_pending",
		Pending:        "pending",
		Accepted:       "accepted",
		Completed:      "completed",
		Cancelled:      "cancelled",
	}
}

// StatusFromString parses a persisted or client-supplied status name.
func StatusFromString(value string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ConfirmPayment transitions payment_pending -> pending.
func (s Status) ConfirmPayment() (Status, error) {
	if s != PaymentPending {
		return Unknown, NewInvalidTransitionError(s, Pending)
	}
	return Pending, nil
}

// Claim transitions pending -> accepted.
func (s Status) Claim() (Status, error) {
	if s != Pending {
		return Unknown, NewInvalidTransitionError(s, Accepted)
	}
	return Accepted, nil
}

// Release transitions accepted -> pending.
func (s Status) Release() (Status, error) {
	if s != Accepted {
		return Unknown, NewInvalidTransitionError(s, Pending)
	}
	return Pending, nil
}

// Complete transitions accepted -> completed.
func (s Status) Complete() (Status, error) {
	if s != Accepted {
		return Unknown, NewInvalidTransitionError(s, Completed)
	}
	return Completed, nil
}

// Cancel transitions any non-terminal status -> cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return Unknown, NewInvalidTransitionError(s, Cancelled)
	}
	return Cancelled, nil
}

// String returns the lowercase name of the status.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}
