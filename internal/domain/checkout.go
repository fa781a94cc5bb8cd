package domain

import "strings"

type CheckoutStatus string

const (
	CheckoutStatusIdle             CheckoutStatus = "IDLE"
	CheckoutStatusSubmitting       CheckoutStatus = "SUBMITTING"
	CheckoutStatusSucceeded        CheckoutStatus = "SUCCEEDED"
	CheckoutStatusFailedValidation CheckoutStatus = "FAILED_VALIDATION"
	CheckoutStatusFailedSubmit     CheckoutStatus = "FAILED_SUBMIT"
)

// String representation (for logging)
func (s CheckoutStatus) String() string {
	return string(s)
}

var checkoutTransitions = map[CheckoutStatus][]CheckoutStatus{
	CheckoutStatusIdle:             {CheckoutStatusSubmitting, CheckoutStatusFailedValidation},
	CheckoutStatusSubmitting:       {CheckoutStatusSucceeded, CheckoutStatusFailedSubmit},
	CheckoutStatusSucceeded:        {CheckoutStatusIdle},
	CheckoutStatusFailedValidation: {CheckoutStatusIdle},
	CheckoutStatusFailedSubmit:     {CheckoutStatusIdle},
}

// CanTransitionTo reports whether the checkout state machine allows moving
// from one status to another. Failure statuses are reporting stops on the way
// back to IDLE, never terminal.
func CanTransitionTo(from, to CheckoutStatus) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ShippingForm is the checkout form. All three fields must be non-empty for
// submission; whitespace-only counts as empty.
type ShippingForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (f ShippingForm) Complete() bool {
	return strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Address) != ""
}
