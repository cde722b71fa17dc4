// internal/domain/procurement/transitions.go
package procurement

import "fmt"

// Status transitions are validated against explicit tables; any transition
// not listed is rejected. Terminal states have no outgoing transitions.

var poTransitions = map[POStatus][]POStatus{
	POStatusPending:            {POStatusSent, POStatusCancelled},
	POStatusSent:               {POStatusConfirmed, POStatusCancelled},
	POStatusConfirmed:          {POStatusPartiallyDelivered, POStatusDelivered, POStatusCancelled},
	POStatusPartiallyDelivered: {POStatusDelivered, POStatusCancelled},
	POStatusDelivered:          {},
	POStatusCancelled:          {},
}

var deliveryTransitions = map[DeliveryStatus][]DeliveryStatus{
	DeliveryStatusScheduled: {DeliveryStatusInTransit, DeliveryStatusCancelled},
	DeliveryStatusInTransit: {DeliveryStatusDelivered, DeliveryStatusCancelled},
	DeliveryStatusDelivered: {DeliveryStatusReceived, DeliveryStatusCancelled},
	DeliveryStatusReceived:  {},
	DeliveryStatusCancelled: {},
}

// ValidatePOTransition checks a purchase order status change
func ValidatePOTransition(from, to POStatus) error {
	allowed, ok := poTransitions[from]
	if !ok {
		return fmt.Errorf("unknown purchase order status: %s", from)
	}
	for _, next := range allowed {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid purchase order transition: %s -> %s", from, to)
}

// ValidateDeliveryTransition checks a delivery status change
func ValidateDeliveryTransition(from, to DeliveryStatus) error {
	allowed, ok := deliveryTransitions[from]
	if !ok {
		return fmt.Errorf("unknown delivery status: %s", from)
	}
	for _, next := range allowed {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("invalid delivery transition: %s -> %s", from, to)
}
