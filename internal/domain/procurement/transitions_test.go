// internal/domain/procurement/transitions_test.go
package procurement

import "testing"

func TestValidatePOTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    POStatus
		to      POStatus
		wantErr bool
	}{
		{"pending to sent", POStatusPending, POStatusSent, false},
		{"pending to cancelled", POStatusPending, POStatusCancelled, false},
		{"pending skips to confirmed", POStatusPending, POStatusConfirmed, true},
		{"sent to confirmed", POStatusSent, POStatusConfirmed, false},
		{"confirmed to partially delivered", POStatusConfirmed, POStatusPartiallyDelivered, false},
		{"confirmed to delivered", POStatusConfirmed, POStatusDelivered, false},
		{"partially delivered to delivered", POStatusPartiallyDelivered, POStatusDelivered, false},
		{"delivered is terminal", POStatusDelivered, POStatusCancelled, true},
		{"cancelled is terminal", POStatusCancelled, POStatusPending, true},
		{"no backwards move", POStatusConfirmed, POStatusSent, true},
		{"unknown status", POStatus("bogus"), POStatusSent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePOTransition(tt.from, tt.to)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error for %s -> %s", tt.from, tt.to)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error for %s -> %s: %v", tt.from, tt.to, err)
			}
		})
	}
}

func TestValidateDeliveryTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    DeliveryStatus
		to      DeliveryStatus
		wantErr bool
	}{
		{"scheduled to in transit", DeliveryStatusScheduled, DeliveryStatusInTransit, false},
		{"in transit to delivered", DeliveryStatusInTransit, DeliveryStatusDelivered, false},
		{"delivered to received", DeliveryStatusDelivered, DeliveryStatusReceived, false},
		{"scheduled skips to delivered", DeliveryStatusScheduled, DeliveryStatusDelivered, true},
		{"received is terminal", DeliveryStatusReceived, DeliveryStatusCancelled, true},
		{"cancelled is terminal", DeliveryStatusCancelled, DeliveryStatusScheduled, true},
		{"delivered can still cancel", DeliveryStatusDelivered, DeliveryStatusCancelled, false},
		{"unknown status", DeliveryStatus("bogus"), DeliveryStatusReceived, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeliveryTransition(tt.from, tt.to)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error for %s -> %s", tt.from, tt.to)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error for %s -> %s: %v", tt.from, tt.to, err)
			}
		})
	}
}
