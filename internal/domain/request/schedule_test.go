// internal/domain/request/schedule_test.go
package request

import (
	"testing"
	"time"
)

func TestEstimatedDeliveryDate(t *testing.T) {
	// 2026-01-05 is a Monday
	monday := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	thursday := time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)
	friday := time.Date(2026, 1, 9, 9, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		from         time.Time
		businessDays int
		expected     time.Time
	}{
		{"monday plus two lands wednesday", monday, 2, monday.AddDate(0, 0, 2)},
		{"thursday plus two skips weekend", thursday, 2, time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)},
		{"friday plus two lands tuesday", friday, 2, time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)},
		{"saturday start counts from monday", saturday, 2, time.Date(2026, 1, 13, 9, 0, 0, 0, time.UTC)},
		{"zero days returns start", monday, 0, monday},
		{"full week spans two weekends", monday, 10, time.Date(2026, 1, 19, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimatedDeliveryDate(tt.from, tt.businessDays)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %s, got %s", tt.expected.Format("2006-01-02 Mon"), got.Format("2006-01-02 Mon"))
			}
			if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
				t.Errorf("Estimate landed on a weekend: %s", got.Weekday())
			}
		})
	}
}
