// internal/domain/request/schedule.go
package request

import "time"

// EstimatedDeliveryDate returns the expected delivery date a number of
// business days after the given time. Saturdays and Sundays are skipped.
// The estimate is informational only and never enforced against actual
// delivery dates.
func EstimatedDeliveryDate(from time.Time, businessDays int) time.Time {
	date := from
	for remaining := businessDays; remaining > 0; {
		date = date.AddDate(0, 0, 1)
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		remaining--
	}
	return date
}
