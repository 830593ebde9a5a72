package utils

import "time"

// ISODate is the wire format for all trip dates.
const ISODate = "2006-01-02"

// DefaultTripLeadDays is how far in the future a trip is assumed to start
// when the user gives no dates.
const DefaultTripLeadDays = 14

// TripStartDate returns the assumed first day of the trip relative to now.
func TripStartDate(now time.Time) time.Time {
	return now.AddDate(0, 0, DefaultTripLeadDays)
}

// DailyDates maps day numbers 1..durationDays to ISO date strings, one per
// itinerary day starting at start.
func DailyDates(start time.Time, durationDays int) map[int]string {
	dates := make(map[int]string, durationDays)
	for day := 1; day <= durationDays; day++ {
		dates[day] = start.AddDate(0, 0, day-1).Format(ISODate)
	}
	return dates
}
