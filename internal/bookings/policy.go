package bookings

import "caromotors-backend/internal/models"

// The booking status lifecycle drives the car status cascade:
//
//	available -> booked  on booking creation
//	booked    -> sold    when a booking reaches "Deal Closed"
//	booked    -> available when a booking is "Cancelled" or "Refunded"
//
// All other booking statuses leave the car untouched. A car released back to
// available can be booked again.

var validStatuses = map[string]bool{
	models.BookingStatusPending:      true,
	models.BookingStatusTokenPaid:    true,
	models.BookingStatusInDiscussion: true,
	models.BookingStatusDealClosed:   true,
	models.BookingStatusCancelled:    true,
	models.BookingStatusRefunded:     true,
}

// IsValidStatus reports whether s is one of the six recognized statuses.
func IsValidStatus(s string) bool {
	return validStatuses[s]
}

// IsOpen reports whether a booking in this status still holds its car.
func IsOpen(status string) bool {
	switch status {
	case models.BookingStatusPending, models.BookingStatusTokenPaid, models.BookingStatusInDiscussion:
		return true
	}
	return false
}

// OpenStatuses returns the statuses of bookings that still hold their car,
// for use in store queries.
func OpenStatuses() []string {
	return []string{
		models.BookingStatusPending,
		models.BookingStatusTokenPaid,
		models.BookingStatusInDiscussion,
	}
}

// CarStatusAfter returns the car status implied by a booking status change.
// changed is false when the transition does not cascade.
func CarStatusAfter(bookingStatus string) (carStatus string, changed bool) {
	switch bookingStatus {
	case models.BookingStatusDealClosed:
		return models.CarStatusSold, true
	case models.BookingStatusCancelled, models.BookingStatusRefunded:
		return models.CarStatusAvailable, true
	}
	return "", false
}
