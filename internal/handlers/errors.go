package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/canteen-api/internal/booking"
)

type errorMapping struct {
	err     error
	status  int
	message string
	reason  string
}

// bookingErrors maps service errors to responses. Messages are part of the API.
var bookingErrors = []errorMapping{
	{booking.ErrMissingFields, http.StatusBadRequest, "Missing required fields", "missing_fields"},
	{booking.ErrStudentNotFound, http.StatusNotFound, "Student not found", "student_not_found"},
	{booking.ErrInvalidDuration, http.StatusBadRequest, "Duration must be 30 or 60 minutes", "invalid_duration"},
	{booking.ErrInvalidTimeSlot, http.StatusBadRequest, "Time must start on the hour or half hour", "invalid_time_slot"},
	{booking.ErrInvalidDate, http.StatusBadRequest, "Date must be in YYYY-MM-DD format", "invalid_date"},
	{booking.ErrPastReservation, http.StatusBadRequest, "Cannot create reservation in the past", "past_reservation"},
	{booking.ErrCanteenNotFound, http.StatusNotFound, "Canteen not found", "canteen_not_found"},
	{booking.ErrOutsideWorkingHours, http.StatusBadRequest, "Reservation is outside of working hours", "outside_working_hours"},
	{booking.ErrStudentDoubleBooked, http.StatusBadRequest, "Student already has a reservation at this time", "student_double_booked"},
	{booking.ErrCapacityExceeded, http.StatusBadRequest, "Canteen capacity reached for this slot", "capacity_exceeded"},
	{booking.ErrReservationNotFound, http.StatusNotFound, "Reservation not found", "reservation_not_found"},
	{booking.ErrMissingQueryParameters, http.StatusBadRequest, "Missing required query parameters", "missing_query_parameters"},
	{booking.ErrInvalidTimeFormat, http.StatusBadRequest, "Time must be in HH:mm format", "invalid_time_format"},
	{booking.ErrEmailTaken, http.StatusBadRequest, "Student with this email already exists", "email_taken"},
	{booking.ErrInvalidCapacity, http.StatusBadRequest, "Capacity must be a positive integer", "invalid_capacity"},
	{booking.ErrInvalidWorkingHours, http.StatusBadRequest, "Invalid working hours", "invalid_working_hours"},
}

func lookupError(err error) (errorMapping, bool) {
	for _, m := range bookingErrors {
		if errors.Is(err, m.err) {
			return m, true
		}
	}
	return errorMapping{}, false
}

// toHTTPError converts a service error into a huma error with a stable message.
func toHTTPError(err error) error {
	if m, ok := lookupError(err); ok {
		return huma.NewError(m.status, m.message)
	}
	return huma.Error500InternalServerError("Internal server error")
}

// rejectionReason labels an error for metrics.
func rejectionReason(err error) string {
	if m, ok := lookupError(err); ok {
		return m.reason
	}
	return "internal"
}
