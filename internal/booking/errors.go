package booking

import "errors"

// Reservation rejections, listed in the order CreateReservation checks them.
var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrStudentNotFound     = errors.New("student not found")
	ErrInvalidDuration     = errors.New("invalid duration")
	ErrInvalidTimeSlot     = errors.New("time not on half hour grid")
	ErrInvalidDate         = errors.New("invalid date")
	ErrPastReservation     = errors.New("reservation in the past")
	ErrCanteenNotFound     = errors.New("canteen not found")
	ErrOutsideWorkingHours = errors.New("outside of working hours")
	ErrStudentDoubleBooked = errors.New("student already booked")
	ErrCapacityExceeded    = errors.New("canteen capacity exceeded")
)

var (
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrMissingQueryParameters = errors.New("missing query parameters")
	ErrInvalidTimeFormat      = errors.New("invalid time format")
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCapacity        = errors.New("invalid capacity")
	ErrInvalidWorkingHours    = errors.New("invalid working hours")
)
