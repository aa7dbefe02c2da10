package storage

import "errors"

var (
	ErrStudentExists       = errors.New("student already exists")
	ErrStudentNotFound     = errors.New("student not found")
	ErrCanteenNotFound     = errors.New("canteen not found")
	ErrReservationNotFound = errors.New("reservation not found")
)

// ReservationFilter narrows an active reservation query. Empty fields match everything.
type ReservationFilter struct {
	StudentID string
	CanteenID string
}
