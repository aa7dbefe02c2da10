package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/storage"
	"github.com/google/uuid"
)

// CreateReservationInput carries the raw request fields. Empty strings and a nil
// Duration count as missing.
type CreateReservationInput struct {
	StudentID string
	CanteenID string
	Date      string
	Time      string
	Duration  *int
}

func (in CreateReservationInput) complete() bool {
	return in.StudentID != "" && in.CanteenID != "" && in.Date != "" && in.Time != "" && in.Duration != nil
}

// ValidDuration reports whether minutes is a bookable reservation length.
func ValidDuration(minutes int) bool {
	return minutes == 30 || minutes == 60
}

// CreateReservation runs the admission rules in order and stores the reservation when
// all of them pass. The first failing rule decides the returned error.
func (s *Service) CreateReservation(ctx context.Context, in CreateReservationInput) (models.Reservation, error) {
	const op = "booking.CreateReservation"
	log := s.log.With(
		slog.String("op", op),
		slog.String("student_id", in.StudentID),
		slog.String("canteen_id", in.CanteenID),
	)

	if !in.complete() {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Student(ctx, in.StudentID); err != nil {
		if errors.Is(err, storage.ErrStudentNotFound) {
			return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrStudentNotFound)
		}
		log.Error("failed to get student", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	duration := *in.Duration
	if !ValidDuration(duration) {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrInvalidDuration)
	}

	if !OnGrid(in.Time) {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrInvalidTimeSlot)
	}

	day, err := ParseDate(in.Date, s.loc)
	if err != nil {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	start, _ := ParseClock(in.Time)
	span := NewInterval(day, start, duration)

	if span.Start.Before(s.now()) {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrPastReservation)
	}

	canteen, err := s.store.Canteen(ctx, in.CanteenID)
	if err != nil {
		if errors.Is(err, storage.ErrCanteenNotFound) {
			return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrCanteenNotFound)
		}
		log.Error("failed to get canteen", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := matchBlock(canteen.WorkingHours, start, start+duration); !ok {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrOutsideWorkingHours)
	}

	own, err := s.store.ActiveReservations(ctx, storage.ReservationFilter{StudentID: in.StudentID})
	if err != nil {
		log.Error("failed to list student reservations", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	if s.countOverlapping(own, span) > 0 {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrStudentDoubleBooked)
	}

	booked, err := s.store.ActiveReservations(ctx, storage.ReservationFilter{CanteenID: in.CanteenID})
	if err != nil {
		log.Error("failed to list canteen reservations", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	if s.countOverlapping(booked, span) >= canteen.Capacity {
		return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrCapacityExceeded)
	}

	reservation := models.Reservation{
		ID:        uuid.NewString(),
		StudentID: in.StudentID,
		CanteenID: in.CanteenID,
		Date:      FormatDate(day),
		Time:      FormatClock(start),
		Duration:  duration,
		Status:    models.ReservationActive,
	}
	if err := s.store.SaveReservation(ctx, reservation); err != nil {
		log.Error("failed to save reservation", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("reservation created", slog.String("reservation_id", reservation.ID))

	return reservation, nil
}

// CancelReservation marks the reservation Cancelled. Cancelling twice is not an error.
func (s *Service) CancelReservation(ctx context.Context, id string) (models.Reservation, error) {
	const op = "booking.CancelReservation"
	log := s.log.With(slog.String("op", op), slog.String("reservation_id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	reservation, err := s.store.Reservation(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		log.Error("failed to get reservation", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	reservation.Status = models.ReservationCancelled
	if err := s.store.SaveReservation(ctx, reservation); err != nil {
		log.Error("failed to save reservation", sl.Err(err))
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("reservation cancelled")

	return reservation, nil
}

func (s *Service) Reservation(ctx context.Context, id string) (models.Reservation, error) {
	const op = "booking.Reservation"

	reservation, err := s.store.Reservation(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return models.Reservation{}, fmt.Errorf("%s: %w", op, ErrReservationNotFound)
		}
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	return reservation, nil
}

// span resolves the absolute interval of a stored reservation.
func (s *Service) span(r models.Reservation) (Interval, bool) {
	day, err := ParseDate(r.Date, s.loc)
	if err != nil {
		return Interval{}, false
	}
	start, err := ParseClock(r.Time)
	if err != nil {
		return Interval{}, false
	}
	return NewInterval(day, start, r.Duration), true
}

func (s *Service) countOverlapping(reservations []models.Reservation, target Interval) int {
	n := 0
	for _, r := range reservations {
		if !r.Active() {
			continue
		}
		if iv, ok := s.span(r); ok && iv.Overlaps(target) {
			n++
		}
	}
	return n
}

// matchBlock returns the first working hour block that fully contains [start, end).
func matchBlock(hours []models.WorkingHour, start, end int) (models.WorkingHour, bool) {
	for _, h := range hours {
		from, err := ParseClock(h.From)
		if err != nil {
			continue
		}
		to, err := ParseClock(h.To)
		if err != nil {
			continue
		}
		if start >= from && end <= to {
			return h, true
		}
	}
	return models.WorkingHour{}, false
}
