package booking

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/storage"
)

// Slot is a bookable window of a canteen together with its free capacity.
type Slot struct {
	Date              string      `json:"date" example:"2025-12-05"`
	Meal              models.Meal `json:"meal"`
	StartTime         string      `json:"startTime" example:"11:00"`
	RemainingCapacity int         `json:"remainingCapacity"`
}

// SlotQuery holds the raw availability query. Empty strings and a nil Duration
// count as missing.
type SlotQuery struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Duration  *int
}

// SlotRange is a parsed SlotQuery: whole days plus minute offsets within a day.
type SlotRange struct {
	StartDay time.Time
	EndDay   time.Time
	From     int
	To       int
	Duration int
}

// Parse checks presence first, then the duration, then the date and time formats.
func (q SlotQuery) Parse(loc *time.Location) (SlotRange, error) {
	if q.StartDate == "" || q.EndDate == "" || q.StartTime == "" || q.EndTime == "" || q.Duration == nil {
		return SlotRange{}, ErrMissingQueryParameters
	}
	if !ValidDuration(*q.Duration) {
		return SlotRange{}, ErrInvalidDuration
	}

	startDay, err := ParseDate(q.StartDate, loc)
	if err != nil {
		return SlotRange{}, err
	}
	endDay, err := ParseDate(q.EndDate, loc)
	if err != nil {
		return SlotRange{}, err
	}
	from, err := ParseClock(q.StartTime)
	if err != nil {
		return SlotRange{}, err
	}
	to, err := ParseClock(q.EndTime)
	if err != nil {
		return SlotRange{}, err
	}

	return SlotRange{StartDay: startDay, EndDay: endDay, From: from, To: to, Duration: *q.Duration}, nil
}

// ComputeSlots lazily enumerates the slots of canteen over rng, ordered by date and
// then time of day. Candidates that fit no single working hour block are skipped.
// Only Active reservations of the canteen reduce the remaining capacity. Every
// iteration recomputes from the given reservations.
func ComputeSlots(canteen models.Canteen, reservations []models.Reservation, rng SlotRange) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if rng.Duration <= 0 {
			return
		}
		loc := rng.StartDay.Location()
		spans := reservationSpans(canteen.ID, reservations, loc)

		for day := range Days(rng.StartDay, rng.EndDay) {
			for start := rng.From; start < rng.To; start += rng.Duration {
				block, ok := matchBlock(canteen.WorkingHours, start, start+rng.Duration)
				if !ok {
					continue
				}

				candidate := NewInterval(day, start, rng.Duration)
				taken := 0
				for _, iv := range spans {
					if iv.Overlaps(candidate) {
						taken++
					}
				}

				slot := Slot{
					Date:              FormatDate(day),
					Meal:              block.Meal,
					StartTime:         FormatClock(start),
					RemainingCapacity: max(0, canteen.Capacity-taken),
				}
				if !yield(slot) {
					return
				}
			}
		}
	}
}

func reservationSpans(canteenID string, reservations []models.Reservation, loc *time.Location) []Interval {
	spans := make([]Interval, 0, len(reservations))
	for _, r := range reservations {
		if !r.Active() || r.CanteenID != canteenID {
			continue
		}
		day, err := ParseDate(r.Date, loc)
		if err != nil {
			continue
		}
		start, err := ParseClock(r.Time)
		if err != nil {
			continue
		}
		spans = append(spans, NewInterval(day, start, r.Duration))
	}
	return spans
}

// CanteenAvailability groups the slots of one canteen.
type CanteenAvailability struct {
	Canteen models.Canteen
	Slots   iter.Seq[Slot]
}

// CanteenSlots computes the availability of a single canteen.
func (s *Service) CanteenSlots(ctx context.Context, canteenID string, q SlotQuery) (iter.Seq[Slot], error) {
	const op = "booking.CanteenSlots"
	log := s.log.With(slog.String("op", op), slog.String("canteen_id", canteenID))

	rng, err := q.Parse(s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	canteen, err := s.store.Canteen(ctx, canteenID)
	if err != nil {
		if errors.Is(err, storage.ErrCanteenNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCanteenNotFound)
		}
		log.Error("failed to get canteen", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked, err := s.store.ActiveReservations(ctx, storage.ReservationFilter{CanteenID: canteenID})
	if err != nil {
		log.Error("failed to list canteen reservations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ComputeSlots(canteen, booked, rng), nil
}

// AllSlots computes availability for every canteen, in store order.
func (s *Service) AllSlots(ctx context.Context, q SlotQuery) ([]CanteenAvailability, error) {
	const op = "booking.AllSlots"
	log := s.log.With(slog.String("op", op))

	rng, err := q.Parse(s.loc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	canteens, err := s.store.Canteens(ctx)
	if err != nil {
		log.Error("failed to list canteens", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	booked, err := s.store.ActiveReservations(ctx, storage.ReservationFilter{})
	if err != nil {
		log.Error("failed to list reservations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]CanteenAvailability, 0, len(canteens))
	for _, c := range canteens {
		out = append(out, CanteenAvailability{Canteen: c, Slots: ComputeSlots(c, booked, rng)})
	}
	return out, nil
}
