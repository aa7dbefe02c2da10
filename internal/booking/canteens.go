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

// CanteenInput carries canteen fields. On update only the set fields are applied:
// non-empty strings, a non-nil Capacity and a non-nil WorkingHours.
type CanteenInput struct {
	Name         string
	Location     string
	Capacity     *int
	WorkingHours []models.WorkingHour
}

func (s *Service) CreateCanteen(ctx context.Context, in CanteenInput) (models.Canteen, error) {
	const op = "booking.CreateCanteen"
	log := s.log.With(slog.String("op", op))

	if in.Name == "" || in.Location == "" || in.Capacity == nil || in.WorkingHours == nil {
		return models.Canteen{}, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	canteen := models.Canteen{ID: uuid.NewString()}
	if err := applyCanteenInput(&canteen, in); err != nil {
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveCanteen(ctx, canteen); err != nil {
		log.Error("failed to save canteen", sl.Err(err))
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("canteen created", slog.String("canteen_id", canteen.ID))

	return canteen, nil
}

func (s *Service) UpdateCanteen(ctx context.Context, id string, in CanteenInput) (models.Canteen, error) {
	const op = "booking.UpdateCanteen"
	log := s.log.With(slog.String("op", op), slog.String("canteen_id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	canteen, err := s.store.Canteen(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrCanteenNotFound) {
			return models.Canteen{}, fmt.Errorf("%s: %w", op, ErrCanteenNotFound)
		}
		log.Error("failed to get canteen", sl.Err(err))
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := applyCanteenInput(&canteen, in); err != nil {
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.store.SaveCanteen(ctx, canteen); err != nil {
		log.Error("failed to save canteen", sl.Err(err))
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("canteen updated")

	return canteen, nil
}

// DeleteCanteen removes the canteen and cancels its Active reservations. The
// reservations it cancelled are returned.
func (s *Service) DeleteCanteen(ctx context.Context, id string) ([]models.Reservation, error) {
	const op = "booking.DeleteCanteen"
	log := s.log.With(slog.String("op", op), slog.String("canteen_id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Canteen(ctx, id); err != nil {
		if errors.Is(err, storage.ErrCanteenNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrCanteenNotFound)
		}
		log.Error("failed to get canteen", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	active, err := s.store.ActiveReservations(ctx, storage.ReservationFilter{CanteenID: id})
	if err != nil {
		log.Error("failed to list canteen reservations", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cancelled := make([]models.Reservation, 0, len(active))
	for _, r := range active {
		r.Status = models.ReservationCancelled
		if err := s.store.SaveReservation(ctx, r); err != nil {
			log.Error("failed to cancel reservation", slog.String("reservation_id", r.ID), sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		cancelled = append(cancelled, r)
	}

	if err := s.store.DeleteCanteen(ctx, id); err != nil {
		log.Error("failed to delete canteen", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("canteen deleted", slog.Int("cancelled_reservations", len(cancelled)))

	return cancelled, nil
}

func (s *Service) Canteen(ctx context.Context, id string) (models.Canteen, error) {
	const op = "booking.Canteen"

	canteen, err := s.store.Canteen(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrCanteenNotFound) {
			return models.Canteen{}, fmt.Errorf("%s: %w", op, ErrCanteenNotFound)
		}
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}
	return canteen, nil
}

func (s *Service) Canteens(ctx context.Context) ([]models.Canteen, error) {
	const op = "booking.Canteens"

	canteens, err := s.store.Canteens(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return canteens, nil
}

func applyCanteenInput(c *models.Canteen, in CanteenInput) error {
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.Location != "" {
		c.Location = in.Location
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return ErrInvalidCapacity
		}
		c.Capacity = *in.Capacity
	}
	if in.WorkingHours != nil {
		hours, err := normalizeWorkingHours(in.WorkingHours)
		if err != nil {
			return err
		}
		c.WorkingHours = hours
	}
	return nil
}

// normalizeWorkingHours validates each block and rewrites its bounds as zero padded "HH:mm".
func normalizeWorkingHours(hours []models.WorkingHour) ([]models.WorkingHour, error) {
	out := make([]models.WorkingHour, 0, len(hours))
	for _, h := range hours {
		if !h.Meal.Valid() {
			return nil, fmt.Errorf("meal %q: %w", h.Meal, ErrInvalidWorkingHours)
		}
		from, err := ParseClock(h.From)
		if err != nil {
			return nil, fmt.Errorf("from %q: %w", h.From, ErrInvalidWorkingHours)
		}
		to, err := ParseClock(h.To)
		if err != nil {
			return nil, fmt.Errorf("to %q: %w", h.To, ErrInvalidWorkingHours)
		}
		if from >= to {
			return nil, fmt.Errorf("%s-%s: %w", h.From, h.To, ErrInvalidWorkingHours)
		}
		out = append(out, models.WorkingHour{Meal: h.Meal, From: FormatClock(from), To: FormatClock(to)})
	}
	return out, nil
}
