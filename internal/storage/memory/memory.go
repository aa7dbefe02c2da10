// Package memory keeps students, canteens and reservations in flat slices.
// Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/storage"
)

type Storage struct {
	mu           sync.RWMutex
	students     []models.Student
	canteens     []models.Canteen
	reservations []models.Reservation
}

func New() *Storage {
	return &Storage{}
}

func (s *Storage) Student(_ context.Context, id string) (models.Student, error) {
	const op = "storage.memory.Student"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.students {
		if st.ID == id {
			return st, nil
		}
	}
	return models.Student{}, fmt.Errorf("%s: %w", op, storage.ErrStudentNotFound)
}

func (s *Storage) StudentByEmail(_ context.Context, email string) (models.Student, error) {
	const op = "storage.memory.StudentByEmail"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, st := range s.students {
		if st.Email == email {
			return st, nil
		}
	}
	return models.Student{}, fmt.Errorf("%s: %w", op, storage.ErrStudentNotFound)
}

func (s *Storage) SaveStudent(_ context.Context, student models.Student) error {
	const op = "storage.memory.SaveStudent"

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.students {
		if st.ID == student.ID || st.Email == student.Email {
			return fmt.Errorf("%s: %w", op, storage.ErrStudentExists)
		}
	}
	s.students = append(s.students, student)
	return nil
}

func (s *Storage) Canteen(_ context.Context, id string) (models.Canteen, error) {
	const op = "storage.memory.Canteen"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.canteens {
		if c.ID == id {
			return cloneCanteen(c), nil
		}
	}
	return models.Canteen{}, fmt.Errorf("%s: %w", op, storage.ErrCanteenNotFound)
}

func (s *Storage) Canteens(_ context.Context) ([]models.Canteen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Canteen, 0, len(s.canteens))
	for _, c := range s.canteens {
		out = append(out, cloneCanteen(c))
	}
	return out, nil
}

// SaveCanteen inserts the canteen or replaces the stored one with the same id in place.
func (s *Storage) SaveCanteen(_ context.Context, canteen models.Canteen) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	canteen = cloneCanteen(canteen)
	for i, c := range s.canteens {
		if c.ID == canteen.ID {
			s.canteens[i] = canteen
			return nil
		}
	}
	s.canteens = append(s.canteens, canteen)
	return nil
}

func (s *Storage) DeleteCanteen(_ context.Context, id string) error {
	const op = "storage.memory.DeleteCanteen"

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.canteens, func(c models.Canteen) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrCanteenNotFound)
	}
	s.canteens = slices.Delete(s.canteens, i, i+1)
	return nil
}

func (s *Storage) Reservation(_ context.Context, id string) (models.Reservation, error) {
	const op = "storage.memory.Reservation"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Reservation{}, fmt.Errorf("%s: %w", op, storage.ErrReservationNotFound)
}

func (s *Storage) ActiveReservations(_ context.Context, filter storage.ReservationFilter) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Reservation
	for _, r := range s.reservations {
		if !r.Active() {
			continue
		}
		if filter.StudentID != "" && r.StudentID != filter.StudentID {
			continue
		}
		if filter.CanteenID != "" && r.CanteenID != filter.CanteenID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// SaveReservation appends a new reservation or overwrites the one with the same id.
func (s *Storage) SaveReservation(_ context.Context, reservation models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.reservations {
		if r.ID == reservation.ID {
			s.reservations[i] = reservation
			return nil
		}
	}
	s.reservations = append(s.reservations, reservation)
	return nil
}

func cloneCanteen(c models.Canteen) models.Canteen {
	c.WorkingHours = slices.Clone(c.WorkingHours)
	return c
}
