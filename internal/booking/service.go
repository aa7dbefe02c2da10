// Package booking decides whether a canteen reservation is admissible and computes
// the free capacity of canteens over a date and time range.
package booking

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/storage"
)

type StudentStore interface {
	Student(ctx context.Context, id string) (models.Student, error)
	StudentByEmail(ctx context.Context, email string) (models.Student, error)
	SaveStudent(ctx context.Context, student models.Student) error
}

type CanteenStore interface {
	Canteen(ctx context.Context, id string) (models.Canteen, error)
	Canteens(ctx context.Context) ([]models.Canteen, error)
	SaveCanteen(ctx context.Context, canteen models.Canteen) error
	DeleteCanteen(ctx context.Context, id string) error
}

type ReservationStore interface {
	Reservation(ctx context.Context, id string) (models.Reservation, error)
	ActiveReservations(ctx context.Context, filter storage.ReservationFilter) ([]models.Reservation, error)
	SaveReservation(ctx context.Context, reservation models.Reservation) error
}

// Store is the record set the service reads and writes.
type Store interface {
	StudentStore
	CanteenStore
	ReservationStore
}

type Service struct {
	log   *slog.Logger
	store Store
	loc   *time.Location
	now   func() time.Time

	// mu serialises every read-check-write sequence against the store so that
	// capacity and double booking checks cannot interleave with inserts.
	mu sync.Mutex
}

type Option func(*Service)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone reservation dates and times are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func New(log *slog.Logger, store Store, opts ...Option) *Service {
	s := &Service{
		log:   log,
		store: store,
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the zone used to interpret dates and clock times.
func (s *Service) Location() *time.Location {
	return s.loc
}
