package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists the booking records through gorm.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Student(ctx context.Context, id string) (models.Student, error) {
	const op = "database.Student"

	var student models.Student
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, fmt.Errorf("%s: %w", op, storage.ErrStudentNotFound)
		}
		return models.Student{}, fmt.Errorf("%s: %w", op, err)
	}
	return student, nil
}

func (s *Store) StudentByEmail(ctx context.Context, email string) (models.Student, error) {
	const op = "database.StudentByEmail"

	var student models.Student
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Student{}, fmt.Errorf("%s: %w", op, storage.ErrStudentNotFound)
		}
		return models.Student{}, fmt.Errorf("%s: %w", op, err)
	}
	return student, nil
}

func (s *Store) SaveStudent(ctx context.Context, student models.Student) error {
	const op = "database.SaveStudent"

	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%s: %w", op, storage.ErrStudentExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Canteen(ctx context.Context, id string) (models.Canteen, error) {
	const op = "database.Canteen"

	var canteen models.Canteen
	err := s.withHours(s.db.WithContext(ctx)).Where("id = ?", id).First(&canteen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Canteen{}, fmt.Errorf("%s: %w", op, storage.ErrCanteenNotFound)
		}
		return models.Canteen{}, fmt.Errorf("%s: %w", op, err)
	}
	return canteen, nil
}

func (s *Store) Canteens(ctx context.Context) ([]models.Canteen, error) {
	const op = "database.Canteens"

	var canteens []models.Canteen
	if err := s.withHours(s.db.WithContext(ctx)).Order("created_at, id").Find(&canteens).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return canteens, nil
}

// SaveCanteen upserts the canteen row and replaces its working hours.
func (s *Store) SaveCanteen(ctx context.Context, canteen models.Canteen) error {
	const op = "database.SaveCanteen"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&canteen).Error; err != nil {
			return err
		}

		if err := tx.Where("canteen_id = ?", canteen.ID).Delete(&models.WorkingHour{}).Error; err != nil {
			return err
		}

		if len(canteen.WorkingHours) == 0 {
			return nil
		}
		hours := make([]models.WorkingHour, len(canteen.WorkingHours))
		for i, h := range canteen.WorkingHours {
			hours[i] = models.WorkingHour{CanteenID: canteen.ID, Meal: h.Meal, From: h.From, To: h.To}
		}
		return tx.Create(&hours).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) DeleteCanteen(ctx context.Context, id string) error {
	const op = "database.DeleteCanteen"

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Canteen{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return storage.ErrCanteenNotFound
		}
		return tx.Where("canteen_id = ?", id).Delete(&models.WorkingHour{}).Error
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) Reservation(ctx context.Context, id string) (models.Reservation, error) {
	const op = "database.Reservation"

	var reservation models.Reservation
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&reservation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reservation{}, fmt.Errorf("%s: %w", op, storage.ErrReservationNotFound)
		}
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}
	return reservation, nil
}

func (s *Store) ActiveReservations(ctx context.Context, filter storage.ReservationFilter) ([]models.Reservation, error) {
	const op = "database.ActiveReservations"

	q := s.db.WithContext(ctx).Where("status = ?", models.ReservationActive)
	if filter.StudentID != "" {
		q = q.Where("student_id = ?", filter.StudentID)
	}
	if filter.CanteenID != "" {
		q = q.Where("canteen_id = ?", filter.CanteenID)
	}

	var reservations []models.Reservation
	if err := q.Order("created_at, id").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reservations, nil
}

func (s *Store) SaveReservation(ctx context.Context, reservation models.Reservation) error {
	const op = "database.SaveReservation"

	if err := s.db.WithContext(ctx).Save(&reservation).Error; err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Store) withHours(db *gorm.DB) *gorm.DB {
	return db.Preload("WorkingHours", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}
