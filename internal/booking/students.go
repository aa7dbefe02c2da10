package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/storage"
	"github.com/google/uuid"
)

func (s *Service) RegisterStudent(ctx context.Context, name, email string, isAdmin bool) (models.Student, error) {
	const op = "booking.RegisterStudent"
	log := s.log.With(slog.String("op", op))

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return models.Student{}, fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.store.StudentByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Student{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
	case !errors.Is(err, storage.ErrStudentNotFound):
		log.Error("failed to look up email", sl.Err(err))
		return models.Student{}, fmt.Errorf("%s: %w", op, err)
	}

	student := models.Student{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   email,
		IsAdmin: isAdmin,
	}
	if err := s.store.SaveStudent(ctx, student); err != nil {
		if errors.Is(err, storage.ErrStudentExists) {
			return models.Student{}, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		log.Error("failed to save student", sl.Err(err))
		return models.Student{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("student registered", slog.String("student_id", student.ID), slog.Bool("is_admin", isAdmin))

	return student, nil
}

func (s *Service) Student(ctx context.Context, id string) (models.Student, error) {
	const op = "booking.Student"

	student, err := s.store.Student(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrStudentNotFound) {
			return models.Student{}, fmt.Errorf("%s: %w", op, ErrStudentNotFound)
		}
		return models.Student{}, fmt.Errorf("%s: %w", op, err)
	}
	return student, nil
}

// IsAdmin looks up the admin flag of a student.
func (s *Service) IsAdmin(ctx context.Context, id string) (bool, error) {
	student, err := s.Student(ctx, id)
	if err != nil {
		return false, err
	}
	return student.IsAdmin, nil
}
