package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/canteen-api/internal/booking"
	"github.com/gdg-garage/canteen-api/internal/config"
	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

const TokenDuration = 24 * time.Hour

var (
	ErrNoToken      = errors.New("no token found")
	ErrInvalidToken = errors.New("invalid token")
)

type StudentProvider interface {
	Student(ctx context.Context, id string) (models.Student, error)
}

type AuthHandler struct {
	cfg      *config.Config
	students StudentProvider
}

func NewAuthHandler(cfg *config.Config, students StudentProvider) *AuthHandler {
	return &AuthHandler{cfg: cfg, students: students}
}

// AuthInput is embedded into operation inputs that need to know the caller.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token returned on registration"`
}

func (h *AuthHandler) GenerateToken(studentID string) (string, error) {
	claims := jwt.MapClaims{
		"student_id": studentID,
		"exp":        time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ParseToken validates a raw token and returns the student it was issued to.
func (h *AuthHandler) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	studentID, ok := claims["student_id"].(string)
	if !ok || studentID == "" {
		return "", ErrInvalidToken
	}
	return studentID, nil
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(token), nil
}

// Authorize resolves the Authorization header into the calling student.
func (h *AuthHandler) Authorize(ctx context.Context, header string) (models.Student, error) {
	token, err := bearerToken(header)
	if err != nil {
		return models.Student{}, huma.Error401Unauthorized("Unauthorized: No token found")
	}

	studentID, err := h.ParseToken(token)
	if err != nil {
		return models.Student{}, huma.Error401Unauthorized("Unauthorized: Invalid token")
	}

	student, err := h.students.Student(ctx, studentID)
	if err != nil {
		if errors.Is(err, booking.ErrStudentNotFound) {
			return models.Student{}, huma.Error404NotFound("Student not found")
		}
		return models.Student{}, huma.Error500InternalServerError("Failed to look up student")
	}
	return student, nil
}

// RequireAdmin is Authorize plus the admin flag check.
func (h *AuthHandler) RequireAdmin(ctx context.Context, header string) (models.Student, error) {
	student, err := h.Authorize(ctx, header)
	if err != nil {
		return models.Student{}, err
	}
	if !student.IsAdmin {
		return models.Student{}, huma.Error403Forbidden("Access denied: admin privileges required")
	}
	return student, nil
}

type MeResponse struct {
	Body models.Student
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *AuthInput) (*MeResponse, error) {
	student, err := h.Authorize(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}
	return &MeResponse{Body: student}, nil
}
