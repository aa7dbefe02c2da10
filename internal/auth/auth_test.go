package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/canteen-api/internal/booking"
	"github.com/gdg-garage/canteen-api/internal/config"
	"github.com/gdg-garage/canteen-api/internal/lib/logger/logging"
	"github.com/gdg-garage/canteen-api/internal/storage/memory"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*AuthHandler, *booking.Service) {
	t.Helper()
	svc := booking.New(logging.Discard(), memory.New())
	return NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, svc), svc
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	var se huma.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, status, se.GetStatus())
}

func TestHandleMe(t *testing.T) {
	handler, svc := newTestHandler(t)

	student, err := svc.RegisterStudent(context.Background(), "testuser", "test@example.com", false)
	require.NoError(t, err)

	t.Run("Authenticated", func(t *testing.T) {
		token, err := handler.GenerateToken(student.ID)
		require.NoError(t, err)

		resp, err := handler.HandleMe(context.Background(), &AuthInput{Authorization: "Bearer " + token})
		require.NoError(t, err)
		assert.Equal(t, student.Name, resp.Body.Name)
		assert.Equal(t, student.Email, resp.Body.Email)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		_, err := handler.HandleMe(context.Background(), &AuthInput{})
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("WrongScheme", func(t *testing.T) {
		token, _ := handler.GenerateToken(student.ID)
		_, err := handler.HandleMe(context.Background(), &AuthInput{Authorization: "Basic " + token})
		assertStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("UnknownStudent", func(t *testing.T) {
		token, _ := handler.GenerateToken("missing")
		_, err := handler.HandleMe(context.Background(), &AuthInput{Authorization: "Bearer " + token})
		assertStatus(t, err, http.StatusNotFound)
	})
}

func TestParseToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	t.Run("RoundTrip", func(t *testing.T) {
		token, err := handler.GenerateToken("student-1")
		require.NoError(t, err)

		id, err := handler.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "student-1", id)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := jwt.MapClaims{
			"student_id": "student-1",
			"exp":        time.Now().Add(-time.Hour).Unix(),
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

		_, err := handler.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		claims := jwt.MapClaims{
			"student_id": "student-1",
			"exp":        time.Now().Add(time.Hour).Unix(),
		}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other"))

		_, err := handler.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("MissingClaim", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
		token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))

		_, err := handler.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestRequireAdmin(t *testing.T) {
	handler, svc := newTestHandler(t)
	ctx := context.Background()

	admin, err := svc.RegisterStudent(ctx, "admin", "admin@example.com", true)
	require.NoError(t, err)
	regular, err := svc.RegisterStudent(ctx, "regular", "regular@example.com", false)
	require.NoError(t, err)

	adminToken, _ := handler.GenerateToken(admin.ID)
	regularToken, _ := handler.GenerateToken(regular.ID)

	got, err := handler.RequireAdmin(ctx, "Bearer "+adminToken)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	_, err = handler.RequireAdmin(ctx, "Bearer "+regularToken)
	assertStatus(t, err, http.StatusForbidden)
}
