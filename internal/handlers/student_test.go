package handlers

import (
	"net/http"
	"testing"

	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentEndpoints(t *testing.T) {
	env := newTestEnv(t)

	student, bearer := env.register(t, "Ana Kovac", "ana@example.com", false)
	assert.NotEmpty(t, student.ID)
	assert.NotEmpty(t, student.Token)
	assert.Equal(t, "Ana Kovac", student.Name)
	assert.False(t, student.IsAdmin)

	t.Run("Get", func(t *testing.T) {
		resp := env.api.Get("/students/" + student.ID)
		require.Equal(t, http.StatusOK, resp.Code)

		var got models.Student
		decode(t, resp, &got)
		assert.Equal(t, student.Student.ID, got.ID)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		assertError(t, env.api.Get("/students/missing"), http.StatusNotFound, "Student not found")
	})

	t.Run("Me", func(t *testing.T) {
		resp := env.api.Get("/me", bearer)
		require.Equal(t, http.StatusOK, resp.Code)

		var got models.Student
		decode(t, resp, &got)
		assert.Equal(t, student.ID, got.ID)
	})

	t.Run("MeWithoutToken", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, env.api.Get("/me").Code)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		resp := env.api.Post("/students", map[string]any{"name": "Other", "email": "ana@example.com"})
		assertError(t, resp, http.StatusBadRequest, "Student with this email already exists")
	})

	t.Run("MissingFields", func(t *testing.T) {
		resp := env.api.Post("/students", map[string]any{"name": "No Email"})
		assertError(t, resp, http.StatusBadRequest, "Missing required fields")
	})
}
