package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type contextKey string

const StudentIDKey contextKey = "student_id"

// AdminMiddleware guards plain chi routes (outside huma) with the same checks as RequireAdmin.
func (h *AuthHandler) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		student, err := h.RequireAdmin(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			var se huma.StatusError
			if errors.As(err, &se) {
				http.Error(w, se.Error(), se.GetStatus())
				return
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), StudentIDKey, student.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
