package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/canteen-api/internal/auth"
	"github.com/gdg-garage/canteen-api/internal/booking"
	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/models"
)

type StudentHandler struct {
	log         *slog.Logger
	service     *booking.Service
	authHandler *auth.AuthHandler
}

func NewStudentHandler(log *slog.Logger, service *booking.Service, authHandler *auth.AuthHandler) *StudentHandler {
	return &StudentHandler{log: log, service: service, authHandler: authHandler}
}

type RegisterStudentRequest struct {
	Body struct {
		Name    string `json:"name,omitempty" doc:"Full name"`
		Email   string `json:"email,omitempty" doc:"Unique email address"`
		IsAdmin bool   `json:"isAdmin,omitempty" doc:"Whether the student may manage canteens"`
	} `required:"false"`
}

type RegisteredStudent struct {
	models.Student
	Token string `json:"token" doc:"Bearer token identifying this student"`
}

type RegisterStudentResponse struct {
	Body RegisteredStudent
}

func (h *StudentHandler) HandleRegister(ctx context.Context, input *RegisterStudentRequest) (*RegisterStudentResponse, error) {
	student, err := h.service.RegisterStudent(ctx, input.Body.Name, input.Body.Email, input.Body.IsAdmin)
	if err != nil {
		return nil, toHTTPError(err)
	}

	token, err := h.authHandler.GenerateToken(student.ID)
	if err != nil {
		h.log.Error("failed to generate token", slog.String("student_id", student.ID), sl.Err(err))
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	return &RegisterStudentResponse{Body: RegisteredStudent{Student: student, Token: token}}, nil
}

type GetStudentRequest struct {
	ID string `path:"id"`
}

type StudentResponse struct {
	Body models.Student
}

func (h *StudentHandler) HandleGet(ctx context.Context, input *GetStudentRequest) (*StudentResponse, error) {
	student, err := h.service.Student(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &StudentResponse{Body: student}, nil
}

func createdStatus(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}
