package handlers

import (
	"context"
	"log/slog"

	"github.com/gdg-garage/canteen-api/internal/booking"
	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/metrics"
	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/notifier"
)

type ReservationHandler struct {
	log      *slog.Logger
	service  *booking.Service
	notifier notifier.Notifier
	metrics  *metrics.Metrics
}

func NewReservationHandler(log *slog.Logger, service *booking.Service, notifier notifier.Notifier, metrics *metrics.Metrics) *ReservationHandler {
	return &ReservationHandler{log: log, service: service, notifier: notifier, metrics: metrics}
}

type CreateReservationRequest struct {
	Body struct {
		StudentID string `json:"studentId,omitempty" doc:"Student making the reservation"`
		CanteenID string `json:"canteenId,omitempty" doc:"Canteen to reserve at"`
		Date      string `json:"date,omitempty" doc:"Day of the reservation, YYYY-MM-DD" example:"2025-12-05"`
		Time      string `json:"time,omitempty" doc:"Start time, HH:mm on the hour or half hour" example:"11:00"`
		Duration  *int   `json:"duration,omitempty" doc:"Length in minutes, 30 or 60" example:"30"`
	} `required:"false"`
}

type ReservationResponse struct {
	Body models.Reservation
}

func (h *ReservationHandler) HandleCreate(ctx context.Context, input *CreateReservationRequest) (*ReservationResponse, error) {
	reservation, err := h.service.CreateReservation(ctx, booking.CreateReservationInput{
		StudentID: input.Body.StudentID,
		CanteenID: input.Body.CanteenID,
		Date:      input.Body.Date,
		Time:      input.Body.Time,
		Duration:  input.Body.Duration,
	})
	if err != nil {
		h.metrics.ReservationRejected(rejectionReason(err))
		return nil, toHTTPError(err)
	}

	h.metrics.ReservationCreated()
	h.notify(ctx, reservation)

	return &ReservationResponse{Body: reservation}, nil
}

type ReservationIDRequest struct {
	ID string `path:"id"`
}

func (h *ReservationHandler) HandleGet(ctx context.Context, input *ReservationIDRequest) (*ReservationResponse, error) {
	reservation, err := h.service.Reservation(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &ReservationResponse{Body: reservation}, nil
}

func (h *ReservationHandler) HandleCancel(ctx context.Context, input *ReservationIDRequest) (*ReservationResponse, error) {
	reservation, err := h.service.CancelReservation(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	h.metrics.ReservationsCancelled(1)
	h.notify(ctx, reservation)

	return &ReservationResponse{Body: reservation}, nil
}

// notify posts the reservation change. Failures are logged only.
func (h *ReservationHandler) notify(ctx context.Context, reservation models.Reservation) {
	if h.notifier == nil {
		return
	}

	canteenName := reservation.CanteenID
	if canteen, err := h.service.Canteen(ctx, reservation.CanteenID); err == nil {
		canteenName = canteen.Name
	}

	if err := h.notifier.NotifyReservation(reservation, canteenName); err != nil {
		h.log.Warn("failed to send notification", slog.String("reservation_id", reservation.ID), sl.Err(err))
	}
}
