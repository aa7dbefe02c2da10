package handlers

import (
	"context"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/gdg-garage/canteen-api/internal/auth"
	"github.com/gdg-garage/canteen-api/internal/booking"
	"github.com/gdg-garage/canteen-api/internal/lib/logger/sl"
	"github.com/gdg-garage/canteen-api/internal/metrics"
	"github.com/gdg-garage/canteen-api/internal/models"
	"github.com/gdg-garage/canteen-api/internal/notifier"
)

type CanteenHandler struct {
	log         *slog.Logger
	service     *booking.Service
	authHandler *auth.AuthHandler
	notifier    notifier.Notifier
	metrics     *metrics.Metrics
}

func NewCanteenHandler(log *slog.Logger, service *booking.Service, authHandler *auth.AuthHandler, notifier notifier.Notifier, metrics *metrics.Metrics) *CanteenHandler {
	return &CanteenHandler{log: log, service: service, authHandler: authHandler, notifier: notifier, metrics: metrics}
}

type CanteenBody struct {
	Name         string               `json:"name,omitempty" doc:"Display name"`
	Location     string               `json:"location,omitempty" doc:"Where the canteen is"`
	Capacity     *int                 `json:"capacity,omitempty" doc:"Maximum concurrent reservations"`
	WorkingHours []models.WorkingHour `json:"workingHours,omitempty" doc:"Meal blocks, applied to every date"`
}

func (b CanteenBody) input() booking.CanteenInput {
	return booking.CanteenInput{
		Name:         strings.TrimSpace(b.Name),
		Location:     strings.TrimSpace(b.Location),
		Capacity:     b.Capacity,
		WorkingHours: b.WorkingHours,
	}
}

type CreateCanteenRequest struct {
	auth.AuthInput
	Body CanteenBody `required:"false"`
}

type CanteenResponse struct {
	Body models.Canteen
}

func (h *CanteenHandler) HandleCreate(ctx context.Context, input *CreateCanteenRequest) (*CanteenResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	canteen, err := h.service.CreateCanteen(ctx, input.Body.input())
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &CanteenResponse{Body: canteen}, nil
}

type UpdateCanteenRequest struct {
	auth.AuthInput
	ID   string      `path:"id"`
	Body CanteenBody `required:"false"`
}

func (h *CanteenHandler) HandleUpdate(ctx context.Context, input *UpdateCanteenRequest) (*CanteenResponse, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	canteen, err := h.service.UpdateCanteen(ctx, input.ID, input.Body.input())
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &CanteenResponse{Body: canteen}, nil
}

type DeleteCanteenRequest struct {
	auth.AuthInput
	ID string `path:"id"`
}

func (h *CanteenHandler) HandleDelete(ctx context.Context, input *DeleteCanteenRequest) (*struct{}, error) {
	if _, err := h.authHandler.RequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	canteen, err := h.service.Canteen(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	cancelled, err := h.service.DeleteCanteen(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}

	h.metrics.ReservationsCancelled(len(cancelled))
	if h.notifier != nil {
		if err := h.notifier.NotifyCanteenDeleted(canteen, len(cancelled)); err != nil {
			h.log.Warn("failed to send notification", slog.String("canteen_id", canteen.ID), sl.Err(err))
		}
	}

	return nil, nil
}

type GetCanteenRequest struct {
	ID string `path:"id"`
}

func (h *CanteenHandler) HandleGet(ctx context.Context, input *GetCanteenRequest) (*CanteenResponse, error) {
	canteen, err := h.service.Canteen(ctx, input.ID)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &CanteenResponse{Body: canteen}, nil
}

type ListCanteensResponse struct {
	Body []models.Canteen
}

func (h *CanteenHandler) HandleList(ctx context.Context, _ *struct{}) (*ListCanteensResponse, error) {
	canteens, err := h.service.Canteens(ctx)
	if err != nil {
		return nil, toHTTPError(err)
	}
	if canteens == nil {
		canteens = []models.Canteen{}
	}
	return &ListCanteensResponse{Body: canteens}, nil
}

type SlotsQuery struct {
	StartDate string `query:"startDate" doc:"First day, YYYY-MM-DD" example:"2025-12-05"`
	EndDate   string `query:"endDate" doc:"Last day, inclusive" example:"2025-12-06"`
	StartTime string `query:"startTime" doc:"Earliest slot start, HH:mm" example:"11:00"`
	EndTime   string `query:"endTime" doc:"Slots start before this time, HH:mm" example:"15:00"`
	Duration  string `query:"duration" doc:"Slot length in minutes, 30 or 60" example:"30"`
}

func (q SlotsQuery) query() booking.SlotQuery {
	sq := booking.SlotQuery{
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		StartTime: q.StartTime,
		EndTime:   q.EndTime,
	}
	if q.Duration != "" {
		// A non-numeric duration becomes 0 and is rejected as an invalid duration.
		d, _ := strconv.Atoi(q.Duration)
		sq.Duration = &d
	}
	return sq
}

type CanteenSlots struct {
	CanteenID string         `json:"canteenId"`
	Slots     []booking.Slot `json:"slots"`
}

func collectSlots(canteenID string, slots iter.Seq[booking.Slot]) CanteenSlots {
	out := slices.Collect(slots)
	if out == nil {
		out = []booking.Slot{}
	}
	return CanteenSlots{CanteenID: canteenID, Slots: out}
}

type CanteenSlotsRequest struct {
	ID string `path:"id"`
	SlotsQuery
}

type CanteenSlotsResponse struct {
	Body CanteenSlots
}

func (h *CanteenHandler) HandleCanteenSlots(ctx context.Context, input *CanteenSlotsRequest) (*CanteenSlotsResponse, error) {
	h.metrics.SlotQuery("canteen")

	slots, err := h.service.CanteenSlots(ctx, input.ID, input.SlotsQuery.query())
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &CanteenSlotsResponse{Body: collectSlots(input.ID, slots)}, nil
}

type AllSlotsRequest struct {
	SlotsQuery
}

type AllSlotsResponse struct {
	Body []CanteenSlots
}

func (h *CanteenHandler) HandleAllSlots(ctx context.Context, input *AllSlotsRequest) (*AllSlotsResponse, error) {
	h.metrics.SlotQuery("all")

	groups, err := h.service.AllSlots(ctx, input.SlotsQuery.query())
	if err != nil {
		return nil, toHTTPError(err)
	}

	body := make([]CanteenSlots, 0, len(groups))
	for _, g := range groups {
		body = append(body, collectSlots(g.Canteen.ID, g.Slots))
	}
	return &AllSlotsResponse{Body: body}, nil
}
