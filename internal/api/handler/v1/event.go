package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/request"
	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/response"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/service"
)

type EventService interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	UpdateEvent(ctx context.Context, id string, fields map[string]any) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	Register(ctx context.Context, reg domain.Registration) (domain.Registration, error)
}

type EventHandler struct {
	svc    EventService
	stream *StreamHandler
}

func NewEventHandler(svc EventService, stream *StreamHandler) *EventHandler {
	return &EventHandler{
		svc:    svc,
		stream: stream,
	}
}

// HandleListEvents godoc
// @Summary      List all events with their registrations
// @Tags         events
// @Produce      json
// @Success      200 {array}  domain.Event
// @Failure      500 {object} response.Err
// @Router       /events [get]
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Produce      json
// @Param        request  body       request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Title:       req.Title,
		Date:        req.Date,
		EndDate:     req.EndDate,
		Time:        req.Time,
		MeetingTime: req.MeetingTime,
		Location:    req.Location,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMemberNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("events")
	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateEvent godoc
// @Summary      Patch an event
// @Tags         events
// @Produce      json
// @Param        eventID  path       string         true "event ID"
// @Param        request  body       map[string]any true "fields to patch"
// @Success      200      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [patch]
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if len(fields) == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("no fields to update")))
		return
	}

	updated, err := h.svc.UpdateEvent(ctx.Request.Context(), ctx.Param("eventID"), fields)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("events")
	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event and its registrations
// @Tags         events
// @Produce      json
// @Param        eventID  path       string true "event ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events/{eventID} [delete]
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	if err := h.svc.DeleteEvent(ctx.Request.Context(), ctx.Param("eventID")); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("events")
	ctx.Status(http.StatusNoContent)
}

// HandleUpsertRegistration godoc
// @Summary      Record an attendance answer
// @Description  Upserts a member's answer for an event; a second answer overwrites the first.
// @Tags         events
// @Produce      json
// @Param        request  body       request.RegistrationRequest true "request body"
// @Success      200      {object}   domain.Registration
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /event-registrations [post]
func (h *EventHandler) HandleUpsertRegistration(ctx *gin.Context) {
	var req request.RegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.Register(ctx.Request.Context(), domain.Registration{
		EventID:    req.EventID,
		MemberID:   req.MemberID,
		Status:     domain.RegistrationStatus(req.Status),
		Confirmed:  req.Confirmed,
		Extras:     req.Extras,
		GuestCount: req.GuestCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrEventNotFound))
		case errors.Is(err, service.ErrInvalidRegStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidRegStatus))
		default:
			err = fmt.Errorf("v1.HandleUpsertRegistration -> h.svc.Register -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.stream.Notify("events")
	ctx.JSON(http.StatusOK, saved)
}
