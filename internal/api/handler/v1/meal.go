package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/request"
	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/response"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/service"
)

type MealService interface {
	WeekMeals(ctx context.Context, year, week int) ([]domain.Meal, error)
	UpsertMeal(ctx context.Context, meal domain.Meal) (domain.Meal, error)
	Signup(ctx context.Context, year, week, dayIndex int, memberID string, tags []domain.MealTag) (domain.MealSignup, error)
}

type MealHandler struct {
	svc    MealService
	stream *StreamHandler
}

func NewMealHandler(svc MealService, stream *StreamHandler) *MealHandler {
	return &MealHandler{
		svc:    svc,
		stream: stream,
	}
}

// weekParams reads the year and week query parameters, defaulting to the
// current ISO week.
func weekParams(ctx *gin.Context) (int, int, error) {
	year, week := time.Now().ISOWeek()
	if raw := ctx.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid year %q", raw)
		}
		year = parsed
	}
	if raw := ctx.Query("week"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid week %q", raw)
		}
		week = parsed
	}
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("week %d out of range", week)
	}

	return year, week, nil
}

// HandleWeekMeals godoc
// @Summary      List the meals of one week with their signups
// @Tags         meals
// @Produce      json
// @Param        year  query     int false "ISO year (defaults to current)"
// @Param        week  query     int false "ISO week (defaults to current)"
// @Success      200  {array}    domain.Meal
// @Failure      400  {object}   response.Err
// @Failure      500  {object}   response.Err
// @Router       /meals [get]
func (h *MealHandler) HandleWeekMeals(ctx *gin.Context) {
	year, week, err := weekParams(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	meals, err := h.svc.WeekMeals(ctx.Request.Context(), year, week)
	if err != nil {
		err = fmt.Errorf("v1.HandleWeekMeals -> h.svc.WeekMeals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, meals)
}

// HandleUpsertMeal godoc
// @Summary      Create or update the meal of one weekday
// @Description  Upserts the meal keyed by (year, week, day_index), preserving signups.
// @Tags         meals
// @Produce      json
// @Param        request  body       request.UpsertMealRequest true "request body"
// @Success      200      {object}   domain.Meal
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meals [post]
func (h *MealHandler) HandleUpsertMeal(ctx *gin.Context) {
	var req request.UpsertMealRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	saved, err := h.svc.UpsertMeal(ctx.Request.Context(), domain.Meal{
		Year:         req.Year,
		Week:         req.Week,
		DayIndex:     *req.DayIndex,
		Vorspeise:    req.Vorspeise,
		Hauptgericht: req.Hauptgericht,
		Nachspeise:   req.Nachspeise,
		Kochteam:     req.Kochteam,
		Status:       domain.MealStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidMealStatus) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidMealStatus))
			return
		}

		err = fmt.Errorf("v1.HandleUpsertMeal -> h.svc.UpsertMeal -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("meals")
	ctx.JSON(http.StatusOK, saved)
}

// HandleMealSignup godoc
// @Summary      Record a member's meal signup
// @Description  Upserts the member's tag set for one day. The charged amount is derived from the tags server-side.
// @Tags         meals
// @Produce      json
// @Param        request  body       request.MealSignupRequest true "request body"
// @Success      200      {object}   domain.MealSignup
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /meal-signups [post]
func (h *MealHandler) HandleMealSignup(ctx *gin.Context) {
	var req request.MealSignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tags := make([]domain.MealTag, 0, len(req.Types))
	for _, t := range req.Types {
		tags = append(tags, domain.MealTag(t))
	}

	saved, err := h.svc.Signup(ctx.Request.Context(), req.Year, req.Week, *req.DayIndex, req.MemberID, tags)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMealCanceled):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMealCanceled))
		case errors.Is(err, service.ErrInvalidMealTag):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidMealTag))
		case errors.Is(err, service.ErrMealNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMealNotFound))
		default:
			err = fmt.Errorf("v1.HandleMealSignup -> h.svc.Signup -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.stream.Notify("meals")
	ctx.JSON(http.StatusOK, saved)
}
