package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/request"
	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/response"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/service"
)

type ExpenseService interface {
	ListExpenses(ctx context.Context, startDate string) ([]domain.Expense, error)
	CreateExpense(ctx context.Context, expense domain.Expense) (domain.Expense, error)
}

type ExpenseHandler struct {
	svc    ExpenseService
	stream *StreamHandler
}

func NewExpenseHandler(svc ExpenseService, stream *StreamHandler) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		stream: stream,
	}
}

// HandleListExpenses godoc
// @Summary      List expenses
// @Description  Returns expenses dated on or after start_date, or all when the parameter is absent.
// @Tags         expenses
// @Produce      json
// @Param        start_date  query  string false "earliest date to include (YYYY-MM-DD)"
// @Success      200 {array}  domain.Expense
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /expenses [get]
func (h *ExpenseHandler) HandleListExpenses(ctx *gin.Context) {
	startDate := ctx.Query("start_date")
	if startDate != "" {
		if _, err := time.Parse(domain.DateLayout, startDate); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid start_date %q", startDate)))
			return
		}
	}

	expenses, err := h.svc.ListExpenses(ctx.Request.Context(), startDate)
	if err != nil {
		err = fmt.Errorf("v1.HandleListExpenses -> h.svc.ListExpenses -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, expenses)
}

// HandleCreateExpense godoc
// @Summary      Record an expense
// @Tags         expenses
// @Produce      json
// @Param        request  body       request.CreateExpenseRequest true "request body"
// @Success      201      {object}   domain.Expense
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /expenses [post]
func (h *ExpenseHandler) HandleCreateExpense(ctx *gin.Context) {
	var req request.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateExpense(ctx.Request.Context(), domain.Expense{
		MemberID:    req.MemberID,
		Category:    domain.ExpenseCategory(req.Category),
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		RecordedBy:  req.RecordedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidExpenseCategory):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidExpenseCategory))
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrMemberNotFound))
		default:
			err = fmt.Errorf("v1.HandleCreateExpense -> h.svc.CreateExpense -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.stream.Notify("expenses")
	ctx.JSON(http.StatusCreated, created)
}
