package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/request"
	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/response"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
)

type AnnouncementService interface {
	ListAnnouncements(ctx context.Context) ([]domain.Announcement, error)
	CreateAnnouncement(ctx context.Context, a domain.Announcement) (domain.Announcement, error)
}

type AnnouncementHandler struct {
	svc    AnnouncementService
	stream *StreamHandler
}

func NewAnnouncementHandler(svc AnnouncementService, stream *StreamHandler) *AnnouncementHandler {
	return &AnnouncementHandler{
		svc:    svc,
		stream: stream,
	}
}

// HandleListAnnouncements godoc
// @Summary      List active announcements, newest first
// @Tags         announcements
// @Produce      json
// @Success      200 {array}  domain.Announcement
// @Failure      500 {object} response.Err
// @Router       /announcements [get]
func (h *AnnouncementHandler) HandleListAnnouncements(ctx *gin.Context) {
	announcements, err := h.svc.ListAnnouncements(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAnnouncements -> h.svc.ListAnnouncements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, announcements)
}

// HandleCreateAnnouncement godoc
// @Summary      Publish an announcement
// @Tags         announcements
// @Produce      json
// @Param        request  body       request.CreateAnnouncementRequest true "request body"
// @Success      201      {object}   domain.Announcement
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /announcements [post]
func (h *AnnouncementHandler) HandleCreateAnnouncement(ctx *gin.Context) {
	var req request.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateAnnouncement(ctx.Request.Context(), domain.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		AuthorID: req.AuthorID,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateAnnouncement -> h.svc.CreateAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("announcements")
	ctx.JSON(http.StatusCreated, created)
}
