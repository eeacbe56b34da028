package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/request"
	"github.com/kbteutonia/mitgliederbereich/internal/api/handler/v1/response"
	"github.com/kbteutonia/mitgliederbereich/internal/domain"
	"github.com/kbteutonia/mitgliederbereich/internal/service"
)

type MemberService interface {
	ListMembers(ctx context.Context) ([]domain.Member, error)
	GetMember(ctx context.Context, id string) (domain.Member, error)
	LookupByName(ctx context.Context, name string) ([]domain.Member, error)
	CreateMember(ctx context.Context, member domain.Member) (domain.Member, error)
	UpdateMember(ctx context.Context, id string, fields map[string]any) (domain.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

type MemberHandler struct {
	svc    MemberService
	stream *StreamHandler
}

func NewMemberHandler(svc MemberService, stream *StreamHandler) *MemberHandler {
	return &MemberHandler{
		svc:    svc,
		stream: stream,
	}
}

// HandleListMembers godoc
// @Summary      List all members
// @Tags         members
// @Produce      json
// @Success      200 {array}  domain.Member
// @Failure      500 {object} response.Err
// @Router       /members [get]
func (h *MemberHandler) HandleListMembers(ctx *gin.Context) {
	members, err := h.svc.ListMembers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListMembers -> h.svc.ListMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleGetMember godoc
// @Summary      Get a member by ID
// @Tags         members
// @Produce      json
// @Param        memberID  path      string true "member ID"
// @Success      200      {object}   domain.Member
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{memberID} [get]
func (h *MemberHandler) HandleGetMember(ctx *gin.Context) {
	member, err := h.svc.GetMember(ctx.Request.Context(), ctx.Param("memberID"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMember -> h.svc.GetMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// HandleLoginLookup godoc
// @Summary      Find members by full name for login
// @Description  Returns every member whose full name matches, case-insensitively. The client decides how to treat zero or multiple matches.
// @Tags         members
// @Produce      json
// @Param        request  body       request.LoginLookupRequest true "request body"
// @Success      200      {array}    domain.Member
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/login [post]
func (h *MemberHandler) HandleLoginLookup(ctx *gin.Context) {
	var req request.LoginLookupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	matches, err := h.svc.LookupByName(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleLoginLookup -> h.svc.LookupByName -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, matches)
}

// HandleCreateMember godoc
// @Summary      Create a member
// @Tags         members
// @Produce      json
// @Param        request  body       request.CreateMemberRequest true "request body"
// @Success      201      {object}   domain.Member
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members [post]
func (h *MemberHandler) HandleCreateMember(ctx *gin.Context) {
	var req request.CreateMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.CreateMember(ctx.Request.Context(), domain.Member{
		Surname:    req.Surname,
		FirstName:  req.FirstName,
		FullName:   req.FullName,
		MemberType: domain.MemberType(req.MemberType),
		AdminRole:  domain.AdminRole(req.AdminRole),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidMemberType) || errors.Is(err, service.ErrInvalidAdminRole) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateMember -> h.svc.CreateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("members")
	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateMember godoc
// @Summary      Patch a member
// @Tags         members
// @Produce      json
// @Param        memberID  path      string         true "member ID"
// @Param        request   body      map[string]any true "fields to patch"
// @Success      200      {object}   domain.Member
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{memberID} [patch]
func (h *MemberHandler) HandleUpdateMember(ctx *gin.Context) {
	var fields map[string]any
	if err := ctx.ShouldBindJSON(&fields); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if len(fields) == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("no fields to update")))
		return
	}

	updated, err := h.svc.UpdateMember(ctx.Request.Context(), ctx.Param("memberID"), fields)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
		case errors.Is(err, service.ErrInvalidMemberType), errors.Is(err, service.ErrInvalidAdminRole):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateMember -> h.svc.UpdateMember -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	h.stream.Notify("members")
	ctx.JSON(http.StatusOK, updated)
}

// HandleSetPassword godoc
// @Summary      Set a member's password
// @Description  Hashes and stores a new password for a member. Used by the first-login flow.
// @Tags         members
// @Produce      json
// @Param        memberID  path      string true "member ID"
// @Param        request   body      request.SetPasswordRequest true "request body"
// @Success      200      {object}   domain.Member
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{memberID}/password [post]
func (h *MemberHandler) HandleSetPassword(ctx *gin.Context) {
	var req request.SetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("v1.HandleSetPassword -> bcrypt.GenerateFromPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	updated, err := h.svc.UpdateMember(ctx.Request.Context(), ctx.Param("memberID"), map[string]any{
		"password_hash": string(hash),
	})
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleSetPassword -> h.svc.UpdateMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteMember godoc
// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Param        memberID  path      string true "member ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /members/{memberID} [delete]
func (h *MemberHandler) HandleDeleteMember(ctx *gin.Context) {
	if err := h.svc.DeleteMember(ctx.Request.Context(), ctx.Param("memberID")); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMemberNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMember -> h.svc.DeleteMember -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.stream.Notify("members")
	ctx.Status(http.StatusNoContent)
}
