package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frognance/frognance/pkg/middleware"
	"github.com/frognance/frognance/pkg/response"
	"github.com/frognance/frognance/pkg/validate"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	r.Post("/{id}/join", h.Join)
	r.Post("/{id}/leave", h.Leave)
	r.Get("/{id}/members", h.Members)
	r.Delete("/{id}/members/{memberId}", h.RemoveMember)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create a group and add the creator as admin
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	group, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, ErrEmptyGroupName) {
			response.ValidationFailed(w, []response.FieldError{{Field: "name", Message: err.Error()}})
			return
		}
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// List handles GET /groups
// @Summary      List my memberships
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]MembershipResponse}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	memberships, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	resp := make([]*MembershipResponse, len(memberships))
	for i, m := range memberships {
		resp[i] = m.ToMembershipResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Join handles POST /groups/{id}/join
// @Summary      Join a group
// @Description  Add the caller to the group; already being a member is a no-op
// @Tags         groups
// @Produce      json
// @Param        id path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	group, err := h.service.Join(r.Context(), userID, groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to join group")
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// Leave handles POST /groups/{id}/leave
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	removed, err := h.service.Leave(r.Context(), userID, groupID)
	if err != nil {
		response.InternalError(w, "Failed to leave group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"left": removed})
}

// Members handles GET /groups/{id}/members
// @Summary      List group members
// @Description  Members only; admins sort before members
// @Tags         groups
// @Produce      json
// @Param        id path int true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]MemberResponse}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/members [get]
func (h *Handler) Members(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	members, err := h.service.Members(r.Context(), userID, groupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNotMember) {
			response.Forbidden(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get members")
		return
	}

	resp := make([]*MemberResponse, len(members))
	for i, m := range members {
		resp[i] = m.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// RemoveMember handles DELETE /groups/{id}/members/{memberId}
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	memberID, err := strconv.ParseInt(chi.URLParam(r, "memberId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid member ID")
		return
	}

	if err := h.service.RemoveMember(r.Context(), userID, groupID, memberID); err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrMemberNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotAdmin):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrCannotRemoveAdmin), errors.Is(err, ErrCannotRemoveSelf):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to remove member")
		}
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed successfully"})
}
