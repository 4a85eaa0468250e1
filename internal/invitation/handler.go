package invitation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frognance/frognance/pkg/middleware"
	"github.com/frognance/frognance/pkg/response"
	"github.com/frognance/frognance/pkg/validate"
)

// Handler handles HTTP requests for invitation operations
type Handler struct {
	service *Service
}

// NewHandler creates a new invitation handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for invitation endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Invite)
	r.Get("/", h.ListPending)
	r.Post("/{id}/accept", h.Accept)
	r.Post("/{id}/reject", h.Reject)

	return r
}

// Invite handles POST /invitations
// @Summary      Invite a user to a group
// @Description  Group admins propose membership to a user by username
// @Tags         invitations
// @Accept       json
// @Produce      json
// @Param        request body InviteRequest true "Invitation request"
// @Success      201 {object} response.APIResponse{data=InvitationResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /invitations [post]
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	inv, err := h.service.Invite(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrNotAdmin):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrUnknownUsername), errors.Is(err, ErrAlreadyMember), errors.Is(err, ErrAlreadyInvited):
			response.ValidationFailed(w, []response.FieldError{{Field: "to_username", Message: err.Error()}})
		default:
			response.InternalError(w, "Failed to create invitation")
		}
		return
	}

	response.JSON(w, http.StatusCreated, inv.ToResponse())
}

// ListPending handles GET /invitations
// @Summary      List my pending invitations
// @Tags         invitations
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]InvitationResponse}
// @Router       /invitations [get]
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	invitations, err := h.service.ListPending(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list invitations")
		return
	}

	resp := make([]*InvitationResponse, len(invitations))
	for i, inv := range invitations {
		resp[i] = inv.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Accept handles POST /invitations/{id}/accept
func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.service.Accept)
}

// Reject handles POST /invitations/{id}/reject
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, h.service.Reject)
}

// resolve is the shared accept/reject plumbing; both endpoints differ only
// in the service call
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, inviteeID, invitationID int64) (*Invitation, error)) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	invitationID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid invitation ID")
		return
	}

	inv, err := op(r.Context(), userID, invitationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvitationNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrAlreadyProcessed):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to process invitation")
		}
		return
	}

	response.JSON(w, http.StatusOK, inv.ToResponse())
}
