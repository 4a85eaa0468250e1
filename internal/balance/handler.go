package balance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frognance/frognance/pkg/middleware"
	"github.com/frognance/frognance/pkg/response"
)

// Handler handles HTTP requests for balance views
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Dashboard)

	return r
}

// Dashboard handles GET /balance
// @Summary      Personal and group balances
// @Description  Personal totals plus the caller's group totals, if any
// @Tags         balance
// @Produce      json
// @Success      200 {object} response.APIResponse{data=DashboardResponse}
// @Router       /balance [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	personal, err := h.service.Personal(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute personal balance")
		return
	}

	groupSummary, err := h.service.Group(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute group balance")
		return
	}

	resp := &DashboardResponse{
		Personal: personal.ToResponse(),
	}
	if groupSummary != nil {
		resp.Group = groupSummary.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}
