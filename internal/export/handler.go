package export

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frognance/frognance/pkg/middleware"
	"github.com/frognance/frognance/pkg/response"
)

// Handler handles HTTP requests for the spreadsheet export
type Handler struct {
	service *Service
}

// NewHandler creates a new export handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for export endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Export)

	return r
}

// Export handles GET /export
// @Summary      Export transactions
// @Description  Download the caller's transactions as an xlsx workbook
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	buf, err := h.service.BuildWorkbook(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to build export")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.xlsx"`)
	w.Write(buf.Bytes())
}
