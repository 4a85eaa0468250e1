package category

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

// Handler handles HTTP requests for category operations
type Handler struct {
	service *Service
}

// NewHandler creates a new category handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for category endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /categories
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "Category creation request"
// @Success      201 {object} response.APIResponse{data=CategoryResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /categories [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	category, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create category")
		return
	}

	response.JSON(w, http.StatusCreated, category.ToResponse())
}

// List handles GET /categories
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	categories, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list categories")
		return
	}

	resp := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = c.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /categories/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete category")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})
}
