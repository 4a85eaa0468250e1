package transaction

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

// Handler handles HTTP requests for transaction operations
type Handler struct {
	service *Service
}

// NewHandler creates a new transaction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for transaction endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/incomes", h.ListIncomes)
	r.Get("/expenses", h.ListExpenses)
	r.Get("/{id}", h.GetByID)

	return r
}

// Create handles POST /transactions
// @Summary      Record a transaction
// @Description  Record an income or expense, optionally shared with a group
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request body CreateTransactionRequest true "Transaction"
// @Success      201 {object} response.APIResponse{data=TransactionResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /transactions [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validate.Struct(&req); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	t, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAmountNotPositive):
			response.ValidationFailed(w, []response.FieldError{{Field: "amount", Message: err.Error()}})
		case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrCategoryTypeMismatch):
			response.ValidationFailed(w, []response.FieldError{{Field: "category_id", Message: err.Error()}})
		case errors.Is(err, ErrNotGroupMember):
			response.Forbidden(w, err.Error())
		default:
			response.InternalError(w, "Failed to record transaction")
		}
		return
	}

	response.JSON(w, http.StatusCreated, t.ToResponse())
}

// GetByID handles GET /transactions/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid transaction ID")
		return
	}

	t, err := h.service.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, ErrTransactionNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get transaction")
		return
	}

	response.JSON(w, http.StatusOK, t.ToResponse())
}

// ListIncomes handles GET /transactions/incomes
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, TypeIncome)
}

// ListExpenses handles GET /transactions/expenses
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, TypeExpense)
}

func (h *Handler) listByType(w http.ResponseWriter, r *http.Request, tType Type) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	transactions, total, err := h.service.ListByType(r.Context(), userID, tType)
	if err != nil {
		response.InternalError(w, "Failed to list transactions")
		return
	}

	resp := &ListResponse{
		Transactions: make([]*TransactionResponse, len(transactions)),
		Total:        total.StringFixed(2),
	}
	for i, t := range transactions {
		resp.Transactions[i] = t.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}
