package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finlogger/finlogger/internal/expense"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/categories", h.categories)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	UserID       string          `json:"user_id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	CategoryName string          `json:"categoryName"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		UserID:       req.UserID,
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         date,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		writeServiceError(w, r, "create expense", err)
		return
	}

	writeJSON(w, http.StatusCreated, createExpenseResponse{
		ID:      e.ID,
		Message: "Expense created successfully.",
	})
}

type updateExpenseRequest struct {
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	CategoryName string          `json:"categoryName"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	_, err = h.svc.Update(r.Context(), id, expense.UpdateParams{
		Description:  req.Description,
		Amount:       req.Amount,
		Date:         date,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		writeServiceError(w, r, "update expense", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Expense updated successfully."})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	e, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "delete expense", err)
		return
	}

	writeJSON(w, http.StatusOK, deleteExpenseResponse{
		Message:        "Expense deleted successfully.",
		DeletedExpense: toExpenseResponse(e),
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := expense.ParseFilter(r.URL.Query().Get("userId"), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.svc.ListWithTotal(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "list expenses", err)
		return
	}

	writeJSON(w, http.StatusOK, toListResponse(report))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := expense.ParseFilter(r.URL.Query().Get("userId"), r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	shares, err := h.svc.SummaryByCategory(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, "summarize expenses", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(shares))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, "list categories", err)
		return
	}

	writeJSON(w, http.StatusOK, categoriesResponse{Categories: names})
}

// parseDate accepts both plain dates (2020-07-08) and RFC 3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, s)
}

// writeServiceError maps service errors onto the response contract: client
// errors keep their detail, everything else becomes a generic server error
// and is logged with the failing operation.
func writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var validationErr *expense.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, validationFailedResponse{
			Error:   "Validation failed.",
			Details: validationErr.Fields,
		})

		return
	}

	if errors.Is(err, expense.ErrCategoryNotFound) {
		writeError(w, http.StatusBadRequest, "Category not found.")
		return
	}

	if errors.Is(err, expense.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Expense not found.")
		return
	}

	slog.Error("request failed", "operation", operation, "query", r.URL.RawQuery, "error", err)
	writeError(w, http.StatusInternalServerError, "Server error.")
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
