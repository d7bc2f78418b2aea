package expense

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"github.com/declarafacil/fiscal-tracker/internal/transport"
	"github.com/declarafacil/fiscal-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error)
	GetExpenseByID(id, userID int64, isAdmin bool) (*Expense, error)
	GetUserExpenses(userID int64, limit, offset int) ([]*Expense, error)
	GetUserExpensesWithCategory(userID int64, deductibleOnly bool) ([]*ExpenseWithCategory, error)
	UpdateExpense(id, userID int64, isAdmin bool, dto UpdateExpenseDTO) (*Expense, error)
	DeleteExpense(id, userID int64, isAdmin bool) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.CreateExpense(user.ID, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	exp, err := h.Service.GetExpenseByID(id, user.ID, user.IsAdmin())
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	expenses, err := h.Service.GetUserExpenses(user.ID, limit, offset)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get expenses")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"expenses": expenses,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetExpensesWithCategory lists the caller's movements joined to category
// name and deductibility flag.
func (h *Handler) GetExpensesWithCategory(w http.ResponseWriter, r *http.Request) {
	h.listWithCategory(w, r, false)
}

// GetDeductibleExpenses lists only movements in deductible categories.
func (h *Handler) GetDeductibleExpenses(w http.ResponseWriter, r *http.Request) {
	h.listWithCategory(w, r, true)
}

func (h *Handler) listWithCategory(w http.ResponseWriter, r *http.Request, deductibleOnly bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rows, err := h.Service.GetUserExpensesWithCategory(user.ID, deductibleOnly)
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get expenses")
		return
	}

	h.WriteJSON(w, http.StatusOK, rows)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.UpdateExpense(id, user.ID, user.IsAdmin(), dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "expense updated",
		"expense": exp,
	})
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := h.Service.DeleteExpense(id, user.ID, user.IsAdmin()); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "expense deleted"})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrExpenseNotFound:
		h.WriteError(w, http.StatusNotFound, "expense not found")
	case ErrUnauthorizedAccess:
		h.WriteError(w, http.StatusForbidden, "unauthorized access to expense")
	case ErrUnknownCategory:
		h.WriteError(w, http.StatusBadRequest, "referenced category does not exist")
	default:
		h.HandleServiceError(w, err)
	}
}
