package docvalidation

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/declarafacil/fiscal-tracker/internal/transport"
	"github.com/declarafacil/fiscal-tracker/pkg/logger"
)

type ServiceAPI interface {
	CreateValidation(dto UpsertValidationDTO) (*DocumentValidation, error)
	UpdateValidation(dto UpsertValidationDTO) (*DocumentValidation, error)
	GetAllValidations() ([]*DocumentValidation, error)
	GetValidationByExpenseID(expenseID int64) (*DocumentValidation, error)
	DeleteValidation(expenseID int64) error
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

func (h *Handler) CreateValidation(w http.ResponseWriter, r *http.Request) {
	var dto UpsertValidationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.CreateValidation(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) UpdateValidation(w http.ResponseWriter, r *http.Request) {
	var dto UpsertValidationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	v, err := h.Service.UpdateValidation(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) GetValidations(w http.ResponseWriter, r *http.Request) {
	validations, err := h.Service.GetAllValidations()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get document validations")
		return
	}

	h.WriteJSON(w, http.StatusOK, validations)
}

func (h *Handler) GetValidation(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(r.URL.Query().Get("expense_id"), 10, 64)
	if err != nil || expenseID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	v, err := h.Service.GetValidationByExpenseID(expenseID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) DeleteValidation(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(r.URL.Query().Get("expense_id"), 10, 64)
	if err != nil || expenseID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := h.Service.DeleteValidation(expenseID); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "document validation deleted"})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrValidationNotFound:
		h.WriteError(w, http.StatusNotFound, "document validation not found")
	case ErrDuplicateValidation:
		h.WriteError(w, http.StatusConflict, "expense already has a document validation")
	case ErrUnknownExpense:
		h.WriteError(w, http.StatusBadRequest, "referenced expense does not exist")
	default:
		h.HandleServiceError(w, err)
	}
}
