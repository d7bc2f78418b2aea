package fiscalrule

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/declarafacil/fiscal-tracker/internal/transport"
	"github.com/declarafacil/fiscal-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateRule(dto CreateFiscalRuleDTO) (*FiscalRule, error)
	UpdateRule(id int64, dto UpdateFiscalRuleDTO) (*FiscalRule, error)
	GetAllRules() ([]*FiscalRule, error)
	GetRuleByID(id int64) (*FiscalRule, error)
	DeleteRule(id int64) error
	GetCategoriesWithLimits() ([]CategoryWithLimits, error)
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

func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var dto CreateFiscalRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRule: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.Service.CreateRule(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "fiscal rule created",
		"rule":    rule,
	})
}

func (h *Handler) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	var dto UpdateFiscalRuleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rule, err := h.Service.UpdateRule(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "fiscal rule updated",
		"rule":    rule,
	})
}

func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Service.GetAllRules()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get fiscal rules")
		return
	}

	h.WriteJSON(w, http.StatusOK, rules)
}

func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	rule, err := h.Service.GetRuleByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rule)
}

func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid rule ID")
		return
	}

	if err := h.Service.DeleteRule(id); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "fiscal rule deleted"})
}

func (h *Handler) GetCategoriesWithLimits(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.GetCategoriesWithLimits()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to get categories with limits")
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrRuleNotFound:
		h.WriteError(w, http.StatusNotFound, "fiscal rule not found")
	case ErrDuplicateRule:
		h.WriteError(w, http.StatusBadRequest, "a rule already exists for this category and fiscal year")
	case ErrUnknownCategory:
		h.WriteError(w, http.StatusBadRequest, "referenced category does not exist")
	default:
		h.HandleServiceError(w, err)
	}
}
