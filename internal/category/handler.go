package category

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
	GetAllCategories() ([]CategoryResponse, error)
	GetCategoryByID(id int64) (*CategoryResponse, error)
	CreateCategory(dto CreateCategoryDTO) (*CategoryResponse, error)
	UpdateCategory(id int64, dto UpdateCategoryDTO) (*CategoryResponse, error)
	DeleteCategory(id int64) error
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

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories()
	if err != nil {
		h.Logger.Error("GetCategories: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get categories")
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	cat, err := h.Service.GetCategoryByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.CreateCategory(dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.Logger.Info("CreateCategory: category created", "category_id", cat.ID, "name", cat.Name)
	h.WriteJSON(w, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.UpdateCategory(id, dto)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.Service.DeleteCategory(id); err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrCategoryNotFound:
		h.WriteError(w, http.StatusNotFound, "category not found")
	case ErrDuplicateCategory:
		h.WriteError(w, http.StatusConflict, "category name already exists")
	case ErrCategoryInUse:
		h.WriteError(w, http.StatusConflict, "category is referenced by fiscal rules or expenses")
	default:
		h.HandleServiceError(w, err)
	}
}
