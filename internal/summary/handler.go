package summary

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"github.com/declarafacil/fiscal-tracker/internal/transport"
	"github.com/declarafacil/fiscal-tracker/pkg/logger"
)

type ServiceAPI interface {
	Summarize(userID int64, fiscalYear int) (*DeductionReport, error)
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

// GetTaxSummary serves GET /tax-summary for the authenticated user. An
// optional year query parameter overrides the current calendar year.
func (h *Handler) GetTaxSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	fiscalYear := 0
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y <= 0 {
			h.WriteError(w, http.StatusBadRequest, "invalid fiscal year")
			return
		}
		fiscalYear = y
	}

	report, err := h.Service.Summarize(user.ID, fiscalYear)
	if err != nil {
		var invalid *InvalidInputError
		if errors.As(err, &invalid) {
			h.WriteError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		h.Logger.Error("GetTaxSummary: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to compute deduction summary")
		return
	}

	h.WriteJSON(w, http.StatusOK, report)
}
