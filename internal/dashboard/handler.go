package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/declarafacil/fiscal-tracker/internal/auth"
	"github.com/declarafacil/fiscal-tracker/internal/transport"
	"github.com/declarafacil/fiscal-tracker/pkg/logger"
)

type ServiceAPI interface {
	BuildSummary(userID int64) (*Summary, error)
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

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	summary, err := h.Service.BuildSummary(user.ID)
	if err != nil {
		h.Logger.Error("GetDashboard: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to load dashboard data")
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
