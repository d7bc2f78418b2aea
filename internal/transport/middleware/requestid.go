package middleware

import (
	"net/http"

	"github.com/declarafacil/fiscal-tracker/pkg/logger"

	"github.com/google/uuid"
)

// TraceHeader carries the trace id between clients and the API.
const TraceHeader = "X-Trace-ID"

// RequestID tags the request with a trace id. An incoming header value is
// honored so a trace can span the caller and this service; otherwise a
// fresh UUID is minted. The id is echoed on the response and attached to
// the request-scoped logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "trace_id", traceID)
		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
