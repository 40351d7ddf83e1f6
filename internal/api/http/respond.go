package http

import (
	"encoding/json"
	"net/http"

	"studiofin-backend/internal/action"
	"studiofin-backend/internal/logger"
)

// writeResult maps the uniform action result onto an HTTP status and body.
func writeResult(w http.ResponseWriter, res action.Result) {
	writeJSON(w, statusOf(res), res)
}

func statusOf(res action.Result) int {
	if res.Success {
		return http.StatusOK
	}
	switch res.Kind {
	case action.KindValidation:
		return http.StatusBadRequest
	case action.KindAuthorization:
		return http.StatusUnauthorized
	case action.KindRateLimit:
		return http.StatusTooManyRequests
	case action.KindRemote:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, action.Fail(action.ErrUnauthorized))
}

// writeListError reports a failed read. Reads bypass the action pipeline but
// reuse its error classification so callers see the same shapes everywhere.
func writeListError(w http.ResponseWriter, err error) {
	writeResult(w, action.Fail(err))
}

// formValues flattens the request form into the key-value shape the schemas
// parse. Repeated keys keep their first value.
func formValues(r *http.Request) map[string]string {
	_ = r.ParseForm()
	form := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			form[key] = values[0]
		}
	}
	return form
}
