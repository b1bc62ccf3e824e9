package httphandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
)

const jsonContentType = "application/json; charset=utf-8"

// writeJSON encodes v before touching the response so a failed encode still
// yields a clean 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"isSuccess":false,"messages":["internal server error"]}`)
	}

	w.Header().Set("Content-Type", jsonContentType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// writeError answers in the backend's envelope shape so API consumers parse
// portal and backend failures the same way.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, status, errorEnvelope{
		IsSuccess: false,
		Messages:  []string{message},
		RequestID: RequestID(r.Context()),
	})
}

type errorEnvelope struct {
	IsSuccess bool     `json:"isSuccess"`
	Messages  []string `json:"messages"`
	RequestID string   `json:"requestId,omitempty"`
}

// HealthResponse is the body of GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
