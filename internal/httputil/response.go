package httputil

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response body. Status is "success" for 2xx,
// "fail" for client errors (4xx), and "error" for server errors (5xx).
type Envelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON writes a success envelope with the given status code.
// It marshals first, preventing partial responses if encoding fails
// after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	envelope := Envelope{Status: "success", Data: data}

	payload, err := json.Marshal(envelope)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondMessage writes a success envelope with a message and no data
func RespondMessage(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(Envelope{Status: "success", Message: message})
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes an error envelope. Client errors report status
// "fail", server errors report status "error".
func RespondError(w http.ResponseWriter, status int, message string) {
	envelope := Envelope{Status: "error", Message: message}
	if status < http.StatusInternalServerError {
		envelope.Status = "fail"
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
