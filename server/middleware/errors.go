package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// HTTPError errore che sa tradursi in una risposta HTTP
type HTTPError interface {
	error
	StatusCode() int
	UserMessage() string
	GetContext() map[string]interface{}
}

// ErrorResponse corpo JSON standard delle risposte di errore.
// Il messaggio viaggia sia in error sia in detail: detail è il campo
// storico che i client esistenti leggono sul 500.
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Detail    string                 `json:"detail"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
}

// HandleHTTPError traduce un errore in risposta JSON. Gli HTTPError usano
// il proprio status e messaggio, tutto il resto diventa un 500 anonimo.
func HandleHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	message := "Errore interno del server"
	var details map[string]interface{}

	if httpErr, ok := err.(HTTPError); ok {
		status = httpErr.StatusCode()
		message = httpErr.UserMessage()
		details = httpErr.GetContext()
	}

	requestID := GetRequestID(r.Context())
	if status >= http.StatusInternalServerError {
		log.Printf("✗ ERRORE [%s] %s %s: %v", requestID, r.Method, r.URL.Path, err)
	}

	WriteJSONResponse(w, status, ErrorResponse{
		Error:     message,
		Detail:    message,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: requestID,
	})
}

// WriteJSONResponse serializza il payload con lo status indicato
func WriteJSONResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("✗ Serializzazione risposta fallita: %v", err)
	}
}
