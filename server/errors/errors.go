// Package errors definisce gli errori applicativi tipizzati usati dai
// servizi e tradotti in risposte HTTP dal middleware.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode codice macchina dell'errore applicativo
type ErrorCode string

const (
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeNotInitialized ErrorCode = "DATASET_NOT_FOUND"
	CodeUnavailable    ErrorCode = "SERVICE_UNAVAILABLE"
	CodeTooManyCodes   ErrorCode = "TOO_MANY_CODES"
)

// AppError errore applicativo con codice, messaggio utente e causa
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode codice HTTP corrispondente al codice applicativo
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeValidation, CodeTooManyCodes:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage messaggio mostrabile al client. Gli errori interni non
// espongono mai la causa.
func (e *AppError) UserMessage() string {
	if e.Code == CodeInternal {
		return "Errore interno del server"
	}
	return e.Message
}

// GetContext restituisce i dettagli aggiuntivi dell'errore
func (e *AppError) GetContext() map[string]interface{} {
	return e.Context
}

// WithContext aggiunge un dettaglio all'errore
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewValidationError errore 400 per input non valido
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

// NewNotFoundError errore 404 per risorsa assente
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

// NewConflictError errore 409 per conflitto di stato
func NewConflictError(message string) *AppError {
	return &AppError{Code: CodeConflict, Message: message}
}

// NewUnauthorizedError errore 401
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError errore 403
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

// NewInternalError errore 500 con causa
func NewInternalError(message string, err error) *AppError {
	return &AppError{Code: CodeInternal, Message: message, Err: err}
}

// NewNotInitializedError errore 500 per dataset non ancora caricato
func NewNotInitializedError(message string) *AppError {
	return &AppError{Code: CodeNotInitialized, Message: message}
}

// NewUnavailableError errore 503 per dipendenza non disponibile
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{Code: CodeUnavailable, Message: message, Err: err}
}

// WrapError avvolge un errore generico in un AppError interno.
// Gli AppError passano invariati.
func WrapError(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError(message, err)
}
