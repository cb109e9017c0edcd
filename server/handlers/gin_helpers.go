// Package handlers adatta i servizi applicativi agli endpoint Gin.
package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "atecoserver/server/errors"
	"atecoserver/server/middleware"
)

// SendJSONResponse serializza il payload con lo status indicato
func SendJSONResponse(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// SendJSONError risposta di errore nel formato standard
func SendJSONError(c *gin.Context, status int, message string) {
	c.JSON(status, middleware.ErrorResponse{
		Error:     message,
		Detail:    message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: requestID(c),
	})
}

// HandleError traduce un errore applicativo in risposta JSON. Gli errori
// tipizzati portano status, messaggio e dettagli; il resto diventa 500.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	status := http.StatusInternalServerError
	message := "Errore interno del server"
	var details map[string]interface{}

	if httpErr, ok := err.(middleware.HTTPError); ok {
		status = httpErr.StatusCode()
		message = httpErr.UserMessage()
		details = httpErr.GetContext()
	}

	if appErr, ok := err.(*apperrors.AppError); ok {
		apperrors.Metrics().Record(appErr, c.FullPath(), requestID(c))
	}

	if status >= http.StatusInternalServerError {
		log.Printf("✗ ERRORE [%s] %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
	}

	c.AbortWithStatusJSON(status, middleware.ErrorResponse{
		Error:     message,
		Detail:    message,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	if id, ok := c.Get(string(middleware.RequestIDKey)); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
