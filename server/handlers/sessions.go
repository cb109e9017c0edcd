package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atecoserver/server/services"
)

// SessionHandler endpoint delle sessioni di valutazione
type SessionHandler struct {
	service *services.SessionService
}

// NewSessionHandler costruisce l'handler
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// HandleCreate godoc
// @Summary Apertura di una sessione di valutazione
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body services.CreateSessionRequest true "Dati anagrafici dell'azienda"
// @Success 201 {object} database.Session
// @Failure 400 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) HandleCreate(c *gin.Context) {
	var req services.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Corpo della richiesta non valido")
		return
	}

	session, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusCreated, session)
}

// HandleGet godoc
// @Summary Dettaglio di una sessione con lo storico degli assessment
// @Tags sessions
// @Produce json
// @Param id path string true "ID sessione"
// @Success 200 {object} services.SessionDetail
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) HandleGet(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, detail)
}

// HandleTouch godoc
// @Summary Rinnovo del timestamp di attività della sessione
// @Tags sessions
// @Produce json
// @Param id path string true "ID sessione"
// @Success 200 {object} map[string]string
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/touch [post]
func (h *SessionHandler) HandleTouch(c *gin.Context) {
	if err := h.service.Touch(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, gin.H{"status": "ok"})
}
