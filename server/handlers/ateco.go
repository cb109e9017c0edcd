package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atecoserver/server/services"
)

// AtecoHandler endpoint di ricerca sul dataset di classificazione
type AtecoHandler struct {
	service *services.AtecoService
}

// NewAtecoHandler costruisce l'handler
func NewAtecoHandler(service *services.AtecoService) *AtecoHandler {
	return &AtecoHandler{service: service}
}

// BatchRequest corpo della richiesta batch
type BatchRequest struct {
	Codes  []string `json:"codes"`
	Prefer string   `json:"prefer,omitempty"`
	Prefix bool     `json:"prefix,omitempty"`
}

// HandleLookup godoc
// @Summary Ricerca di un codice ATECO
// @Description Cerca un codice con fallback tra le versioni 2022 e 2025. Se nessuna riga corrisponde, la risposta contiene fino a 5 suggerimenti.
// @Tags ateco
// @Produce json
// @Param code query string true "Codice ATECO (es. 62.01)"
// @Param prefer query string false "Versione preferita: 2022, 2025, 2025-camerale"
// @Param prefix query bool false "Ricerca per prefisso"
// @Param limit query int false "Limite risultati (max 50)"
// @Success 200 {object} services.LookupResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /ateco/lookup [get]
func (h *AtecoHandler) HandleLookup(c *gin.Context) {
	code := c.Query("code")
	prefer := c.Query("prefer")
	prefix := c.Query("prefix") == "true"
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.service.Lookup(code, prefer, prefix, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleAutocomplete godoc
// @Summary Completamento di un codice parziale
// @Tags ateco
// @Produce json
// @Param partial query string true "Codice parziale (es. 62)"
// @Param limit query int false "Numero suggerimenti (max 20)"
// @Success 200 {object} services.AutocompleteResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /ateco/autocomplete [get]
func (h *AtecoHandler) HandleAutocomplete(c *gin.Context) {
	partial := c.Query("partial")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	resp, err := h.service.Autocomplete(partial, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleBatch godoc
// @Summary Ricerca di più codici in una richiesta
// @Tags ateco
// @Accept json
// @Produce json
// @Param request body BatchRequest true "Codici da cercare (max 50)"
// @Success 200 {object} services.BatchResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /ateco/batch [post]
func (h *AtecoHandler) HandleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Corpo della richiesta non valido")
		return
	}

	resp, err := h.service.Batch(req.Codes, req.Prefer, req.Prefix)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleSearchTitle godoc
// @Summary Ricerca testuale sui titoli delle attività
// @Description Ricerca con stemming italiano sui titoli 2022 e 2025.
// @Tags ateco
// @Produce json
// @Param q query string true "Testo da cercare (min 3 caratteri)"
// @Param limit query int false "Limite risultati"
// @Success 200 {object} services.TitleSearchResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /ateco/search [get]
func (h *AtecoHandler) HandleSearchTitle(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	resp, err := h.service.SearchTitle(query, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}
