package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"atecoserver/server/services"
)

// SeismicHandler endpoint della classificazione sismica dei comuni
type SeismicHandler struct {
	service *services.SeismicService
}

// NewSeismicHandler costruisce l'handler
func NewSeismicHandler(service *services.SeismicService) *SeismicHandler {
	return &SeismicHandler{service: service}
}

// HandleZone godoc
// @Summary Zona sismica di un comune
// @Description Ricerca a tre strategie: match esatto, fuzzy, stima per provincia. La provincia disambigua i comuni omonimi.
// @Tags seismic
// @Produce json
// @Param comune query string true "Nome del comune (case-insensitive)"
// @Param provincia query string false "Sigla provincia (2 lettere)"
// @Success 200 {object} seismic.Result
// @Failure 404 {object} middleware.ErrorResponse
// @Router /seismic/zone [get]
func (h *SeismicHandler) HandleZone(c *gin.Context) {
	resp, err := h.service.Zone(c.Query("comune"), c.Query("provincia"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleSuggestions godoc
// @Summary Comuni con nome simile
// @Tags seismic
// @Produce json
// @Param comune query string true "Nome comune, anche parziale o storpiato"
// @Param limit query int false "Numero massimo suggerimenti (1-20)"
// @Success 200 {object} services.SuggestionsResponse
// @Router /seismic/suggestions [get]
func (h *SeismicHandler) HandleSuggestions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	resp, err := h.service.Suggestions(c.Query("comune"), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}
