package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atecoserver/risk"
	"atecoserver/server/services"
)

// RiskHandler endpoint del catalogo eventi e dei calcoli di rischio
type RiskHandler struct {
	service *services.RiskService
}

// NewRiskHandler costruisce l'handler
func NewRiskHandler(service *services.RiskService) *RiskHandler {
	return &RiskHandler{service: service}
}

// HandleCategories godoc
// @Summary Categorie di rischio disponibili
// @Tags risk
// @Produce json
// @Success 200 {object} services.CategoriesResponse
// @Router /risk/categories [get]
func (h *RiskHandler) HandleCategories(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, h.service.Categories())
}

// HandleEvents godoc
// @Summary Eventi di una categoria di rischio
// @Description Risolve alias ('cyber', 'operational') e nomi parziali verso le categorie Basilea del catalogo.
// @Tags risk
// @Produce json
// @Param category path string true "Categoria o alias"
// @Success 200 {object} risk.CategoryEvents
// @Failure 404 {object} middleware.ErrorResponse
// @Router /risk/events/{category} [get]
func (h *RiskHandler) HandleEvents(c *gin.Context) {
	resp, err := h.service.Events(c.Param("category"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleDescription godoc
// @Summary Scheda descrittiva di un evento
// @Description I codici fuori catalogo ricevono una scheda generica, mai un errore.
// @Tags risk
// @Produce json
// @Param event_code path string true "Codice evento (es. 101)"
// @Success 200 {object} risk.Description
// @Failure 400 {object} middleware.ErrorResponse
// @Router /risk/description/{event_code} [get]
func (h *RiskHandler) HandleDescription(c *gin.Context) {
	resp, err := h.service.Description(c.Param("event_code"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleAssessmentFields godoc
// @Summary Struttura del form di assessment
// @Tags risk
// @Produce json
// @Success 200 {object} map[string]any
// @Router /risk/assessment-fields [get]
func (h *RiskHandler) HandleAssessmentFields(c *gin.Context) {
	SendJSONResponse(c, http.StatusOK, services.AssessmentFields())
}

// HandleSaveAssessment godoc
// @Summary Calcola e salva un assessment
// @Description Calcola punteggio 0-100 e posizione in matrice. Con session_id l'assessment finisce nello storico della sessione.
// @Tags risk
// @Accept json
// @Produce json
// @Param request body services.AssessmentRequest true "Form di assessment"
// @Success 200 {object} services.AssessmentResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /risk/save-assessment [post]
func (h *RiskHandler) HandleSaveAssessment(c *gin.Context) {
	var req services.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Corpo della richiesta non valido")
		return
	}

	resp, err := h.service.SaveAssessment(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}

// HandleCalculateAssessment godoc
// @Summary Posizionamento in matrice di rischio
// @Description Solo calcolo, nessun salvataggio: perdite G/Y/O/R e controllo ++/+/-/-- verso la posizione A1-D4.
// @Tags risk
// @Accept json
// @Produce json
// @Param request body risk.MatrixInput true "Perdite e livello di controllo"
// @Success 200 {object} risk.MatrixResult
// @Failure 400 {object} middleware.ErrorResponse
// @Router /risk/calculate-assessment [post]
func (h *RiskHandler) HandleCalculateAssessment(c *gin.Context) {
	var in risk.MatrixInput
	if err := c.ShouldBindJSON(&in); err != nil {
		SendJSONError(c, http.StatusBadRequest, "Corpo della richiesta non valido")
		return
	}
	SendJSONResponse(c, http.StatusOK, h.service.CalculateMatrix(in))
}
