package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atecoserver/server/services"
)

// maxVisuraSize dimensione massima accettata per il PDF (20 MB)
const maxVisuraSize = 20 << 20

// VisuraHandler endpoint di estrazione dalle visure camerali
type VisuraHandler struct {
	service *services.VisuraService
}

// NewVisuraHandler costruisce l'handler
func NewVisuraHandler(service *services.VisuraService) *VisuraHandler {
	return &VisuraHandler{service: service}
}

// HandleExtract godoc
// @Summary Estrazione dei dati da una visura PDF
// @Description Estrae partita IVA, codici ATECO e oggetto sociale con score di confidenza. Un PDF vuoto o illeggibile produce una risposta con score 0, non un errore.
// @Tags visura
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Visura camerale in PDF"
// @Success 200 {object} services.VisuraResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /visura/extract [post]
func (h *VisuraHandler) HandleExtract(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxVisuraSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		SendJSONError(c, http.StatusBadRequest, "File mancante: atteso campo multipart 'file'")
		return
	}
	defer file.Close()

	if header.Size == 0 {
		// Come da contratto storico: file vuoto -> estrazione vuota
		SendJSONResponse(c, http.StatusOK, services.VisuraResponse{
			Success: true,
			Data: services.VisuraData{
				CodiciAteco: nil,
				Confidence:  services.VisuraConfidence{Score: 0, Details: map[string]string{}},
			},
			Method: "backend",
		})
		return
	}

	resp, err := h.service.Extract(file)
	if err != nil {
		HandleError(c, err)
		return
	}
	SendJSONResponse(c, http.StatusOK, resp)
}
