package services

import (
	"io"
	"log"
	"math"

	"atecoserver/ateco"
	apperrors "atecoserver/server/errors"
	"atecoserver/visura"
)

// VisuraResponse l'esito dell'estrazione da una visura camerale.
// Lo score di confidenza è espresso in centesimi per il frontend.
type VisuraResponse struct {
	Success bool       `json:"success"`
	Data    VisuraData `json:"data"`
	Method  string     `json:"method"`
}

// VisuraData i campi estratti, arricchiti con le descrizioni del dataset
type VisuraData struct {
	Denominazione  string               `json:"denominazione,omitempty"`
	PartitaIVA     string               `json:"partita_iva,omitempty"`
	CodiceAteco    string               `json:"codice_ateco,omitempty"`
	CodiciAteco    []visura.CodiceAteco `json:"codici_ateco"`
	OggettoSociale string               `json:"oggetto_sociale,omitempty"`
	SedeLegale     *visura.SedeLegale   `json:"sede_legale,omitempty"`
	Confidence     VisuraConfidence     `json:"confidence"`
}

// VisuraConfidence score complessivo e dettaglio per campo
type VisuraConfidence struct {
	Score   int               `json:"score"`
	Details map[string]string `json:"details"`
}

// VisuraService estrazione dalle visure con arricchimento dei codici
// tramite il dataset di classificazione
type VisuraService struct {
	extractor *visura.Extractor
	ateco     *AtecoService
}

// NewVisuraService costruisce il servizio. atecoService può non essere
// inizializzato: in quel caso i codici restano senza descrizione.
func NewVisuraService(atecoService *AtecoService) *VisuraService {
	return &VisuraService{
		extractor: visura.NewExtractor(),
		ateco:     atecoService,
	}
}

// Extract estrae i campi da un PDF di visura. Un PDF illeggibile è un
// errore di validazione, non un errore interno.
func (s *VisuraService) Extract(reader io.Reader) (*VisuraResponse, error) {
	result, err := s.extractor.Extract(reader)
	if err != nil {
		return nil, apperrors.NewValidationError("PDF non leggibile o corrotto")
	}
	return s.toResponse(result), nil
}

func (s *VisuraService) toResponse(result *visura.Result) *VisuraResponse {
	codici := s.describeCodes(result.CodiciAteco)

	data := VisuraData{
		Denominazione:  result.Denominazione,
		PartitaIVA:     result.PartitaIVA,
		CodiciAteco:    codici,
		OggettoSociale: result.OggettoSociale,
		SedeLegale:     result.SedeLegale,
		Confidence: VisuraConfidence{
			Score:   int(math.Round(result.Confidence * 100)),
			Details: confidenceDetails(result),
		},
	}
	if len(codici) > 0 {
		data.CodiceAteco = codici[0].Codice
	}

	return &VisuraResponse{
		Success: true,
		Data:    data,
		Method:  result.ExtractionMethod,
	}
}

// describeCodes completa le descrizioni mancanti cercando i codici nel
// dataset, quando disponibile
func (s *VisuraService) describeCodes(codes []visura.CodiceAteco) []visura.CodiceAteco {
	out := make([]visura.CodiceAteco, len(codes))
	copy(out, codes)

	if s.ateco == nil {
		return out
	}
	ds := s.ateco.Dataset()
	if ds == nil {
		return out
	}

	for i := range out {
		if out[i].Descrizione != "" {
			continue
		}
		match := ds.SearchSmart(out[i].Codice, "", false)
		if match.Empty() {
			log.Printf("Codice %s dalla visura non presente nel dataset", out[i].Codice)
			continue
		}
		row := match.Rows[0]
		switch match.Version {
		case ateco.Version2025:
			out[i].Descrizione = row.Title2025
		case ateco.Version2025Camerale:
			out[i].Descrizione = row.Title2025Camerale
		default:
			out[i].Descrizione = row.Title2022
		}
	}
	return out
}

func confidenceDetails(result *visura.Result) map[string]string {
	status := func(ok bool) string {
		if ok {
			return "valid"
		}
		return "not_found"
	}
	return map[string]string{
		"partita_iva":     status(result.PartitaIVA != ""),
		"ateco":           status(len(result.CodiciAteco) > 0),
		"oggetto_sociale": status(result.OggettoSociale != ""),
		"denominazione":   status(result.Denominazione != ""),
		"sede_legale":     status(result.SedeLegale != nil),
	}
}
