package services

import (
	"errors"
	"fmt"
	"strings"

	"atecoserver/seismic"
	apperrors "atecoserver/server/errors"
)

// SuggestionsResponse comuni simili a una query
type SuggestionsResponse struct {
	Query       string               `json:"query"`
	Suggestions []seismic.Suggestion `json:"suggestions"`
	Count       int                  `json:"count"`
}

// SeismicService ricerche sulla classificazione sismica dei comuni
type SeismicService struct {
	db *seismic.Database
}

// NewSeismicService costruisce il servizio sul database sismico caricato
func NewSeismicService(db *seismic.Database) *SeismicService {
	return &SeismicService{db: db}
}

// Zone cerca la zona sismica di un comune, con provincia opzionale per
// disambiguare gli omonimi. Gli errori di dominio portano i suggerimenti
// nel contesto della risposta.
func (s *SeismicService) Zone(comune, provincia string) (*seismic.Result, error) {
	if strings.TrimSpace(comune) == "" {
		return nil, apperrors.NewValidationError("comune obbligatorio")
	}
	if provincia != "" && len(provincia) != 2 {
		return nil, apperrors.NewValidationError("provincia non valida: attesa la sigla di 2 lettere")
	}
	if s.db == nil {
		return nil, apperrors.NewUnavailableError("Database zone sismiche non disponibile", nil)
	}

	result, err := s.db.ZoneByComune(comune, provincia)
	if err != nil {
		var notFound *seismic.NotFoundError
		if errors.As(err, &notFound) {
			appErr := apperrors.NewNotFoundError(fmt.Sprintf("Comune '%s' non trovato nel database", comune)).
				WithContext("suggestion_text", "Verifica il nome del comune o fornisci la sigla provincia")
			if len(notFound.Suggestions) > 0 {
				appErr.WithContext("suggestions", notFound.Suggestions)
			}
			return nil, appErr
		}
		var mismatch *seismic.ProvinciaMismatchError
		if errors.As(err, &mismatch) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf(
				"Il comune '%s' esiste ma in provincia di %s, non di %s",
				mismatch.Comune, mismatch.Trovata, mismatch.Richiesta))
		}
		return nil, apperrors.WrapError(err, "ricerca zona sismica fallita")
	}
	return result, nil
}

// Suggestions comuni con nome simile alla query
func (s *SeismicService) Suggestions(comune string, limit int) (*SuggestionsResponse, error) {
	if strings.TrimSpace(comune) == "" {
		return nil, apperrors.NewValidationError("comune obbligatorio")
	}
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	if s.db == nil {
		return nil, apperrors.NewUnavailableError("Database zone sismiche non disponibile", nil)
	}

	suggestions := s.db.Suggestions(comune, limit)
	if suggestions == nil {
		suggestions = []seismic.Suggestion{}
	}
	return &SuggestionsResponse{
		Query:       comune,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}, nil
}
