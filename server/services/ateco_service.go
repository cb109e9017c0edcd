// Package services contiene la logica applicativa dietro gli endpoint
// HTTP: orchestrazione tra dataset, arricchimento e persistenza.
package services

import (
	"fmt"
	"log"
	"sync"

	"atecoserver/ateco"
	"atecoserver/enrichment"
	apperrors "atecoserver/server/errors"
)

// LookupResponse esito di una ricerca per codice
type LookupResponse struct {
	Found       int                     `json:"found"`
	Items       []map[string]any        `json:"items"`
	Suggestions []ateco.SuggestionEntry `json:"suggestions,omitempty"`
	Message     string                  `json:"message,omitempty"`
}

// BatchItem esito della ricerca di un singolo codice in un batch
type BatchItem struct {
	Code  string           `json:"code"`
	Found int              `json:"found"`
	Items []map[string]any `json:"items"`
}

// BatchResponse esito di una ricerca batch
type BatchResponse struct {
	TotalCodes int         `json:"total_codes"`
	Results    []BatchItem `json:"results"`
}

// AutocompleteResponse suggerimenti di completamento per un prefisso
type AutocompleteResponse struct {
	Partial     string                         `json:"partial"`
	Suggestions []ateco.AutocompleteSuggestion `json:"suggestions"`
	Count       int                            `json:"count"`
}

// TitleSearchResponse esito di una ricerca testuale sui titoli
type TitleSearchResponse struct {
	Query string           `json:"query"`
	Found int              `json:"found"`
	Items []ateco.TitleHit `json:"items"`
}

// maxBatchCodes limite di codici per richiesta batch
const maxBatchCodes = 50

// maxLookupLimit limite massimo di risultati per ricerca a prefisso
const maxLookupLimit = 50

// AtecoService espone le ricerche sul dataset di classificazione.
// Il dataset viene caricato una sola volta ed è condiviso in sola lettura.
type AtecoService struct {
	mu       sync.RWMutex
	dataset  *ateco.Dataset
	enricher *enrichment.Enricher
}

// NewAtecoService costruisce il servizio senza dataset. Il caricamento è
// esplicito: le richieste prima di Init ricevono un errore, non un dataset
// caricato al volo.
func NewAtecoService() *AtecoService {
	return &AtecoService{enricher: enrichment.NewEnricher(nil)}
}

// NewAtecoServiceWithDataset costruisce il servizio già inizializzato
// (usato nei test).
func NewAtecoServiceWithDataset(ds *ateco.Dataset, e *enrichment.Enricher) *AtecoService {
	if e == nil {
		e = enrichment.NewEnricher(nil)
	}
	return &AtecoService{dataset: ds, enricher: e}
}

// Init carica il dataset Excel e il mapping settoriale dai percorsi indicati.
func (s *AtecoService) Init(datasetPath, mappingPath string) error {
	ds, err := ateco.LoadDataset(datasetPath)
	if err != nil {
		return fmt.Errorf("caricamento dataset fallito: %w", err)
	}

	enricher, err := enrichment.LoadEnricher(mappingPath)
	if err != nil {
		return fmt.Errorf("caricamento mapping settoriale fallito: %w", err)
	}

	s.mu.Lock()
	s.dataset = ds
	s.enricher = enricher
	s.mu.Unlock()

	log.Printf("Dataset ATECO caricato: %d righe da %s", ds.Len(), datasetPath)
	return nil
}

// Initialized indica se il dataset è stato caricato
func (s *AtecoService) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset != nil
}

func (s *AtecoService) snapshot() (*ateco.Dataset, *enrichment.Enricher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, nil, apperrors.NewNotInitializedError("Dataset ATECO non disponibile")
	}
	return s.dataset, s.enricher, nil
}

// validateLookupParams controlli comuni a lookup e batch
func validateLookupParams(code, prefer string) error {
	if len(code) < 2 {
		return apperrors.NewValidationError("Codice troppo corto (minimo 2 caratteri)")
	}
	if prefer != "" && !ateco.ValidVersion(prefer) {
		return apperrors.NewValidationError("prefer deve essere: 2022, 2025, o 2025-camerale")
	}
	return nil
}

// Lookup cerca un codice. Se nessuna riga corrisponde la risposta contiene
// fino a 5 suggerimenti e found=0, senza errore.
func (s *AtecoService) Lookup(code, prefer string, prefix bool, limit int) (*LookupResponse, error) {
	if err := validateLookupParams(code, prefer); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > maxLookupLimit {
		limit = maxLookupLimit
	}

	ds, enricher, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	result := ds.SearchSmart(code, ateco.Version(prefer), prefix)
	if result.Empty() {
		return &LookupResponse{
			Found:       0,
			Items:       []map[string]any{},
			Suggestions: ds.FindSimilar(code, 5),
			Message:     fmt.Sprintf("Nessun risultato per '%s'. Prova con uno dei suggerimenti.", code),
		}, nil
	}

	rows := result.Rows
	if prefix && len(rows) > limit {
		rows = rows[:limit]
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		items = append(items, enricher.Enrich(rows[i].Flatten()))
	}
	return &LookupResponse{Found: len(items), Items: items}, nil
}

// Batch cerca più codici in una sola richiesta. Per ogni codice viene
// restituito al più il primo risultato.
func (s *AtecoService) Batch(codes []string, prefer string, prefix bool) (*BatchResponse, error) {
	if len(codes) == 0 {
		return nil, apperrors.NewValidationError("Lista codici vuota")
	}
	if len(codes) > maxBatchCodes {
		return nil, apperrors.NewValidationError("Massimo 50 codici per richiesta batch")
	}
	if prefer != "" && !ateco.ValidVersion(prefer) {
		return nil, apperrors.NewValidationError("prefer deve essere: 2022, 2025, o 2025-camerale")
	}

	ds, enricher, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	results := make([]BatchItem, 0, len(codes))
	for _, code := range codes {
		item := BatchItem{Code: code, Items: []map[string]any{}}
		if len(code) >= 2 {
			if result := ds.SearchSmart(code, ateco.Version(prefer), prefix); !result.Empty() {
				item.Found = 1
				item.Items = append(item.Items, enricher.Enrich(result.Rows[0].Flatten()))
			}
		}
		results = append(results, item)
	}

	return &BatchResponse{TotalCodes: len(codes), Results: results}, nil
}

// Autocomplete suggerisce completamenti per un codice parziale
func (s *AtecoService) Autocomplete(partial string, limit int) (*AutocompleteResponse, error) {
	if len(partial) < 2 {
		return nil, apperrors.NewValidationError("Codice parziale troppo corto (minimo 2 caratteri)")
	}
	if limit <= 0 || limit > 20 {
		limit = 5
	}

	ds, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	suggestions := ds.Autocomplete(partial, limit)
	if suggestions == nil {
		suggestions = []ateco.AutocompleteSuggestion{}
	}
	return &AutocompleteResponse{
		Partial:     partial,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}, nil
}

// SearchTitle ricerca testuale sui titoli delle attività
func (s *AtecoService) SearchTitle(query string, limit int) (*TitleSearchResponse, error) {
	if len(query) < 3 {
		return nil, apperrors.NewValidationError("Testo di ricerca troppo corto (minimo 3 caratteri)")
	}
	if limit <= 0 || limit > maxLookupLimit {
		limit = 10
	}

	ds, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	hits := ds.SearchTitle(query, limit)
	if hits == nil {
		hits = []ateco.TitleHit{}
	}
	return &TitleSearchResponse{Query: query, Found: len(hits), Items: hits}, nil
}

// Dataset accesso in sola lettura al dataset caricato (nil se assente)
func (s *AtecoService) Dataset() *ateco.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}
