package seismic

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
)

// zoneRecord la voce di un comune nel file zone_sismiche_comuni.json.
type zoneRecord struct {
	Provincia       string  `json:"provincia"`
	Regione         string  `json:"regione"`
	ZonaSismica     int     `json:"zona_sismica"`
	AccelerazioneAg float64 `json:"accelerazione_ag"`
	RiskLevel       string  `json:"risk_level"`
}

// metadata dati di servizio del database delle zone.
type metadata struct {
	TotalComuni int                `json:"total_comuni"`
	AgReference map[string]float64 `json:"ag_reference"`
}

type databaseFile struct {
	Comuni   map[string]zoneRecord `json:"comuni"`
	Metadata metadata              `json:"metadata"`
}

// Database il database delle zone sismiche, indicizzato per nome comune
// normalizzato. Immutabile dopo il caricamento.
type Database struct {
	comuni map[string]zoneRecord
	// names preserva l'ordine dei comuni per risultati deterministici
	names []string
	meta  metadata
}

// LoadDatabase carica il database delle zone sismiche da un file JSON.
func LoadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("database zone sismiche non trovato: %w", err)
	}

	var df databaseFile
	if err := json.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("database zone sismiche non valido: %w", err)
	}

	db := NewDatabase(df.Comuni, df.Metadata.AgReference)
	log.Printf("Database zone sismiche caricato: %d comuni da %s", len(db.comuni), path)
	return db, nil
}

// NewDatabase costruisce un database in memoria. Le chiavi vengono
// normalizzate e l'ordine dei nomi è deterministico.
func NewDatabase(comuni map[string]zoneRecord, agReference map[string]float64) *Database {
	normalized := make(map[string]zoneRecord, len(comuni))
	for name, rec := range comuni {
		rec.Provincia = strings.ToUpper(strings.TrimSpace(rec.Provincia))
		normalized[normalizeComune(name)] = rec
	}

	names := make([]string, 0, len(normalized))
	for name := range normalized {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Database{
		comuni: normalized,
		names:  names,
		meta: metadata{
			TotalComuni: len(normalized),
			AgReference: agReference,
		},
	}
}

// Len restituisce il numero di comuni nel database.
func (db *Database) Len() int { return len(db.comuni) }

// agForZone restituisce l'accelerazione di riferimento per una zona
// stimata, quando il comune non è in tabella.
func (db *Database) agForZone(zona int) float64 {
	if db.meta.AgReference == nil {
		return 0
	}
	return db.meta.AgReference[fmt.Sprintf("zona_%d", zona)]
}
