// Package seismic risolve la zona sismica dei comuni italiani secondo la
// classificazione OPCM 3519/2006 della Protezione Civile.
package seismic

import "fmt"

// Normativa la fonte normativa della classificazione.
const Normativa = "OPCM 3519/2006"

// Fonti del risultato, in ordine di affidabilità decrescente.
const (
	SourceDatabase  = "database_match"
	SourceFuzzy     = "fuzzy_match"
	SourceProvincia = "provincia_estimation"
)

// zoneDescriptions descrizione leggibile per ciascuna zona sismica.
var zoneDescriptions = map[int]string{
	1: "Zona 1 - Sismicità alta: è la zona più pericolosa, dove possono verificarsi fortissimi terremoti",
	2: "Zona 2 - Sismicità media: zona dove possono verificarsi forti terremoti",
	3: "Zona 3 - Sismicità bassa: zona che può essere soggetta a scuotimenti modesti",
	4: "Zona 4 - Sismicità molto bassa: è la zona meno pericolosa",
}

// riskLevels livello di rischio per zona, indice = zona - 1.
var riskLevels = [4]string{"Molto Alta", "Alta", "Media", "Bassa"}

// ZoneDescription restituisce la descrizione della zona, "N/D" se ignota.
func ZoneDescription(zona int) string {
	if d, ok := zoneDescriptions[zona]; ok {
		return d
	}
	return "N/D"
}

// Result l'esito di una ricerca di zona sismica.
type Result struct {
	Comune          string  `json:"comune"`
	InputComune     string  `json:"input_comune,omitempty"`
	Provincia       string  `json:"provincia"`
	Regione         string  `json:"regione,omitempty"`
	ZonaSismica     int     `json:"zona_sismica"`
	AccelerazioneAg float64 `json:"accelerazione_ag"`
	RiskLevel       string  `json:"risk_level"`
	Description     string  `json:"description"`
	Normativa       string  `json:"normativa"`
	Source          string  `json:"source"`
	Confidence      float64 `json:"confidence"`
	Note            string  `json:"note,omitempty"`
}

// Suggestion un comune simile proposto quando la ricerca fallisce.
type Suggestion struct {
	Comune      string `json:"comune"`
	Provincia   string `json:"provincia"`
	ZonaSismica int    `json:"zona_sismica"`
}

// NotFoundError comune assente dal database, con eventuali comuni simili.
type NotFoundError struct {
	Comune      string
	Suggestions []Suggestion
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("comune_not_found: comune %q non trovato", e.Comune)
}

// ProvinciaMismatchError il comune esiste ma in un'altra provincia.
type ProvinciaMismatchError struct {
	Comune    string
	Richiesta string
	Trovata   string
}

func (e *ProvinciaMismatchError) Error() string {
	return fmt.Sprintf("comune_provincia_mismatch: %s non trovato in provincia %s, trovato in provincia %s",
		e.Comune, e.Richiesta, e.Trovata)
}
