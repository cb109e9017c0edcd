// Package visura estrae i dati anagrafici di un'impresa da una visura
// camerale in formato PDF.
package visura

// CodiceAteco un codice attività trovato nella visura.
type CodiceAteco struct {
	Codice      string `json:"codice"`
	Descrizione string `json:"descrizione"`
	Principale  bool   `json:"principale"`
}

// SedeLegale comune e provincia della sede legale.
type SedeLegale struct {
	Comune    string `json:"comune"`
	Provincia string `json:"provincia"`
	CAP       string `json:"cap,omitempty"`
}

// Result l'esito dell'estrazione. Confidence è la frazione dei tre campi
// fondamentali trovati (partita IVA, codice ATECO, oggetto sociale):
// 0, 0.33, 0.66 oppure 1.
type Result struct {
	Denominazione    string        `json:"denominazione,omitempty"`
	PartitaIVA       string        `json:"partita_iva,omitempty"`
	CodiciAteco      []CodiceAteco `json:"codici_ateco"`
	OggettoSociale   string        `json:"oggetto_sociale,omitempty"`
	SedeLegale       *SedeLegale   `json:"sede_legale,omitempty"`
	Confidence       float64       `json:"confidence"`
	ExtractionMethod string        `json:"extraction_method"`
}

// confidence calcola il punteggio a scalini sui tre campi fondamentali.
func confidence(piva, ateco, oggetto bool) float64 {
	found := 0
	if piva {
		found++
	}
	if ateco {
		found++
	}
	if oggetto {
		found++
	}
	switch found {
	case 3:
		return 1.0
	case 2:
		return 0.66
	case 1:
		return 0.33
	}
	return 0.0
}
