// Package enrichment arricchisce le righe ATECO con i riferimenti
// normativi e le certificazioni del settore di appartenenza.
package enrichment

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"atecoserver/ateco"
)

// SettoreNonMappato valore del settore quando il codice non rientra in
// nessuna famiglia conosciuta.
const SettoreNonMappato = "non mappato"

// SectorInfo riferimenti normativi e certificazioni di un settore.
type SectorInfo struct {
	Normative      []string `yaml:"normative" json:"normative"`
	Certificazioni []string `yaml:"certificazioni" json:"certificazioni"`
}

// mappingFile struttura del file mapping.yaml
type mappingFile struct {
	Settori map[string]SectorInfo `yaml:"settori"`
}

// Enricher risolve settore, normative e certificazioni per una riga ATECO.
// La mappa è immutabile dopo il caricamento: Enrich è una funzione pura.
type Enricher struct {
	settori map[string]SectorInfo
}

// NewEnricher crea un enricher con la mappa settoriale indicata.
func NewEnricher(settori map[string]SectorInfo) *Enricher {
	if settori == nil {
		settori = map[string]SectorInfo{}
	}
	return &Enricher{settori: settori}
}

// LoadEnricher carica la mappa settoriale da un file YAML. Un file mancante
// non è un errore fatale: l'enricher risponde con liste vuote.
func LoadEnricher(path string) (*Enricher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("⚠️ File mapping settori non trovato: %s, enrichment con liste vuote", path)
			return NewEnricher(nil), nil
		}
		return nil, fmt.Errorf("lettura mapping settori fallita: %w", err)
	}

	var mf mappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing mapping settori fallito: %w", err)
	}

	log.Printf("Mapping settori caricato: %d settori da %s", len(mf.Settori), path)
	return NewEnricher(mf.Settori), nil
}

// SectorForCode deduce il settore dal prefisso del codice ATECO 2022.
// Restituisce stringa vuota per i codici fuori dalle famiglie mappate.
func SectorForCode(code string) string {
	c := ateco.NormalizeCode(code)
	switch {
	case strings.HasPrefix(c, "20"):
		return "chimico"
	case strings.HasPrefix(c, "10"), strings.HasPrefix(c, "11"):
		return "alimentare"
	case strings.HasPrefix(c, "21"), strings.HasPrefix(c, "86"):
		return "sanitario"
	case strings.HasPrefix(c, "29"), strings.HasPrefix(c, "45"):
		return "automotive"
	case strings.HasPrefix(c, "25"), strings.HasPrefix(c, "28"):
		return "industriale"
	case strings.HasPrefix(c, "62"):
		return "ict"
	case strings.HasPrefix(c, "64"), strings.HasPrefix(c, "66"):
		return "finance"
	}
	return ""
}

// Enrich aggiunge settore, normative e certificazioni a una riga appiattita.
// Se il settore è assente dalla mappa restituisce liste vuote, mai un errore.
func (e *Enricher) Enrich(item map[string]any) map[string]any {
	code, _ := item[ateco.ColCode2022].(string)
	settore := SectorForCode(code)

	if info, ok := e.settori[settore]; ok && settore != "" {
		item["settore"] = settore
		item["normative"] = normalizeList(info.Normative)
		item["certificazioni"] = normalizeList(info.Certificazioni)
		return item
	}

	if settore == "" {
		settore = SettoreNonMappato
	}
	item["settore"] = settore
	item["normative"] = []string{}
	item["certificazioni"] = []string{}
	return item
}

// Sectors restituisce i settori conosciuti dalla mappa.
func (e *Enricher) Sectors() []string {
	out := make([]string, 0, len(e.settori))
	for s := range e.settori {
		out = append(out, s)
	}
	return out
}

// normalizeList garantisce liste mai nulle nella risposta JSON.
func normalizeList(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
