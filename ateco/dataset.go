package ateco

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Version identifica la versione della classificazione ATECO.
type Version string

const (
	Version2022         Version = "2022"
	Version2025         Version = "2025"
	Version2025Camerale Version = "2025-camerale"
)

// searchOrder ordine di ricerca predefinito tra le versioni
var searchOrder = []Version{Version2022, Version2025, Version2025Camerale}

// ValidVersion verifica che la stringa sia una versione ATECO conosciuta.
func ValidVersion(v string) bool {
	switch Version(v) {
	case Version2022, Version2025, Version2025Camerale:
		return true
	}
	return false
}

// Nomi standard delle colonne del dataset
const (
	ColOrdine            = "ORDINE_CODICE_ATECO_2022"
	ColCode2022          = "CODICE_ATECO_2022"
	ColTitle2022         = "TITOLO_ATECO_2022"
	ColGerarchia         = "GERARCHIA_ATECO_2022"
	ColSottotipologia    = "SOTTOTIPOLOGIA"
	ColTipoRicodifica    = "TIPO_RICODIFICA"
	ColCode2025          = "CODICE_ATECO_2025_RAPPRESENTATIVO"
	ColTitle2025         = "TITOLO_ATECO_2025_RAPPRESENTATIVO"
	ColCode2025Camerale  = "CODICE_ATECO_2025_RAPPRESENTATIVO_SISTEMA_CAMERALE"
	ColTitle2025Camerale = "TITOLO_ATECO_2025_RAPPRESENTATIVO_SISTEMA_CAMERALE"
)

// headerAliases tolleranza sui nomi delle intestazioni Excel:
// ogni colonna standard può comparire con varianti storiche del file ISTAT.
var headerAliases = map[string][]string{
	ColOrdine:            {ColOrdine, "ORDINE_CODICE"},
	ColCode2022:          {ColCode2022, "CODICE ATECO 2022", "CODICE_ATECO"},
	ColTitle2022:         {ColTitle2022, "TITOLO ATECO 2022", "TITOLO_2022", "TITOLO_ATECO"},
	ColGerarchia:         {ColGerarchia, "GERARCHIA_ATEC", "GERARCHIA"},
	ColSottotipologia:    {ColSottotipologia},
	ColTipoRicodifica:    {ColTipoRicodifica},
	ColCode2025:          {ColCode2025, "CODICE ATECO 2025 RAPPRESENTATIVO"},
	ColTitle2025:         {ColTitle2025, "TITOLO ATECO 2025 RAPPRESENTATIVO"},
	ColCode2025Camerale:  {ColCode2025Camerale, "CODICE 2025 SISTEMA CAMERALE"},
	ColTitle2025Camerale: {ColTitle2025Camerale, "TITOLO 2025 SISTEMA CAMERALE"},
}

// headerResolve mappa alias (lowercase) -> nome standard
var headerResolve = func() map[string]string {
	m := make(map[string]string)
	for std, aliases := range headerAliases {
		for _, a := range aliases {
			m[strings.ToLower(a)] = std
		}
	}
	return m
}()

// possibleSheets fogli candidati, in ordine di preferenza
var possibleSheets = []string{"Tabella operativa", "tabella operativa", "Foglio1", "Sheet1"}

// Row una riga della tabella di classificazione ATECO.
// Immutabile dopo il caricamento: le lookup non la modificano mai.
type Row struct {
	Ordine            string
	Code2022          string
	Title2022         string
	Gerarchia         string
	Sottotipologia    string
	TipoRicodifica    string
	Code2025          string
	Title2025         string
	Code2025Camerale  string
	Title2025Camerale string

	// Forme precalcolate per la ricerca, indicizzate su searchOrder
	norm  [3]string
	strip [3]string
}

// codeForVersion restituisce il codice grezzo della versione richiesta.
func (r *Row) codeForVersion(v Version) string {
	switch v {
	case Version2022:
		return r.Code2022
	case Version2025:
		return r.Code2025
	case Version2025Camerale:
		return r.Code2025Camerale
	}
	return ""
}

// titleForVersion restituisce il titolo della versione richiesta.
func (r *Row) titleForVersion(v Version) string {
	switch v {
	case Version2022:
		return r.Title2022
	case Version2025:
		return r.Title2025
	case Version2025Camerale:
		return r.Title2025Camerale
	}
	return ""
}

// precompute calcola le forme normalizzate e strip per ogni versione.
func (r *Row) precompute() {
	for i, v := range searchOrder {
		code := r.codeForVersion(v)
		r.norm[i] = NormalizeCode(code)
		r.strip[i] = StripCode(code)
	}
}

// Flatten converte la riga in una mappa serializzabile con i nomi colonna
// originali. I campi vuoti diventano null, come nel dataset sorgente.
func (r *Row) Flatten() map[string]any {
	item := make(map[string]any, 10)
	put := func(key, val string) {
		if val == "" {
			item[key] = nil
			return
		}
		item[key] = val
	}
	put(ColOrdine, r.Ordine)
	put(ColCode2022, r.Code2022)
	put(ColTitle2022, r.Title2022)
	put(ColGerarchia, r.Gerarchia)
	put(ColSottotipologia, r.Sottotipologia)
	put(ColTipoRicodifica, r.TipoRicodifica)
	put(ColCode2025, r.Code2025)
	put(ColTitle2025, r.Title2025)
	put(ColCode2025Camerale, r.Code2025Camerale)
	put(ColTitle2025Camerale, r.Title2025Camerale)
	return item
}

// Dataset la tabella di classificazione caricata in memoria.
// Condivisa in sola lettura tra tutte le richieste.
type Dataset struct {
	rows []Row
}

// NewDataset costruisce un dataset da righe già popolate (usato nei test).
func NewDataset(rows []Row) *Dataset {
	ds := &Dataset{rows: make([]Row, len(rows))}
	copy(ds.rows, rows)
	for i := range ds.rows {
		ds.rows[i].precompute()
	}
	return ds
}

// Len restituisce il numero di righe del dataset.
func (ds *Dataset) Len() int {
	return len(ds.rows)
}

// Rows restituisce le righe in ordine di tabella.
func (ds *Dataset) Rows() []Row {
	return ds.rows
}

// LoadDataset carica il dataset ATECO da un workbook Excel.
// Rileva automaticamente il foglio ("Tabella operativa" se presente,
// altrimenti il primo) e tollera le varianti note delle intestazioni.
func LoadDataset(path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file dataset non trovato: %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("apertura Excel fallita: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("nessun foglio nel file %s", path)
	}
	sheets := f.GetSheetList()
	for _, candidate := range possibleSheets {
		for _, s := range sheets {
			if s == candidate {
				sheet = candidate
				break
			}
		}
		if sheet == candidate {
			break
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("lettura righe dal foglio %q fallita: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("foglio %q troppo corto: attese intestazioni e almeno una riga", sheet)
	}

	ds, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	log.Printf("Dataset ATECO caricato: %d righe dal foglio %q", ds.Len(), sheet)
	return ds, nil
}

// parseRows costruisce il dataset da righe raw (intestazioni incluse).
func parseRows(raw [][]string) (*Dataset, error) {
	headers := raw[0]
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		std, ok := headerResolve[strings.ToLower(strings.TrimSpace(h))]
		if !ok {
			continue
		}
		if _, dup := colIndex[std]; !dup {
			colIndex[std] = i
		}
	}
	if _, ok := colIndex[ColCode2022]; !ok {
		return nil, fmt.Errorf("colonna %s non trovata nelle intestazioni", ColCode2022)
	}

	cell := func(row []string, col string) string {
		idx, ok := colIndex[col]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	parsed := make([]Row, 0, len(raw)-1)
	for _, line := range raw[1:] {
		r := Row{
			Ordine:            cell(line, ColOrdine),
			Code2022:          cell(line, ColCode2022),
			Title2022:         cell(line, ColTitle2022),
			Gerarchia:         cell(line, ColGerarchia),
			Sottotipologia:    cell(line, ColSottotipologia),
			TipoRicodifica:    cell(line, ColTipoRicodifica),
			Code2025:          cell(line, ColCode2025),
			Title2025:         cell(line, ColTitle2025),
			Code2025Camerale:  cell(line, ColCode2025Camerale),
			Title2025Camerale: cell(line, ColTitle2025Camerale),
		}
		// Righe completamente vuote vengono scartate
		if r.Code2022 == "" && r.Code2025 == "" && r.Code2025Camerale == "" {
			continue
		}
		parsed = append(parsed, r)
	}

	return NewDataset(parsed), nil
}
