package ateco

import "testing"

// TestParseRows verifica il parsing delle righe raw con alias di intestazione
func TestParseRows(t *testing.T) {
	raw := [][]string{
		{"CODICE ATECO 2022", "TITOLO ATECO 2022", "CODICE ATECO 2025 RAPPRESENTATIVO", "TITOLO ATECO 2025 RAPPRESENTATIVO"},
		{"62.01", "Produzione di software", "62.10.0", "Produzione di software"},
		{"", "", "", ""},
		{" 64.99.1 ", "Intermediazione mobiliare", "64.99.1", "Servizi finanziari"},
	}

	ds, err := parseRows(raw)
	if err != nil {
		t.Fatalf("parseRows() errore = %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("attese 2 righe (la riga vuota va scartata), trovate %d", ds.Len())
	}
	if ds.Rows()[1].Code2022 != "64.99.1" {
		t.Errorf("trim non applicato: %q", ds.Rows()[1].Code2022)
	}
}

// TestParseRows_ColonnaObbligatoria verifica l'errore quando manca la
// colonna dei codici 2022
func TestParseRows_ColonnaObbligatoria(t *testing.T) {
	raw := [][]string{
		{"COLONNA_IGNOTA"},
		{"62.01"},
	}
	if _, err := parseRows(raw); err == nil {
		t.Error("atteso errore per colonna CODICE_ATECO_2022 mancante")
	}
}

// TestLoadDataset_FileInesistente verifica l'errore su file mancante
func TestLoadDataset_FileInesistente(t *testing.T) {
	if _, err := LoadDataset("/percorso/inesistente.xlsx"); err == nil {
		t.Error("atteso errore per file inesistente")
	}
}
