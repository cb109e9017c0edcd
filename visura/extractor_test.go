package visura

import (
	"strings"
	"testing"
)

// visuraCompleta testo di prova con tutti e tre i campi fondamentali
const visuraCompleta = `CAMERA DI COMMERCIO INDUSTRIA ARTIGIANATO E AGRICOLTURA
VISURA ORDINARIA

DENOMINAZIONE: ACME SOFTWARE S.R.L.
Sede legale comune: MILANO (MI)
CAP: 20121
Partita IVA: 12345678901
Codice ATECO: 62.01
OGGETTO SOCIALE: la produzione di software gestionale e la consulenza
informatica per aziende pubbliche e private, nonché la vendita di
licenze software
`

// TestExtractText_VisuraCompleta verifica l'estrazione dei tre campi
// fondamentali e la confidence piena
func TestExtractText_VisuraCompleta(t *testing.T) {
	e := NewExtractor()
	res := e.ExtractText(visuraCompleta)

	if res.PartitaIVA != "12345678901" {
		t.Errorf("partita IVA = %q", res.PartitaIVA)
	}
	if len(res.CodiciAteco) != 1 || res.CodiciAteco[0].Codice != "62.01" {
		t.Errorf("codici ATECO inattesi: %+v", res.CodiciAteco)
	}
	if !res.CodiciAteco[0].Principale {
		t.Error("il primo codice deve essere marcato come principale")
	}
	if !strings.Contains(res.OggettoSociale, "produzione di software") {
		t.Errorf("oggetto sociale inatteso: %q", res.OggettoSociale)
	}
	if res.Confidence != 1.0 {
		t.Errorf("confidence = %f, attesa 1.0", res.Confidence)
	}
	if res.Denominazione != "ACME SOFTWARE S.R.L." {
		t.Errorf("denominazione = %q", res.Denominazione)
	}
	if res.SedeLegale == nil || res.SedeLegale.Comune != "MILANO" || res.SedeLegale.Provincia != "MI" {
		t.Errorf("sede legale inattesa: %+v", res.SedeLegale)
	}
}

// TestExtractText_ConfidenceParziale verifica i punteggi a scalini
func TestExtractText_ConfidenceParziale(t *testing.T) {
	e := NewExtractor()

	// Solo partita IVA e ATECO, niente oggetto sociale
	res := e.ExtractText("P.IVA: 12345678901\nCodice ATECO: 62.01\n")
	if res.Confidence != 0.66 {
		t.Errorf("confidence con 2 campi = %f, attesa 0.66", res.Confidence)
	}

	// Solo partita IVA
	res = e.ExtractText("Partita IVA: 12345678901\n")
	if res.Confidence != 0.33 {
		t.Errorf("confidence con 1 campo = %f, attesa 0.33", res.Confidence)
	}

	// Nessun campo
	res = e.ExtractText("documento senza dati utili\n")
	if res.Confidence != 0.0 {
		t.Errorf("confidence con 0 campi = %f, attesa 0.0", res.Confidence)
	}
	if res.CodiciAteco == nil {
		t.Error("codici ATECO mai nulli nella risposta")
	}
}

// TestExtractCodiciAteco_EsclusioneAnni verifica che 19.xx, 20.xx e 21.xx
// senza etichetta vengano scartati come possibili anni
func TestExtractCodiciAteco_EsclusioneAnni(t *testing.T) {
	codes := extractCodiciAteco("documento del 20.03 e nient'altro")
	if len(codes) != 0 {
		t.Errorf("attesi zero codici, trovati %+v", codes)
	}

	// Ma un 20.xx etichettato resta valido
	codes = extractCodiciAteco("Codice ATECO: 20.14")
	if len(codes) != 1 || codes[0].Codice != "20.14" {
		t.Errorf("codice etichettato scartato: %+v", codes)
	}
}

// TestExtractCodiciAteco_Normalizzazione verifica la normalizzazione dei
// separatori (spazi al posto dei punti)
func TestExtractCodiciAteco_Normalizzazione(t *testing.T) {
	codes := extractCodiciAteco("Attività prevalente: 62 01 3")
	if len(codes) != 1 || codes[0].Codice != "62.01.3" {
		t.Errorf("normalizzazione fallita: %+v", codes)
	}
}

// TestExtractOggettoSociale_TroppoCorto verifica lo scarto dei testi
// sotto la soglia minima
func TestExtractOggettoSociale_TroppoCorto(t *testing.T) {
	if got := extractOggettoSociale("OGGETTO SOCIALE: vendita auto"); got != "" {
		t.Errorf("oggetto troppo corto accettato: %q", got)
	}
}

// TestExtractOggettoSociale_SenzaParoleChiave verifica lo scarto dei
// testi senza parole chiave di attività economica
func TestExtractOggettoSociale_SenzaParoleChiave(t *testing.T) {
	text := "OGGETTO SOCIALE: lorem ipsum dolor sit amet consectetur adipiscing elit sed do"
	if got := extractOggettoSociale(text); got != "" {
		t.Errorf("oggetto senza parole chiave accettato: %q", got)
	}
}

// TestExtractOggettoSociale_Troncamento verifica il troncamento oltre i
// 500 caratteri
func TestExtractOggettoSociale_Troncamento(t *testing.T) {
	long := "OGGETTO SOCIALE: produzione " + strings.Repeat("di software gestionale ", 40)
	got := extractOggettoSociale(long)
	if got == "" {
		t.Fatal("oggetto lungo non estratto")
	}
	if len(got) > oggettoMaxLen+3 {
		t.Errorf("oggetto non troncato: %d caratteri", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("manca il marcatore di troncamento")
	}
}

// TestExtractPartitaIVA verifica i pattern etichettati e il fallback
func TestExtractPartitaIVA(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"Partita IVA: 12345678901", "12345678901"},
		{"P.IVA 98765432109", "98765432109"},
		{"Codice Fiscale: 11223344556", "11223344556"},
		{"identificativo 12345678901 generico", "12345678901"},
		{"nessun numero utile 123", ""},
	}
	for _, c := range cases {
		if got := extractPartitaIVA(c.text); got != c.want {
			t.Errorf("extractPartitaIVA(%q) = %q, atteso %q", c.text, got, c.want)
		}
	}
}

// TestExtract_PdfInvalido verifica l'errore su un PDF malformato
func TestExtract_PdfInvalido(t *testing.T) {
	e := NewExtractor()
	if _, err := e.Extract(strings.NewReader("non sono un pdf")); err == nil {
		t.Error("atteso errore per PDF malformato")
	}
}

// TestExtractFile_Inesistente verifica l'errore su file mancante
func TestExtractFile_Inesistente(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractFile("/percorso/inesistente.pdf"); err == nil {
		t.Error("atteso errore per file inesistente")
	}
}
