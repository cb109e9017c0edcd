package services

import (
	"strings"
	"testing"

	"atecoserver/visura"
)

// TestVisuraToResponse verifica la conversione e l'arricchimento delle
// descrizioni dal dataset
func TestVisuraToResponse(t *testing.T) {
	svc := NewVisuraService(fixtureService())

	result := &visura.Result{
		Denominazione: "ACME SRL",
		PartitaIVA:    "12345678901",
		CodiciAteco: []visura.CodiceAteco{
			{Codice: "62.01", Principale: true},
		},
		OggettoSociale:   "Produzione e commercializzazione di software gestionale",
		Confidence:       1.0,
		ExtractionMethod: "backend",
	}

	resp := svc.toResponse(result)
	if !resp.Success || resp.Method != "backend" {
		t.Errorf("esito inatteso: %+v", resp)
	}
	if resp.Data.Confidence.Score != 100 {
		t.Errorf("score = %d, atteso 100", resp.Data.Confidence.Score)
	}
	if resp.Data.CodiceAteco != "62.01" {
		t.Errorf("codice principale = %s", resp.Data.CodiceAteco)
	}
	if desc := resp.Data.CodiciAteco[0].Descrizione; !strings.Contains(desc, "software") {
		t.Errorf("descrizione non arricchita: %q", desc)
	}
	if resp.Data.Confidence.Details["partita_iva"] != "valid" {
		t.Errorf("dettagli = %+v", resp.Data.Confidence.Details)
	}
}

// TestVisuraToResponse_DatasetAssente verifica che senza dataset i codici
// restino senza descrizione, senza errori
func TestVisuraToResponse_DatasetAssente(t *testing.T) {
	svc := NewVisuraService(NewAtecoService())

	result := &visura.Result{
		CodiciAteco:      []visura.CodiceAteco{{Codice: "62.01", Principale: true}},
		Confidence:       0.33,
		ExtractionMethod: "backend",
	}

	resp := svc.toResponse(result)
	if resp.Data.CodiciAteco[0].Descrizione != "" {
		t.Errorf("descrizione inattesa: %q", resp.Data.CodiciAteco[0].Descrizione)
	}
	if resp.Data.Confidence.Score != 33 {
		t.Errorf("score = %d, atteso 33", resp.Data.Confidence.Score)
	}
	if resp.Data.Confidence.Details["ateco"] != "valid" {
		t.Errorf("dettagli = %+v", resp.Data.Confidence.Details)
	}
}

// TestVisuraExtract_PdfInvalido verifica l'errore di validazione
func TestVisuraExtract_PdfInvalido(t *testing.T) {
	svc := NewVisuraService(nil)

	_, err := svc.Extract(strings.NewReader("non sono un pdf"))
	if err == nil {
		t.Error("atteso errore su contenuto non PDF")
	}
}
