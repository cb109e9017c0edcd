package services

import (
	"errors"
	"testing"

	"atecoserver/ateco"
	"atecoserver/enrichment"
	apperrors "atecoserver/server/errors"
)

func fixtureDataset() *ateco.Dataset {
	return ateco.NewDataset([]ateco.Row{
		{
			Code2022:  "62.01",
			Title2022: "Produzione di software non connesso all'edizione",
			Code2025:  "62.10",
			Title2025: "Produzione di software",
		},
		{
			Code2022:  "62.02",
			Title2022: "Consulenza nel settore delle tecnologie dell'informatica",
			Code2025:  "62.20",
			Title2025: "Consulenza informatica",
		},
		{
			Code2022:  "64.99.1",
			Title2022: "Attività di intermediazione mobiliare",
			Code2025:  "64.99.1",
			Title2025: "Altre intermediazioni finanziarie",
		},
	})
}

func fixtureService() *AtecoService {
	enricher := enrichment.NewEnricher(map[string]enrichment.SectorInfo{
		"ict": {Normative: []string{"GDPR"}, Certificazioni: []string{"ISO 27001"}},
	})
	return NewAtecoServiceWithDataset(fixtureDataset(), enricher)
}

// TestLookup verifica la ricerca esatta con arricchimento
func TestLookup(t *testing.T) {
	svc := fixtureService()

	resp, err := svc.Lookup("62.01", "", false, 0)
	if err != nil {
		t.Fatalf("Lookup() errore = %v", err)
	}
	if resp.Found != 1 {
		t.Fatalf("found = %d, atteso 1", resp.Found)
	}
	item := resp.Items[0]
	if item[ateco.ColCode2022] != "62.01" {
		t.Errorf("codice = %v", item[ateco.ColCode2022])
	}
	if item["settore"] != "ict" {
		t.Errorf("settore = %v, atteso ict", item["settore"])
	}
}

// TestLookup_NessunRisultato verifica found=0 con suggerimenti
func TestLookup_NessunRisultato(t *testing.T) {
	svc := fixtureService()

	resp, err := svc.Lookup("99.99.9", "", false, 0)
	if err != nil {
		t.Fatalf("Lookup() errore = %v", err)
	}
	if resp.Found != 0 || len(resp.Items) != 0 {
		t.Errorf("attesi zero risultati, trovati %d", resp.Found)
	}
	if len(resp.Suggestions) == 0 || len(resp.Suggestions) > 5 {
		t.Errorf("suggerimenti = %d, attesi da 1 a 5", len(resp.Suggestions))
	}
	if resp.Message == "" {
		t.Error("messaggio per l'utente mancante")
	}
}

// TestLookup_CodiceTroppoCorto verifica la validazione dell'input
func TestLookup_CodiceTroppoCorto(t *testing.T) {
	svc := fixtureService()

	_, err := svc.Lookup("6", "", false, 0)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("atteso errore di validazione, trovato %v", err)
	}
}

// TestLookup_PreferNonValido verifica il rifiuto di versioni sconosciute
func TestLookup_PreferNonValido(t *testing.T) {
	svc := fixtureService()

	_, err := svc.Lookup("62.01", "2030", false, 0)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeValidation {
		t.Fatalf("atteso errore di validazione, trovato %v", err)
	}
}

// TestLookup_NonInizializzato verifica il 500 prima del caricamento
func TestLookup_NonInizializzato(t *testing.T) {
	svc := NewAtecoService()

	_, err := svc.Lookup("62.01", "", false, 0)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("atteso AppError, trovato %v", err)
	}
	if appErr.Code != apperrors.CodeNotInitialized {
		t.Errorf("codice = %s", appErr.Code)
	}
	if appErr.StatusCode() != 500 {
		t.Errorf("status = %d, atteso 500", appErr.StatusCode())
	}
}

// TestLookup_Prefer2025 verifica la preferenza di versione
func TestLookup_Prefer2025(t *testing.T) {
	svc := fixtureService()

	resp, err := svc.Lookup("64.99.1", "2025", false, 0)
	if err != nil {
		t.Fatalf("Lookup() errore = %v", err)
	}
	if resp.Found != 1 {
		t.Fatalf("found = %d, atteso 1", resp.Found)
	}
}

// TestBatch verifica la ricerca multipla con un codice assente
func TestBatch(t *testing.T) {
	svc := fixtureService()

	resp, err := svc.Batch([]string{"62.01", "99.99"}, "", false)
	if err != nil {
		t.Fatalf("Batch() errore = %v", err)
	}
	if resp.TotalCodes != 2 || len(resp.Results) != 2 {
		t.Fatalf("risultati = %d", len(resp.Results))
	}
	if resp.Results[0].Found != 1 {
		t.Errorf("62.01 non trovato")
	}
	if resp.Results[1].Found != 0 || len(resp.Results[1].Items) != 0 {
		t.Errorf("99.99 atteso assente: %+v", resp.Results[1])
	}
}

// TestBatch_ListaVuota verifica la validazione del batch
func TestBatch_ListaVuota(t *testing.T) {
	svc := fixtureService()

	if _, err := svc.Batch(nil, "", false); err == nil {
		t.Error("attesa validazione su lista vuota")
	}

	troppi := make([]string, 51)
	for i := range troppi {
		troppi[i] = "62.01"
	}
	if _, err := svc.Batch(troppi, "", false); err == nil {
		t.Error("attesa validazione oltre 50 codici")
	}
}

// TestAutocomplete verifica i suggerimenti per prefisso
func TestAutocomplete(t *testing.T) {
	svc := fixtureService()

	resp, err := svc.Autocomplete("62", 10)
	if err != nil {
		t.Fatalf("Autocomplete() errore = %v", err)
	}
	if resp.Count < 2 {
		t.Errorf("suggerimenti = %d, attesi almeno 2", resp.Count)
	}
	if resp.Partial != "62" {
		t.Errorf("partial = %s", resp.Partial)
	}
}

// TestSearchTitle verifica la ricerca testuale
func TestSearchTitle(t *testing.T) {
	svc := fixtureService()

	resp, err := svc.SearchTitle("produzione software", 10)
	if err != nil {
		t.Fatalf("SearchTitle() errore = %v", err)
	}
	if resp.Found == 0 {
		t.Fatal("nessun risultato per la ricerca testuale")
	}
	if resp.Items[0].Code != "62.01" && resp.Items[0].Code != "62.10" {
		t.Errorf("primo risultato = %+v", resp.Items[0])
	}
}
