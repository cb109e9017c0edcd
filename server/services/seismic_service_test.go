package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	apperrors "atecoserver/server/errors"
	"atecoserver/seismic"
)

func seismicFixture(t *testing.T) *SeismicService {
	t.Helper()
	payload := `{
		"comuni": {
			"MILANO": {"provincia": "MI", "regione": "Lombardia", "zona_sismica": 4, "accelerazione_ag": 0.05, "risk_level": "Bassa"},
			"ROMA":   {"provincia": "RM", "regione": "Lazio", "zona_sismica": 3, "accelerazione_ag": 0.15, "risk_level": "Media"}
		},
		"metadata": {"total_comuni": 2, "ag_reference": {"zona_3": 0.15, "zona_4": 0.05}}
	}`
	path := filepath.Join(t.TempDir(), "zone.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := seismic.LoadDatabase(path)
	if err != nil {
		t.Fatalf("LoadDatabase() errore = %v", err)
	}
	return NewSeismicService(db)
}

// TestSeismicZone verifica il match diretto
func TestSeismicZone(t *testing.T) {
	svc := seismicFixture(t)

	res, err := svc.Zone("Roma", "RM")
	if err != nil {
		t.Fatalf("Zone() errore = %v", err)
	}
	if res.ZonaSismica != 3 || res.RiskLevel != "Media" {
		t.Errorf("risultato inatteso: %+v", res)
	}
}

// TestSeismicZone_NonTrovato verifica il 404 con suggerimenti nel contesto
func TestSeismicZone_NonTrovato(t *testing.T) {
	svc := seismicFixture(t)

	_, err := svc.Zone("Atlantide", "")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 404 {
		t.Fatalf("atteso 404, trovato %v", err)
	}
	if appErr.GetContext()["suggestion_text"] == nil {
		t.Error("testo di aiuto mancante nel contesto")
	}
}

// TestSeismicZone_Validazione verifica comune e provincia
func TestSeismicZone_Validazione(t *testing.T) {
	svc := seismicFixture(t)

	if _, err := svc.Zone("  ", ""); err == nil {
		t.Error("attesa validazione su comune vuoto")
	}
	if _, err := svc.Zone("Roma", "ROM"); err == nil {
		t.Error("attesa validazione su sigla provincia lunga")
	}
}

// TestSeismicSuggestions verifica i suggerimenti per nomi storpiati
func TestSeismicSuggestions(t *testing.T) {
	svc := seismicFixture(t)

	resp, err := svc.Suggestions("MILNO", 5)
	if err != nil {
		t.Fatalf("Suggestions() errore = %v", err)
	}
	if resp.Count == 0 {
		t.Fatal("nessun suggerimento")
	}
	if resp.Suggestions[0].Comune != "MILANO" {
		t.Errorf("primo suggerimento = %+v", resp.Suggestions[0])
	}
}

// TestSeismicZone_DatabaseAssente verifica il 503
func TestSeismicZone_DatabaseAssente(t *testing.T) {
	svc := NewSeismicService(nil)

	_, err := svc.Zone("Roma", "")
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.StatusCode() != 503 {
		t.Fatalf("atteso 503, trovato %v", err)
	}
}
