package seismic

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fixtureDatabase costruisce un database di prova con comuni di zone
// diverse
func fixtureDatabase() *Database {
	return NewDatabase(map[string]zoneRecord{
		"MILANO":    {Provincia: "MI", Regione: "Lombardia", ZonaSismica: 4, AccelerazioneAg: 0.05, RiskLevel: "Bassa"},
		"ROMA":      {Provincia: "RM", Regione: "Lazio", ZonaSismica: 3, AccelerazioneAg: 0.15, RiskLevel: "Media"},
		"L'AQUILA":  {Provincia: "AQ", Regione: "Abruzzo", ZonaSismica: 1, AccelerazioneAg: 0.35, RiskLevel: "Molto Alta"},
		"FORLI'":    {Provincia: "FC", Regione: "Emilia-Romagna", ZonaSismica: 2, AccelerazioneAg: 0.25, RiskLevel: "Alta"},
		"SESTO":     {Provincia: "MI", Regione: "Lombardia", ZonaSismica: 4, AccelerazioneAg: 0.05, RiskLevel: "Bassa"},
		"SESTRI":    {Provincia: "GE", Regione: "Liguria", ZonaSismica: 3, AccelerazioneAg: 0.15, RiskLevel: "Media"},
	}, map[string]float64{"zona_3": 0.15, "zona_4": 0.05})
}

// TestZoneByComune_MatchEsatto verifica il match diretto sul database
func TestZoneByComune_MatchEsatto(t *testing.T) {
	db := fixtureDatabase()

	res, err := db.ZoneByComune("Milano", "")
	if err != nil {
		t.Fatalf("ZoneByComune() errore = %v", err)
	}
	if res.ZonaSismica != 4 || res.Provincia != "MI" {
		t.Errorf("risultato inatteso: %+v", res)
	}
	if res.Source != SourceDatabase || res.Confidence != 1.0 {
		t.Errorf("source/confidence inattesi: %s/%f", res.Source, res.Confidence)
	}
	if res.Normativa != Normativa {
		t.Errorf("normativa = %q", res.Normativa)
	}
}

// TestZoneByComune_Accenti verifica la normalizzazione degli accenti
func TestZoneByComune_Accenti(t *testing.T) {
	db := fixtureDatabase()

	res, err := db.ZoneByComune("Forlì", "")
	if err != nil {
		t.Fatalf("ZoneByComune() errore = %v", err)
	}
	if res.Comune != "FORLI'" && res.Comune != "FORLI" {
		t.Errorf("comune = %q", res.Comune)
	}
	if res.ZonaSismica != 2 {
		t.Errorf("zona = %d, attesa 2", res.ZonaSismica)
	}
}

// TestZoneByComune_ProvinciaMismatch verifica l'errore quando il comune
// esiste ma in un'altra provincia
func TestZoneByComune_ProvinciaMismatch(t *testing.T) {
	db := fixtureDatabase()

	_, err := db.ZoneByComune("MILANO", "RM")
	var mismatch *ProvinciaMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("atteso ProvinciaMismatchError, trovato %v", err)
	}
	if mismatch.Trovata != "MI" {
		t.Errorf("provincia trovata = %s", mismatch.Trovata)
	}
}

// TestZoneByComune_Fuzzy verifica il match approssimato su errori di
// battitura
func TestZoneByComune_Fuzzy(t *testing.T) {
	db := fixtureDatabase()

	res, err := db.ZoneByComune("MILAN", "")
	if err != nil {
		t.Fatalf("ZoneByComune() errore = %v", err)
	}
	if res.Comune != "MILANO" {
		t.Errorf("match fuzzy inatteso: %s", res.Comune)
	}
	if res.Source != SourceFuzzy {
		t.Errorf("source = %s, attesa fuzzy_match", res.Source)
	}
	if res.Confidence >= 1.0 || res.Confidence < 0.6 {
		t.Errorf("confidence fuzzy fuori soglia: %f", res.Confidence)
	}
	if res.Note == "" || res.InputComune != "MILAN" {
		t.Errorf("metadati fuzzy mancanti: %+v", res)
	}
}

// TestZoneByComune_FuzzyConProvincia verifica che la provincia filtri i
// candidati fuzzy
func TestZoneByComune_FuzzyConProvincia(t *testing.T) {
	db := fixtureDatabase()

	// SESTO (MI) e SESTRI (GE) sono entrambi vicini a "SESTO " errato
	res, err := db.ZoneByComune("SESTOO", "GE")
	if err != nil {
		t.Fatalf("ZoneByComune() errore = %v", err)
	}
	if res.Comune != "SESTRI" || res.Provincia != "GE" {
		t.Errorf("filtro provincia non applicato: %+v", res)
	}
}

// TestZoneByComune_StimaProvincia verifica la stima sulla zona prevalente
// della provincia
func TestZoneByComune_StimaProvincia(t *testing.T) {
	db := fixtureDatabase()

	res, err := db.ZoneByComune("COMUNE IGNOTO XYZ", "MI")
	if err != nil {
		t.Fatalf("ZoneByComune() errore = %v", err)
	}
	if res.Source != SourceProvincia {
		t.Errorf("source = %s, attesa provincia_estimation", res.Source)
	}
	if res.ZonaSismica != 4 {
		t.Errorf("zona stimata = %d, attesa 4", res.ZonaSismica)
	}
	if res.AccelerazioneAg != 0.05 {
		t.Errorf("accelerazione = %f, attesa 0.05 dal riferimento", res.AccelerazioneAg)
	}
	if res.Confidence != 0.5 {
		t.Errorf("confidence = %f, attesa 0.5", res.Confidence)
	}
}

// TestZoneByComune_NonTrovato verifica l'errore per un comune ignoto
// senza provincia
func TestZoneByComune_NonTrovato(t *testing.T) {
	db := fixtureDatabase()

	_, err := db.ZoneByComune("COMUNE IGNOTO XYZ", "")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("atteso NotFoundError, trovato %v", err)
	}
}

// TestSuggestions verifica i suggerimenti con soglia permissiva
func TestSuggestions(t *testing.T) {
	db := fixtureDatabase()

	suggestions := db.Suggestions("MILNO", 3)
	if len(suggestions) == 0 {
		t.Fatal("attesi suggerimenti per MILNO")
	}
	if suggestions[0].Comune != "MILANO" {
		t.Errorf("primo suggerimento = %s", suggestions[0].Comune)
	}
	if len(suggestions) > 3 {
		t.Errorf("limite non rispettato: %d", len(suggestions))
	}
}

// TestSimilarity verifica la misura di somiglianza
func TestSimilarity(t *testing.T) {
	if got := similarity("MILANO", "MILANO"); got != 1.0 {
		t.Errorf("similarità identità = %f", got)
	}
	// Trasposizione: una sola operazione
	if got := similarity("MILANO", "MLIANO"); got != 1.0-1.0/6.0 {
		t.Errorf("similarità trasposizione = %f", got)
	}
	vicino := similarity("MILANO", "MILAN")
	lontano := similarity("MILANO", "ROMA")
	if vicino <= lontano {
		t.Errorf("similarità non ordinata: %f <= %f", vicino, lontano)
	}
}

// TestLoadDatabase verifica il caricamento da file JSON
func TestLoadDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zone.json")

	payload := map[string]any{
		"comuni": map[string]any{
			"Norcia": map[string]any{
				"provincia": "pg", "regione": "Umbria",
				"zona_sismica": 1, "accelerazione_ag": 0.35, "risk_level": "Molto Alta",
			},
		},
		"metadata": map[string]any{"total_comuni": 1},
	}
	data, _ := json.Marshal(payload)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := LoadDatabase(path)
	if err != nil {
		t.Fatalf("LoadDatabase() errore = %v", err)
	}
	res, err := db.ZoneByComune("norcia", "PG")
	if err != nil {
		t.Fatalf("ZoneByComune() errore = %v", err)
	}
	if res.ZonaSismica != 1 || res.Provincia != "PG" {
		t.Errorf("risultato inatteso: %+v", res)
	}
}

// TestLoadDatabase_FileMancante verifica l'errore su file assente
func TestLoadDatabase_FileMancante(t *testing.T) {
	if _, err := LoadDatabase("/percorso/inesistente.json"); err == nil {
		t.Error("atteso errore per database mancante")
	}
}
