package risk

import (
	"os"
	"path/filepath"
	"testing"
)

// testCatalog costruisce un catalogo di prova con due categorie
func testCatalog() *Catalog {
	return NewCatalog(map[string][]string{
		"Damage_Danni": {
			"101 - Incendio dei locali",
			"102 - Allagamento",
		},
		"Business_disruption": {
			"201 - Interruzione dei sistemi informativi",
		},
	}, map[string]string{
		"101": "Incendio con danni a immobili e impianti produttivi",
	})
}

// TestEventsForCategory verifica il parsing degli eventi di una categoria
func TestEventsForCategory(t *testing.T) {
	c := testCatalog()

	got, err := c.EventsForCategory("Damage_Danni")
	if err != nil {
		t.Fatalf("EventsForCategory() errore = %v", err)
	}
	if got.Total != 2 || len(got.Events) != 2 {
		t.Fatalf("attesi 2 eventi, trovati %d", got.Total)
	}
	if got.Events[0].Code != "101" || got.Events[0].Name != "Incendio dei locali" {
		t.Errorf("primo evento inatteso: %+v", got.Events[0])
	}
	if got.Events[0].Severity != "medium" {
		t.Errorf("severità = %s, attesa medium", got.Events[0].Severity)
	}
}

// TestEventsForCategory_Alias verifica la risoluzione degli alias
func TestEventsForCategory_Alias(t *testing.T) {
	c := testCatalog()

	got, err := c.EventsForCategory("cyber")
	if err != nil {
		t.Fatalf("EventsForCategory() errore = %v", err)
	}
	if got.Category != "Business_disruption" {
		t.Errorf("categoria risolta = %s", got.Category)
	}
	if got.OriginalRequest != "cyber" {
		t.Errorf("richiesta originale = %s", got.OriginalRequest)
	}
}

// TestEventsForCategory_MatchParziale verifica il match per sottostringa
func TestEventsForCategory_MatchParziale(t *testing.T) {
	c := testCatalog()

	got, err := c.EventsForCategory("danni")
	if err != nil {
		t.Fatalf("EventsForCategory() errore = %v", err)
	}
	if got.Category != "Damage_Danni" {
		t.Errorf("categoria risolta = %s", got.Category)
	}
}

// TestEventsForCategory_Sconosciuta verifica l'errore con le alternative
func TestEventsForCategory_Sconosciuta(t *testing.T) {
	c := testCatalog()

	_, err := c.EventsForCategory("inesistente")
	unknown, ok := err.(*UnknownCategoryError)
	if !ok {
		t.Fatalf("atteso UnknownCategoryError, trovato %v", err)
	}
	if len(unknown.Available) != 2 {
		t.Errorf("categorie disponibili = %v", unknown.Available)
	}
}

// TestSeverityForCode verifica la severità per prefisso
func TestSeverityForCode(t *testing.T) {
	cases := []struct {
		code string
		want string
	}{
		{"101", "medium"},
		{"201", "high"},
		{"301", "low"},
		{"401", "medium"},
		{"505", "high"},
		{"601", "critical"},
		{"701", "critical"},
		{"901", "medium"},
		{"", "medium"},
	}
	for _, c := range cases {
		if got := SeverityForCode(c.code); got != c.want {
			t.Errorf("SeverityForCode(%q) = %s, attesa %s", c.code, got, c.want)
		}
	}
}

// TestDescribeEvent verifica la scheda di un evento con VLOOKUP
func TestDescribeEvent(t *testing.T) {
	c := testCatalog()

	d := c.DescribeEvent("101")
	if d.Name != "Incendio dei locali" {
		t.Errorf("nome = %s", d.Name)
	}
	if !d.HasVlookup || d.Description != "Incendio con danni a immobili e impianti produttivi" {
		t.Errorf("descrizione VLOOKUP non usata: %+v", d)
	}
	if d.Category != "Damage_Danni" {
		t.Errorf("categoria = %s", d.Category)
	}
	if d.Impact != "Danni fisici e materiali" || d.Probability != "low" {
		t.Errorf("impatto/probabilità inattesi: %s/%s", d.Impact, d.Probability)
	}
	if len(d.Controls) == 0 {
		t.Error("controlli raccomandati mancanti")
	}
}

// TestDescribeEvent_SenzaVlookup verifica il fallback sul nome
func TestDescribeEvent_SenzaVlookup(t *testing.T) {
	c := testCatalog()

	d := c.DescribeEvent("102")
	if d.HasVlookup {
		t.Error("has_vlookup atteso falso")
	}
	if d.Description != "Allagamento" {
		t.Errorf("descrizione = %s", d.Description)
	}
}

// TestDescribeEvent_NonMappato verifica la scheda generica senza errori
func TestDescribeEvent_NonMappato(t *testing.T) {
	c := testCatalog()

	d := c.DescribeEvent("999")
	if d.Name != "Evento non mappato" || d.Source != "Generic" {
		t.Errorf("scheda generica inattesa: %+v", d)
	}
}

// TestCleanEventCode verifica la pulizia dei codici sporchi dal frontend
func TestCleanEventCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"101", "101"},
		{" 201 ", "201"},
		{"[object Object] 101", "101"},
		{`{"code":"305"}`, "305"},
		{"[object Object]", ""},
	}
	for _, c := range cases {
		if got := CleanEventCode(c.in); got != c.want {
			t.Errorf("CleanEventCode(%q) = %q, atteso %q", c.in, got, c.want)
		}
	}
}

// TestCalculateScore verifica il punteggio composito
func TestCalculateScore(t *testing.T) {
	// 25 (finanziario) + 25 (economica O) + 10 (immagine) + 6 (non eco O) = 66
	// moltiplicatore '-' = 1.25 -> 82
	score := CalculateScore(ScoreInput{
		ImpattoFinanziario:  "100 - 500K€",
		PerditaEconomica:    "O",
		PerditaNonEconomica: "O",
		ImpattoImmagine:     true,
		Controllo:           "-",
	})
	if score.Value != 82 {
		t.Errorf("score = %d, atteso 82", score.Value)
	}
	if score.Level != "CRITICO" {
		t.Errorf("livello = %s, atteso CRITICO", score.Level)
	}
}

// TestCalculateScore_ControlloRiduce verifica il moltiplicatore sotto 1
func TestCalculateScore_ControlloRiduce(t *testing.T) {
	// 40 + 30 + 10 = 80, moltiplicatore '++' = 0.5 -> 40
	score := CalculateScore(ScoreInput{
		ImpattoFinanziario: "3 - 5M€",
		PerditaEconomica:   "R",
		ImpattoCriminale:   true,
		Controllo:          "++",
	})
	if score.Value != 40 {
		t.Errorf("score = %d, atteso 40", score.Value)
	}
	if score.Level != "MEDIO" {
		t.Errorf("livello = %s, atteso MEDIO", score.Level)
	}
}

// TestCalculateScore_MaiOltre100 verifica il tetto del punteggio
func TestCalculateScore_MaiOltre100(t *testing.T) {
	score := CalculateScore(ScoreInput{
		ImpattoFinanziario:   "3 - 5M€",
		PerditaEconomica:     "R",
		PerditaNonEconomica:  "R",
		ImpattoImmagine:      true,
		ImpattoRegolamentare: true,
		ImpattoCriminale:     true,
		Controllo:            "--",
	})
	if score.Value != 100 {
		t.Errorf("score = %d, atteso il tetto 100", score.Value)
	}
}

// TestCalculateScore_Soglie verifica le fasce di livello
func TestCalculateScore_Soglie(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "BASSO"}, {29, "BASSO"}, {30, "MEDIO"}, {49, "MEDIO"},
		{50, "ALTO"}, {69, "ALTO"}, {70, "CRITICO"}, {100, "CRITICO"},
	}
	for _, c := range cases {
		if level, _ := scoreLevel(c.score); level != c.want {
			t.Errorf("scoreLevel(%d) = %s, atteso %s", c.score, level, c.want)
		}
	}
}

// TestCalculateMatrix verifica posizione, livello e dettagli
func TestCalculateMatrix(t *testing.T) {
	res := CalculateMatrix(MatrixInput{
		EconomicLoss:    "R",
		NonEconomicLoss: "Y",
		ControlLevel:    "--",
	})
	// min(1, 3) = 1 -> colonna D; controllo '--' -> riga 1
	if res.MatrixPosition != "D1" {
		t.Errorf("posizione = %s, attesa D1", res.MatrixPosition)
	}
	if res.RiskLevel != "Critical" || res.RiskColor != "red" {
		t.Errorf("livello = %s/%s", res.RiskLevel, res.RiskColor)
	}
	if res.InherentRisk.Value != 1 || res.InherentRisk.Label != "Critical" {
		t.Errorf("rischio inerente = %+v", res.InherentRisk)
	}
	if res.Details.MatrixColumn != "D" || res.Details.ControlRow != 1 {
		t.Errorf("dettagli = %+v", res.Details)
	}
	if len(res.Recommendations) != 3 {
		t.Errorf("raccomandazioni = %v", res.Recommendations)
	}
}

// TestCalculateMatrix_RischioBasso verifica la posizione A4
func TestCalculateMatrix_RischioBasso(t *testing.T) {
	res := CalculateMatrix(MatrixInput{
		EconomicLoss:    "G",
		NonEconomicLoss: "G",
		ControlLevel:    "++",
	})
	if res.MatrixPosition != "A4" || res.RiskLevel != "Low" {
		t.Errorf("posizione = %s, livello = %s", res.MatrixPosition, res.RiskLevel)
	}
}

// TestCalculateMatrix_Default verifica i valori di default per input
// mancanti
func TestCalculateMatrix_Default(t *testing.T) {
	res := CalculateMatrix(MatrixInput{})
	// perdite assenti -> G/G (4), controllo assente -> riga 3 -> A3 Low
	if res.MatrixPosition != "A3" || res.RiskLevel != "Low" {
		t.Errorf("posizione = %s, livello = %s", res.MatrixPosition, res.RiskLevel)
	}
}

// TestLoadCatalog verifica il caricamento da file
func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mappature.json")
	payload := `{
		"mappature_categoria_eventi": {"Damage_Danni": ["101 - Incendio"]},
		"vlookup_map": {"101": "Incendio dei locali produttivi"}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() errore = %v", err)
	}
	got, err := c.EventsForCategory("damage")
	if err != nil {
		t.Fatalf("EventsForCategory() errore = %v", err)
	}
	if got.Total != 1 {
		t.Errorf("eventi = %d", got.Total)
	}
}

// TestLoadCatalog_FileMancante verifica il fallback sulle categorie note
func TestLoadCatalog_FileMancante(t *testing.T) {
	c, err := LoadCatalog("/percorso/inesistente.json")
	if err != nil {
		t.Fatalf("file mancante non deve essere fatale: %v", err)
	}
	if len(c.Categories()) != 7 {
		t.Errorf("categorie di fallback = %d, attese 7", len(c.Categories()))
	}
}
