package risk

import "fmt"

// ScoreInput i valori del form di assessment.
type ScoreInput struct {
	ImpattoFinanziario   string `json:"impatto_finanziario"`
	PerditaEconomica     string `json:"perdita_economica"`
	PerditaNonEconomica  string `json:"perdita_non_economica"`
	ImpattoImmagine      bool   `json:"impatto_immagine"`
	ImpattoRegolamentare bool   `json:"impatto_regolamentare"`
	ImpattoCriminale     bool   `json:"impatto_criminale"`
	Controllo            string `json:"controllo"`
}

// Score il punteggio di rischio calcolato, 0-100.
type Score struct {
	Value    int    `json:"risk_score"`
	Level    string `json:"level"`
	Analysis string `json:"analysis"`
}

// financialBands punti per fascia di impatto finanziario, max 40.
var financialBands = map[string]int{
	"N/A":         0,
	"0 - 1K€":     5,
	"1 - 10K€":    10,
	"10 - 50K€":   15,
	"50 - 100K€":  20,
	"100 - 500K€": 25,
	"500K€ - 1M€": 30,
	"1 - 3M€":     35,
	"3 - 5M€":     40,
}

// economicLossPoints punti per colore di perdita economica, max 30.
var economicLossPoints = map[string]int{"G": 5, "Y": 15, "O": 25, "R": 30}

// nonEconomicLossPoints punti per perdita non economica, max 10.
var nonEconomicLossPoints = map[string]int{"G": 0, "Y": 3, "O": 6, "R": 10}

// controlMultipliers moltiplicatore finale per livello di controllo.
var controlMultipliers = map[string]float64{
	"++": 0.5,
	"+":  0.75,
	"-":  1.25,
	"--": 1.5,
}

// FinancialBands le fasce ammesse per il form, in ordine crescente.
func FinancialBands() []string {
	return []string{
		"N/A", "0 - 1K€", "1 - 10K€", "10 - 50K€", "50 - 100K€",
		"100 - 500K€", "500K€ - 1M€", "1 - 3M€", "3 - 5M€",
	}
}

// CalculateScore calcola il punteggio 0-100: impatto finanziario (0-40),
// perdita economica (0-30), impatti booleani (10 ciascuno), perdita non
// economica (0-10), il tutto scalato dal moltiplicatore di controllo.
func CalculateScore(in ScoreInput) Score {
	score := 0
	score += financialBands[in.ImpattoFinanziario]
	score += economicLossPoints[in.PerditaEconomica]
	if in.ImpattoImmagine {
		score += 10
	}
	if in.ImpattoRegolamentare {
		score += 10
	}
	if in.ImpattoCriminale {
		score += 10
	}
	score += nonEconomicLossPoints[in.PerditaNonEconomica]

	if m, ok := controlMultipliers[in.Controllo]; ok {
		score = int(float64(score) * m)
	}
	if score > 100 {
		score = 100
	}

	level, action := scoreLevel(score)
	return Score{
		Value:    score,
		Level:    level,
		Analysis: fmt.Sprintf("Livello di rischio: %s (Score: %d/100). %s", level, score, action),
	}
}

func scoreLevel(score int) (level, action string) {
	switch {
	case score >= 70:
		return "CRITICO", "Richiede azione immediata"
	case score >= 50:
		return "ALTO", "Priorità alta, pianificare mitigazione"
	case score >= 30:
		return "MEDIO", "Monitorare e valutare opzioni"
	}
	return "BASSO", "Rischio accettabile, monitoraggio standard"
}
