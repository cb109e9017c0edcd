package risk

import "fmt"

// MatrixInput perdite e controllo per il posizionamento in matrice.
type MatrixInput struct {
	EconomicLoss    string `json:"economic_loss"`
	NonEconomicLoss string `json:"non_economic_loss"`
	ControlLevel    string `json:"control_level"`
}

// InherentRisk il rischio inerente, 4 (basso) .. 1 (critico).
type InherentRisk struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// ControlEffectiveness l'efficacia dei controlli, riga 1-4 della matrice.
type ControlEffectiveness struct {
	Value       int    `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// MatrixDetails i passaggi intermedi del calcolo.
type MatrixDetails struct {
	EconomicLoss     string `json:"economic_loss"`
	EconomicValue    int    `json:"economic_value"`
	NonEconomicLoss  string `json:"non_economic_loss"`
	NonEconomicValue int    `json:"non_economic_value"`
	MinValue         int    `json:"min_value"`
	ControlLevel     string `json:"control_level"`
	ControlRow       int    `json:"control_row"`
	MatrixColumn     string `json:"matrix_column"`
}

// MatrixResult la posizione in matrice con livello e raccomandazioni.
type MatrixResult struct {
	MatrixPosition       string               `json:"matrix_position"`
	RiskLevel            string               `json:"risk_level"`
	RiskColor            string               `json:"risk_color"`
	RiskValue            int                  `json:"risk_value"`
	InherentRisk         InherentRisk         `json:"inherent_risk"`
	ControlEffectiveness ControlEffectiveness `json:"control_effectiveness"`
	Details              MatrixDetails        `json:"calculation_details"`
	Recommendations      []string             `json:"recommendations"`
}

// colorValues valore numerico dei colori, dal sistema Excel.
var colorValues = map[string]int{"G": 4, "Y": 3, "O": 2, "R": 1}

// controlRows riga di matrice per livello di controllo.
var controlRows = map[string]int{"--": 1, "-": 2, "+": 3, "++": 4}

// riskColumns colonna per rischio inerente: 4 (basso) -> A, 1 -> D.
var riskColumns = map[int]string{4: "A", 3: "B", 2: "C", 1: "D"}

var inherentLabels = map[int]string{4: "Low", 3: "Medium", 2: "High", 1: "Critical"}

var controlDescriptions = map[string]string{
	"++": "Adeguato",
	"+":  "Sostanzialmente adeguato",
	"-":  "Parzialmente Adeguato",
	"--": "Non adeguato / assente",
}

// positionLevels livello di rischio per posizione. Le posizioni assenti
// valgono Medium.
var positionLevels = map[string]struct {
	level string
	color string
	value int
}{
	"A4": {"Low", "green", 0},
	"A3": {"Low", "green", 0},
	"B4": {"Low", "green", 0},
	"A2": {"Medium", "yellow", 0},
	"B3": {"Medium", "yellow", 0},
	"C4": {"Medium", "yellow", 0},
	"A1": {"High", "orange", 0},
	"B2": {"High", "orange", 0},
	"C3": {"High", "orange", 0},
	"D4": {"High", "orange", 0},
	"B1": {"Critical", "red", 1},
	"C2": {"Critical", "red", 1},
	"D3": {"Critical", "red", 1},
	"C1": {"Critical", "red", 1},
	"D2": {"Critical", "red", 1},
	"D1": {"Critical", "red", 1},
}

// recommendations raccomandazioni per livello di rischio.
var recommendations = map[string][]string{
	"Critical": {
		"Azione immediata richiesta",
		"Implementare controlli aggiuntivi urgentemente",
		"Escalation al management richiesta",
	},
	"High": {
		"Priorità alta per mitigazione",
		"Rafforzare i controlli esistenti",
		"Monitoraggio frequente richiesto",
	},
	"Medium": {
		"Monitorare regolarmente",
		"Valutare opportunità di miglioramento controlli",
		"Documentare piani di contingenza",
	},
	"Low": {
		"Rischio accettabile",
		"Mantenere controlli attuali",
		"Revisione periodica standard",
	},
}

// CalculateMatrix posiziona il rischio in matrice: il rischio inerente è
// il minimo tra le due perdite (come nel foglio Excel), la colonna deriva
// dal rischio inerente e la riga dal livello di controllo.
func CalculateMatrix(in MatrixInput) MatrixResult {
	economicValue, ok := colorValues[in.EconomicLoss]
	if !ok {
		economicValue = 4
	}
	nonEconomicValue, ok := colorValues[in.NonEconomicLoss]
	if !ok {
		nonEconomicValue = 4
	}

	inherent := economicValue
	if nonEconomicValue < inherent {
		inherent = nonEconomicValue
	}

	row, ok := controlRows[in.ControlLevel]
	if !ok {
		row = 3
	}
	column := riskColumns[inherent]

	position := fmt.Sprintf("%s%d", column, row)
	info, ok := positionLevels[position]
	if !ok {
		info = struct {
			level string
			color string
			value int
		}{"Medium", "yellow", 0}
	}

	controlDesc, ok := controlDescriptions[in.ControlLevel]
	if !ok {
		controlDesc = "Unknown"
	}

	return MatrixResult{
		MatrixPosition: position,
		RiskLevel:      info.level,
		RiskColor:      info.color,
		RiskValue:      info.value,
		InherentRisk: InherentRisk{
			Value: inherent,
			Label: inherentLabels[inherent],
		},
		ControlEffectiveness: ControlEffectiveness{
			Value:       row,
			Label:       in.ControlLevel,
			Description: controlDesc,
		},
		Details: MatrixDetails{
			EconomicLoss:     in.EconomicLoss,
			EconomicValue:    economicValue,
			NonEconomicLoss:  in.NonEconomicLoss,
			NonEconomicValue: nonEconomicValue,
			MinValue:         inherent,
			ControlLevel:     in.ControlLevel,
			ControlRow:       row,
			MatrixColumn:     column,
		},
		Recommendations: recommendations[info.level],
	}
}
