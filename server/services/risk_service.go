package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"atecoserver/database"
	"atecoserver/risk"
	apperrors "atecoserver/server/errors"
)

// AssessmentRequest il form di assessment inviato dal frontend.
// I campi della matrice (perdite e controllo) guidano sia il punteggio
// sia il posizionamento.
type AssessmentRequest struct {
	SessionID            string `json:"session_id,omitempty"`
	EventCode            string `json:"event_code,omitempty"`
	ImpattoFinanziario   string `json:"impatto_finanziario"`
	PerditaEconomica     string `json:"perdita_economica"`
	PerditaNonEconomica  string `json:"perdita_non_economica"`
	ImpattoImmagine      bool   `json:"impatto_immagine"`
	ImpattoRegolamentare bool   `json:"impatto_regolamentare"`
	ImpattoCriminale     bool   `json:"impatto_criminale"`
	Controllo            string `json:"controllo"`
	Note                 string `json:"note,omitempty"`
}

// AssessmentResponse punteggio, posizione in matrice ed eventuale id
// dell'assessment salvato
type AssessmentResponse struct {
	Status         string            `json:"status"`
	AssessmentID   string            `json:"assessment_id,omitempty"`
	RiskScore      int               `json:"risk_score"`
	RiskLevel      string            `json:"risk_level"`
	Analysis       string            `json:"analysis"`
	MatrixPosition string            `json:"matrix_position"`
	Matrix         risk.MatrixResult `json:"matrix"`
}

// CategoriesResponse le categorie del catalogo con gli alias accettati
type CategoriesResponse struct {
	Categories []string          `json:"categories"`
	Aliases    map[string]string `json:"aliases"`
	Total      int               `json:"total"`
}

// RiskService catalogo eventi, calcoli di rischio e persistenza degli
// assessment
type RiskService struct {
	catalog *risk.Catalog
	db      *database.DB
}

// NewRiskService costruisce il servizio. db può essere nil: in quel caso
// gli assessment vengono calcolati ma non salvati.
func NewRiskService(catalog *risk.Catalog, db *database.DB) *RiskService {
	return &RiskService{catalog: catalog, db: db}
}

// Categories elenca le categorie disponibili
func (s *RiskService) Categories() *CategoriesResponse {
	cats := s.catalog.Categories()
	return &CategoriesResponse{
		Categories: cats,
		Aliases:    risk.CategoryAliases(),
		Total:      len(cats),
	}
}

// Events elenca gli eventi di una categoria, risolvendo alias e nomi
// parziali
func (s *RiskService) Events(category string) (*risk.CategoryEvents, error) {
	result, err := s.catalog.EventsForCategory(category)
	if err != nil {
		var unknown *risk.UnknownCategoryError
		if errors.As(err, &unknown) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Categoria '%s' non trovata", category)).
				WithContext("available", unknown.Available)
		}
		return nil, apperrors.WrapError(err, "ricerca eventi fallita")
	}
	return result, nil
}

// Description la scheda descrittiva di un evento
func (s *RiskService) Description(eventCode string) (*risk.Description, error) {
	code := risk.CleanEventCode(eventCode)
	if code == "" {
		return nil, apperrors.NewValidationError("Codice evento non valido")
	}
	return s.catalog.DescribeEvent(code), nil
}

// SaveAssessment calcola punteggio e matrice e, se la richiesta indica una
// sessione, salva l'assessment nello storico.
func (s *RiskService) SaveAssessment(ctx context.Context, req AssessmentRequest) (*AssessmentResponse, error) {
	score := risk.CalculateScore(risk.ScoreInput{
		ImpattoFinanziario:   req.ImpattoFinanziario,
		PerditaEconomica:     req.PerditaEconomica,
		PerditaNonEconomica:  req.PerditaNonEconomica,
		ImpattoImmagine:      req.ImpattoImmagine,
		ImpattoRegolamentare: req.ImpattoRegolamentare,
		ImpattoCriminale:     req.ImpattoCriminale,
		Controllo:            req.Controllo,
	})
	matrix := risk.CalculateMatrix(risk.MatrixInput{
		EconomicLoss:    req.PerditaEconomica,
		NonEconomicLoss: req.PerditaNonEconomica,
		ControlLevel:    req.Controllo,
	})

	resp := &AssessmentResponse{
		Status:         "success",
		RiskScore:      score.Value,
		RiskLevel:      score.Level,
		Analysis:       score.Analysis,
		MatrixPosition: matrix.MatrixPosition,
		Matrix:         matrix,
	}

	if req.SessionID != "" && s.db != nil {
		assessment := &database.Assessment{
			ID:               uuid.NewString(),
			SessionID:        req.SessionID,
			EventCode:        risk.CleanEventCode(req.EventCode),
			RiskScore:        score.Value,
			RiskLevel:        score.Level,
			MatrixPosition:   matrix.MatrixPosition,
			EconomicLoss:     defaultLoss(req.PerditaEconomica),
			NonEconomicLoss:  defaultLoss(req.PerditaNonEconomica),
			ControlLevel:     defaultControl(req.Controllo),
			FinancialImpact:  req.ImpattoFinanziario,
			ImageImpact:      req.ImpattoImmagine,
			RegulatoryImpact: req.ImpattoRegolamentare,
			CriminalImpact:   req.ImpattoCriminale,
			Notes:            req.Note,
		}
		if err := s.db.SaveAssessment(ctx, assessment); err != nil {
			return nil, apperrors.WrapError(err, "salvataggio assessment fallito")
		}
		resp.AssessmentID = assessment.ID
	}

	return resp, nil
}

// CalculateMatrix posiziona il rischio in matrice senza salvare nulla
func (s *RiskService) CalculateMatrix(in risk.MatrixInput) risk.MatrixResult {
	return risk.CalculateMatrix(in)
}

// History lo storico degli assessment di una sessione
func (s *RiskService) History(ctx context.Context, sessionID string) ([]database.Assessment, error) {
	if s.db == nil {
		return nil, apperrors.NewUnavailableError("Persistenza non configurata", nil)
	}
	assessments, err := s.db.AssessmentsBySession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.WrapError(err, "lettura storico fallita")
	}
	return assessments, nil
}

// I vincoli CHECK della tabella ammettono solo i valori del form: gli
// input assenti vengono riportati ai default usati dalla matrice.

func defaultLoss(v string) string {
	switch v {
	case "G", "Y", "O", "R":
		return v
	}
	return "G"
}

func defaultControl(v string) string {
	switch v {
	case "++", "+", "-", "--":
		return v
	}
	return "+"
}

// AssessmentFields la struttura del form di assessment, colonna per
// colonna come nel foglio Excel originale.
func AssessmentFields() map[string]any {
	colorOptions := func(labels [4]string) []map[string]any {
		values := [4]string{"G", "Y", "O", "R"}
		colors := [4]string{"green", "yellow", "orange", "red"}
		emojis := [4]string{"🟢", "🟡", "🟠", "🔴"}
		out := make([]map[string]any, 0, 4)
		for i := range values {
			out = append(out, map[string]any{
				"value": values[i],
				"label": labels[i],
				"color": colors[i],
				"emoji": emojis[i],
			})
		}
		return out
	}

	return map[string]any{
		"fields": []map[string]any{
			{
				"id":       "impatto_finanziario",
				"column":   "H",
				"question": "Qual è l'impatto finanziario stimato?",
				"type":     "select",
				"options":  risk.FinancialBands(),
				"required": true,
			},
			{
				"id":       "perdita_economica",
				"column":   "I",
				"question": "Qual è il livello di perdita economica attesa?",
				"type":     "select_color",
				"options": colorOptions([4]string{
					"Bassa/Nulla", "Media", "Importante", "Grave",
				}),
				"required": true,
			},
			{
				"id":       "impatto_immagine",
				"column":   "J",
				"question": "L'evento ha impatto sull'immagine aziendale?",
				"type":     "boolean",
				"options":  []string{"Si", "No"},
				"required": true,
			},
			{
				"id":          "impatto_regolamentare",
				"column":      "L",
				"question":    "Ci sono possibili conseguenze regolamentari o legali civili?",
				"type":        "boolean",
				"options":     []string{"Si", "No"},
				"description": "Multe, sanzioni amministrative, cause civili",
				"required":    true,
			},
			{
				"id":          "impatto_criminale",
				"column":      "M",
				"question":    "Ci sono possibili conseguenze penali?",
				"type":        "boolean",
				"options":     []string{"Si", "No"},
				"description": "Denunce penali, procedimenti criminali",
				"required":    true,
			},
			{
				"id":       "perdita_non_economica",
				"column":   "V",
				"question": "Qual è il livello di perdita non economica non attesa ma accadibile?",
				"type":     "select_color",
				"options": colorOptions([4]string{
					"Bassa/Nulla - Impatto minimo o trascurabile",
					"Media - Impatto moderato gestibile",
					"Importante - Impatto significativo che richiede attenzione",
					"Grave - Impatto critico che richiede azione immediata",
				}),
				"required": false,
			},
			{
				"id":       "controllo",
				"column":   "W",
				"question": "Qual è il livello di controllo?",
				"type":     "select",
				"options": []map[string]any{
					{"value": "++", "label": "++ Adeguato"},
					{"value": "+", "label": "+ Sostanzialmente adeguato"},
					{"value": "-", "label": "- Parzialmente Adeguato"},
					{"value": "--", "label": "-- Non adeguato / assente"},
				},
				"required": false,
				"triggers": "descrizione_controllo",
			},
			{
				"id":            "descrizione_controllo",
				"column":        "X",
				"question":      "Descrizione del controllo",
				"type":          "readonly",
				"autoPopulated": true,
				"vlookupSource": "W",
				"vlookupMap": map[string]any{
					"++": map[string]string{
						"titolo":      "Adeguato",
						"descrizione": "Il sistema di controllo interno è efficace ed adeguato (controlli 1 e 2 sono attivi e consolidati)",
					},
					"+": map[string]string{
						"titolo":      "Sostanzialmente adeguato",
						"descrizione": "Alcune correzioni potrebbero rendere soddisfacente il sistema di controllo interno (controlli 1 e 2 presenti ma parzialmente strutturati)",
					},
					"-": map[string]string{
						"titolo":      "Parzialmente Adeguato",
						"descrizione": "Il sistema di controllo interno deve essere migliorato e il processo dovrebbe essere più strettamente controllato (controlli 1 e 2 NON formalizzati)",
					},
					"--": map[string]string{
						"titolo":      "Non adeguato / assente",
						"descrizione": "Il sistema di controllo interno dei processi deve essere riorganizzato immediatamente (livelli di controllo 1 e 2 NON attivi)",
					},
				},
			},
		},
	}
}
