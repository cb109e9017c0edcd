package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrAssessmentNotFound assessment assente dal database.
var ErrAssessmentNotFound = errors.New("assessment non trovato")

// Assessment una valutazione di rischio completata, legata a una sessione.
type Assessment struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"session_id"`
	EventCode        string    `json:"event_code"`
	RiskScore        int       `json:"risk_score"`
	RiskLevel        string    `json:"risk_level"`
	MatrixPosition   string    `json:"matrix_position"`
	EconomicLoss     string    `json:"economic_loss"`
	NonEconomicLoss  string    `json:"non_economic_loss"`
	ControlLevel     string    `json:"control_level"`
	FinancialImpact  string    `json:"financial_impact,omitempty"`
	ImageImpact      bool      `json:"image_impact"`
	RegulatoryImpact bool      `json:"regulatory_impact"`
	CriminalImpact   bool      `json:"criminal_impact"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// SaveAssessment inserisce un assessment. La sessione referenziata deve
// esistere.
func (db *DB) SaveAssessment(ctx context.Context, a *Assessment) error {
	a.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO assessments (
			id, session_id, event_code, risk_score, risk_level, matrix_position,
			economic_loss, non_economic_loss, control_level, financial_impact,
			image_impact, regulatory_impact, criminal_impact, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.conn.ExecContext(ctx, query,
		a.ID, a.SessionID, a.EventCode, a.RiskScore, a.RiskLevel, a.MatrixPosition,
		a.EconomicLoss, a.NonEconomicLoss, a.ControlLevel, a.FinancialImpact,
		a.ImageImpact, a.RegulatoryImpact, a.CriminalImpact, a.Notes, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserimento assessment fallito: %w", err)
	}
	return nil
}

// GetAssessment carica un assessment per id.
func (db *DB) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	query := assessmentSelect + ` WHERE id = ?`
	row := db.conn.QueryRowContext(ctx, query, id)

	a, err := scanAssessment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("lettura assessment fallita: %w", err)
	}
	return a, nil
}

// AssessmentsBySession restituisce lo storico di una sessione in ordine
// cronologico.
func (db *DB) AssessmentsBySession(ctx context.Context, sessionID string) ([]Assessment, error) {
	query := assessmentSelect + ` WHERE session_id = ? ORDER BY created_at, id`
	rows, err := db.conn.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("lettura storico assessment fallita: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scansione assessment fallita: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterazione assessment fallita: %w", err)
	}
	return out, nil
}

const assessmentSelect = `
	SELECT id, session_id, event_code, risk_score, risk_level, matrix_position,
	       economic_loss, non_economic_loss, control_level, financial_impact,
	       image_impact, regulatory_impact, criminal_impact, notes, created_at
	FROM assessments`

// rowScanner astrae sql.Row e sql.Rows per lo scan condiviso.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*Assessment, error) {
	var (
		a                Assessment
		financial, notes sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.SessionID, &a.EventCode, &a.RiskScore, &a.RiskLevel, &a.MatrixPosition,
		&a.EconomicLoss, &a.NonEconomicLoss, &a.ControlLevel, &financial,
		&a.ImageImpact, &a.RegulatoryImpact, &a.CriminalImpact, &notes, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.FinancialImpact = nullString(financial)
	a.Notes = nullString(notes)
	return &a, nil
}
