package database

import (
	"database/sql"
	"fmt"
)

// migrateSessions crea la tabella delle sessioni di valutazione. Una
// sessione lega i dati anagrafici dell'azienda agli assessment prodotti.
func migrateSessions(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			denominazione TEXT NOT NULL,
			partita_iva TEXT,
			codice_ateco TEXT,
			comune TEXT,
			provincia TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("creazione tabella sessions fallita: %w", err)
	}
	return nil
}

// migrateAssessments crea la tabella degli assessment di rischio, con i
// vincoli di dominio su punteggio, perdite e livello di controllo.
func migrateAssessments(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS assessments (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			event_code TEXT NOT NULL,
			risk_score INTEGER NOT NULL CHECK (risk_score >= 0 AND risk_score <= 100),
			risk_level TEXT NOT NULL,
			matrix_position TEXT NOT NULL,
			economic_loss TEXT NOT NULL CHECK (economic_loss IN ('G', 'Y', 'O', 'R')),
			non_economic_loss TEXT NOT NULL CHECK (non_economic_loss IN ('G', 'Y', 'O', 'R')),
			control_level TEXT NOT NULL CHECK (control_level IN ('++', '+', '-', '--')),
			financial_impact TEXT,
			image_impact INTEGER NOT NULL DEFAULT 0,
			regulatory_impact INTEGER NOT NULL DEFAULT 0,
			criminal_impact INTEGER NOT NULL DEFAULT 0,
			notes TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("creazione tabella assessments fallita: %w", err)
	}

	index := `CREATE INDEX IF NOT EXISTS ix_assessments_session_created
		ON assessments(session_id, created_at)`
	if _, err := db.Exec(index); err != nil {
		return fmt.Errorf("creazione indice assessments fallita: %w", err)
	}
	return nil
}
