package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound sessione assente dal database.
var ErrSessionNotFound = errors.New("sessione non trovata")

// Session una sessione di valutazione legata a un'azienda.
type Session struct {
	ID            string    `json:"id"`
	Denominazione string    `json:"denominazione"`
	PartitaIVA    string    `json:"partita_iva,omitempty"`
	CodiceAteco   string    `json:"codice_ateco,omitempty"`
	Comune        string    `json:"comune,omitempty"`
	Provincia     string    `json:"provincia,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateSession inserisce una nuova sessione. L'id deve essere già
// valorizzato dal chiamante.
func (db *DB) CreateSession(ctx context.Context, s *Session) error {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO sessions (id, denominazione, partita_iva, codice_ateco, comune, provincia, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.conn.ExecContext(ctx, query,
		s.ID, s.Denominazione, s.PartitaIVA, s.CodiceAteco, s.Comune, s.Provincia,
		s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserimento sessione fallito: %w", err)
	}
	return nil
}

// GetSession carica una sessione per id.
func (db *DB) GetSession(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, denominazione, partita_iva, codice_ateco, comune, provincia, created_at, updated_at
		FROM sessions WHERE id = ?
	`
	var (
		s                         Session
		piva, ateco, comune, prov sql.NullString
	)
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Denominazione, &piva, &ateco, &comune, &prov,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("lettura sessione fallita: %w", err)
	}

	s.PartitaIVA = nullString(piva)
	s.CodiceAteco = nullString(ateco)
	s.Comune = nullString(comune)
	s.Provincia = nullString(prov)
	return &s, nil
}

// TouchSession aggiorna il timestamp di ultima attività della sessione.
func (db *DB) TouchSession(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE sessions SET updated_at = ? WHERE id = ?`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("aggiornamento sessione fallito: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
