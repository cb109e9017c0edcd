package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"atecoserver/database"
	apperrors "atecoserver/server/errors"
)

// CreateSessionRequest dati anagrafici per l'apertura di una sessione
type CreateSessionRequest struct {
	Denominazione string `json:"denominazione"`
	PartitaIVA    string `json:"partita_iva,omitempty"`
	CodiceAteco   string `json:"codice_ateco,omitempty"`
	Comune        string `json:"comune,omitempty"`
	Provincia     string `json:"provincia,omitempty"`
}

// SessionDetail sessione con lo storico degli assessment
type SessionDetail struct {
	Session     *database.Session     `json:"session"`
	Assessments []database.Assessment `json:"assessments"`
	Total       int                   `json:"total_assessments"`
}

// SessionService gestisce il ciclo di vita delle sessioni di valutazione
type SessionService struct {
	db *database.DB
}

// NewSessionService costruisce il servizio sulle sessioni
func NewSessionService(db *database.DB) *SessionService {
	return &SessionService{db: db}
}

// Create apre una nuova sessione per l'azienda indicata
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*database.Session, error) {
	denominazione := strings.TrimSpace(req.Denominazione)
	if denominazione == "" {
		return nil, apperrors.NewValidationError("denominazione obbligatoria")
	}
	if req.PartitaIVA != "" && len(req.PartitaIVA) != 11 {
		return nil, apperrors.NewValidationError("partita IVA non valida: attese 11 cifre")
	}

	session := &database.Session{
		ID:            uuid.NewString(),
		Denominazione: denominazione,
		PartitaIVA:    req.PartitaIVA,
		CodiceAteco:   req.CodiceAteco,
		Comune:        req.Comune,
		Provincia:     strings.ToUpper(strings.TrimSpace(req.Provincia)),
	}
	if err := s.db.CreateSession(ctx, session); err != nil {
		return nil, apperrors.WrapError(err, "creazione sessione fallita")
	}
	return session, nil
}

// Get carica una sessione con il suo storico di assessment
func (s *SessionService) Get(ctx context.Context, id string) (*SessionDetail, error) {
	session, err := s.db.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return nil, apperrors.NewNotFoundError("Sessione non trovata")
		}
		return nil, apperrors.WrapError(err, "lettura sessione fallita")
	}

	assessments, err := s.db.AssessmentsBySession(ctx, id)
	if err != nil {
		return nil, apperrors.WrapError(err, "lettura storico fallita")
	}

	return &SessionDetail{
		Session:     session,
		Assessments: assessments,
		Total:       len(assessments),
	}, nil
}

// Touch aggiorna il timestamp di ultima attività della sessione
func (s *SessionService) Touch(ctx context.Context, id string) error {
	if err := s.db.TouchSession(ctx, id); err != nil {
		if errors.Is(err, database.ErrSessionNotFound) {
			return apperrors.NewNotFoundError("Sessione non trovata")
		}
		return apperrors.WrapError(err, "aggiornamento sessione fallito")
	}
	return nil
}
