package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// healthLogInterval cadenza del log periodico sullo stato del servizio
const healthLogInterval = 5 * time.Minute

// Start avvia il server HTTP e blocca fino allo shutdown
func (s *Server) Start() error {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		return fmt.Errorf("creazione handler HTTP fallita: %w", err)
	}

	s.httpServer = &http.Server{
		Addr:         s.config.Addr(),
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	go s.healthChecker.LogHealthStatus(healthLogInterval, s.shutdownChan)

	log.Printf("Server in ascolto su %s", s.httpServer.Addr)
	log.Printf("API disponibile su http://%s:%s", s.config.Host, s.config.Port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("avvio server fallito: %w", err)
	}
	return nil
}

// ServeHTTP implementa http.Handler per i test
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler, err := s.ensureHTTPHandler()
	if err != nil {
		http.Error(w, "server non inizializzato", http.StatusInternalServerError)
		return
	}
	handler.ServeHTTP(w, r)
}

// Shutdown ferma il server in modo ordinato: prima le richieste in corso,
// poi le risorse
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("Shutdown in corso...")
	close(s.shutdownChan)

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("arresto server fallito: %w", err)
	}
	if err := s.Close(); err != nil {
		log.Printf("⚠️ Chiusura database fallita: %v", err)
	}

	log.Println("Shutdown completato")
	return nil
}
