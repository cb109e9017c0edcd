// @title ATECO Lookup API
// @version 2.0
// @description Backend di consultazione ATECO: ricerca codici, estrazione visure, zone sismiche e risk assessment.

// @contact.name API Support

// @host localhost:8000
// @BasePath /
// @schemes http https

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atecoserver/internal/config"
	"atecoserver/server"
)

func main() {
	log.Println("🚀 Avvio ATECO Lookup Server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("✗ Caricamento configurazione fallito: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("✗ Inizializzazione server fallita: %v", err)
	}

	// Shutdown ordinato su SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("✗ Server terminato con errore: %v", err)
		}
	case sig := <-stop:
		log.Printf("Segnale ricevuto: %v", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("✗ Shutdown fallito: %v", err)
		}
	}
}
