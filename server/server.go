// Package server compone servizi, handler e middleware nel server HTTP.
package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"atecoserver/database"
	"atecoserver/internal/config"
	"atecoserver/risk"
	"atecoserver/seismic"
	"atecoserver/server/handlers"
	"atecoserver/server/monitoring"
	"atecoserver/server/services"
)

// Version versione dell'API esposta da health e swagger
const Version = "2.0"

// Server il server HTTP con i suoi servizi
type Server struct {
	config         *config.Config
	db             *database.DB
	httpServer     *http.Server
	httpHandler    http.Handler
	handlerOnce    sync.Once
	handlerInitErr error
	shutdownChan   chan struct{}
	startTime      time.Time

	atecoService   *services.AtecoService
	riskService    *services.RiskService
	sessionService *services.SessionService
	visuraService  *services.VisuraService
	seismicService *services.SeismicService
	healthChecker  *monitoring.HealthChecker

	atecoHandler   *handlers.AtecoHandler
	riskHandler    *handlers.RiskHandler
	visuraHandler  *handlers.VisuraHandler
	seismicHandler *handlers.SeismicHandler
	sessionHandler *handlers.SessionHandler
}

// NewServer costruisce il server e carica i dati di dominio. Il database
// delle sessioni è obbligatorio; dataset, catalogo rischi e zone sismiche
// mancanti degradano il servizio senza impedire l'avvio.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.NewDBWithConfig(cfg.DatabasePath, database.DBConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:       cfg,
		db:           db,
		shutdownChan: make(chan struct{}),
		startTime:    time.Now(),
	}
	s.initServices()
	s.initHandlers()
	return s, nil
}

// initServices carica i dati di dominio e costruisce i servizi
func (s *Server) initServices() {
	s.atecoService = services.NewAtecoService()
	if err := s.atecoService.Init(s.config.DatasetPath, s.config.MappingPath); err != nil {
		// Avvio degradato: le lookup risponderanno 500 finché il
		// dataset non viene reso disponibile e il server riavviato
		log.Printf("⚠️ Dataset ATECO non caricato: %v", err)
	}

	catalog, err := risk.LoadCatalog(s.config.RiskDataPath)
	if err != nil {
		log.Printf("⚠️ Catalogo rischi non caricato: %v", err)
		catalog = risk.NewCatalog(nil, nil)
	}
	s.riskService = services.NewRiskService(catalog, s.db)

	seismicDB, err := seismic.LoadDatabase(s.config.SeismicDBPath)
	if err != nil {
		log.Printf("⚠️ Database zone sismiche non caricato: %v", err)
	}
	s.seismicService = services.NewSeismicService(seismicDB)

	s.sessionService = services.NewSessionService(s.db)
	s.visuraService = services.NewVisuraService(s.atecoService)

	s.healthChecker = monitoring.NewHealthChecker(Version)
	s.healthChecker.RegisterComponent("database", monitoring.DatabaseCheck(s.db))
	s.healthChecker.RegisterComponent("dataset", monitoring.DatasetCheck(
		s.atecoService.Initialized,
		func() int {
			if ds := s.atecoService.Dataset(); ds != nil {
				return ds.Len()
			}
			return 0
		},
	))
	s.healthChecker.RegisterComponent("zone_sismiche", monitoring.DatasetCheck(
		func() bool { return seismicDB != nil },
		func() int {
			if seismicDB != nil {
				return seismicDB.Len()
			}
			return 0
		},
	))
}

// initHandlers costruisce gli handler sui servizi
func (s *Server) initHandlers() {
	s.atecoHandler = handlers.NewAtecoHandler(s.atecoService)
	s.riskHandler = handlers.NewRiskHandler(s.riskService)
	s.visuraHandler = handlers.NewVisuraHandler(s.visuraService)
	s.seismicHandler = handlers.NewSeismicHandler(s.seismicService)
	s.sessionHandler = handlers.NewSessionHandler(s.sessionService)
}

// Close rilascia le risorse del server
func (s *Server) Close() error {
	return s.db.Close()
}
