package server

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "atecoserver/server/errors"
	"atecoserver/server/handlers"
	"atecoserver/server/middleware"
)

// ensureHTTPHandler costruisce il router una sola volta
func (s *Server) ensureHTTPHandler() (http.Handler, error) {
	s.handlerOnce.Do(func() {
		handler, err := s.buildHTTPHandler()
		if err != nil {
			s.handlerInitErr = err
			return
		}
		s.httpHandler = handler
	})
	if s.handlerInitErr != nil {
		return nil, s.handlerInitErr
	}
	return s.httpHandler, nil
}

func (s *Server) buildHTTPHandler() (http.Handler, error) {
	// Release di default, sovrascrivibile con GIN_MODE
	if ginMode := os.Getenv("GIN_MODE"); ginMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.GinGzipMiddleware())
	router.Use(middleware.GinLoggerMiddleware())
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinRateLimitMiddleware(
		rate.Limit(s.config.RateLimitRPS), s.config.RateLimitBurst))

	handlers.RegisterSwaggerRoutes(router, s.config.Host+":"+s.config.Port)
	s.registerGinHandlers(router)

	log.Printf("Router configurato, swagger su /swagger/index.html")
	return router, nil
}

// registerGinHandlers registra tutti gli endpoint dell'API
func (s *Server) registerGinHandlers(router *gin.Engine) {
	// Banner di servizio
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "ATECO Lookup API",
			"version": Version,
			"status":  "operativo",
			"docs":    "/swagger/index.html",
		})
	})

	// Health check e probe
	router.GET("/health", gin.WrapF(s.healthChecker.HTTPHandler()))
	router.GET("/health/live", gin.WrapF(s.healthChecker.LivenessHandler()))
	router.GET("/health/ready", gin.WrapF(s.healthChecker.ReadinessHandler()))

	// Contatori degli errori serviti, per diagnosi operativa
	router.GET("/metrics/errors", func(c *gin.Context) {
		c.JSON(http.StatusOK, apperrors.Metrics().Snapshot())
	})

	// ATECO API
	atecoAPI := router.Group("/ateco")
	{
		atecoAPI.GET("/lookup", s.atecoHandler.HandleLookup)
		atecoAPI.GET("/autocomplete", s.atecoHandler.HandleAutocomplete)
		atecoAPI.POST("/batch", s.atecoHandler.HandleBatch)
		atecoAPI.GET("/search", s.atecoHandler.HandleSearchTitle)
		// Percorso storico, stesso comportamento di /ateco/lookup
		atecoAPI.GET("/db/lookup", s.atecoHandler.HandleLookup)
	}

	// Risk API
	riskAPI := router.Group("/risk")
	{
		riskAPI.GET("/categories", s.riskHandler.HandleCategories)
		riskAPI.GET("/events/:category", s.riskHandler.HandleEvents)
		riskAPI.GET("/description/:event_code", s.riskHandler.HandleDescription)
		riskAPI.GET("/assessment-fields", s.riskHandler.HandleAssessmentFields)
		riskAPI.POST("/save-assessment", s.riskHandler.HandleSaveAssessment)
		riskAPI.POST("/calculate-assessment", s.riskHandler.HandleCalculateAssessment)
	}

	// Visura API
	router.POST("/visura/extract", s.visuraHandler.HandleExtract)

	// Seismic API
	seismicAPI := router.Group("/seismic")
	{
		seismicAPI.GET("/zone", s.seismicHandler.HandleZone)
		seismicAPI.GET("/suggestions", s.seismicHandler.HandleSuggestions)
	}

	// Sessions API
	sessionsAPI := router.Group("/sessions")
	{
		sessionsAPI.POST("", s.sessionHandler.HandleCreate)
		sessionsAPI.GET("/:id", s.sessionHandler.HandleGet)
		sessionsAPI.POST("/:id/touch", s.sessionHandler.HandleTouch)
	}
}
