// Package monitoring espone lo stato di salute dei componenti del
// servizio per probe di liveness e readiness.
package monitoring

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"sync"
	"time"

	"atecoserver/server/middleware"
)

// HealthStatus stato complessivo o di un singolo componente
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth lo stato di un singolo componente
type ComponentHealth struct {
	Status    HealthStatus   `json:"status"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CheckedAt time.Time      `json:"checked_at"`
	Duration  string         `json:"duration"`
}

// HealthReport il referto completo del check
type HealthReport struct {
	Status     HealthStatus               `json:"status"`
	Version    string                     `json:"version"`
	Uptime     string                     `json:"uptime"`
	Components map[string]ComponentHealth `json:"components"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// HealthCheckFunc verifica un componente. Errore = unhealthy.
type HealthCheckFunc func(ctx context.Context) (map[string]any, error)

// HealthChecker raccoglie i check dei componenti registrati
type HealthChecker struct {
	mu         sync.RWMutex
	components map[string]HealthCheckFunc
	version    string
	startTime  time.Time
}

// NewHealthChecker costruisce il checker con il check di sistema già
// registrato
func NewHealthChecker(version string) *HealthChecker {
	hc := &HealthChecker{
		components: make(map[string]HealthCheckFunc),
		version:    version,
		startTime:  time.Now(),
	}
	hc.RegisterComponent("sistema", systemCheck)
	return hc
}

// RegisterComponent aggiunge un componente al check
func (hc *HealthChecker) RegisterComponent(name string, check HealthCheckFunc) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.components[name] = check
}

// Pinger dipendenza che sa verificare la propria raggiungibilità
type Pinger interface {
	Ping() error
}

// DatabaseCheck check di un database tramite ping
func DatabaseCheck(db Pinger) HealthCheckFunc {
	return func(ctx context.Context) (map[string]any, error) {
		if db == nil {
			return nil, fmt.Errorf("database non configurato")
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("ping fallito: %w", err)
		}
		return nil, nil
	}
}

// DatasetCheck check di un dataset caricato in memoria
func DatasetCheck(loaded func() bool, size func() int) HealthCheckFunc {
	return func(ctx context.Context) (map[string]any, error) {
		if !loaded() {
			return nil, fmt.Errorf("dataset non caricato")
		}
		return map[string]any{"rows": size()}, nil
	}
}

// systemCheck memoria e goroutine del processo
func systemCheck(ctx context.Context) (map[string]any, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return map[string]any{
		"goroutines": runtime.NumGoroutine(),
		"alloc_mb":   m.Alloc / 1024 / 1024,
		"sys_mb":     m.Sys / 1024 / 1024,
		"num_gc":     m.NumGC,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
	}, nil
}

// Check esegue tutti i check registrati. Lo stato complessivo è unhealthy
// se il database è giù, degraded se un componente secondario fallisce.
func (hc *HealthChecker) Check(ctx context.Context) *HealthReport {
	hc.mu.RLock()
	checks := make(map[string]HealthCheckFunc, len(hc.components))
	for name, fn := range hc.components {
		checks[name] = fn
	}
	hc.mu.RUnlock()

	report := &HealthReport{
		Status:     StatusHealthy,
		Version:    hc.version,
		Uptime:     time.Since(hc.startTime).Round(time.Second).String(),
		Components: make(map[string]ComponentHealth, len(checks)),
		Timestamp:  time.Now().UTC(),
	}

	for name, fn := range checks {
		start := time.Now()
		details, err := fn(ctx)

		component := ComponentHealth{
			Status:    StatusHealthy,
			Details:   details,
			CheckedAt: start.UTC(),
			Duration:  time.Since(start).String(),
		}
		if err != nil {
			component.Status = StatusUnhealthy
			component.Message = err.Error()
			if name == "database" {
				report.Status = StatusUnhealthy
			} else if report.Status == StatusHealthy {
				report.Status = StatusDegraded
			}
		}
		report.Components[name] = component
	}

	return report
}

// HTTPHandler risponde con il referto completo, 503 se unhealthy
func (hc *HealthChecker) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report := hc.Check(ctx)
		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		middleware.WriteJSONResponse(w, status, report)
	}
}

// LivenessHandler probe minimale: il processo risponde
func (hc *HealthChecker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "alive"})
	}
}

// ReadinessHandler probe di readiness: pronto solo se healthy o degraded
func (hc *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report := hc.Check(ctx)
		if report.Status == StatusUnhealthy {
			middleware.WriteJSONResponse(w, http.StatusServiceUnavailable,
				map[string]string{"status": "not_ready"})
			return
		}
		middleware.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// LogHealthStatus logga periodicamente lo stato fino alla chiusura di stop
func (hc *HealthChecker) LogHealthStatus(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			report := hc.Check(context.Background())
			if report.Status != StatusHealthy {
				log.Printf("⚠️ Stato servizio: %s", report.Status)
				for name, c := range report.Components {
					if c.Status != StatusHealthy {
						log.Printf("  - %s: %s (%s)", name, c.Status, c.Message)
					}
				}
			}
		case <-stop:
			return
		}
	}
}
