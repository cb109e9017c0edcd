package monitoring

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakePinger struct{ err error }

func (f *fakePinger) Ping() error { return f.err }

// TestCheck_TuttoSano verifica lo stato healthy con tutti i componenti
// registrati
func TestCheck_TuttoSano(t *testing.T) {
	hc := NewHealthChecker("1.0")
	hc.RegisterComponent("database", DatabaseCheck(&fakePinger{}))
	hc.RegisterComponent("dataset", DatasetCheck(
		func() bool { return true },
		func() int { return 3129 },
	))

	report := hc.Check(context.Background())
	if report.Status != StatusHealthy {
		t.Errorf("stato = %s, atteso healthy", report.Status)
	}
	if len(report.Components) != 3 {
		t.Errorf("componenti = %d, attesi 3", len(report.Components))
	}
	if report.Components["dataset"].Details["rows"] != 3129 {
		t.Errorf("dettagli dataset = %+v", report.Components["dataset"].Details)
	}
}

// TestCheck_DatabaseGiu verifica unhealthy quando il database non risponde
func TestCheck_DatabaseGiu(t *testing.T) {
	hc := NewHealthChecker("1.0")
	hc.RegisterComponent("database", DatabaseCheck(&fakePinger{err: errors.New("connessione rifiutata")}))

	report := hc.Check(context.Background())
	if report.Status != StatusUnhealthy {
		t.Errorf("stato = %s, atteso unhealthy", report.Status)
	}
}

// TestCheck_DatasetAssente verifica degraded per componenti secondari
func TestCheck_DatasetAssente(t *testing.T) {
	hc := NewHealthChecker("1.0")
	hc.RegisterComponent("dataset", DatasetCheck(
		func() bool { return false },
		func() int { return 0 },
	))

	report := hc.Check(context.Background())
	if report.Status != StatusDegraded {
		t.Errorf("stato = %s, atteso degraded", report.Status)
	}
}

// TestHTTPHandler verifica il 503 su stato unhealthy
func TestHTTPHandler(t *testing.T) {
	hc := NewHealthChecker("1.0")
	hc.RegisterComponent("database", DatabaseCheck(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	hc.HTTPHandler()(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, atteso 503", w.Code)
	}
}

// TestReadinessHandler verifica ready su stato degraded
func TestReadinessHandler(t *testing.T) {
	hc := NewHealthChecker("1.0")
	hc.RegisterComponent("dataset", DatasetCheck(
		func() bool { return false },
		func() int { return 0 },
	))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	hc.ReadinessHandler()(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, atteso 200 su degraded", w.Code)
	}
}
