package errors

import (
	"sync"
	"time"
)

// maxLastErrors quante voci restano nello storico recente
const maxLastErrors = 100

// MetricsCollector accumula le metriche degli errori serviti dall'API.
// Tutte le operazioni sono sicure per uso concorrente.
type MetricsCollector struct {
	mu sync.RWMutex

	totalErrors      int64
	errorsByCode     map[ErrorCode]int64
	errorsByStatus   map[int]int64
	errorsByEndpoint map[string]int64

	lastErrors []ErrorRecord
	startTime  time.Time
}

// ErrorRecord una voce dello storico errori recenti
type ErrorRecord struct {
	Timestamp   time.Time `json:"timestamp"`
	Code        ErrorCode `json:"code"`
	Status      int       `json:"status"`
	Message     string    `json:"message"`
	Endpoint    string    `json:"endpoint"`
	RequestID   string    `json:"request_id"`
	UserMessage string    `json:"user_message"`
}

// NewMetricsCollector costruisce un collettore vuoto
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		errorsByCode:     make(map[ErrorCode]int64),
		errorsByStatus:   make(map[int]int64),
		errorsByEndpoint: make(map[string]int64),
		startTime:        time.Now(),
	}
}

// Record registra un errore applicativo servito su un endpoint
func (mc *MetricsCollector) Record(err *AppError, endpoint, requestID string) {
	if err == nil {
		return
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.totalErrors++
	mc.errorsByCode[err.Code]++
	mc.errorsByStatus[err.StatusCode()]++
	if endpoint != "" {
		mc.errorsByEndpoint[endpoint]++
	}

	record := ErrorRecord{
		Timestamp:   time.Now(),
		Code:        err.Code,
		Status:      err.StatusCode(),
		Message:     err.Error(),
		Endpoint:    endpoint,
		RequestID:   requestID,
		UserMessage: err.UserMessage(),
	}
	mc.lastErrors = append([]ErrorRecord{record}, mc.lastErrors...)
	if len(mc.lastErrors) > maxLastErrors {
		mc.lastErrors = mc.lastErrors[:maxLastErrors]
	}
}

// Snapshot restituisce una copia delle metriche correnti
func (mc *MetricsCollector) Snapshot() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	byCode := make(map[ErrorCode]int64, len(mc.errorsByCode))
	for k, v := range mc.errorsByCode {
		byCode[k] = v
	}
	byStatus := make(map[int]int64, len(mc.errorsByStatus))
	for k, v := range mc.errorsByStatus {
		byStatus[k] = v
	}
	byEndpoint := make(map[string]int64, len(mc.errorsByEndpoint))
	for k, v := range mc.errorsByEndpoint {
		byEndpoint[k] = v
	}
	last := make([]ErrorRecord, len(mc.lastErrors))
	copy(last, mc.lastErrors)

	return map[string]interface{}{
		"total_errors":       mc.totalErrors,
		"errors_by_code":     byCode,
		"errors_by_status":   byStatus,
		"errors_by_endpoint": byEndpoint,
		"last_errors":        last,
		"uptime_seconds":     time.Since(mc.startTime).Seconds(),
	}
}

// LastErrors restituisce le ultime voci, fino a limit
func (mc *MetricsCollector) LastErrors(limit int) []ErrorRecord {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if limit <= 0 || limit > len(mc.lastErrors) {
		limit = len(mc.lastErrors)
	}
	out := make([]ErrorRecord, limit)
	copy(out, mc.lastErrors[:limit])
	return out
}

// Reset azzera tutte le metriche
func (mc *MetricsCollector) Reset() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.totalErrors = 0
	mc.errorsByCode = make(map[ErrorCode]int64)
	mc.errorsByStatus = make(map[int]int64)
	mc.errorsByEndpoint = make(map[string]int64)
	mc.lastErrors = nil
	mc.startTime = time.Now()
}

// metrics collettore di default alimentato dagli handler HTTP
var metrics = NewMetricsCollector()

// Metrics restituisce il collettore di default
func Metrics() *MetricsCollector {
	return metrics
}
