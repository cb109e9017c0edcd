// Package config carica la configurazione del servizio dalle variabili
// d'ambiente, con default pensati per l'ambiente di sviluppo.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config configurazione del server
type Config struct {
	// Server
	Port string `json:"port"`
	Host string `json:"host"`

	// Percorsi dei dati
	DatasetPath   string `json:"dataset_path"`
	MappingPath   string `json:"mapping_path"`
	RiskDataPath  string `json:"risk_data_path"`
	SeismicDBPath string `json:"seismic_db_path"`

	// Database delle sessioni
	DatabasePath    string        `json:"database_path"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Rate limiting
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// Timeout HTTP
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout"`
}

// LoadConfig legge la configurazione dalle variabili d'ambiente
func LoadConfig() (*Config, error) {
	config := &Config{
		Port: getEnv("SERVER_PORT", "8000"),
		Host: getEnv("SERVER_HOST", "localhost"),

		DatasetPath:   getEnv("ATECO_DATASET_PATH", "tabella_ATECO.xlsx"),
		MappingPath:   getEnv("ATECO_MAPPING_PATH", "mapping.yaml"),
		RiskDataPath:  getEnv("RISK_DATA_PATH", "MAPPATURE_EXCEL_PERFETTE.json"),
		SeismicDBPath: getEnv("SEISMIC_DB_PATH", "zone_sismiche_comuni.json"),

		DatabasePath:    getEnv("DATABASE_PATH", "sessions.db"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 3),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 100),

		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configurazione non valida: %w", err)
	}
	return config, nil
}

// Validate controlli di coerenza sui valori caricati
func (c *Config) Validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("porta non valida: %q", c.Port)
	}
	if c.DatasetPath == "" {
		return fmt.Errorf("percorso dataset vuoto")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("percorso database vuoto")
	}
	if c.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns deve essere positivo: %d", c.MaxOpenConns)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit non valido: rps=%v burst=%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	return nil
}

// Addr indirizzo di ascolto del server
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
