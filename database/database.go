// Package database incapsula l'accesso SQLite per sessioni di valutazione
// e assessment di rischio.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig configurazione del connection pooling.
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB connessione al database di servizio con le migrazioni applicate.
type DB struct {
	conn *sql.DB
}

// NewDB apre il database al percorso indicato con la configurazione di
// default. Per i database in memoria il pool è limitato a una connessione,
// altrimenti ogni connessione vedrebbe un database vuoto.
func NewDB(dbPath string) (*DB, error) {
	config := DBConfig{}
	if isInMemory(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}
	return NewDBWithConfig(dbPath, config)
}

// dsnWithForeignKeys abilita i vincoli di FK, spenti di default in SQLite.
func dsnWithForeignKeys(dbPath string) string {
	if strings.Contains(dbPath, "_foreign_keys=") {
		return dbPath
	}
	if strings.Contains(dbPath, "?") {
		return dbPath + "&_foreign_keys=on"
	}
	return dbPath + "?_foreign_keys=on"
}

// isInMemory riconosce i percorsi SQLite in memoria.
func isInMemory(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// NewDBWithConfig apre il database con una configurazione esplicita del
// pool e applica le migrazioni.
func NewDBWithConfig(dbPath string, config DBConfig) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsnWithForeignKeys(dbPath))
	if err != nil {
		return nil, fmt.Errorf("apertura database fallita: %w", err)
	}

	// SQLite regge male molte connessioni concorrenti: pool contenuto
	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		conn.SetMaxOpenConns(10)
	}
	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}
	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database fallito: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// migrate applica le migrazioni non ancora eseguite, in ordine.
func (db *DB) migrate() error {
	migrations := []struct {
		name string
		fn   func(*sql.DB) error
	}{
		{"create_sessions", migrateSessions},
		{"create_assessments", migrateAssessments},
	}
	for _, m := range migrations {
		if err := ensureMigrationApplied(db.conn, m.name, m.fn); err != nil {
			return err
		}
	}
	return nil
}

// Ping verifica che la connessione sia viva.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Close chiude la connessione.
func (db *DB) Close() error {
	return db.conn.Close()
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
