package config

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

var (
	db   *sql.DB
	dbMu sync.Mutex
)

// ConnectDB opens the shared pool for the booking archive. The archive is
// optional: an empty DSN leaves it disabled, and a failed connection disables
// it with a warning instead of killing the service — the booking flow itself
// never touches the database.
func ConnectDB(dsn string) *sql.DB {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		return db
	}
	if dsn == "" {
		log.Println("MYSQL_DSN not set; booking archive disabled")
		return nil
	}

	conn, err := sql.Open("mysql", ensureParseTime(dsn))
	if err != nil {
		log.Printf("warning: open archive db failed: %v", err)
		return nil
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(25)
	conn.SetConnMaxLifetime(10 * time.Minute)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		log.Printf("warning: ping archive db failed, archive disabled: %v", err)
		_ = conn.Close()
		return nil
	}

	db = conn
	log.Println("connected to booking archive database")
	return db
}

// ensureParseTime forces parseTime=true onto the DSN so TIMESTAMP columns scan
// into time.Time no matter how the operator wrote it.
func ensureParseTime(dsn string) string {
	if strings.Contains(dsn, "parseTime") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&parseTime=true"
	}
	return dsn + "?parseTime=true"
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		_ = db.Close()
		db = nil
	}
}
