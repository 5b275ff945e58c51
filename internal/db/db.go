// internal/db/db.go
package db

import (
    "database/sql"
    "fmt"
    "log"
    "os"

    _ "github.com/lib/pq"
)

var DB *sql.DB

func Init() {
    user := os.Getenv("DB_USER")
    pass := os.Getenv("DB_PASSWORD")
    host := os.Getenv("DB_HOST")
    port := os.Getenv("DB_PORT")
    name := os.Getenv("DB_NAME")

    dsn := fmt.Sprintf(
        "postgres://%s:%s@%s:%s/%s?sslmode=disable",
        user, pass, host, port, name,
    )

    var err error
    DB, err = sql.Open("postgres", dsn)
    if err != nil {
        log.Fatalf("failed to connect to DB: %v", err)
    }

    if err = DB.Ping(); err != nil {
        log.Fatalf("failed to ping DB: %v", err)
    }

    log.Println("✅ Connected to database")
}

// Migrate creates the three document collection tables if they are missing.
func Migrate() {
    for _, table := range []string{"personas", "ideas", "campaigns"} {
        query := fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                id TEXT PRIMARY KEY,
                doc JSONB NOT NULL,
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )
        `, table)
        if _, err := DB.Exec(query); err != nil {
            log.Fatalf("failed to create table %s: %v", table, err)
        }
    }
    log.Println("✅ Collections ready")
}
