// internal/store/postgres.go
package store

import (
    "context"
    "database/sql"
    "database/sql/driver"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "net"

    "github.com/google/uuid"

    appErrors "github.com/poornaderedla/twain-backend/internal/errors"
)

// Postgres stores each document as one JSONB row in a per-collection table.
// The collection name is validated against the fixed set before it is
// interpolated into a query. All methods share the process-wide *sql.DB pool
// initialized once at startup.
type Postgres struct {
    DB *sql.DB
}

func classify(op, collection string, err error) error {
    if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
        return appErrors.NewStorageUnavailable(err)
    }
    var netErr net.Error
    if errors.As(err, &netErr) {
        return appErrors.NewStorageUnavailable(err)
    }
    return appErrors.NewStorageWrite(op, collection, err)
}

func marshalFilter(filter map[string]any) ([]byte, error) {
    if filter == nil {
        filter = map[string]any{}
    }
    return json.Marshal(filter)
}

func (s *Postgres) Insert(ctx context.Context, collection string, doc any) (string, error) {
    if err := checkCollection(collection); err != nil {
        return "", err
    }
    body, err := json.Marshal(doc)
    if err != nil {
        return "", appErrors.NewStorageWrite("insert", collection, err)
    }
    id := uuid.NewString()
    query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb)`, collection)
    if _, err := s.DB.ExecContext(ctx, query, id, string(body)); err != nil {
        slog.Error("document insert failed", "collection", collection, "err", err)
        return "", classify("insert", collection, err)
    }
    slog.Info("document inserted", "collection", collection, "id", id)
    return id, nil
}

func (s *Postgres) FindByID(ctx context.Context, collection, id string) (*Document, error) {
    if err := checkCollection(collection); err != nil {
        return nil, err
    }
    query := fmt.Sprintf(`SELECT doc FROM %s WHERE id=$1`, collection)
    var data []byte
    err := s.DB.QueryRowContext(ctx, query, id).Scan(&data)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        slog.Error("document lookup failed", "collection", collection, "id", id, "err", err)
        return nil, classify("find", collection, err)
    }
    slog.Info("document fetched", "collection", collection, "id", id)
    return &Document{ID: id, Data: data}, nil
}

func (s *Postgres) Find(ctx context.Context, collection string, filter map[string]any, limit int) ([]Document, error) {
    if err := checkCollection(collection); err != nil {
        return nil, err
    }
    if limit < 1 {
        limit = 100
    }
    f, err := marshalFilter(filter)
    if err != nil {
        return nil, classify("find", collection, err)
    }
    query := fmt.Sprintf(`SELECT id, doc FROM %s WHERE doc @> $1::jsonb ORDER BY created_at LIMIT $2`, collection)
    rows, err := s.DB.QueryContext(ctx, query, string(f), limit)
    if err != nil {
        slog.Error("document query failed", "collection", collection, "err", err)
        return nil, classify("find", collection, err)
    }
    defer rows.Close()

    docs := []Document{}
    for rows.Next() {
        var d Document
        if err := rows.Scan(&d.ID, &d.Data); err != nil {
            return nil, classify("find", collection, err)
        }
        docs = append(docs, d)
    }
    if err := rows.Err(); err != nil {
        return nil, classify("find", collection, err)
    }
    slog.Info("documents found", "collection", collection, "count", len(docs))
    return docs, nil
}

func (s *Postgres) Update(ctx context.Context, collection, id string, patch map[string]any) (bool, error) {
    if err := checkCollection(collection); err != nil {
        return false, err
    }
    body, err := json.Marshal(patch)
    if err != nil {
        return false, appErrors.NewStorageWrite("update", collection, err)
    }
    query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2::jsonb WHERE id=$1`, collection)
    res, err := s.DB.ExecContext(ctx, query, id, string(body))
    if err != nil {
        slog.Error("document update failed", "collection", collection, "id", id, "err", err)
        return false, classify("update", collection, err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, classify("update", collection, err)
    }
    slog.Info("document updated", "collection", collection, "id", id, "found", n > 0)
    return n > 0, nil
}

func (s *Postgres) Delete(ctx context.Context, collection, id string) (bool, error) {
    if err := checkCollection(collection); err != nil {
        return false, err
    }
    query := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, collection)
    res, err := s.DB.ExecContext(ctx, query, id)
    if err != nil {
        slog.Error("document delete failed", "collection", collection, "id", id, "err", err)
        return false, classify("delete", collection, err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, classify("delete", collection, err)
    }
    slog.Info("document deleted", "collection", collection, "id", id, "found", n > 0)
    return n > 0, nil
}

func (s *Postgres) Count(ctx context.Context, collection string, filter map[string]any) (int, error) {
    if err := checkCollection(collection); err != nil {
        return 0, err
    }
    f, err := marshalFilter(filter)
    if err != nil {
        return 0, classify("count", collection, err)
    }
    query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE doc @> $1::jsonb`, collection)
    var count int
    if err := s.DB.QueryRowContext(ctx, query, string(f)).Scan(&count); err != nil {
        slog.Error("document count failed", "collection", collection, "err", err)
        return 0, classify("count", collection, err)
    }
    slog.Info("documents counted", "collection", collection, "count", count)
    return count, nil
}

var _ Store = (*Postgres)(nil)
