// internal/store/memory.go
package store

import (
    "bytes"
    "context"
    "encoding/json"
    "log/slog"
    "sync"

    "github.com/google/uuid"
)

// Memory is a map-backed Store. It backs tests and DB-less demo wiring and
// honors the same contract as Postgres: empty Find results are not errors
// and Update/Delete report a missing id as false.
type Memory struct {
    mu    sync.Mutex
    docs  map[string]map[string]json.RawMessage
    order map[string][]string
}

func NewMemory() *Memory {
    return &Memory{
        docs:  make(map[string]map[string]json.RawMessage),
        order: make(map[string][]string),
    }
}

func (m *Memory) Insert(_ context.Context, collection string, doc any) (string, error) {
    if err := checkCollection(collection); err != nil {
        return "", err
    }
    body, err := json.Marshal(doc)
    if err != nil {
        slog.Error("document insert failed", "collection", collection, "err", err)
        return "", err
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    if m.docs[collection] == nil {
        m.docs[collection] = make(map[string]json.RawMessage)
    }
    id := uuid.NewString()
    m.docs[collection][id] = body
    m.order[collection] = append(m.order[collection], id)
    slog.Info("document inserted", "collection", collection, "id", id)
    return id, nil
}

func (m *Memory) FindByID(_ context.Context, collection, id string) (*Document, error) {
    if err := checkCollection(collection); err != nil {
        return nil, err
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    body, ok := m.docs[collection][id]
    if !ok {
        slog.Info("document fetched", "collection", collection, "id", id, "found", false)
        return nil, nil
    }
    slog.Info("document fetched", "collection", collection, "id", id)
    return &Document{ID: id, Data: body}, nil
}

func (m *Memory) Find(_ context.Context, collection string, filter map[string]any, limit int) ([]Document, error) {
    if err := checkCollection(collection); err != nil {
        return nil, err
    }
    if limit < 1 {
        limit = 100
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    docs := []Document{}
    for _, id := range m.order[collection] {
        body, ok := m.docs[collection][id]
        if !ok || !matches(body, filter) {
            continue
        }
        docs = append(docs, Document{ID: id, Data: body})
        if len(docs) == limit {
            break
        }
    }
    slog.Info("documents found", "collection", collection, "count", len(docs))
    return docs, nil
}

func (m *Memory) Update(_ context.Context, collection, id string, patch map[string]any) (bool, error) {
    if err := checkCollection(collection); err != nil {
        return false, err
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    body, ok := m.docs[collection][id]
    if !ok {
        slog.Info("document updated", "collection", collection, "id", id, "found", false)
        return false, nil
    }
    var doc map[string]any
    if err := json.Unmarshal(body, &doc); err != nil {
        slog.Error("document update failed", "collection", collection, "id", id, "err", err)
        return false, err
    }
    for k, v := range patch {
        doc[k] = v
    }
    merged, err := json.Marshal(doc)
    if err != nil {
        slog.Error("document update failed", "collection", collection, "id", id, "err", err)
        return false, err
    }
    m.docs[collection][id] = merged
    slog.Info("document updated", "collection", collection, "id", id, "found", true)
    return true, nil
}

func (m *Memory) Delete(_ context.Context, collection, id string) (bool, error) {
    if err := checkCollection(collection); err != nil {
        return false, err
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    if _, ok := m.docs[collection][id]; !ok {
        slog.Info("document deleted", "collection", collection, "id", id, "found", false)
        return false, nil
    }
    delete(m.docs[collection], id)
    slog.Info("document deleted", "collection", collection, "id", id, "found", true)
    return true, nil
}

func (m *Memory) Count(_ context.Context, collection string, filter map[string]any) (int, error) {
    if err := checkCollection(collection); err != nil {
        return 0, err
    }
    m.mu.Lock()
    defer m.mu.Unlock()
    count := 0
    for _, body := range m.docs[collection] {
        if matches(body, filter) {
            count++
        }
    }
    slog.Info("documents counted", "collection", collection, "count", count)
    return count, nil
}

// matches checks top-level field equality between the stored document and
// the filter, comparing the JSON encodings of the values.
func matches(body json.RawMessage, filter map[string]any) bool {
    if len(filter) == 0 {
        return true
    }
    var doc map[string]json.RawMessage
    if err := json.Unmarshal(body, &doc); err != nil {
        return false
    }
    for k, want := range filter {
        have, ok := doc[k]
        if !ok {
            return false
        }
        wantJSON, err := json.Marshal(want)
        if err != nil {
            return false
        }
        if !bytes.Equal(bytes.TrimSpace(have), wantJSON) {
            return false
        }
    }
    return true
}

var _ Store = (*Memory)(nil)
