// internal/store/store.go
package store

import (
    "context"
    "encoding/json"
    "fmt"
)

// The three logical document collections.
const (
    Personas  = "personas"
    Ideas     = "ideas"
    Campaigns = "campaigns"
)

var collections = map[string]bool{
    Personas:  true,
    Ideas:     true,
    Campaigns: true,
}

func checkCollection(name string) error {
    if !collections[name] {
        return fmt.Errorf("unknown collection: %s", name)
    }
    return nil
}

// Document is one stored record: an opaque identifier assigned at insert
// time plus the raw JSON body.
type Document struct {
    ID   string
    Data json.RawMessage
}

// Decode unmarshals the document body into v.
func (d Document) Decode(v any) error {
    return json.Unmarshal(d.Data, v)
}

// Store is the context-aware calling convention over the document
// collections. An empty Find result is a valid outcome, not an error;
// Update and Delete report a missing id as a false return, not an error.
type Store interface {
    Insert(ctx context.Context, collection string, doc any) (string, error)
    FindByID(ctx context.Context, collection, id string) (*Document, error)
    Find(ctx context.Context, collection string, filter map[string]any, limit int) ([]Document, error)
    Update(ctx context.Context, collection, id string, patch map[string]any) (bool, error)
    Delete(ctx context.Context, collection, id string) (bool, error)
    Count(ctx context.Context, collection string, filter map[string]any) (int, error)
}
