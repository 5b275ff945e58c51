// internal/store/blocking.go
package store

import "context"

// Blocking exposes the same operations as Store without a context parameter.
// It exists for the few call sites that cannot carry a request context, such
// as startup probes and seeding. It is not a drop-in replacement for Store:
// calls cannot be cancelled, so it must not be used on request paths that are
// expected to stay responsive. It shares the wrapped Store's connection pool.
type Blocking struct {
    Store Store
}

func (b *Blocking) Insert(collection string, doc any) (string, error) {
    return b.Store.Insert(context.Background(), collection, doc)
}

func (b *Blocking) FindByID(collection, id string) (*Document, error) {
    return b.Store.FindByID(context.Background(), collection, id)
}

func (b *Blocking) Find(collection string, filter map[string]any, limit int) ([]Document, error) {
    return b.Store.Find(context.Background(), collection, filter, limit)
}

func (b *Blocking) Update(collection, id string, patch map[string]any) (bool, error) {
    return b.Store.Update(context.Background(), collection, id, patch)
}

func (b *Blocking) Delete(collection, id string) (bool, error) {
    return b.Store.Delete(context.Background(), collection, id)
}

func (b *Blocking) Count(collection string, filter map[string]any) (int, error) {
    return b.Store.Count(context.Background(), collection, filter)
}
