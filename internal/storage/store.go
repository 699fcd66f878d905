// Package storage keeps the small amount of durable client state the portal
// owns: a per-visitor key/value bucket, the server-side stand-in for browser
// local storage.
package storage

import (
	"context"
	"errors"
)

// ErrNamespaceRequired is returned when a call has no namespace.
var ErrNamespaceRequired = errors.New("storage: namespace required")

// Store is a namespaced key/value backend.
type Store interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Items(ctx context.Context, namespace string) (map[string]string, error)
	// SetItems writes all items or none.
	SetItems(ctx context.Context, namespace string, items map[string]string) error
	Delete(ctx context.Context, namespace string, keys ...string) error
	Clear(ctx context.Context, namespace string) error
	Ping(ctx context.Context) error
}

// KeyValue is one visitor's storage, shaped like browser local storage.
type KeyValue interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	SetItems(ctx context.Context, items map[string]string) error
	RemoveItem(ctx context.Context, key string) error
	Items(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}

// Bucket binds a Store to a single namespace.
type Bucket struct {
	store     Store
	namespace string
}

// NewBucket returns the KeyValue view of namespace in store.
func NewBucket(store Store, namespace string) *Bucket {
	return &Bucket{store: store, namespace: namespace}
}

// Namespace returns the bound namespace.
func (b *Bucket) Namespace() string {
	return b.namespace
}

func (b *Bucket) GetItem(ctx context.Context, key string) (string, bool, error) {
	return b.store.Get(ctx, b.namespace, key)
}

func (b *Bucket) SetItem(ctx context.Context, key, value string) error {
	return b.store.SetItems(ctx, b.namespace, map[string]string{key: value})
}

func (b *Bucket) SetItems(ctx context.Context, items map[string]string) error {
	return b.store.SetItems(ctx, b.namespace, items)
}

func (b *Bucket) RemoveItem(ctx context.Context, key string) error {
	return b.store.Delete(ctx, b.namespace, key)
}

func (b *Bucket) Items(ctx context.Context) (map[string]string, error) {
	return b.store.Items(ctx, b.namespace)
}

func (b *Bucket) Clear(ctx context.Context) error {
	return b.store.Clear(ctx, b.namespace)
}
