// Package prefs provides the key-value preference layer backing every
// repository. Each repository owns a namespace; values are stored as
// strings with typed accessors on top, mirroring the single-record
// full-replace lifecycle of the persisted settings.
package prefs

import (
	"context"
	"strconv"
)

// Store is the raw namespaced key-value surface.
type Store interface {
	GetString(ctx context.Context, namespace, key string) (value string, ok bool, err error)
	SetString(ctx context.Context, namespace, key, value string) error
	Contains(ctx context.Context, namespace, key string) (bool, error)
	Delete(ctx context.Context, namespace, key string) error
	Close() error
}

// Namespace binds a store to one preference namespace.
type Namespace struct {
	store Store
	name  string
}

func NewNamespace(store Store, name string) *Namespace {
	return &Namespace{store: store, name: name}
}

func (n *Namespace) GetString(ctx context.Context, key string) (string, bool, error) {
	return n.store.GetString(ctx, n.name, key)
}

func (n *Namespace) SetString(ctx context.Context, key, value string) error {
	return n.store.SetString(ctx, n.name, key, value)
}

func (n *Namespace) GetInt(ctx context.Context, key string) (int, bool, error) {
	s, ok, err := n.store.GetString(ctx, n.name, key)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (n *Namespace) SetInt(ctx context.Context, key string, value int) error {
	return n.store.SetString(ctx, n.name, key, strconv.Itoa(value))
}

func (n *Namespace) GetInt64(ctx context.Context, key string) (int64, bool, error) {
	s, ok, err := n.store.GetString(ctx, n.name, key)
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (n *Namespace) SetInt64(ctx context.Context, key string, value int64) error {
	return n.store.SetString(ctx, n.name, key, strconv.FormatInt(value, 10))
}

func (n *Namespace) GetBool(ctx context.Context, key string) (bool, bool, error) {
	s, ok, err := n.store.GetString(ctx, n.name, key)
	if err != nil || !ok {
		return false, false, err
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false, err
	}
	return v, true, nil
}

func (n *Namespace) SetBool(ctx context.Context, key string, value bool) error {
	return n.store.SetString(ctx, n.name, key, strconv.FormatBool(value))
}

func (n *Namespace) Contains(ctx context.Context, key string) (bool, error) {
	return n.store.Contains(ctx, n.name, key)
}

func (n *Namespace) Delete(ctx context.Context, key string) error {
	return n.store.Delete(ctx, n.name, key)
}
