package kv

import (
	"context"
	"errors"
	"fmt"
)

// Value binds a key of a Store to a Go type through a Codec.
type Value[T any] struct {
	store Store
	key   string
	codec Codec
}

// NewValue returns a typed view of key. A nil codec means JSON.
func NewValue[T any](store Store, key string, codec Codec) *Value[T] {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Value[T]{store: store, key: key, codec: codec}
}

// Key returns the underlying key.
func (v *Value[T]) Key() string {
	return v.key
}

// Load decodes the stored value. ok is false when the key is absent.
func (v *Value[T]) Load(ctx context.Context) (val T, ok bool, err error) {
	data, err := v.store.Get(ctx, v.key)
	if errors.Is(err, ErrNotFound) {
		return val, false, nil
	}
	if err != nil {
		return val, false, err
	}
	if err := v.codec.Unmarshal(data, &val); err != nil {
		return val, false, fmt.Errorf("decode %s as %s: %w", v.key, v.codec.Name(), err)
	}
	return val, true, nil
}

// Save encodes and stores val.
func (v *Value[T]) Save(ctx context.Context, val T) error {
	data, err := v.codec.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s as %s: %w", v.key, v.codec.Name(), err)
	}
	return v.store.Set(ctx, v.key, data)
}

// Delete removes the key.
func (v *Value[T]) Delete(ctx context.Context) error {
	return v.store.Delete(ctx, v.key)
}
