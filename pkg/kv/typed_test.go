package kv_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/kv"
)

type record struct {
	Name    string    `json:"name" yaml:"name"`
	Tags    []string  `json:"tags" yaml:"tags"`
	Updated time.Time `json:"updated" yaml:"updated"`
}

func TestValue_RoundTripPerCodec(t *testing.T) {
	want := record{Name: "n", Tags: []string{"a", "b"}, Updated: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)}

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			codec, err := kv.CodecFor(format)
			require.NoError(t, err)
			assert.Equal(t, format, codec.Name())

			store := kv.NewMemoryStore()
			v := kv.NewValue[record](store, "rec", codec)
			ctx := context.Background()

			_, ok, err := v.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, v.Save(ctx, want))
			got, ok, err := v.Load(ctx)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want.Name, got.Name)
			assert.Equal(t, want.Tags, got.Tags)
			assert.True(t, want.Updated.Equal(got.Updated))

			require.NoError(t, v.Delete(ctx))
			_, ok, err = v.Load(ctx)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestValue_DecodeError(t *testing.T) {
	store := kv.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "rec", []byte("{not json")))

	_, _, err := kv.NewValue[record](store, "rec", nil).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode rec as json")
}

func TestCodecFor_Unknown(t *testing.T) {
	_, err := kv.CodecFor("toml")
	assert.Error(t, err)
}
