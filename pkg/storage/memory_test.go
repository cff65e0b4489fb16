package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "contracts/K123_1.pdf", bytes.NewReader([]byte("one")), "application/pdf"))
	require.NoError(t, store.Upload(ctx, "contracts/K123_2.pdf", bytes.NewReader([]byte("two")), "application/pdf"))
	require.NoError(t, store.Upload(ctx, "templates/invoice.pdf", bytes.NewReader([]byte("tpl")), "application/pdf"))

	data, err := store.Download(ctx, "contracts/K123_2.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), data)

	keys, err := store.List(ctx, "contracts/K123_")
	require.NoError(t, err)
	assert.Equal(t, []string{"contracts/K123_1.pdf", "contracts/K123_2.pdf"}, keys)
}

func TestMemoryStore_DownloadMissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Download(context.Background(), "contracts/absent.pdf")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
