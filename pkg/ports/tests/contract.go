package tests

import (
	"context"
	"testing"

	"github.com/aretw0/bpmnpath/pkg/domain"
	"github.com/aretw0/bpmnpath/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefinitionSourceContractTest is a reusable test suite that verifies if an adapter complies with ports.DefinitionSource.
// setupData maps every key the source is expected to serve to its XML.
func DefinitionSourceContractTest(t *testing.T, source ports.DefinitionSource, setupData map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Fetch_Success", func(t *testing.T) {
		for key, xml := range setupData {
			def, err := source.Fetch(ctx, key)
			require.NoError(t, err, "fetching %s", key)
			assert.Equal(t, xml, def.XML, "xml mismatch for %s", key)
			assert.Equal(t, key, def.Key)
		}
	})

	t.Run("Fetch_NotFound", func(t *testing.T) {
		_, err := source.Fetch(ctx, "non-existent-definition")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})
}

// DefinitionCacheContractTest verifies that a cache adapter complies with ports.DefinitionCache.
func DefinitionCacheContractTest(t *testing.T, cache ports.DefinitionCache) {
	t.Helper()
	ctx := context.Background()
	def := &domain.Definition{
		ID:  "invoice:1:6",
		Key: "invoice",
		XML: `<definitions><process id="invoice"/></definitions>`,
	}

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, "invoice", def))

		got, err := cache.Get(ctx, "invoice")
		require.NoError(t, err)
		assert.Equal(t, def, got)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		got, err := cache.Get(ctx, "invoice")
		require.NoError(t, err)
		got.XML = "mutated"

		again, err := cache.Get(ctx, "invoice")
		require.NoError(t, err)
		assert.Equal(t, def.XML, again.XML)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, "invoice"))

		_, err := cache.Get(ctx, "invoice")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)

		assert.NoError(t, cache.Delete(ctx, "invoice"), "deleting twice is fine")
	})
}
