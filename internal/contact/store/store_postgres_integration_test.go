//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeher/internal/platform/postgres"
	"safeher/pkg/platform/sentinel"
	"safeher/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, pg.DB))
	s := NewPostgres(pg.DB)

	meera := newContact("asha_k", "Meera")
	require.NoError(t, s.Create(ctx, meera))
	require.NoError(t, s.Create(ctx, newContact("bob_1", "Carol")))

	list, err := s.ListByUser(ctx, "asha_k")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, meera.ID, list[0].ID)
	assert.Equal(t, "9876543210", list[0].Phone)
	assert.True(t, meera.CreatedAt.Equal(list[0].CreatedAt))

	assert.ErrorIs(t, s.Delete(ctx, "bob_1", meera.ID), sentinel.ErrNotFound)
	require.NoError(t, s.Delete(ctx, "asha_k", meera.ID))
	list, err = s.ListByUser(ctx, "asha_k")
	require.NoError(t, err)
	assert.Empty(t, list)
}
