package visits

import (
	"context"
	"testing"

	"github.com/arboleda/arboleda/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryImpl_IncrementAndCount(t *testing.T) {
	// given
	db := test_utils.TestWithDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	// when
	initial, err := repo.Count(ctx)
	require.NoError(t, err)
	first, err := repo.Increment(ctx)
	require.NoError(t, err)
	second, err := repo.Increment(ctx)
	require.NoError(t, err)

	// then
	assert.Equal(t, int64(0), initial)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
