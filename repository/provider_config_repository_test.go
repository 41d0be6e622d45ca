package repository

import (
	"context"
	"testing"

	"archiver/models"
	"archiver/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderConfigRepository_GetAll(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewProviderConfigRepository(testDB.DB)
	ctx := context.Background()

	_, err := testDB.DB.Pool.Exec(ctx, `
		INSERT INTO public.provider_config (game_provider, config) VALUES
		($1, '{"apiUrl":"https://pragmatic.example","secretKey":"s1"}'),
		($2, '{"host":"https://ae.example","cert":"c1"}')
	`, models.ProviderPragmaticLive, models.ProviderSexy)
	require.NoError(t, err)

	configs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	assert.JSONEq(t, `{"apiUrl":"https://pragmatic.example","secretKey":"s1"}`,
		string(configs[models.ProviderPragmaticLive]))
	assert.Contains(t, configs, models.ProviderSexy)
	assert.NotContains(t, configs, models.ProviderAmeba)
}
