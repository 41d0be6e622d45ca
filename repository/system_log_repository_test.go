package repository

import (
	"context"
	"testing"

	"archiver/models"
	"archiver/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemLogRepository_Record(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewSystemLogRepository(testDB.DB)
	ctx := context.Background()

	err := repo.Record(ctx, "settlement run failed: connection refused", models.SystemLogError)
	require.NoError(t, err)

	var description string
	var kind int
	err = testDB.DB.Pool.QueryRow(ctx,
		"SELECT description, kind FROM public.system_log").Scan(&description, &kind)
	require.NoError(t, err)

	assert.Equal(t, "settlement run failed: connection refused", description)
	assert.Equal(t, int(models.SystemLogError), kind)
}
