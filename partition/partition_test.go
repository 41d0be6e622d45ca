package partition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "archive_2024", SchemaName(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "archive_2020", SchemaName(time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC)))
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "opening_balance_2024_03", TableName(OpeningBalance, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "credit_debt_2023_12", TableName(CreditDebt, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "opening_balance_2021_10", TableName(OpeningBalance, time.Date(2021, 10, 15, 0, 0, 0, 0, time.UTC)))
}

func TestTableNameSameMonthSameTable(t *testing.T) {
	d1 := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 7, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, TableName(OpeningBalance, d1), TableName(OpeningBalance, d2))
}

func TestTableNameDifferentMonthsDiffer(t *testing.T) {
	base := time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC)
	seen := make(map[string]bool)
	for m := 0; m < 36; m++ {
		name := TableName(CreditDebt, base.AddDate(0, m, 0))
		assert.False(t, seen[name], "duplicate partition name %s", name)
		seen[name] = true
	}
}

func TestFor(t *testing.T) {
	loc, err := For(OpeningBalance, time.Date(2024, 2, 29, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "archive_2024", loc.Schema)
	assert.Equal(t, "opening_balance_2024_02", loc.Table)
	assert.Equal(t, "archive_2024.opening_balance_2024_02", loc.String())
}

func TestForRejectsDatesBeforeFloor(t *testing.T) {
	_, err := For(CreditDebt, time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}
