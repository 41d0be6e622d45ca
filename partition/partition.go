// Package partition maps calendar dates to the year/month-partitioned
// schema and table names used by the archive stores. Partition tables are
// never statically known, so their identifiers are interpolated into SQL;
// every identifier produced here is built from a closed entity enum plus
// digit-only date suffixes, and a Locator is the only value the repositories
// accept as a query target.
package partition

import (
	"fmt"
	"time"
)

// Entity is a partitioned logical table. The set is closed: only values
// declared here can become part of a SQL identifier.
type Entity string

const (
	OpeningBalance Entity = "opening_balance"
	CreditDebt     Entity = "credit_debt"
)

// MinYear is the hard historical floor: no partition exists before it, and
// checkpoint discovery walking past it is a provisioning error.
const MinYear = 2020

// Locator addresses one monthly partition of one entity.
type Locator struct {
	Schema string
	Table  string
}

// String renders the fully qualified table reference.
func (l Locator) String() string {
	return l.Schema + "." + l.Table
}

// SchemaName returns the year-partitioned archive schema for a date.
func SchemaName(date time.Time) string {
	return fmt.Sprintf("archive_%d", date.Year())
}

// TableName returns the month-partitioned table name for an entity and date.
func TableName(entity Entity, date time.Time) string {
	return fmt.Sprintf("%s_%d_%02d", entity, date.Year(), int(date.Month()))
}

// For locates the partition a given date lands in. Dates before MinYear are
// rejected: nothing was ever provisioned there.
func For(entity Entity, date time.Time) (Locator, error) {
	if date.Year() < MinYear {
		return Locator{}, fmt.Errorf("no %s partition exists before %d (got %s)", entity, MinYear, date.Format("2006-01-02"))
	}
	return Locator{
		Schema: SchemaName(date),
		Table:  TableName(entity, date),
	}, nil
}
