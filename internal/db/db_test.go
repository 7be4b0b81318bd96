package db

import (
	"io/fs"
	"strings"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN_ForcesParseTimeAndUTC(t *testing.T) {
	dsn, err := mysqlDSN("root:secret@tcp(db:3306)/glamconnect_db", true)
	require.NoError(t, err)

	parsed, err := mysqldrv.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, parsed.ParseTime)
	assert.True(t, parsed.MultiStatements)
	assert.Equal(t, "UTC", parsed.Loc.String())
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
	assert.Equal(t, "glamconnect_db", parsed.DBName)
}

func TestMySQLDSN_RejectsGarbage(t *testing.T) {
	_, err := mysqlDSN("not a dsn", false)
	require.Error(t, err)
}

func TestMigrations_EveryUpHasDownForBothDrivers(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres"} {
		entries, err := fs.ReadDir(migrationFS, "migrations/"+driver)
		require.NoError(t, err)

		names := map[string]bool{}
		for _, e := range entries {
			names[e.Name()] = true
		}
		require.NotEmpty(t, names, driver)

		for name := range names {
			if strings.HasSuffix(name, ".up.sql") {
				down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
				assert.True(t, names[down], "%s: %s has no down migration", driver, name)
			}
		}
	}
}

func TestMigrations_DriversDefineSameVersions(t *testing.T) {
	mysqlEntries, err := fs.ReadDir(migrationFS, "migrations/mysql")
	require.NoError(t, err)
	pgEntries, err := fs.ReadDir(migrationFS, "migrations/postgres")
	require.NoError(t, err)

	names := func(entries []fs.DirEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}
	assert.Equal(t, names(mysqlEntries), names(pgEntries))
}
