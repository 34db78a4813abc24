package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&n))
	assert.Equal(t, 12, n, "seeded catalog must not duplicate")
}

func TestMigrate_CreatesTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"athletes", "schools", "interactions", "tasks", "athlete_tasks", "videos", "events", "suggestions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	var idx string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = 'idx_suggestions_athlete_rule'`).Scan(&idx)
	require.NoError(t, err)
}

func TestMigrate_SeedsPhaseMilestones(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`SELECT phase, COUNT(*) FROM tasks GROUP BY phase ORDER BY phase`)
	require.NoError(t, err)
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var phase string
		var n int
		require.NoError(t, rows.Scan(&phase, &n))
		counts[phase] = n
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, map[string]int{"freshman": 4, "sophomore": 4, "junior": 4}, counts)
}

func TestMigrate_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO schools (id, athlete_id, name, created_at, updated_at) VALUES ('s1', 'ghost', 'X', 'now', 'now')`)
	require.Error(t, err)
}

func TestOpenDB_RejectsUnknownDriver(t *testing.T) {
	_, err := OpenDB("mysql", "root@/scoutline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "mysql"`)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scoutline.db")

	db, err := OpenDB(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.FileExists(t, path)
}

func TestBuilder_PlaceholdersFollowDriver(t *testing.T) {
	query, _, err := Builder(DriverSQLite).Select("id").From("athletes").Where("id = ?", "a").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM athletes WHERE id = ?", query)

	query, _, err = Builder(DriverPostgres).Select("id").From("athletes").Where("id = ?", "a").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM athletes WHERE id = $1", query)
}
