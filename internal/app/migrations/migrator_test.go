package migrations

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectOrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"002_forum.sql": {Data: []byte("CREATE TABLE b();")},
		"001_init.sql":  {Data: []byte("CREATE TABLE a();")},
		"README.md":     {Data: []byte("docs")},
		"sub/003_x.sql": {Data: []byte("ignored")},
		"010_stats.sql": {Data: []byte("CREATE INDEX c;")},
	}

	migs, err := Collect(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, "001", migs[0].Version)
	assert.Equal(t, "001_init.sql", migs[0].Name)
	assert.Equal(t, "CREATE TABLE a();", migs[0].SQL)
	assert.Equal(t, "002", migs[1].Version)
	assert.Equal(t, "010", migs[2].Version)
}

func TestCollectRejectsDuplicateVersions(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("a")},
		"001_other.sql": {Data: []byte("b")},
	}

	_, err := Collect(fsys)
	assert.ErrorContains(t, err, "duplicate migration version 001")
}

func TestCollectEmpty(t *testing.T) {
	migs, err := Collect(fstest.MapFS{})
	require.NoError(t, err)
	assert.Empty(t, migs)
}

func TestCollectRepositoryMigrations(t *testing.T) {
	migs, err := Collect(os.DirFS("../../../migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "001", migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS users")
	assert.Contains(t, migs[0].SQL, "mentorships_distinct_users")
}

func TestInitialSchemaPinsIntegrityRules(t *testing.T) {
	migs, err := Collect(os.DirFS("../../../migrations"))
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	schema := strings.Join(strings.Fields(migs[0].SQL), " ")

	// replies go away with their thread
	assert.Regexp(t, `CREATE TABLE IF NOT EXISTS forum_replies \([^;]*thread_id BIGINT NOT NULL REFERENCES forum_threads \(id\) ON DELETE CASCADE`, schema)
	assert.Contains(t, schema, "CONSTRAINT group_members_group_user_key UNIQUE (group_id, user_id)")
	assert.Contains(t, schema, "CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_key ON users (lower(email))")
	assert.NotContains(t, schema, "UNIQUE (email)")
	assert.Contains(t, schema, "CONSTRAINT users_username_key UNIQUE (username)")
}
