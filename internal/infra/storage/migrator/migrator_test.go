package migrator

import (
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DS-SchedulingService/migrations"
)

func TestEmbeddedMigrationsAreOrderedAndAnnotated(t *testing.T) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.True(t, sort.StringsAreSorted(names))

	for _, name := range names {
		body, err := fs.ReadFile(migrations.FS, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}

func TestLessonsMigrationHasOverlapConstraint(t *testing.T) {
	body, err := fs.ReadFile(migrations.FS, "00002_create_lessons.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.True(t, strings.Contains(sql, "EXCLUDE USING gist"))
	assert.True(t, strings.Contains(sql, "'[)'"))
}
