package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(FS, ".")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestSchemaHasSearchColumns(t *testing.T) {
	b, err := FS.ReadFile("000001_create_interpreters.up.sql")
	require.NoError(t, err)

	for _, col := range []string{"target_language", "hourly_rate", "lat", "lng", "is_active", "rating"} {
		assert.Contains(t, string(b), col)
	}

	b, err = FS.ReadFile("000002_create_zipcode_cache.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(b), "zipcode    VARCHAR(10) PRIMARY KEY")
}
