package sql

import (
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Initialize database extensions", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		var exists bool
		err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_extension WHERE extname = 'pg_trgm');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "pg_trgm extension should be created")
	})

	t.Run("Initialize database extensions is idempotent", func(t *testing.T) {
		err := Init(db.Instance)
		assert.NoError(t, err)

		err = Init(db.Instance)
		assert.NoError(t, err)
	})
}

func TestLoadExtractionsSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Load extractions SQL functions", func(t *testing.T) {
		err := LoadExtractionsSql(db.Instance, false)
		assert.NoError(t, err)

		for _, funcName := range ExtractionsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist", funcName)
		}
	})

	t.Run("Load extractions SQL creates the table", func(t *testing.T) {
		var exists bool
		err := db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM information_schema.tables WHERE table_name = 'extractions');").Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "Table extractions should exist")
	})

	t.Run("Load extractions SQL is idempotent without force", func(t *testing.T) {
		err := LoadExtractionsSql(db.Instance, false)
		assert.NoError(t, err)
	})

	t.Run("Load extractions SQL with force reloads", func(t *testing.T) {
		err := LoadExtractionsSql(db.Instance, true)
		assert.NoError(t, err)

		for _, funcName := range ExtractionsFunctions {
			var exists bool
			err = db.Instance.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_proc WHERE proname = $1);", funcName).Scan(&exists)
			require.NoError(t, err)
			assert.True(t, exists, "Function %s should exist after force reload", funcName)
		}
	})
}

func TestLoadAllSql(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Load all SQL functions", func(t *testing.T) {
		err := LoadAllSql(db.Instance, false)
		assert.NoError(t, err)

		exists, err := checkFunctions(db.Instance, ExtractionsFunctions)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Load all SQL with force reloads", func(t *testing.T) {
		err := LoadAllSql(db.Instance, true)
		assert.NoError(t, err)
	})
}

func TestCheckFunctions(t *testing.T) {
	db := initDB(t)
	defer db.Close()

	t.Run("Check functions returns false when functions don't exist", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{"nonexistent_function"})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false for nonexistent function")
	})

	t.Run("Check functions returns true when all functions exist", func(t *testing.T) {
		err := LoadExtractionsSql(db.Instance, false)
		require.NoError(t, err)

		exists, err := checkFunctions(db.Instance, ExtractionsFunctions)
		assert.NoError(t, err)
		assert.True(t, exists, "Should return true when all functions exist")
	})

	t.Run("Check functions returns false when some functions don't exist", func(t *testing.T) {
		exists, err := checkFunctions(db.Instance, []string{"init_extractions", "nonexistent_function"})
		assert.NoError(t, err)
		assert.False(t, exists, "Should return false when some functions don't exist")
	})
}

func TestFunctionLists(t *testing.T) {
	t.Run("ExtractionsFunctions list is not empty", func(t *testing.T) {
		assert.NotEmpty(t, ExtractionsFunctions, "ExtractionsFunctions should not be empty")
		assert.Contains(t, ExtractionsFunctions, "init_extractions")
	})
}

func TestEmbeddedSQL(t *testing.T) {
	t.Run("Init SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, initSQL, "initSQL should be embedded")
		assert.Contains(t, initSQL, "CREATE EXTENSION", "Should contain CREATE EXTENSION")
	})

	t.Run("Extractions SQL is embedded", func(t *testing.T) {
		assert.NotEmpty(t, extractionsSQL, "extractionsSQL should be embedded")
		for _, funcName := range ExtractionsFunctions {
			assert.Contains(t, extractionsSQL, "FUNCTION "+funcName+"(", "Should define %s", funcName)
		}
	})
}
