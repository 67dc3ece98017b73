package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

func TestMakeDB(t *testing.T) {
	env := setupTestServices(t)
	table := writeTestFile(t, "otus.tsv", testTable)

	out, _, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", "mem-db")

	require.NoError(t, err)
	assert.Contains(t, out, "Built database")
	assert.Contains(t, out, "Entries:  2")
	assert.Contains(t, out, "Markers:  2")

	entries, err := env.store("mem-db").All(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "rpsB", entries[0].Marker)
	assert.Equal(t, "Root; k__Bacteria", entries[0].Taxonomy)
}

func TestMakeDB_UsesConfiguredPath(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.settings.SetDatabasePath("configured-db"))
	table := writeTestFile(t, "otus.tsv", testTable)

	_, _, err := executeCommand(t, "", "makedb", "--otu-table", table)

	require.NoError(t, err)
	assert.Equal(t, []string{"configured-db"}, env.opened)
}

func TestMakeDB_RequiresTable(t *testing.T) {
	setupTestServices(t)

	_, _, err := executeCommand(t, "", "makedb")

	assert.Error(t, err)
}

func TestMakeDB_RejectsFileAsDatabase(t *testing.T) {
	setupTestServices(t)
	table := writeTestFile(t, "otus.tsv", testTable)

	_, _, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", table)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMakeDB_SkipsMalformedRows(t *testing.T) {
	env := setupTestServices(t)
	table := writeTestFile(t, "otus.tsv", testTable+"rpsB\ts3\tACGT\tmany\t1.00\t\n")

	_, errOut, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", "mem-db")

	require.NoError(t, err)
	assert.Contains(t, errOut, ":4:")
	count, err := env.store("mem-db").Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMakeDB_NoUsableRows(t *testing.T) {
	setupTestServices(t)
	table := writeTestFile(t, "otus.tsv",
		"gene\tsample\tsequence\tnum_hits\tcoverage\ttaxonomy\nrpsB\ts1\tACGT\tx\t1.00\t\n")

	_, _, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", "mem-db")

	assert.ErrorIs(t, err, domain.ErrMalformedRow)
}

func TestMakeDB_HeaderOnlyBuildsEmptyDatabase(t *testing.T) {
	env := setupTestServices(t)
	table := writeTestFile(t, "otus.tsv", "gene\tsample\tsequence\tnum_hits\tcoverage\ttaxonomy\n")

	out, _, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", "mem-db")

	require.NoError(t, err)
	assert.Contains(t, out, "Entries:  0")
	info, err := env.store("mem-db").Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, info.Entries)
}

func TestMakeDB_Watch(t *testing.T) {
	env := setupTestServices(t)
	env.watcher.fires = 2
	table := writeTestFile(t, "otus.tsv", testTable)

	out, errOut, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", "mem-db", "--watch")

	require.NoError(t, err)
	assert.Equal(t, []string{table}, env.watcher.watched)
	assert.Contains(t, errOut, "Watching")
	assert.Equal(t, 3, strings.Count(out, "Built database"))
}

func TestMakeDB_WatchWithoutWatcher(t *testing.T) {
	setupTestServices(t)
	tableWatcher = nil
	table := writeTestFile(t, "otus.tsv", testTable)

	_, _, err := executeCommand(t, "", "makedb", "--otu-table", table, "--db-path", "mem-db", "--watch")

	assert.Error(t, err)
}

