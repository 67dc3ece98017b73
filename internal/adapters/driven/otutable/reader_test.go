package otutable

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

const minimalTable = "gene\tsample\tsequence\tnum_hits\tcoverage\ttaxonomy\n" +
	"ribosomal_protein_L11_rplK_gpkg\tminimal\tGGTAAAGCGAATCCAGCACCACCAGTTGGTCCAGCATTAGGTCAAGCAGGTGTGAACATC\t7\t4.95\tRoot; k__Bacteria; p__Firmicutes; c__Bacilli; o__Bacillales\n" +
	"ribosomal_protein_S2_rpsB_gpkg\tminimal\tCGTCGTTGGAACCCAAAAATGAAAAAATATATCTTCACTGAGAGAAATGGTATTTATATC\t6\t4.95\tRoot; k__Bacteria; p__Firmicutes; c__Bacilli\n"

func TestRead(t *testing.T) {
	table, err := Read(strings.NewReader(minimalTable))

	require.NoError(t, err)
	assert.Empty(t, table.Errors)
	require.Len(t, table.Entries, 2)
	assert.Equal(t, domain.OtuEntry{
		Marker:   "ribosomal_protein_S2_rpsB_gpkg",
		Sample:   "minimal",
		Sequence: "CGTCGTTGGAACCCAAAAATGAAAAAATATATCTTCACTGAGAGAAATGGTATTTATATC",
		NumHits:  6,
		Coverage: 4.95,
		Taxonomy: "Root; k__Bacteria; p__Firmicutes; c__Bacilli",
	}, table.Entries[1])
}

func TestRead_NoTrailingNewline(t *testing.T) {
	table, err := Read(strings.NewReader(strings.TrimSuffix(minimalTable, "\n")))

	require.NoError(t, err)
	assert.Len(t, table.Entries, 2)
}

func TestRead_EmptyTaxonomy(t *testing.T) {
	input := strings.Join(Header, "\t") + "\nm\ts\tACGT\t1\t1.00\t\n"

	table, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, table.Entries, 1)
	assert.Equal(t, "", table.Entries[0].Taxonomy)
}

func TestRead_HeaderOnly(t *testing.T) {
	table, err := Read(strings.NewReader(strings.Join(Header, "\t") + "\n"))

	require.NoError(t, err)
	assert.Empty(t, table.Entries)
	assert.Empty(t, table.Errors)
}

func TestRead_HeaderErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"missing header", "m\ts\tACGT\t1\t1.0\ttax\n"},
		{"short header", "gene\tsample\tsequence\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, domain.ErrMalformedRow)
		})
	}
}

func TestRead_RowErrorsAreCollected(t *testing.T) {
	input := strings.Join(Header, "\t") + "\n" +
		"m\ts\tAAAA\t1\t1.0\tgood\n" +
		"m\ts\tCCCC\tmany\t1.0\tbad hits\n" +
		"m\ts\tGGGG\t1\tlots\tbad coverage\n" +
		"m\ts\tTTTT\t1\n" +
		"m\ts\tACGT\t-3\t1.0\tnegative\n" +
		"m\ts\tTGCA\t2\t2.5\talso good\n"

	table, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, table.Entries, 2)
	assert.Equal(t, "AAAA", table.Entries[0].Sequence)
	assert.Equal(t, "TGCA", table.Entries[1].Sequence)

	require.Len(t, table.Errors, 4)
	lines := make([]int, len(table.Errors))
	for i, e := range table.Errors {
		lines[i] = e.Line
		assert.ErrorIs(t, e, domain.ErrMalformedRow)
	}
	assert.Equal(t, []int{3, 4, 5, 6}, lines)
	assert.Contains(t, table.Errors[0].Error(), "line 3")
}

func TestRead_QuotesAreLiteral(t *testing.T) {
	input := strings.Join(Header, "\t") + "\n" +
		"m\ts\tACGT\t1\t1.0\t\"Root\"; k__Bacteria\n" +
		"m\ts\tTTTT\t2\t1.0\t\"unterminated\n"

	table, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	assert.Empty(t, table.Errors)
	require.Len(t, table.Entries, 2)
	assert.Equal(t, `"Root"; k__Bacteria`, table.Entries[0].Taxonomy)
	assert.Equal(t, `"unterminated`, table.Entries[1].Taxonomy)
}

func TestRead_CRLFAndBlankLines(t *testing.T) {
	input := strings.Join(Header, "\t") + "\r\n\r\n" + "m\ts\tACGT\t1\t1.0\ttax\r\n"

	table, err := Read(strings.NewReader(input))

	require.NoError(t, err)
	require.Len(t, table.Entries, 1)
	assert.Equal(t, "tax", table.Entries[0].Taxonomy)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otus.tsv")
	require.NoError(t, os.WriteFile(path, []byte(minimalTable), 0600))

	table, err := ReadFile(path)

	require.NoError(t, err)
	assert.Len(t, table.Entries, 2)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.tsv"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}
