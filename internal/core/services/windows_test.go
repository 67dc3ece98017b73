package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

func readWindow(name string, length int, seq string) domain.ReadWindow {
	return domain.ReadWindow{
		ReadName:   name,
		ReadLength: length,
		Window:     domain.NucleotideWindow{Sequence: seq, Consumed: len(seq)},
	}
}

func TestWindowService_Accumulate_Coverage(t *testing.T) {
	svc := NewWindowService()
	window := domain.ContiguousWindow(0, 20)

	var windows []domain.ReadWindow
	for i := 0; i < 7; i++ {
		windows = append(windows, readWindow("r", 100, rplKWindow))
	}

	entries := svc.Accumulate(windows, window, domain.AccumulateOptions{Marker: rplKMarker, Sample: "minimal"})

	require.Len(t, entries, 1)
	assert.Equal(t, rplKMarker, entries[0].Marker)
	assert.Equal(t, "minimal", entries[0].Sample)
	assert.Equal(t, 7, entries[0].NumHits)
	assert.InDelta(t, 17.07, entries[0].Coverage, 0.005)
	assert.Empty(t, entries[0].Taxonomy)
}

func TestWindowService_Accumulate_GroupsInFirstSeenOrder(t *testing.T) {
	svc := NewWindowService()
	window := domain.ContiguousWindow(0, 2)

	entries := svc.Accumulate([]domain.ReadWindow{
		readWindow("r1", 10, "CCCGGG"),
		readWindow("r2", 10, "AAATTT"),
		readWindow("r3", 10, "CCCGGG"),
	}, window, domain.AccumulateOptions{Marker: "m", Sample: "s"})

	require.Len(t, entries, 2)
	assert.Equal(t, "CCCGGG", entries[0].Sequence)
	assert.Equal(t, 2, entries[0].NumHits)
	assert.Equal(t, "AAATTT", entries[1].Sequence)
	assert.Equal(t, 1, entries[1].NumHits)
}

func TestWindowService_Accumulate_KnownTaxonomy(t *testing.T) {
	svc := NewWindowService()
	window := domain.ContiguousWindow(0, 20)

	known := []domain.OtuEntry{
		{Marker: rpsBMarker, Sequence: rplKWindow, Taxonomy: "wrong marker"},
		{Marker: rplKMarker, Sequence: rplKWindow, Taxonomy: ""},
		{Marker: rplKMarker, Sequence: rplKWindow, Taxonomy: "some1"},
		{Marker: rplKMarker, Sequence: rplKWindow, Taxonomy: "later"},
	}

	entries := svc.Accumulate([]domain.ReadWindow{
		readWindow("r1", 100, rplKWindow),
		readWindow("r2", 100, strings.Repeat("A", 60)),
	}, window, domain.AccumulateOptions{Marker: rplKMarker, Sample: "minimal", Known: known})

	require.Len(t, entries, 2)
	assert.Equal(t, "some1", entries[0].Taxonomy)
	assert.Empty(t, entries[1].Taxonomy)
}

func TestWindowService_Accumulate_Empty(t *testing.T) {
	svc := NewWindowService()

	entries := svc.Accumulate(nil, domain.ContiguousWindow(0, 20), domain.AccumulateOptions{})

	assert.Empty(t, entries)
}

func TestReadCoverage(t *testing.T) {
	tests := []struct {
		name   string
		read   int
		window int
		want   float64
	}{
		{"read equals window", 60, 60, 60},
		{"longer read", 100, 60, 100.0 / 41.0},
		{"shorter read", 40, 60, 1},
		{"one base longer", 61, 60, 30.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, readCoverage(tt.read, tt.window), 1e-9)
		})
	}
}
