package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

func aligned(seq string) domain.AlignedProteinSequence {
	return domain.AlignedProteinSequence{Name: "name", Sequence: seq}
}

func TestClassifyColumn(t *testing.T) {
	assert.Equal(t, windowCodon, classifyColumn(false, true))
	assert.Equal(t, windowGap, classifyColumn(true, true))
	assert.Equal(t, insertCodon, classifyColumn(false, false))
	assert.Equal(t, insertGap, classifyColumn(true, false))
}

func TestWindowService_Transcribe(t *testing.T) {
	tests := []struct {
		name           string
		protein        string
		read           string
		columns        []int
		includeInserts bool
		want           string
		consumed       int
	}{
		{
			name:     "full window with gap",
			protein:  "AC-D",
			read:     "AAATTTGGG",
			columns:  []int{0, 1, 2, 3},
			want:     "AAATTT---GGG",
			consumed: 9,
		},
		{
			name:     "skipped column consumed silently",
			protein:  "AC-D",
			read:     "AAATTTGGG",
			columns:  []int{0, 2, 3},
			want:     "AAA---GGG",
			consumed: 9,
		},
		{
			name:           "skipped column emitted lower case",
			protein:        "AC-D",
			read:           "AAATTTGGG",
			columns:        []int{0, 2, 3},
			includeInserts: true,
			want:           "AAAttt---GGG",
			consumed:       9,
		},
		{
			name:           "skipped gap column emits nothing",
			protein:        "AC-D",
			read:           "AAATTTGGG",
			columns:        []int{0, 3},
			includeInserts: true,
			want:           "AAAtttGGG",
			consumed:       9,
		},
		{
			name:     "columns after the window are not visited",
			protein:  "ACDE",
			read:     "AAATTTGGGCCC",
			columns:  []int{0, 1},
			want:     "AAATTT",
			consumed: 6,
		},
		{
			name:     "dot is a gap",
			protein:  "A.D",
			read:     "AAAGGG",
			columns:  []int{0, 1, 2},
			want:     "AAA---GGG",
			consumed: 6,
		},
		{
			name:     "window codons upper cased",
			protein:  "AC",
			read:     "aaattt",
			columns:  []int{0, 1},
			want:     "AAATTT",
			consumed: 6,
		},
		{
			name:     "leading inserts advance the cursor",
			protein:  "MKAC",
			read:     "ATGAAAGCTTGC",
			columns:  []int{2, 3},
			want:     "GCTTGC",
			consumed: 12,
		},
		{
			name:     "empty window",
			protein:  "ACD",
			read:     "AAATTTGGG",
			columns:  nil,
			want:     "",
			consumed: 0,
		},
	}

	svc := NewWindowService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Transcribe(aligned(tt.protein), tt.read, domain.NewWindowSpec(tt.columns...), tt.includeInserts)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Sequence)
			assert.Equal(t, tt.consumed, got.Consumed)
		})
	}
}

func TestWindowService_Transcribe_ReadTooShort(t *testing.T) {
	svc := NewWindowService()

	_, err := svc.Transcribe(aligned("ACD"), "AAATT", domain.NewWindowSpec(0, 1, 2), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReadTooShort)
}

func TestWindowService_Transcribe_InvalidWindow(t *testing.T) {
	svc := NewWindowService()

	tests := []struct {
		name    string
		columns []int
	}{
		{"out of range", []int{0, 4}},
		{"negative", []int{-1, 0}},
		{"descending", []int{2, 1}},
		{"duplicate", []int{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transcribe(aligned("ACDE"), "AAATTTGGGCCC", domain.NewWindowSpec(tt.columns...), false)
			assert.ErrorIs(t, err, domain.ErrInvalidWindow)
		})
	}
}

// Consumed counts three bases per non-gap column up to the last window
// column, and is the same whether or not inserts are emitted.
func TestWindowService_Transcribe_ConsumedBookkeeping(t *testing.T) {
	svc := NewWindowService()
	protein := "MK-A.CDE-FG"
	read := strings.Repeat("ACGTTGCAT", 4)

	windows := [][]int{
		{0},
		{10},
		{1, 2, 3},
		{0, 5, 9},
		{2, 4, 8},
		{3, 4, 5, 6, 7},
	}
	for _, cols := range windows {
		window := domain.NewWindowSpec(cols...)

		nonGap := 0
		for c := 0; c <= window.Last(); c++ {
			if !aligned(protein).IsGap(c) {
				nonGap++
			}
		}

		plain, err := svc.Transcribe(aligned(protein), read, window, false)
		require.NoError(t, err)
		withInserts, err := svc.Transcribe(aligned(protein), read, window, true)
		require.NoError(t, err)

		assert.Equal(t, 3*nonGap, plain.Consumed, "window %v", cols)
		assert.Equal(t, plain.Consumed, withInserts.Consumed, "window %v", cols)
		assert.Equal(t, window.NucleotideLength(), len(plain.Sequence), "window %v", cols)
		assert.Equal(t, plain.Sequence, dropLower(withInserts.Sequence), "window %v", cols)
	}
}

func dropLower(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 'a' || r > 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestWindowService_Extract(t *testing.T) {
	svc := NewWindowService()

	reads := []domain.NucleotideRead{
		{Name: "r1", Sequence: "AAATTTGGG"},
		{Name: "r2", Sequence: "CCCGGGAAA"},
		{Name: "orphan", Sequence: "AAATTTGGG"},
		{Name: "short", Sequence: "AAA"},
	}
	alignments := []domain.AlignedProteinSequence{
		{Name: "r1", Sequence: "AC-D"},
		{Name: "r2", Sequence: "PGK-"},
		{Name: "short", Sequence: "AC-D"},
	}

	windows, failures, err := svc.Extract(context.Background(), reads, alignments,
		domain.NewWindowSpec(0, 1, 2), domain.ExtractOptions{})

	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, "r1", windows[0].ReadName)
	assert.Equal(t, 9, windows[0].ReadLength)
	assert.Equal(t, "AAATTT---", windows[0].Window.Sequence)
	assert.Equal(t, "r2", windows[1].ReadName)
	assert.Equal(t, "CCCGGGAAA", windows[1].Window.Sequence)

	require.Len(t, failures, 1)
	assert.Equal(t, "short", failures[0].ReadName)
	assert.ErrorIs(t, failures[0], domain.ErrReadTooShort)
}

func TestWindowService_Extract_IncludeInserts(t *testing.T) {
	svc := NewWindowService()

	windows, failures, err := svc.Extract(context.Background(),
		[]domain.NucleotideRead{{Name: "r", Sequence: "AAATTTGGG"}},
		[]domain.AlignedProteinSequence{{Name: "r", Sequence: "AC-D"}},
		domain.NewWindowSpec(0, 2, 3),
		domain.ExtractOptions{IncludeInserts: true})

	require.NoError(t, err)
	assert.Empty(t, failures)
	require.Len(t, windows, 1)
	assert.Equal(t, "AAAttt---GGG", windows[0].Window.Sequence)
}

func TestWindowService_Extract_Cancelled(t *testing.T) {
	svc := NewWindowService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.Extract(ctx,
		[]domain.NucleotideRead{{Name: "r", Sequence: "AAA"}},
		[]domain.AlignedProteinSequence{{Name: "r", Sequence: "A"}},
		domain.NewWindowSpec(0), domain.ExtractOptions{})

	assert.ErrorIs(t, err, context.Canceled)
}
