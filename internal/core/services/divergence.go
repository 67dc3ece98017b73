package services

import (
	"sync"

	"github.com/custodia-labs/otuscan/internal/core/domain"
)

// Divergence counts the positions where a and b differ over their common
// prefix, plus one for every character of the longer sequence beyond it.
// Comparison is byte-exact and case-sensitive; gaps are ordinary
// characters. No alignment is attempted.
func Divergence(a, b string) int {
	k := len(a)
	d := len(b) - len(a)
	if len(b) < k {
		k = len(b)
		d = -d
	}
	for i := 0; i < k; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// nearest accumulates the minimum divergence seen so far and every entry
// achieving it, in the order offered.
type nearest struct {
	min     int
	matches []domain.Match
}

func newNearest() nearest {
	return nearest{min: -1}
}

func (n *nearest) offer(e domain.OtuEntry, d int) {
	switch {
	case n.min < 0 || d < n.min:
		n.min = d
		n.matches = append(n.matches[:0], domain.Match{Entry: e, Divergence: d})
	case d == n.min:
		n.matches = append(n.matches, domain.Match{Entry: e, Divergence: d})
	}
}

// merge folds o into n. Merging shards in scan order keeps ties in
// database order.
func (n *nearest) merge(o nearest) {
	switch {
	case o.min < 0:
	case n.min < 0 || o.min < n.min:
		n.min = o.min
		n.matches = append(n.matches[:0], o.matches...)
	case o.min == n.min:
		n.matches = append(n.matches, o.matches...)
	}
}

func scanRange(query string, db *domain.SequenceDatabase, from, to int) nearest {
	acc := newNearest()
	for i := from; i < to; i++ {
		e := db.Entry(i)
		acc.offer(e, Divergence(query, e.Sequence))
	}
	return acc
}

// Nearest returns every database entry at the minimum divergence from
// query, in database order. An empty database yields nil.
func Nearest(query string, db *domain.SequenceDatabase) []domain.Match {
	return scanRange(query, db, 0, db.Len()).matches
}

// NearestSharded computes the same result as Nearest by scanning shards
// contiguous partitions of the database concurrently.
func NearestSharded(query string, db *domain.SequenceDatabase, shards int) []domain.Match {
	n := db.Len()
	if shards > n {
		shards = n
	}
	if shards <= 1 {
		return Nearest(query, db)
	}

	parts := make([]nearest, shards)
	size := (n + shards - 1) / shards

	var wg sync.WaitGroup
	for i := range parts {
		from := i * size
		to := from + size
		if to > n {
			to = n
		}
		wg.Add(1)
		go func(i, from, to int) {
			defer wg.Done()
			parts[i] = scanRange(query, db, from, to)
		}(i, from, to)
	}
	wg.Wait()

	acc := newNearest()
	for _, p := range parts {
		acc.merge(p)
	}
	return acc.matches
}
