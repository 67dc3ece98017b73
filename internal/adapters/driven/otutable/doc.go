// Package otutable reads and writes the tab separated tables that carry
// OTU entries and query results.
//
// An OTU table has the header
//
//	gene	sample	sequence	num_hits	coverage	taxonomy
//
// and one entry per row. A result table has the header
//
//	query_name	query_sequence	divergence	num_hits	sample	marker	hit_sequence	taxonomy
//
// where query_sequence is left out for queries read from FASTA.
package otutable
