// Package fasta contains streaming helpers for FASTA files.  See
// http://www.htslib.org/doc/faidx.html.  Briefly, FASTA files consist of a
// number of named sequences that may be interrupted by newlines.  For example:
//
// >chr7
// ACGTAC
// GAGGAC
// GCG
// >chr8
// ACGT
//
// Note: Sequence names are defined to be the stretch of characters excluding
// whitespace immediately after '>'.  Any text after a space is ignored.  For
// example, '>chr1 A viral sequence' becomes 'chr1'.
package fasta
