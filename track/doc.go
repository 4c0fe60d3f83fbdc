// Package track materializes sparse per-chromosome scores into dense tracks.
//
// A dense track lists, for every chromosome of a size table, a marker line
// "chrom=<name>" followed by exactly one line per base holding that base's
// score.  Bases not covered by any input record score "0".  Input records are
// clipped to the chromosome length; an interval end is clamped to the length,
// never past it.  Chromosomes are written in the order they first appear in
// the input, followed by the size-table chromosomes that never appeared.
package track
