// Package chromsizes reads and writes chromosome size tables. A size table
// is a tab-separated file with one "name<TAB>length" line per chromosome.
// Additional columns are ignored, so a samtools .fai index is also a valid
// size table.
package chromsizes

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
)

// Table maps chromosome names to their lengths. A Table is immutable once
// built and safe for concurrent reads.
type Table struct {
	sizes map[string]int64
	// names lists chromosomes in order of first appearance.
	names []string
}

func newTable() *Table {
	return &Table{sizes: make(map[string]int64)}
}

func (t *Table) set(name string, length int64) {
	if _, ok := t.sizes[name]; !ok {
		t.names = append(t.names, name)
	}
	t.sizes[name] = length
}

// Read parses a size table. A line with fewer than two tab-separated
// columns, or whose length is not a non-negative integer, is an
// errors.Invalid error. When a name appears more than once, the last
// length wins.
func Read(r io.Reader) (*Table, error) {
	t := newTable()
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		cols := strings.SplitN(line, "\t", 3)
		if len(cols) < 2 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("chromsizes: line %d does not contain 2 columns: %q", lineno, line))
		}
		length, err := strconv.ParseInt(strings.TrimSpace(cols[1]), 10, 64)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("chromsizes: line %d", lineno))
		}
		if length < 0 {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("chromsizes: line %d has negative length %d", lineno, length))
		}
		t.set(cols[0], length)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(err, "chromsizes: read")
	}
	return t, nil
}

// ReadPath is a wrapper for Read that takes a path instead of an io.Reader.
// Gzipped tables are decompressed.
func ReadPath(ctx context.Context, path string) (t *Table, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if reader, err = gzip.NewReader(reader); err != nil {
			return nil, errors.E(err, "chromsizes: "+path)
		}
	}
	if t, err = Read(reader); err != nil {
		return nil, errors.E(err, path)
	}
	return t, nil
}

// FromSAMHeader builds a Table from the reference sequences of a SAM or BAM
// header.
func FromSAMHeader(h *sam.Header) *Table {
	t := newTable()
	for _, ref := range h.Refs() {
		t.set(ref.Name(), int64(ref.Len()))
	}
	return t
}

// Lookup returns the length of the named chromosome. It returns an
// errors.NotExist error if the chromosome is not in the table.
func (t *Table) Lookup(name string) (int64, error) {
	length, ok := t.sizes[name]
	if !ok {
		return 0, errors.E(errors.NotExist, fmt.Sprintf("sizes file does not contain chromosome %s", name))
	}
	return length, nil
}

// Len is like Lookup, but reports absence with a boolean.
func (t *Table) Len(name string) (int64, bool) {
	length, ok := t.sizes[name]
	return length, ok
}

// Names returns the chromosome names in order of first appearance. The
// caller must not modify the result.
func (t *Table) Names() []string { return t.names }

// NumChromosomes returns the number of distinct chromosomes.
func (t *Table) NumChromosomes() int { return len(t.names) }

// Write serializes t as a size table that Read accepts.
func Write(w io.Writer, t *Table) error {
	out := tsv.NewWriter(w)
	for _, name := range t.names {
		out.WriteString(name)
		out.WriteInt64(t.sizes[name])
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}
