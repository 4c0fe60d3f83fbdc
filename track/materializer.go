package track

import (
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/pausetools/chromsizes"
)

// MarkerPrefix starts the line that precedes each chromosome's scores.
const MarkerPrefix = "chrom="

// FormatScore renders a non-gap score: the shortest decimal representation,
// never in exponent form.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Materializer expands sparse, chromosome-grouped scores into a dense track.
// Records of one chromosome must be contiguous and non-decreasing in
// position.  Overlapping intervals are tolerated but only the part past the
// cursor is written.
type Materializer struct {
	out   *tsv.Writer
	sizes *chromsizes.Table
	seen  map[string]bool

	chrom   string
	started bool
	length  int64
	cursor  int64

	nRecords int64
	nDropped int64
}

// NewMaterializer creates a Materializer writing to w. Every chromosome of
// sizes appears in the output once Close returns.
func NewMaterializer(w io.Writer, sizes *chromsizes.Table) *Materializer {
	return &Materializer{
		out:   tsv.NewWriter(w),
		sizes: sizes,
		seen:  map[string]bool{},
	}
}

// StartChromosome finishes the current chromosome, if any, and begins chrom.
// It is a no-op if chrom is already current. Returning to a chromosome that
// has already been finished is an error.
func (m *Materializer) StartChromosome(chrom string) error {
	if m.started && chrom == m.chrom {
		return nil
	}
	if m.seen[chrom] {
		return errors.E(errors.Invalid, fmt.Sprintf("track: records for chromosome %s are not contiguous", chrom))
	}
	if err := m.finishChromosome(); err != nil {
		return err
	}
	m.seen[chrom] = true
	m.chrom, m.started, m.length, m.cursor = chrom, false, 0, 0
	if err := m.writeMarker(chrom); err != nil {
		return err
	}
	length, err := m.sizes.Lookup(chrom)
	if err != nil {
		// The marker of the unknown chromosome is the last line of output.
		m.out.Flush() // nolint: errcheck
		return err
	}
	m.started, m.length = true, length
	return nil
}

// AddInterval fills [start, end) of chrom with score, clipped to the
// chromosome length. Positions between the cursor and start are zero.
func (m *Materializer) AddInterval(chrom string, start, end int64, score float64) error {
	if err := m.StartChromosome(chrom); err != nil {
		return err
	}
	m.nRecords++
	if start > m.length {
		start = m.length
	}
	if end > m.length {
		end = m.length
	}
	if err := m.zeroTo(start); err != nil {
		return err
	}
	if end <= m.cursor {
		return nil
	}
	if err := m.write(FormatScore(score), end-m.cursor); err != nil {
		return err
	}
	m.cursor = end
	return nil
}

// AddPoint sets the score of the base at pos of chrom. Points past the end of
// the chromosome are dropped.
func (m *Materializer) AddPoint(chrom string, pos int64, score float64) error {
	if err := m.StartChromosome(chrom); err != nil {
		return err
	}
	m.nRecords++
	if pos < m.cursor {
		return errors.E(errors.Invalid, fmt.Sprintf("track: %s:%d is before the previous position %d", chrom, pos, m.cursor-1))
	}
	if pos >= m.length {
		m.nDropped++
		return nil
	}
	if err := m.zeroTo(pos); err != nil {
		return err
	}
	if err := m.write(FormatScore(score), 1); err != nil {
		return err
	}
	m.cursor = pos + 1
	return nil
}

// Close finishes the current chromosome, emits every chromosome of the size
// table that never appeared as all zeros, and flushes the output.
func (m *Materializer) Close() error {
	if err := m.finishChromosome(); err != nil {
		return err
	}
	m.started = false
	nAbsent := 0
	for _, name := range m.sizes.Names() {
		if m.seen[name] {
			continue
		}
		m.seen[name] = true
		nAbsent++
		length, _ := m.sizes.Len(name)
		if err := m.writeMarker(name); err != nil {
			return err
		}
		if err := m.write("0", length); err != nil {
			return err
		}
	}
	log.Debug.Printf("track: %d records, %d dropped past chromosome end, %d chromosomes without records",
		m.nRecords, m.nDropped, nAbsent)
	return m.out.Flush()
}

func (m *Materializer) finishChromosome() error {
	if !m.started {
		return nil
	}
	return m.zeroTo(m.length)
}

// zeroTo writes gap scores up to, but excluding, pos.
func (m *Materializer) zeroTo(pos int64) error {
	if pos <= m.cursor {
		return nil
	}
	if err := m.write("0", pos-m.cursor); err != nil {
		return err
	}
	m.cursor = pos
	return nil
}

func (m *Materializer) writeMarker(chrom string) error {
	m.out.WriteString(MarkerPrefix + chrom)
	return m.out.EndLine()
}

func (m *Materializer) write(value string, n int64) error {
	for i := int64(0); i < n; i++ {
		m.out.WriteString(value)
		if err := m.out.EndLine(); err != nil {
			return err
		}
	}
	return nil
}
