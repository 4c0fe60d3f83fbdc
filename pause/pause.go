// Package pause reads, writes and filters RNA polymerase pause records.
//
// A pause file is a FASTA-like stream.  Each record starts with a marker line
//
//   >name_chrom_position_normalizedReads_foldsAboveAverage_beginningReads
//
// optionally followed by the sequence around the pause, wrapped over several
// lines.  Records of the same gene are contiguous.
package pause

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/pausetools/encoding/fasta"
)

const (
	marker    = ">"
	separator = "_"
	// SequenceWidth is the number of sequence characters per line written by
	// Writer.
	SequenceWidth = 80

	maxLineLen = 16 << 20
)

// Pause is one called pause site.  Field order matches the tab-delimited
// form written by ToTabs.
type Pause struct {
	// Name is the gene the pause belongs to. It is the grouping key for
	// Maxima.
	Name  string
	Chrom string
	// Position is relative to the gene's transcription start site and may be
	// negative.
	Position          int64
	NormalizedReads   float64
	FoldsAboveAverage float64
	BeginningReads    float64
	Sequence          string
}

// Reader reads pause records.
type Reader struct {
	scanner *bufio.Scanner
	lineno  int
	// header is the marker line of the next record, if hasHeader.
	header     string
	headerLine int
	hasHeader  bool
}

// NewReader creates a Reader. Lines before the first marker are ignored.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineLen)
	return &Reader{scanner: scanner}
}

func (r *Reader) scan() bool {
	if !r.scanner.Scan() {
		return false
	}
	r.lineno++
	return true
}

// Read returns the next pause. It returns io.EOF after the last record.
func (r *Reader) Read() (Pause, error) {
	for !r.hasHeader {
		if !r.scan() {
			if err := r.scanner.Err(); err != nil {
				return Pause{}, err
			}
			return Pause{}, io.EOF
		}
		if line := r.scanner.Text(); strings.HasPrefix(line, marker) {
			r.header, r.headerLine, r.hasHeader = line, r.lineno, true
		}
	}
	p, err := ParseHeader(strings.TrimRight(r.header[len(marker):], "\r"))
	if err != nil {
		return Pause{}, errors.E(err, fmt.Sprintf("pause: line %d", r.headerLine))
	}
	r.hasHeader = false
	var seq strings.Builder
	for r.scan() {
		line := r.scanner.Text()
		if strings.HasPrefix(line, marker) {
			r.header, r.headerLine, r.hasHeader = line, r.lineno, true
			break
		}
		seq.WriteString(strings.TrimRight(line, "\r"))
	}
	if err := r.scanner.Err(); err != nil {
		return Pause{}, err
	}
	p.Sequence = seq.String()
	return p, nil
}

// ParseHeader parses the marker line of a record, without the leading '>'.
// The name is the first field and the four numeric fields are the last ones;
// everything in between is the chromosome, which may thus contain '_'.
func ParseHeader(header string) (Pause, error) {
	fields := strings.Split(header, separator)
	n := len(fields)
	if n < 6 {
		return Pause{}, errors.E(errors.Invalid, fmt.Sprintf("pause header %q has %d fields, want at least 6", header, n))
	}
	var (
		p   = Pause{Name: fields[0], Chrom: strings.Join(fields[1:n-4], separator)}
		err error
	)
	if p.Position, err = strconv.ParseInt(fields[n-4], 10, 64); err != nil {
		return Pause{}, errors.E(errors.Invalid, err, fmt.Sprintf("pause header %q: bad position", header))
	}
	for i, dst := range []*float64{&p.NormalizedReads, &p.FoldsAboveAverage, &p.BeginningReads} {
		if *dst, err = strconv.ParseFloat(fields[n-3+i], 64); err != nil {
			return Pause{}, errors.E(errors.Invalid, err, fmt.Sprintf("pause header %q: bad number %q", header, fields[n-3+i]))
		}
	}
	return p, nil
}

// FormatDecimal formats v in plain decimal notation with at most maxFrac
// fraction digits, dropping trailing zeros and a trailing decimal point.
func FormatDecimal(v float64, maxFrac int) string {
	s := strconv.FormatFloat(v, 'f', maxFrac, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// FormatHeader returns the marker line of p, without the trailing newline.
func FormatHeader(p Pause) string {
	return marker + strings.Join([]string{
		p.Name,
		p.Chrom,
		strconv.FormatInt(p.Position, 10),
		FormatDecimal(p.NormalizedReads, 5),
		FormatDecimal(p.FoldsAboveAverage, 16),
		FormatDecimal(p.BeginningReads, 10),
	}, separator)
}

// Writer writes pause records. Flush must be called after the last Write.
type Writer struct {
	w *bufio.Writer
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Write writes one record. The sequence block is omitted when empty.
func (w *Writer) Write(p Pause) error {
	if _, err := w.w.WriteString(FormatHeader(p) + "\n"); err != nil {
		return err
	}
	return fasta.Wrap(w.w, p.Sequence, SequenceWidth)
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
