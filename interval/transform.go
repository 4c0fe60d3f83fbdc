package interval

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
)

// SizeOpts controls SetAnnotationSize.
type SizeOpts struct {
	// Size is the length, in bases, every annotation is resized to.
	Size int64
	// ChangeStart keeps the end of each annotation and moves its start.  By
	// default the start is kept and the end is moved.
	ChangeStart bool
	// ReverseNegativeStrand swaps the anchor for annotations whose strand
	// column (6th) is "-".
	ReverseNegativeStrand bool
}

// columnsToRewrite splits a BED data line into its tab-separated columns and
// parses the start and end.
func columnsToRewrite(line string, lineno int) ([]string, int64, int64, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 3 {
		return nil, 0, 0, errors.E(errors.Invalid, fmt.Sprintf("bed: line %d has fewer than 3 columns: %q", lineno, line))
	}
	start, err := strconv.ParseInt(cols[1], 10, 64)
	if err != nil {
		return nil, 0, 0, errors.E(errors.Invalid, err, fmt.Sprintf("bed: line %d: bad start", lineno))
	}
	end, err := strconv.ParseInt(cols[2], 10, 64)
	if err != nil {
		return nil, 0, 0, errors.E(errors.Invalid, err, fmt.Sprintf("bed: line %d: bad end", lineno))
	}
	return cols, start, end, nil
}

// rewrite copies r to w, passing header lines through unchanged and
// replacing the start and end of every data line with fn's result. Write
// errors are sticky in bufio.Writer and surface from the final Flush.
func rewrite(r io.Reader, w io.Writer, fn func(cols []string, start, end int64) (int64, int64)) error {
	s := NewScanner(r)
	out := bufio.NewWriter(w)
	for s.Scan() {
		if s.Header() {
			out.Write(s.Bytes())
			out.WriteByte('\n')
			continue
		}
		cols, start, end, err := columnsToRewrite(string(s.Bytes()), s.LineNumber())
		if err != nil {
			return err
		}
		start, end = fn(cols, start, end)
		cols[1] = strconv.FormatInt(start, 10)
		cols[2] = strconv.FormatInt(end, 10)
		out.WriteString(strings.Join(cols, "\t"))
		out.WriteByte('\n')
	}
	if err := s.Err(); err != nil {
		return err
	}
	return out.Flush()
}

// SetAnnotationSize resizes every annotation of a BED stream to opts.Size
// bases.
func SetAnnotationSize(r io.Reader, w io.Writer, opts SizeOpts) error {
	if opts.Size < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("bed: negative annotation size %d", opts.Size))
	}
	return rewrite(r, w, func(cols []string, start, end int64) (int64, int64) {
		changeStart := opts.ChangeStart
		if opts.ReverseNegativeStrand && len(cols) > 5 && cols[5] == "-" {
			changeStart = !changeStart
		}
		if changeStart {
			return end - opts.Size, end
		}
		return start, start + opts.Size
	})
}

// MoveAnnotations shifts every annotation of a BED stream by distance bases.
// Negative distances move annotations toward the chromosome start.
func MoveAnnotations(r io.Reader, w io.Writer, distance int64) error {
	return rewrite(r, w, func(_ []string, start, end int64) (int64, int64) {
		return start + distance, end + distance
	})
}
