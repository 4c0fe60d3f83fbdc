package fasta

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Wrap writes seq to w in lines of at most width characters.  Nothing is
// written for an empty sequence.
func Wrap(w io.Writer, seq string, width int) error {
	if width < 1 {
		return errors.Errorf("invalid line width %d", width)
	}
	for len(seq) > 0 {
		n := width
		if n > len(seq) {
			n = len(seq)
		}
		if _, err := io.WriteString(w, seq[:n]+"\n"); err != nil {
			return err
		}
		seq = seq[n:]
	}
	return nil
}

// Reformat copies the FASTA data read from in to out, rewrapping every
// sequence to width bases per line.  Header lines are copied unchanged; empty
// lines are dropped.
func Reformat(out io.Writer, in io.Reader, width int) error {
	if width < 1 {
		return errors.Errorf("invalid line width %d", width)
	}
	var (
		r       = bufio.NewReader(in)
		w       = bufio.NewWriter(out)
		pending strings.Builder
		eof     bool
	)
	// drain writes the full lines of pending, and the remainder too when all
	// is set.
	drain := func(all bool) error {
		seq := pending.String()
		n := len(seq) - len(seq)%width
		if all {
			n = len(seq)
		}
		if err := Wrap(w, seq[:n], width); err != nil {
			return err
		}
		pending.Reset()
		pending.WriteString(seq[n:])
		return nil
	}
	for !eof {
		fullLine, err := r.ReadBytes('\n')
		if err == io.EOF { // Process fullLine, then exit the loop
			eof = true
		} else if err != nil {
			return errors.Wrap(err, "couldn't read FASTA data")
		}
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := drain(true); err != nil {
				return err
			}
			if _, err := w.Write(line); err != nil {
				return err
			}
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
			continue
		}
		pending.Write(line)
		if pending.Len() >= width {
			if err := drain(false); err != nil {
				return err
			}
		}
	}
	if err := drain(true); err != nil {
		return err
	}
	return w.Flush()
}
