package fasta

import (
	"bufio"
	"bytes"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// seqName extracts the sequence name from a '>' header line.
func seqName(header []byte) string {
	fields := bytes.Fields(header[1:])
	if len(fields) == 0 {
		return ""
	}
	return string(fields[0])
}

// WriteSizes writes one "<sequence name>\t<length>" line per sequence of the
// FASTA data read from in.  The output is a chromosome sizes table.
func WriteSizes(out io.Writer, in io.Reader) (err error) {
	var (
		tsvOut     = tsv.NewWriter(out)
		r          = bufio.NewReader(in)
		name       string
		started    bool
		totalBases int64
		cumByte    int64
		eof        bool
	)

	setErr := func(e error) {
		if e != nil && err == nil {
			err = e
		}
	}
	flush := func() {
		tsvOut.WriteString(name)
		tsvOut.WriteInt64(totalBases)
		setErr(tsvOut.EndLine())
	}
	for !eof && err == nil {
		fullLine, e := r.ReadBytes('\n')
		if e == io.EOF { // Process fullLine, then exit the loop
			eof = true
		} else if e != nil {
			setErr(e)
		}
		cumByte += int64(len(fullLine))
		line := bytes.TrimRight(fullLine, "\r\n")
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if started {
				flush()
			}
			if name = seqName(line); name == "" {
				setErr(errors.E(errors.Invalid, "malformed FASTA file: unnamed sequence"))
			}
			started = true
			totalBases = 0
			continue
		}
		if !started {
			setErr(errors.E(errors.Invalid, "malformed FASTA file: sequence data before the first header"))
		}
		totalBases += int64(len(line))
	}
	if cumByte == 0 {
		setErr(errors.E(errors.Invalid, "empty FASTA file"))
	}
	if err != nil {
		return
	}
	if started {
		flush()
	}
	setErr(tsvOut.Flush())
	return
}
