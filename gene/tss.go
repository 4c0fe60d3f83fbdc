// Package gene reads and writes the gene annotation tables used to place
// pauses on chromosomes.
package gene

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
)

// TSSHeader is the header row of a TSS table.
var TSSHeader = []string{"SEQ_NAME", "START", "END", "STRAND", "ANNO_TAG"}

// TSS is one row of a TSS table.
type TSS struct {
	Chrom  string `tsv:"SEQ_NAME"`
	Start  int64  `tsv:"START"`
	End    int64  `tsv:"END"`
	Strand string `tsv:"STRAND"`
	Name   string `tsv:"ANNO_TAG"`
}

// ReadTSS reads a TSS table and returns the transcription start site of each
// gene, keyed by gene name.
func ReadTSS(r io.Reader) (map[string]int64, error) {
	in := tsv.NewReader(r)
	in.HasHeaderRow = true
	in.UseHeaderNames = true
	var (
		row   TSS
		nLine = 1
		tss   = map[string]int64{}
	)
	for {
		if err := in.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.E(errors.Invalid, err, fmt.Sprintf("tss: line %d", nLine+1))
		}
		nLine++
		tss[row.Name] = row.Start
	}
	return tss, nil
}

// SGDToTSS converts a UCSC sgdGene table to a TSS table.  Genes on the "+"
// strand are written first, in input order, followed by the genes on the "-"
// strand.
func SGDToTSS(r io.Reader, w io.Writer) error {
	var (
		scanner = bufio.NewScanner(r)
		out     = tsv.NewWriter(w)
		minus   []TSS
		nLine   int
	)
	write := func(row TSS) error {
		out.WriteString(row.Chrom)
		out.WriteInt64(row.Start)
		out.WriteInt64(row.End)
		out.WriteString(row.Strand)
		out.WriteString(row.Name)
		return out.EndLine()
	}
	for _, col := range TSSHeader {
		out.WriteString(col)
	}
	if err := out.EndLine(); err != nil {
		return err
	}
	for scanner.Scan() {
		nLine++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 6 {
			return errors.E(errors.Invalid, fmt.Sprintf("sgdGene: line %d has %d columns, want at least 6", nLine, len(cols)))
		}
		row := TSS{Chrom: cols[2], Strand: cols[3], Name: cols[1]}
		var err error
		if row.Start, err = strconv.ParseInt(cols[4], 10, 64); err == nil {
			row.End, err = strconv.ParseInt(cols[5], 10, 64)
		}
		if err != nil {
			return errors.E(errors.Invalid, err, fmt.Sprintf("sgdGene: line %d: bad transcription bounds", nLine))
		}
		if row.Strand == "-" {
			minus = append(minus, row)
			continue
		}
		if err := write(row); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	for _, row := range minus {
		if err := write(row); err != nil {
			return err
		}
	}
	return out.Flush()
}
