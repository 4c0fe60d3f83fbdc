package pause

import (
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
)

// formatFloat returns the shortest decimal form of v that parses back to v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToTabs writes the pauses read from r one per line, with the columns name,
// chrom, position, normalizedReads, foldsAboveAverage, beginningReads and
// sequence.
func ToTabs(r *Reader, w io.Writer) error {
	out := tsv.NewWriter(w)
	for {
		p, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		out.WriteString(p.Name)
		out.WriteString(p.Chrom)
		out.WriteInt64(p.Position)
		out.WriteString(formatFloat(p.NormalizedReads))
		out.WriteString(formatFloat(p.FoldsAboveAverage))
		out.WriteString(formatFloat(p.BeginningReads))
		out.WriteString(p.Sequence)
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// tabsRow is one line of the form written by ToTabs. Numbers are parsed
// separately so that errors carry the offending value.
type tabsRow struct {
	Name              string
	Chrom             string
	Position          string
	NormalizedReads   string
	FoldsAboveAverage string
	BeginningReads    string
	Sequence          string
}

// FromTabs is the inverse of ToTabs.
func FromTabs(r io.Reader, w *Writer) error {
	in := tsv.NewReader(r)
	in.LazyQuotes = true
	in.FieldsPerRecord = 7
	var (
		row    tabsRow
		nLine  int
		parsed = func(err error, what, value string) error {
			return errors.E(errors.Invalid, err, fmt.Sprintf("pause tabs: line %d: bad %s %q", nLine, what, value))
		}
	)
	for {
		if err := in.Read(&row); err != nil {
			if err == io.EOF {
				break
			}
			return errors.E(errors.Invalid, err, fmt.Sprintf("pause tabs: line %d", nLine+1))
		}
		nLine++
		p := Pause{Name: row.Name, Chrom: row.Chrom, Sequence: row.Sequence}
		var err error
		if p.Position, err = strconv.ParseInt(row.Position, 10, 64); err != nil {
			return parsed(err, "position", row.Position)
		}
		if p.NormalizedReads, err = strconv.ParseFloat(row.NormalizedReads, 64); err != nil {
			return parsed(err, "normalizedReads", row.NormalizedReads)
		}
		if p.FoldsAboveAverage, err = strconv.ParseFloat(row.FoldsAboveAverage, 64); err != nil {
			return parsed(err, "foldsAboveAverage", row.FoldsAboveAverage)
		}
		if p.BeginningReads, err = strconv.ParseFloat(row.BeginningReads, 64); err != nil {
			return parsed(err, "beginningReads", row.BeginningReads)
		}
		if err := w.Write(p); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ToBED writes one single-base BED interval per pause read from r:
//
//   chrom  tss+position  tss+position+1  name  foldsAboveAverage
//
// where tss maps gene names to their transcription start site.  Pauses of
// genes missing from tss are logged and skipped.
func ToBED(r *Reader, w io.Writer, tss map[string]int64) error {
	var (
		out      = tsv.NewWriter(w)
		nSkipped int
		missing  = map[string]bool{}
	)
	for {
		p, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		start, ok := tss[p.Name]
		if !ok {
			if !missing[p.Name] {
				log.Printf("pauses2bed: gene %s could not be found in the TSS table", p.Name)
				missing[p.Name] = true
			}
			nSkipped++
			continue
		}
		start += p.Position
		out.WriteString(p.Chrom)
		out.WriteInt64(start)
		out.WriteInt64(start + 1)
		out.WriteString(p.Name)
		out.WriteString(formatFloat(p.FoldsAboveAverage))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	if nSkipped > 0 {
		log.Printf("pauses2bed: skipped %d pauses of %d unknown genes", nSkipped, len(missing))
	}
	return out.Flush()
}
