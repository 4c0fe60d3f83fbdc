package gene

import (
	"fmt"
	"io"
	"strconv"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/pausetools/chromsizes"
)

// firstFakeIndex is the bin of the first fake gene.
const firstFakeIndex = 585

// WriteFake writes a gene table with two genes per chromosome of sizes, one
// per strand, both spanning [padding, length-padding).  Genes are named
// "<chrom>-P" and "<chrom>-M".
func WriteFake(w io.Writer, sizes *chromsizes.Table, padding int64) error {
	if padding < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("fakegene: negative padding %d", padding))
	}
	out := tsv.NewWriter(w)
	index := int64(firstFakeIndex)
	for _, chrom := range sizes.Names() {
		length, _ := sizes.Len(chrom)
		start := strconv.FormatInt(padding, 10)
		end := strconv.FormatInt(length-padding, 10)
		for _, strand := range []string{"+", "-"} {
			suffix := "-P"
			if strand == "-" {
				suffix = "-M"
			}
			out.WriteInt64(index)
			out.WriteString(chrom + suffix)
			out.WriteString(chrom)
			out.WriteString(strand)
			// Transcription, coding and the single exon share the bounds.
			out.WriteString(start)
			out.WriteString(end)
			out.WriteString(start)
			out.WriteString(end)
			out.WriteString(start + ",")
			out.WriteString(end + ",")
			out.WriteString("n/a")
			if err := out.EndLine(); err != nil {
				return err
			}
		}
		index++
	}
	return out.Flush()
}
