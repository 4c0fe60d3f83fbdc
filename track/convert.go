package track

import (
	"io"

	"github.com/grailbio/pausetools/chromsizes"
	"github.com/grailbio/pausetools/interval"
	"github.com/grailbio/pausetools/wig"
)

// FromBED writes the dense track of the scored BED intervals read from r.
func FromBED(r io.Reader, w io.Writer, sizes *chromsizes.Table) error {
	m := NewMaterializer(w, sizes)
	s := interval.NewScanner(r)
	for s.Scan() {
		if s.Header() {
			continue
		}
		iv, err := s.Scored()
		if err != nil {
			return err
		}
		if err := m.AddInterval(iv.Chrom, iv.Start, iv.End, iv.Score); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	return m.Close()
}

// FromWIG writes the dense track of the WIG points read from r.  A section
// declaration starts its chromosome even if no data follows it.
func FromWIG(r io.Reader, w io.Writer, sizes *chromsizes.Table) error {
	m := NewMaterializer(w, sizes)
	s := wig.NewScanner(r)
	for s.Scan() {
		p, ok := s.Point()
		if !ok {
			if err := m.StartChromosome(s.Chrom()); err != nil {
				return err
			}
			continue
		}
		if err := m.AddPoint(p.Chrom, p.Pos, p.Score); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	return m.Close()
}
