package pause

import (
	"fmt"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// LocalMaxima returns the pauses of group that are not exceeded by any other
// pause within window positions, i.e. p is kept iff no q in group has
// |q.Position-p.Position| <= window and q.FoldsAboveAverage >
// p.FoldsAboveAverage. Ties are all kept. The result preserves group order.
//
// Every pause is compared against every other one; groups are expected to be
// small (the pauses of one gene).
func LocalMaxima(group []Pause, window int) []Pause {
	w := int64(window)
	var kept []Pause
	for i := range group {
		p := &group[i]
		isMax := true
		for j := range group {
			q := &group[j]
			d := q.Position - p.Position
			if d < 0 {
				d = -d
			}
			if d <= w && q.FoldsAboveAverage > p.FoldsAboveAverage {
				isMax = false
				break
			}
		}
		if isMax {
			kept = append(kept, *p)
		}
	}
	return kept
}

// Maxima copies the windowed local maxima of each gene from r to w. Genes are
// runs of consecutive records with the same Name; the same name appearing in
// two separate runs forms two groups.
func Maxima(r *Reader, w *Writer, window int) error {
	if window < 0 {
		return errors.E(errors.Invalid, fmt.Sprintf("maxima: negative window %d", window))
	}
	var (
		group                    []Pause
		nGroups, nRead, nWritten int
	)
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		nGroups++
		for _, p := range LocalMaxima(group, window) {
			if err := w.Write(p); err != nil {
				return err
			}
			nWritten++
		}
		group = group[:0]
		return nil
	}
	for {
		p, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		nRead++
		if len(group) > 0 && group[0].Name != p.Name {
			if err := flush(); err != nil {
				return err
			}
		}
		group = append(group, p)
	}
	if err := flush(); err != nil {
		return err
	}
	log.Debug.Printf("maxima: window %d: %d genes, %d pauses read, %d written", window, nGroups, nRead, nWritten)
	return w.Flush()
}
