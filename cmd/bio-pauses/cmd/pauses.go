package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/pausetools/gene"
	"github.com/grailbio/pausetools/pause"
	"v.io/x/lib/cmdline"
)

const pausesHelp = "Pause file"

func newCmdMaxima() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "maxima",
		Short: "Keep the pauses that are local maxima of their gene",
		Long: `Keep the pauses that are local maxima of their gene.

A pause is kept unless another pause of the same gene, at most -window bases
away, has a higher foldsAboveAverage. Equal maxima are all kept. Genes are runs
of consecutive pauses with the same name.`,
	}
	flags := addIOFlags(cmd, pausesHelp, "Filtered pauses")
	window := cmd.Flags.Int("window", 10, "Window size, in bases; must be at least 1")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		if *window < 1 {
			return env.UsageErrorf("-window must be at least 1, got %d", *window)
		}
		return runIO(env, "maxima", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return pause.Maxima(pause.NewReader(r), pause.NewWriter(w), *window)
		})
	})
	return cmd
}

func newCmdPausesToBed() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "pauses2bed",
		Short: "Convert pauses to a BED file of single-base intervals",
		Long: `Convert pauses to a BED file of single-base intervals.

Each pause position is relative to its gene's transcription start site, read
from the -tss table. Pauses of genes missing from the table are skipped.`,
	}
	flags := addIOFlags(cmd, pausesHelp, "BED output")
	tssPath := cmd.Flags.String("tss", "", "TSS table, as written by sgdgene2tss")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		if err := checkInput(vcontext.Background(), env, "tss", *tssPath, true); err != nil {
			return err
		}
		return runIO(env, "pauses2bed", flags, func(ctx context.Context, r io.Reader, w io.Writer) (err error) {
			in, closeTSS, err := openInput(ctx, env, *tssPath)
			if err != nil {
				return err
			}
			tss, err := gene.ReadTSS(in)
			if e := closeTSS(); e != nil && err == nil {
				err = e
			}
			if err != nil {
				return err
			}
			return pause.ToBED(pause.NewReader(r), w, tss)
		})
	})
	return cmd
}

func newCmdPausesToTabs() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "pauses2tabs",
		Short: "Convert pauses to a tab-delimited file",
		Long: `Convert pauses to a tab-delimited file with the columns name, chromosome,
position, normalizedReads, foldsAboveAverage, beginningReads and sequence.`,
	}
	flags := addIOFlags(cmd, pausesHelp, "Tab-delimited output")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		return runIO(env, "pauses2tabs", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return pause.ToTabs(pause.NewReader(r), w)
		})
	})
	return cmd
}

func newCmdTabsToPauses() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "tabs2pauses",
		Short: "Convert a tab-delimited file written by pauses2tabs back to pauses",
	}
	flags := addIOFlags(cmd, "Tab-delimited input", "Pause output")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		return runIO(env, "tabs2pauses", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return pause.FromTabs(r, pause.NewWriter(w))
		})
	})
	return cmd
}
