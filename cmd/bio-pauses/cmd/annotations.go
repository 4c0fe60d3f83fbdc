package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/pausetools/interval"
	"v.io/x/lib/cmdline"
)

func newCmdSetAnnotationSize() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "setannotationsize",
		Short: "Resize every annotation of a BED file",
		Long: `Resize every annotation of a BED file to -size bases.

By default the start of each annotation is kept and its end is moved. With
-change-start, the end is kept instead. With -reverse-negative-strand, the
anchor is swapped for annotations on the '-' strand (6th column).`,
	}
	flags := addIOFlags(cmd, "BED input", "BED output")
	var opts interval.SizeOpts
	cmd.Flags.Int64Var(&opts.Size, "size", 1, "Annotation size, in bases")
	cmd.Flags.BoolVar(&opts.ChangeStart, "change-start", false, "Keep the end of annotations and move their start")
	cmd.Flags.BoolVar(&opts.ReverseNegativeStrand, "reverse-negative-strand", false, "Swap the anchor of '-' strand annotations")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		if opts.Size < 0 {
			return env.UsageErrorf("-size must not be negative, got %d", opts.Size)
		}
		return runIO(env, "setannotationsize", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return interval.SetAnnotationSize(r, w, opts)
		})
	})
	return cmd
}

func newCmdMoveAnnotations() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "moveannotations",
		Short: "Shift every annotation of a BED file",
	}
	flags := addIOFlags(cmd, "BED input", "BED output")
	distance := cmd.Flags.Int64("distance", 0, "Bases to add to the start and end of each annotation; may be negative")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		return runIO(env, "moveannotations", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return interval.MoveAnnotations(r, w, *distance)
		})
	})
	return cmd
}
