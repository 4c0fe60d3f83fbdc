package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/pausetools/chromsizes"
	"github.com/grailbio/pausetools/track"
	"v.io/x/lib/cmdline"
)

const sizesHelp = "Chromosome sizes file, one 'name<TAB>length' line per chromosome. A samtools .fai index also works"

type trackFlags struct {
	io    ioFlags
	sizes *string
}

func newTrackCmd(name, short, format string, convert func(r io.Reader, w io.Writer, sizes *chromsizes.Table) error) *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  name,
		Short: short,
		Long: short + `.

The track lists, for every chromosome of the sizes file, a 'chrom=<name>' line
followed by one score line per base. Bases without a score are 0. Scores past
the end of a chromosome are dropped. Chromosomes absent from the input are
written last, as zeros.`,
	}
	flags := trackFlags{
		io:    addIOFlags(cmd, format+" input", "Track output"),
		sizes: cmd.Flags.String("sizes", "", sizesHelp),
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		ctx := vcontext.Background()
		if err := checkInput(ctx, env, "sizes", *flags.sizes, true); err != nil {
			return err
		}
		return runIO(env, name, flags.io, func(ctx context.Context, r io.Reader, w io.Writer) error {
			sizes, err := chromsizes.ReadPath(ctx, *flags.sizes)
			if err != nil {
				return err
			}
			return convert(r, w, sizes)
		})
	})
	return cmd
}

func newCmdBedToTrack() *cmdline.Command {
	return newTrackCmd("bed2track", "Convert a scored BED file to a dense track", "BED", track.FromBED)
}

func newCmdWigToTrack() *cmdline.Command {
	return newTrackCmd("wig2track", "Convert a WIG file to a dense track", "WIG", track.FromWIG)
}
