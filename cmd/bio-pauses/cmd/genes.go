package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/pausetools/chromsizes"
	"github.com/grailbio/pausetools/gene"
	"v.io/x/lib/cmdline"
)

func newCmdSgdGeneToTss() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "sgdgene2tss",
		Short: "Convert a UCSC sgdGene table to a TSS table",
	}
	flags := addIOFlags(cmd, "sgdGene table", "TSS table")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		return runIO(env, "sgdgene2tss", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return gene.SGDToTSS(r, w)
		})
	})
	return cmd
}

func newCmdFakeGene() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "fakegene",
		Short: "Create a gene table with one gene per chromosome strand",
		Long: `Create a gene table with one gene per chromosome strand.

Each gene covers its whole chromosome, except -padding bases at both ends.`,
	}
	flags := addIOFlags(cmd, sizesHelp, "Gene table")
	padding := cmd.Flags.Int64("padding", 2, "Bases excluded at both ends of each chromosome")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		if *padding < 0 {
			return env.UsageErrorf("-padding must not be negative, got %d", *padding)
		}
		return runIO(env, "fakegene", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			sizes, err := chromsizes.Read(r)
			if err != nil {
				return err
			}
			return gene.WriteFake(w, sizes, *padding)
		})
	})
	return cmd
}
