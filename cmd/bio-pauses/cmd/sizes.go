package cmd

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/grailbio/pausetools/chromsizes"
	"github.com/grailbio/pausetools/encoding/fasta"
	"v.io/x/lib/cmdline"
)

func newCmdFastaToSizes() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "fasta2sizes",
		Short: "Write the chromosome sizes of a FASTA file",
	}
	flags := addIOFlags(cmd, "FASTA input", "Chromosome sizes")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		return runIO(env, "fasta2sizes", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return fasta.WriteSizes(w, r)
		})
	})
	return cmd
}

// readHeader reads the header of a SAM stream if path ends in .sam, and of a
// BAM stream otherwise.
func readHeader(r io.Reader, path string) (*sam.Header, error) {
	if strings.HasSuffix(path, ".sam") {
		sr, err := sam.NewReader(r)
		if err != nil {
			return nil, errors.E(errors.Invalid, err, "reading SAM header")
		}
		return sr.Header(), nil
	}
	br, err := bam.NewReader(r, 1)
	if err != nil {
		return nil, errors.E(errors.Invalid, err, "reading BAM header")
	}
	defer br.Close() // nolint: errcheck
	return br.Header(), nil
}

func newCmdBamToSizes() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "bam2sizes",
		Short: "Write the chromosome sizes of a SAM or BAM header",
	}
	flags := addIOFlags(cmd, "BAM input, or SAM if the path ends in .sam", "Chromosome sizes")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		return runIO(env, "bam2sizes", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			h, err := readHeader(r, *flags.input)
			if err != nil {
				return err
			}
			return chromsizes.Write(w, chromsizes.FromSAMHeader(h))
		})
	})
	return cmd
}

func newCmdFastaReformat() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "fastareformat",
		Short: "Rewrap the sequences of a FASTA file",
	}
	flags := addIOFlags(cmd, "FASTA input", "FASTA output")
	width := cmd.Flags.Int("width", 80, "Bases per sequence line")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := noArgs(env, argv); err != nil {
			return err
		}
		if *width < 1 {
			return env.UsageErrorf("-width must be at least 1, got %d", *width)
		}
		return runIO(env, "fastareformat", flags, func(_ context.Context, r io.Reader, w io.Writer) error {
			return fasta.Reformat(w, r, *width)
		})
	})
	return cmd
}
