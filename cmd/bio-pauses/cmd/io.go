package cmd

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/cmdline"
)

// ioFlags are the -input and -output flags shared by all commands. Empty
// paths stand for the command's stdin and stdout.
type ioFlags struct {
	input, output *string
}

func addIOFlags(cmd *cmdline.Command, inputHelp, outputHelp string) ioFlags {
	return ioFlags{
		input:  cmd.Flags.String("input", "", inputHelp+". Defaults to stdin; a .gz suffix is decompressed"),
		output: cmd.Flags.String("output", "", outputHelp+". Defaults to stdout; a .gz suffix is compressed"),
	}
}

// checkInput reports a usage error if path is required but empty, or if it
// does not exist.
func checkInput(ctx context.Context, env *cmdline.Env, flagName, path string, required bool) error {
	if path == "" {
		if required {
			return env.UsageErrorf("-%s is required", flagName)
		}
		return nil
	}
	if _, err := file.Stat(ctx, path); err != nil {
		return env.UsageErrorf("-%s: %s does not exist: %v", flagName, path, err)
	}
	return nil
}

func noArgs(env *cmdline.Env, argv []string) error {
	if len(argv) != 0 {
		return env.UsageErrorf("unexpected arguments %v", argv)
	}
	return nil
}

// openInput opens path, or returns stdin if path is empty.
func openInput(ctx context.Context, env *cmdline.Env, path string) (io.Reader, func() error, error) {
	if path == "" {
		return env.Stdin, func() error { return nil }, nil
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if fileio.DetermineType(path) != fileio.Gzip {
		return f.Reader(ctx), func() error { return f.Close(ctx) }, nil
	}
	gz, err := gzip.NewReader(f.Reader(ctx))
	if err != nil {
		_ = f.Close(ctx)
		return nil, nil, errors.E(err, path)
	}
	return gz, func() error {
		var e errors.Once
		e.Set(gz.Close())
		e.Set(f.Close(ctx))
		return e.Err()
	}, nil
}

// createOutput creates path, or returns stdout if path is empty.
func createOutput(ctx context.Context, env *cmdline.Env, path string) (io.Writer, func() error, error) {
	if path == "" {
		return env.Stdout, func() error { return nil }, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if fileio.DetermineType(path) != fileio.Gzip {
		return f.Writer(ctx), func() error { return f.Close(ctx) }, nil
	}
	gz := gzip.NewWriter(f.Writer(ctx))
	return gz, func() error {
		var e errors.Once
		e.Set(gz.Close())
		e.Set(f.Close(ctx))
		return e.Err()
	}, nil
}

// runIO checks and opens the input and output of a command, then runs fn.
// Both ends are closed on every path.
func runIO(env *cmdline.Env, name string, flags ioFlags, fn func(ctx context.Context, r io.Reader, w io.Writer) error) (err error) {
	ctx := vcontext.Background()
	if err = checkInput(ctx, env, "input", *flags.input, false); err != nil {
		return err
	}
	in, closeIn, err := openInput(ctx, env, *flags.input)
	if err != nil {
		return err
	}
	defer func() {
		if e := closeIn(); e != nil && err == nil {
			err = e
		}
	}()
	out, closeOut, err := createOutput(ctx, env, *flags.output)
	if err != nil {
		return err
	}
	defer func() {
		if e := closeOut(); e != nil && err == nil {
			err = e
		}
	}()
	log.Debug.Printf("%s: start, input %q, output %q", name, *flags.input, *flags.output)
	if err = fn(ctx, in, out); err != nil {
		return errors.E(err, name)
	}
	log.Debug.Printf("%s: done", name)
	return nil
}
