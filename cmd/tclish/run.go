package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgomes/tclish/tcl"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run a script file (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd, opts, args[0])
		},
	}
}

func runPath(cmd *cobra.Command, opts *options, path string) error {
	cfg, err := opts.settings(cmd)
	if err != nil {
		return err
	}
	data, name, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	source, err := tcl.DecodeScript(data, cfg.InputEncoding)
	if err != nil {
		return err
	}

	interp, err := opts.newInterpreter(cmd, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	result, err := runWithTimeout(cmd.Context(), interp, source, cfg)
	if opts.trace {
		fmt.Fprint(cmd.OutOrStdout(), interp.Trace())
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if opts.printResult && !result.IsNull() {
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
	}
	return nil
}

func runWithTimeout(ctx context.Context, interp *tcl.Interpreter, source string, cfg fileConfig) (tcl.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout.Duration)
		defer cancel()
	}
	return interp.Run(ctx, source)
}
