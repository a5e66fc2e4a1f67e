package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mgomes/tclish/tcl"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath    string
	logLevel      string
	encoding      string
	inputEncoding string
	plain         bool
	parallelLex   bool
	strict        bool
	stepQuota     int
	timeout       time.Duration
	trace         bool
	printResult   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "tclish [script]",
		Short: "tclish - a small Tcl-flavoured command language",
		Long: `tclish runs scripts written in a small Tcl-flavoured command language.

With a script argument it runs that file ("-" reads stdin). Without one it
opens the interactive REPL when stdin is a terminal, and otherwise runs the
script piped on stdin.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runPath(cmd, opts, args[0])
			}
			if stdinIsTerminal(cmd.InOrStdin()) {
				return runREPL(cmd, opts)
			}
			return runPath(cmd, opts, "-")
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (.toml, .yaml); defaults to $"+configEnv)
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default warn)")
	flags.StringVar(&opts.encoding, "encoding", "", "output character set, e.g. iso-8859-1 (default utf-8)")
	flags.StringVar(&opts.inputEncoding, "input-encoding", "", "script character set (default utf-8)")
	flags.BoolVar(&opts.plain, "plain", false, "omit the Tcl> prefix on puts output")
	flags.BoolVar(&opts.parallelLex, "parallel-lex", false, "lex scripts on a background goroutine")
	flags.BoolVar(&opts.strict, "strict", false, "fail commands whose [substitution] fails")
	flags.IntVar(&opts.stepQuota, "step-quota", 0, "maximum commands dispatched per run")
	flags.DurationVar(&opts.timeout, "timeout", 0, "abort a run after this long")
	flags.BoolVar(&opts.trace, "trace", false, "print the command trace after each run")
	flags.BoolVar(&opts.printResult, "print-result", false, "print the result of the last command")

	root.AddCommand(
		newRunCmd(opts),
		newREPLCmd(opts),
		newTokensCmd(),
		newASTCmd(),
		newCheckCmd(opts),
		newFmtCmd(),
		newLSPCmd(opts),
	)
	return root
}

// settings merges the config file with any flags set on the command line.
func (o *options) settings(cmd *cobra.Command) (fileConfig, error) {
	var cfg fileConfig
	if path := configPath(o.configPath); path != "" {
		loaded, err := loadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("encoding") {
		cfg.Encoding = o.encoding
	}
	if flags.Changed("input-encoding") {
		cfg.InputEncoding = o.inputEncoding
	}
	if flags.Changed("plain") {
		cfg.Plain = o.plain
	}
	if flags.Changed("parallel-lex") {
		cfg.ParallelLex = o.parallelLex
	}
	if flags.Changed("strict") {
		cfg.StrictSubstitution = o.strict
	}
	if flags.Changed("step-quota") {
		cfg.StepQuota = o.stepQuota
	}
	if flags.Changed("timeout") {
		cfg.Timeout = duration{o.timeout}
	}
	return cfg, nil
}

// newInterpreter builds an interpreter writing to out, with the config's
// script commands registered.
func (o *options) newInterpreter(cmd *cobra.Command, cfg fileConfig, out io.Writer) (*tcl.Interpreter, error) {
	logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	interp, err := tcl.NewInterpreter(cfg.interpreterConfig(out, logger))
	if err != nil {
		return nil, err
	}
	for _, c := range cfg.Commands {
		if err := interp.RegisterScript(c.Name, c.Params, c.Body); err != nil {
			return nil, fmt.Errorf("register %s: %w", c.Name, err)
		}
	}
	return interp, nil
}

func stdinIsTerminal(in io.Reader) bool {
	f, ok := in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readSource reads a script from path, or from stdin when path is "-".
func readSource(cmd *cobra.Command, path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read script: %w", err)
	}
	return data, path, nil
}
