package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgomes/tclish/tcl"
)

var lexModes = []tcl.LexMode{tcl.ModeScript, tcl.ModeExpr, tcl.ModeSubst}

func parseLexMode(name string) (tcl.LexMode, error) {
	for _, mode := range lexModes {
		if mode.String() == name {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want script, expr or subst)", name)
}

func newTokensCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "tokens <script>",
		Short: "Print the token stream of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lexMode, err := parseLexMode(mode)
			if err != nil {
				return err
			}
			data, _, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			for _, tok := range tcl.Tokenize(string(data), lexMode) {
				fmt.Fprintln(cmd.OutOrStdout(), renderToken(tok))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "script", "lexer mode: script, expr or subst")
	return cmd
}

func renderToken(tok tcl.Token) string {
	var b strings.Builder
	b.WriteString(styles.position.Render(fmt.Sprintf("%-7s", tok.Pos.String())))
	b.WriteString(" ")
	if tok.Kind.IsOperator() {
		b.WriteString(styles.operator.Render(tok.Kind.String()))
	} else {
		b.WriteString(styles.kind.Render(tok.Kind.String()))
	}
	if tok.HasText {
		b.WriteString(" ")
		b.WriteString(styles.text.Render(strconv.Quote(tok.Text)))
	}
	return b.String()
}

func newASTCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "ast <script>",
		Short: "Print the syntax tree of a script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lexMode, err := parseLexMode(mode)
			if err != nil {
				return err
			}
			data, name, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}
			tree, err := parseMode(string(data), lexMode)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), tree.Dump())
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "script", "grammar: script, expr or subst")
	return cmd
}

func parseMode(source string, mode tcl.LexMode) (*tcl.Node, error) {
	switch mode {
	case tcl.ModeExpr:
		return tcl.ParseExpression(source)
	case tcl.ModeSubst:
		return tcl.ParseSubstitution(source)
	default:
		return tcl.ParseScript(source)
	}
}
