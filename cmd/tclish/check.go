package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mgomes/tclish/tcl"
)

type lintWarning struct {
	Pos     tcl.Position
	Command string
	Message string
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check <script>...",
		Short: "Report unknown commands and arity mistakes without running",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			interp, err := opts.newInterpreter(cmd, cfg, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			total := 0
			for _, path := range args {
				data, name, err := readSource(cmd, path)
				if err != nil {
					return err
				}
				source, err := tcl.DecodeScript(data, cfg.InputEncoding)
				if err != nil {
					return err
				}
				tree, err := tcl.ParseScript(source)
				if err != nil {
					return fmt.Errorf("%s: %w", name, err)
				}
				warnings := checkScript(interp, tree)
				for _, w := range warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %s (%s)\n", name, w.Pos.Line, w.Pos.Column, w.Message, w.Command)
				}
				total += len(warnings)
			}
			if total == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No issues found")
				return nil
			}
			return fmt.Errorf("check found %d issue(s)", total)
		},
	}
}

// checkScript lints every command in tree, descending into braced bodies of
// control commands and into bracketed substitutions.
func checkScript(interp *tcl.Interpreter, tree *tcl.Node) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintProgram(interp, tree, tcl.Position{Line: 1, Column: 1}, &warnings)
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		return warnings[i].Pos.Column < warnings[j].Pos.Column
	})
	return warnings
}

func lintProgram(interp *tcl.Interpreter, program *tcl.Node, origin tcl.Position, warnings *[]lintWarning) {
	for _, cmd := range program.Children {
		if cmd.Kind != tcl.NodeCommand {
			continue
		}
		for _, operand := range cmd.Children {
			lintSubstitutions(interp, operand, origin, warnings)
		}
		if !cmd.HasValue {
			continue
		}
		pos := offsetPosition(origin, cmd.Pos)

		def, ok := interp.Lookup(cmd.Value)
		if !ok {
			*warnings = append(*warnings, lintWarning{Pos: pos, Command: cmd.Value, Message: "unknown command"})
			continue
		}
		if n := len(cmd.Children); n < def.MinArity || (def.MaxArity != tcl.Variadic && n > def.MaxArity) {
			*warnings = append(*warnings, lintWarning{
				Pos:     pos,
				Command: cmd.Value,
				Message: fmt.Sprintf("wrong # args: got %d, want %s", n, arityRange(def)),
			})
			continue
		}
		for _, body := range scriptOperands(cmd.Value, cmd.Children) {
			lintNested(interp, body, origin, warnings)
		}
	}
}

// lintSubstitutions lints the scripts of [..] fragments inside operand.
func lintSubstitutions(interp *tcl.Interpreter, operand *tcl.Node, origin tcl.Position, warnings *[]lintWarning) {
	operand.Walk(func(n *tcl.Node) bool {
		if n.Kind == tcl.NodeProgram && n.HasValue {
			lintNested(interp, n, origin, warnings)
			return false
		}
		return true
	})
}

// lintNested parses text held by a braced or bracketed node as a script.
// Text that does not parse is left to run time.
func lintNested(interp *tcl.Interpreter, n *tcl.Node, origin tcl.Position, warnings *[]lintWarning) {
	tree, err := tcl.ParseScript(n.Value)
	if err != nil {
		return
	}
	inner := offsetPosition(origin, n.Pos)
	inner.Column++
	lintProgram(interp, tree, inner, warnings)
}

// scriptOperands returns the braced operands a control command evaluates as
// scripts.
func scriptOperands(name string, args []*tcl.Node) []*tcl.Node {
	var idx []int
	switch name {
	case "for":
		idx = []int{0, 2, 3}
	case "while":
		idx = []int{1}
	case "foreach":
		idx = []int{len(args) - 1}
	case "if":
		idx = ifBodies(args)
	}

	var out []*tcl.Node
	for _, i := range idx {
		if i < 0 || i >= len(args) {
			continue
		}
		if body, ok := bracedText(args[i]); ok {
			out = append(out, body)
		}
	}
	return out
}

func ifBodies(args []*tcl.Node) []int {
	var idx []int
	i := 1
	for i < len(args) {
		if word, _ := bracedOrWord(args[i]); word == "then" {
			i++
		}
		idx = append(idx, i)
		i++
		if i >= len(args) {
			break
		}
		switch word, _ := bracedOrWord(args[i]); word {
		case "elseif":
			i += 2
		case "else":
			idx = append(idx, i+1)
			return idx
		default:
			idx = append(idx, i)
			return idx
		}
	}
	return idx
}

func bracedText(operand *tcl.Node) (*tcl.Node, bool) {
	if len(operand.Children) != 1 || operand.Children[0].Kind != tcl.NodeString {
		return nil, false
	}
	return operand.Children[0], true
}

func bracedOrWord(operand *tcl.Node) (string, bool) {
	if len(operand.Children) != 1 {
		return "", false
	}
	child := operand.Children[0]
	if child.Kind != tcl.NodeWord && child.Kind != tcl.NodeString {
		return "", false
	}
	return child.Value, true
}

// offsetPosition maps pos, relative to a nested script starting at origin,
// back onto the enclosing file.
func offsetPosition(origin, pos tcl.Position) tcl.Position {
	if pos.Line <= 1 {
		return tcl.Position{Line: origin.Line, Column: origin.Column + pos.Column - 1}
	}
	return tcl.Position{Line: origin.Line + pos.Line - 1, Column: pos.Column}
}

func arityRange(cmd tcl.Command) string {
	switch {
	case cmd.MaxArity == tcl.Variadic:
		return fmt.Sprintf("at least %d", cmd.MinArity)
	case cmd.MinArity == cmd.MaxArity:
		return fmt.Sprintf("%d", cmd.MinArity)
	default:
		return fmt.Sprintf("%d to %d", cmd.MinArity, cmd.MaxArity)
	}
}
