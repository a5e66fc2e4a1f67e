// Package tcl implements a small Tcl-flavoured command language. Scripts are
// sequences of commands separated by newlines or semicolons; every word of a
// command is a string after substitution:
//   - `$name`, `${name}` and `$arr(index)` read variables from the scope chain.
//   - `[script]` runs a nested script and splices in its result.
//   - `{...}` groups words without substitution; `"..."` groups with it.
//   - Backslash escapes, line continuations and `#` comments at command start.
//
// Three grammars share one lexer: scripts, expressions (used by `expr`, `if`,
// `for` and `while`) and plain substitution text (used by `subst` and quoted
// words). Expressions evaluate over integers, doubles and strings with the
// usual Tcl operator set and math functions.
//
// The Interpreter dispatches commands through a registry of native Go
// functions and script-bodied commands. It enforces a step quota and a
// recursion limit, honours context cancellation, and records a trace of
// every command it runs.
package tcl
