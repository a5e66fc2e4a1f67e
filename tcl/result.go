package tcl

// Result is the value a command or script produces. A null result means the
// command produced nothing, which is distinct from the empty string.
type Result struct {
	text  string
	valid bool
}

// NewResult wraps text as a non-null result.
func NewResult(text string) Result {
	return Result{text: text, valid: true}
}

// NullResult returns the null result.
func NullResult() Result {
	return Result{}
}

func (r Result) IsNull() bool {
	return !r.valid
}

// String returns the result text; null renders as the empty string.
func (r Result) String() string {
	return r.text
}
