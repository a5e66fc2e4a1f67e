package main

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mgomes/tclish/tcl"
)

// transcriptEntry is one echoed input with what it produced. Entries with no
// input are notes from the REPL itself.
type transcriptEntry struct {
	input  string
	output string
	isErr  bool
}

// recall walks previously entered lines. pos == len(lines) means the user is
// editing a fresh line.
type recall struct {
	lines []string
	pos   int
}

func (r *recall) push(line string) {
	if n := len(r.lines); n == 0 || r.lines[n-1] != line {
		r.lines = append(r.lines, line)
	}
	r.pos = len(r.lines)
}

func (r *recall) older() (string, bool) {
	if r.pos == 0 {
		return "", false
	}
	r.pos--
	return r.lines[r.pos], true
}

func (r *recall) newer() (string, bool) {
	if r.pos >= len(r.lines) {
		return "", false
	}
	r.pos++
	if r.pos == len(r.lines) {
		return "", true
	}
	return r.lines[r.pos], true
}

type replKeys struct {
	Older    key.Binding
	Newer    key.Binding
	Run      key.Binding
	Complete key.Binding
	Vars     key.Binding
	Help     key.Binding
	Clear    key.Binding
	Quit     key.Binding
}

// ShortHelp lists the bindings shown in the footer.
func (k replKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.Vars, k.Help, k.Clear, k.Quit}
}

var bindings = replKeys{
	Older:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "older line")),
	Newer:    key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "newer line")),
	Run:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Vars:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "vars")),
	Help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+d", "quit")),
}

// metaCommand is a REPL directive typed with a leading colon.
type metaCommand struct {
	names []string
	usage string
	run   func(m replModel, input string) (replModel, tea.Cmd)
}

var metaCommands = []metaCommand{
	{
		names: []string{":help", ":h"},
		usage: "toggle this help",
		run: func(m replModel, _ string) (replModel, tea.Cmd) {
			m.showHelp = !m.showHelp
			return m, nil
		},
	},
	{
		names: []string{":vars", ":v"},
		usage: "toggle the variables panel",
		run: func(m replModel, _ string) (replModel, tea.Cmd) {
			m.showVars = !m.showVars
			return m, nil
		},
	},
	{
		names: []string{":trace", ":t"},
		usage: "show the command trace, then clear it",
		run: func(m replModel, input string) (replModel, tea.Cmd) {
			m.history = append(m.history, transcriptEntry{
				input:  input,
				output: strings.TrimRight(m.interp.Trace(), "\n"),
			})
			m.interp.ResetTrace()
			return m, nil
		},
	},
	{
		names: []string{":clear", ":c"},
		usage: "clear the transcript",
		run: func(m replModel, _ string) (replModel, tea.Cmd) {
			m.history = nil
			return m, nil
		},
	},
	{
		names: []string{":reset", ":r"},
		usage: "discard every variable",
		run: func(m replModel, input string) (replModel, tea.Cmd) {
			m.interp.Reset()
			m.interp.ResetTrace()
			m.history = append(m.history, transcriptEntry{input: input, output: "variables discarded"})
			return m, nil
		},
	},
	{
		names: []string{":quit", ":q"},
		usage: "leave the REPL",
		run: func(m replModel, _ string) (replModel, tea.Cmd) {
			m.quitting = true
			return m, tea.Quit
		},
	},
}

func findMetaCommand(name string) (metaCommand, bool) {
	for _, mc := range metaCommands {
		if slices.Contains(mc.names, name) {
			return mc, true
		}
	}
	return metaCommand{}, false
}

type replModel struct {
	textInput textinput.Model
	interp    *tcl.Interpreter
	out       *bytes.Buffer
	ctx       context.Context

	history []transcriptEntry
	lines   recall

	width, height int
	ready         bool
	showHelp      bool
	showVars      bool
	quitting      bool
}

// newREPLModel wraps interp, whose puts output must go to out.
func newREPLModel(ctx context.Context, interp *tcl.Interpreter, out *bytes.Buffer) replModel {
	if ctx == nil {
		ctx = context.Background()
	}
	in := textinput.New()
	in.Prompt = "% "
	in.PromptStyle = styles.prompt
	in.Placeholder = "command, or :help"
	in.CharLimit = 4096
	in.Width = 72
	in.Focus()
	return replModel{textInput: in, interp: interp, out: out, ctx: ctx}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height, m.ready = msg.Width, msg.Height, true
		m.textInput.Width = max(msg.Width-len(m.textInput.Prompt)-2, 10)
		return m, nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleKey(msg tea.KeyMsg) (replModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, bindings.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, bindings.Clear):
		m.history = nil
	case key.Matches(msg, bindings.Vars):
		m.showVars = !m.showVars
	case key.Matches(msg, bindings.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, bindings.Older):
		if line, ok := m.lines.older(); ok {
			m.setInput(line)
		}
	case key.Matches(msg, bindings.Newer):
		if line, ok := m.lines.newer(); ok {
			m.setInput(line)
		}
	case key.Matches(msg, bindings.Complete):
		m = m.handleAutocomplete()
	case key.Matches(msg, bindings.Run):
		return m.submit()
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m *replModel) setInput(line string) {
	m.textInput.SetValue(line)
	m.textInput.CursorEnd()
}

func (m replModel) submit() (replModel, tea.Cmd, bool) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil, true
	}
	m.setInput("")

	if strings.HasPrefix(input, ":") {
		next, cmd := m.handleCommand(input)
		next.lines.pos = len(next.lines.lines)
		return next, cmd, true
	}

	output, isErr := m.evaluate(input)
	m.history = append(m.history, transcriptEntry{input: input, output: output, isErr: isErr})
	m.lines.push(input)
	return m, nil, true
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	name, _, _ := strings.Cut(input, " ")
	mc, ok := findMetaCommand(name)
	if !ok {
		m.history = append(m.history, transcriptEntry{
			input:  input,
			output: fmt.Sprintf("unknown REPL command %s (try :help)", name),
			isErr:  true,
		})
		return m, nil
	}
	return mc.run(m, input)
}

// handleAutocomplete completes the word before the cursor against command
// names, or variable names when the word starts with '$'.
func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" || strings.HasSuffix(input, " ") {
		return m
	}
	start := strings.LastIndexAny(input, " \t[") + 1
	word := input[start:]

	var matches []string
	if name, isVar := strings.CutPrefix(word, "$"); isVar {
		for _, v := range m.interp.Context().Names() {
			if strings.HasPrefix(v, name) {
				matches = append(matches, "$"+v)
			}
		}
	} else {
		for _, c := range m.interp.Commands() {
			if strings.HasPrefix(c, word) {
				matches = append(matches, c)
			}
		}
	}

	switch len(matches) {
	case 0:
	case 1:
		m.setInput(input[:start] + matches[0])
	default:
		m.history = append(m.history, transcriptEntry{output: strings.Join(matches, "  ")})
	}
	return m
}

// evaluate runs input and returns the puts output followed by the result.
func (m replModel) evaluate(input string) (string, bool) {
	m.out.Reset()
	result, err := m.interp.Run(m.ctx, input)
	printed := strings.TrimRight(m.out.String(), "\n")
	m.out.Reset()

	var parts []string
	if printed != "" {
		parts = append(parts, printed)
	}
	switch {
	case err != nil:
		return strings.Join(append(parts, err.Error()), "\n"), true
	case !result.IsNull() && !strings.HasSuffix(printed, result.String()):
		parts = append(parts, result.String())
	case printed == "" && result.IsNull():
		return "(null)", false
	}
	return strings.Join(parts, "\n"), false
}

func (m replModel) View() string {
	switch {
	case m.quitting:
		return styles.note.Render("bye") + "\n"
	case !m.ready:
		return "starting..."
	}

	var sections []string
	sections = append(sections, m.titleBar())

	var side []string
	vars := m.interp.Context().Snapshot()
	if m.showVars {
		side = append(side, renderVarsPanel(vars))
	}
	if m.showHelp {
		side = append(side, renderHelpPanel())
	}
	budget := m.height - 4 - lineCount(side)
	sections = append(sections, m.renderTranscript(budget))
	sections = append(sections, side...)
	sections = append(sections, m.textInput.View(), renderFooter())
	return strings.Join(sections, "\n")
}

func (m replModel) titleBar() string {
	title := styles.title.Render("tclish REPL")
	stats := styles.note.Render(fmt.Sprintf("%d commands, %d variables",
		len(m.interp.Commands()), len(m.interp.Context().Names())))
	rule := styles.rule.Render(strings.Repeat("─", max(min(m.width, 72), 0)))
	return title + "  " + stats + "\n" + rule
}

// renderTranscript renders the newest entries that fit in budget lines.
func (m replModel) renderTranscript(budget int) string {
	var rendered []string
	used := 0
	for i := len(m.history) - 1; i >= 0; i-- {
		block := renderEntry(m.history[i])
		n := strings.Count(block, "\n") + 1
		if budget > 0 && used+n > budget && len(rendered) > 0 {
			break
		}
		rendered = append(rendered, block)
		used += n
	}
	slices.Reverse(rendered)
	return strings.Join(rendered, "\n")
}

func renderEntry(e transcriptEntry) string {
	var b strings.Builder
	if e.input != "" {
		b.WriteString(styles.echo.Render("% " + e.input))
		b.WriteString("\n")
	}
	switch {
	case e.isErr:
		b.WriteString(styles.failure.Render("! " + e.output))
	case e.input == "":
		b.WriteString(styles.note.Render(e.output))
	default:
		b.WriteString(styles.result.Render("→ " + e.output))
	}
	return b.String()
}

func renderVarsPanel(vars map[string]string) string {
	lines := []string{styles.heading.Render("Variables")}
	if len(vars) == 0 {
		lines = append(lines, styles.note.Render("none set"))
	}
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		lines = append(lines, styles.variable.Render(name)+" = "+vars[name])
	}
	return styles.panel.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	lines := []string{styles.heading.Render("Help")}
	for _, b := range []key.Binding{bindings.Older, bindings.Newer, bindings.Run, bindings.Complete} {
		lines = append(lines, helpLine(b.Help().Key, b.Help().Desc))
	}
	for _, mc := range metaCommands {
		lines = append(lines, helpLine(strings.Join(mc.names, " "), mc.usage))
	}
	return styles.panel.Render(strings.Join(lines, "\n"))
}

func helpLine(keys, desc string) string {
	return styles.keyName.Render(fmt.Sprintf("%-10s", keys)) + " " + styles.keyDesc.Render(desc)
}

func renderFooter() string {
	var parts []string
	for _, b := range bindings.ShortHelp() {
		parts = append(parts, styles.keyName.Render(b.Help().Key)+" "+styles.keyDesc.Render(b.Help().Desc))
	}
	return strings.Join(parts, styles.rule.Render(" · "))
}

func lineCount(blocks []string) int {
	n := 0
	for _, b := range blocks {
		n += strings.Count(b, "\n") + 1
	}
	return n
}

func newREPLCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive REPL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}
}

func runREPL(cmd *cobra.Command, opts *options) error {
	cfg, err := opts.settings(cmd)
	if err != nil {
		return err
	}
	// Log records on stderr would tear the alternate screen.
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	var out bytes.Buffer
	interp, err := opts.newInterpreter(cmd, cfg, &out)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	p := tea.NewProgram(newREPLModel(ctx, interp, &out), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
