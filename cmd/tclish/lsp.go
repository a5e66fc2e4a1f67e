package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/spf13/cobra"

	"github.com/mgomes/tclish/tcl"
)

const (
	severityError   = 1
	severityWarning = 2

	completionFunction = 3
	completionKeyword  = 14
)

var lspKeywords = []string{"else", "elseif", "then"}

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	interp *tcl.Interpreter
	logger *slog.Logger
	docs   map[string]string
}

func newLSPCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve diagnostics, completion and hover over the language server protocol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.settings(cmd)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			interp, err := opts.newInterpreter(cmd, cfg, io.Discard)
			if err != nil {
				return err
			}
			server := &lspServer{
				reader: bufio.NewReader(cmd.InOrStdin()),
				writer: bufio.NewWriter(cmd.OutOrStdout()),
				interp: interp,
				logger: logger,
				docs:   make(map[string]string),
			}
			return server.serve()
		},
	}
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.logger.Warn("lsp: discarding malformed message", "error", err)
			continue
		}
		s.logger.Debug("lsp: message", "method", incoming.Method)

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
				},
			},
		}
	case "initialized", "exit":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(s.interp),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		word := wordAtPosition(s.docs[params.TextDocument.URI], params.Position.Line, params.Position.Character)
		description := describeWord(s.interp, word)
		if description == "" {
			return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": fmt.Sprintf("`%s`\n\n%s", word, description),
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error:   &lspResponseError{Code: -32601, Message: "method not found"},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.interp, source),
		},
	}
}

// diagnosticsForSource reports a parse error, or failing that, every lint
// warning for source.
func diagnosticsForSource(interp *tcl.Interpreter, source string) []map[string]any {
	tree, err := tcl.ParseScript(source)
	if err != nil {
		var pe *tcl.ParseError
		if errors.As(err, &pe) {
			return []map[string]any{newDiagnostic(pe.Pos.Line-1, pe.Pos.Column-1, severityError, pe.Message)}
		}
		return []map[string]any{newDiagnostic(0, 0, severityError, err.Error())}
	}

	warnings := checkScript(interp, tree)
	out := make([]map[string]any, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, newDiagnostic(w.Pos.Line-1, w.Pos.Column-1, severityWarning, w.Message+" ("+w.Command+")"))
	}
	return out
}

func newDiagnostic(line, character, severity int, message string) map[string]any {
	line = max(line, 0)
	character = max(character, 0)
	return map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": severity,
		"source":   "tclish",
		"message":  message,
	}
}

// completionItems lists registered commands and if-keywords, sorted.
func completionItems(interp *tcl.Interpreter) []map[string]any {
	items := make([]map[string]any, 0)
	commands := interp.Commands()
	i, j := 0, 0
	for i < len(commands) || j < len(lspKeywords) {
		if j >= len(lspKeywords) || (i < len(commands) && commands[i] < lspKeywords[j]) {
			items = append(items, map[string]any{"label": commands[i], "kind": completionFunction, "detail": "command"})
			i++
			continue
		}
		items = append(items, map[string]any{"label": lspKeywords[j], "kind": completionKeyword, "detail": "keyword"})
		j++
	}
	return items
}

func describeWord(interp *tcl.Interpreter, word string) string {
	if word == "" {
		return ""
	}
	if cmd, ok := interp.Lookup(word); ok {
		kind := "built-in command"
		if cmd.Script != nil {
			kind = "script command"
		}
		return fmt.Sprintf("%s, takes %s argument(s)", kind, arityRange(cmd))
	}
	if tcl.IsMathFunc(word) {
		return "math function"
	}
	for _, keyword := range lspKeywords {
		if keyword == word {
			return "keyword"
		}
	}
	return ""
}

// wordAtPosition returns the word under an LSP position, whose character
// offset counts UTF-16 code units.
func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}

	cursor := 0
	for units := 0; cursor < len(runes); cursor++ {
		width := utf16.RuneLen(runes[cursor])
		if width < 0 {
			width = 1
		}
		if units+width > character {
			break
		}
		units += width
	}
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == ':'
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
