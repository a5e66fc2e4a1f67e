package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/mgomes/tclish/tcl"
)

func newTestLSPServer(docs map[string]string) *lspServer {
	if docs == nil {
		docs = make(map[string]string)
	}
	return &lspServer{
		interp: tcl.MustNewInterpreter(tcl.Config{}),
		docs:   docs,
	}
}

func TestLSPCommandExitsOnEOF(t *testing.T) {
	if _, err := executeCLI(t, "", "lsp"); err != nil {
		t.Fatalf("lsp failed: %v", err)
	}
}

func TestLSPCommandAnswersInitialize(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	exit := `{"jsonrpc":"2.0","method":"exit"}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%sContent-Length: %d\r\n\r\n%s", len(body), body, len(exit), exit)
	out, err := executeCLI(t, input, "lsp")
	if err != nil {
		t.Fatalf("lsp failed: %v", err)
	}
	if !strings.HasPrefix(out, "Content-Length: ") || !strings.Contains(out, `"hoverProvider":true`) {
		t.Fatalf("unexpected lsp output: %q", out)
	}
}

func TestDiagnosticsForCleanSource(t *testing.T) {
	interp := tcl.MustNewInterpreter(tcl.Config{})
	if diags := diagnosticsForSource(interp, "set x 1\nputs $x\n"); len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestDiagnosticsForParseError(t *testing.T) {
	interp := tcl.MustNewInterpreter(tcl.Config{})
	diags := diagnosticsForSource(interp, "puts {open\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if diags[0]["severity"] != severityError {
		t.Fatalf("expected error severity, got %#v", diags[0]["severity"])
	}
	if message, ok := diags[0]["message"].(string); !ok || message == "" {
		t.Fatalf("expected a message, got %#v", diags[0]["message"])
	}
}

func TestDiagnosticsForLintWarnings(t *testing.T) {
	interp := tcl.MustNewInterpreter(tcl.Config{})
	diags := diagnosticsForSource(interp, "set x 1\n  nosuch x\n")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %v", diags)
	}
	if diags[0]["severity"] != severityWarning || diags[0]["message"] != "unknown command (nosuch)" {
		t.Fatalf("unexpected diagnostic: %v", diags[0])
	}
	start := diags[0]["range"].(map[string]any)["start"].(map[string]any)
	if start["line"] != 1 || start["character"] != 2 {
		t.Fatalf("unexpected range start: %v", start)
	}
}

func TestCompletionItemsAreSortedAndCategorized(t *testing.T) {
	items := completionItems(tcl.MustNewInterpreter(tcl.Config{}))
	labels := make([]string, 0, len(items))
	for _, item := range items {
		labels = append(labels, item["label"].(string))
	}
	if !slices.IsSorted(labels) {
		t.Fatalf("expected sorted completion labels, got %v", labels)
	}

	keyword := findCompletionItem(t, items, "elseif")
	if keyword["kind"] != completionKeyword || keyword["detail"] != "keyword" {
		t.Fatalf("unexpected keyword item: %v", keyword)
	}
	command := findCompletionItem(t, items, "lindex")
	if command["kind"] != completionFunction || command["detail"] != "command" {
		t.Fatalf("unexpected command item: %v", command)
	}
}

func TestHandleMessageDidOpenPublishesDiagnostics(t *testing.T) {
	server := newTestLSPServer(nil)
	payload, err := json.Marshal(map[string]any{
		"textDocument": map[string]any{
			"uri":  "file:///tmp/test.tcl",
			"text": "nosuch\n",
		},
	})
	if err != nil {
		t.Fatalf("marshal params: %v", err)
	}

	messages := server.handleMessage(lspInboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/didOpen",
		Params:  payload,
	})
	if len(messages) != 1 || messages[0].Method != "textDocument/publishDiagnostics" {
		t.Fatalf("expected one publishDiagnostics notification, got %+v", messages)
	}
	params := messages[0].Params.(map[string]any)
	diags, ok := params["diagnostics"].([]map[string]any)
	if !ok || len(diags) != 1 {
		t.Fatalf("unexpected diagnostics payload: %#v", params["diagnostics"])
	}
	if server.docs["file:///tmp/test.tcl"] != "nosuch\n" {
		t.Fatalf("document not stored")
	}
}

func TestHandleMessageHoverDescribesCommands(t *testing.T) {
	server := newTestLSPServer(map[string]string{
		"file:///tmp/test.tcl": "set x 1\nputs [expr {sqrt($x)}]\n",
	})
	tests := []struct {
		line, character int
		want            string
	}{
		{0, 1, "built-in command, takes 1 to 2 argument(s)"},
		{1, 15, "math function"},
	}
	for _, tt := range tests {
		payload, err := json.Marshal(map[string]any{
			"textDocument": map[string]any{"uri": "file:///tmp/test.tcl"},
			"position":     map[string]any{"line": tt.line, "character": tt.character},
		})
		if err != nil {
			t.Fatalf("marshal params: %v", err)
		}
		messages := server.handleMessage(lspInboundMessage{
			JSONRPC: "2.0",
			ID:      rawID("1"),
			Method:  "textDocument/hover",
			Params:  payload,
		})
		if len(messages) != 1 {
			t.Fatalf("expected one response, got %d", len(messages))
		}
		result, ok := messages[0].Result.(map[string]any)
		if !ok {
			t.Fatalf("unexpected hover result: %#v", messages[0].Result)
		}
		value := result["contents"].(map[string]any)["value"].(string)
		if !strings.Contains(value, tt.want) {
			t.Fatalf("hover at %d:%d: expected %q in %q", tt.line, tt.character, tt.want, value)
		}
	}
}

func TestHandleMessageUnknownMethod(t *testing.T) {
	server := newTestLSPServer(nil)
	messages := server.handleMessage(lspInboundMessage{JSONRPC: "2.0", ID: rawID("7"), Method: "workspace/symbol"})
	if len(messages) != 1 || messages[0].Error == nil || messages[0].Error.Code != -32601 {
		t.Fatalf("expected method not found, got %+v", messages)
	}
}

func TestWordAtPosition(t *testing.T) {
	source := "set x 1\n  lindex $list 0\n"
	if word := wordAtPosition(source, 1, 4); word != "lindex" {
		t.Fatalf("expected lindex, got %q", word)
	}
}

func TestWordAtPositionUsesUTF16CharacterOffsets(t *testing.T) {
	if word := wordAtPosition("😀😀x y\n", 0, 4); word != "x" {
		t.Fatalf("expected x, got %q", word)
	}
}

func rawID(value string) *json.RawMessage {
	raw := json.RawMessage(value)
	return &raw
}

func findCompletionItem(t *testing.T, items []map[string]any, label string) map[string]any {
	t.Helper()
	for _, item := range items {
		if item["label"] == label {
			return item
		}
	}
	t.Fatalf("missing completion item %q", label)
	return nil
}
