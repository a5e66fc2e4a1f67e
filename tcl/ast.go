package tcl

import (
	"strconv"
	"strings"
)

// NodeKind identifies the syntactic category of an AST node.
type NodeKind int

const (
	NodeProgram NodeKind = iota
	NodeCommand
	NodeList
	NodeOperand
	NodeWord
	NodeName
	NodeString
	NodeSubstring
	NodeQString
	NodeNumber
	NodeUnaryOp
	NodeBinaryOp
	NodeTernaryOp
	NodeFunc
)

var nodeKindNames = [...]string{
	NodeProgram:   "PROGRAM",
	NodeCommand:   "COMMAND",
	NodeList:      "LIST",
	NodeOperand:   "OPERAND",
	NodeWord:      "WORD",
	NodeName:      "NAME",
	NodeString:    "STRING",
	NodeSubstring: "SUBSTRING",
	NodeQString:   "QSTRING",
	NodeNumber:    "NUMBER",
	NodeUnaryOp:   "UNARYOP",
	NodeBinaryOp:  "BINARYOP",
	NodeTernaryOp: "TERNARYOP",
	NodeFunc:      "FUNC",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a syntax tree node. Each node owns its children; trees are never
// shared between parents.
type Node struct {
	Kind     NodeKind
	Value    string
	HasValue bool
	Children []*Node
	Pos      Position
}

func newNode(kind NodeKind, pos Position) *Node {
	return &Node{Kind: kind, Pos: pos}
}

func newValueNode(kind NodeKind, value string, pos Position) *Node {
	return &Node{Kind: kind, Value: value, HasValue: true, Pos: pos}
}

func (n *Node) add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// String renders the node on one line, without its children.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(n.Kind.String())
	if n.HasValue {
		b.WriteString(" ")
		b.WriteString(strconv.Quote(n.Value))
	}
	if n.Pos.Line > 0 {
		b.WriteString(" @")
		b.WriteString(n.Pos.String())
	}
	return b.String()
}

// Dump renders the subtree rooted at n, one node per line, indented by depth.
func (n *Node) Dump() string {
	var b strings.Builder
	n.dump(&b, 0)
	return b.String()
}

func (n *Node) dump(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.String())
	b.WriteString("\n")
	for _, child := range n.Children {
		child.dump(b, depth+1)
	}
}

// Walk visits n and its descendants depth-first, stopping a branch when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}
