// Package parse builds an error-tolerant structural tree over a token
// stream: blocks, calls with argument lists, assignments, function
// declarations and conditionals. It is not a full R grammar — it records
// the landmarks style rules need and wraps anything unparseable in an
// Opaque node instead of failing.
package parse

import "fmt"

// Kind tags a structural node.
type Kind uint8

const (
	// File is the root node spanning the whole token stream.
	File Kind = iota
	// Block is a braced region that is not the body of a conditional.
	Block
	// Call is a function call with a resolved callee name where possible.
	Call
	// Assignment is an assignment at expression level. Named arguments
	// inside calls are represented as Argument entries, never as
	// Assignment nodes.
	Assignment
	// Declaration is a function definition, named or anonymous.
	Declaration
	// Conditional covers if/else, for, while and repeat constructs.
	// Its brace body is inlined: the statements are direct children.
	Conditional
	// ArgList is the argument list of a Call or the formals of a
	// Declaration.
	ArgList
	// StringLit is a string literal landmark.
	StringLit
	// Opaque wraps a region the parser could not decompose further.
	Opaque
)

func (k Kind) String() string {
	switch k {
	case File:
		return "file"
	case Block:
		return "block"
	case Call:
		return "call"
	case Assignment:
		return "assignment"
	case Declaration:
		return "declaration"
	case Conditional:
		return "conditional"
	case ArgList:
		return "arglist"
	case StringLit:
		return "string"
	case Opaque:
		return "opaque"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one structural-tree node. Start/End are token indices into the
// file's token stream (End exclusive). Children are ordered and owned by
// their parent; a child's span lies within its parent's span and sibling
// spans do not overlap.
type Node struct {
	Kind     Kind
	Start    int
	End      int
	Depth    int // count of ancestor Block/Conditional nodes
	Children []*Node

	Callee    string     // Call: dotted/qualified callee name, "" if not a plain name
	Op        string     // Assignment/Declaration: assignment operator text
	OpTok     int        // Assignment/Declaration: token index of the operator
	Target    string     // Assignment/Declaration: assigned name, "" if complex
	TargetTok int        // Assignment/Declaration: token index of the target name, -1 if none
	Keyword   string     // Conditional: if, for, while or repeat
	Args      []Argument // ArgList entries
}

// Argument is one entry of an ArgList. Start/End span the value tokens;
// an Empty argument has Start == End.
type Argument struct {
	Name    string // "" for positional arguments
	NameTok int    // token index of the name, -1 if positional
	Start   int
	End     int
	Empty   bool
}

// Walk visits n and all descendants in depth-first order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
