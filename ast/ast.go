// Package ast defines the typed syntax tree of the scripting dialect.  Nodes
// are immutable after parsing; the executor walks them without modification so
// a Program may be executed any number of times.
package ast

// Program is a complete script: an ordered list of sequential items.
type Program []Item

// Item is one sequential item, terminated by ‘;’, a newline, or end of input.
// A background item does not block the items that follow it, but the
// interpreter still reaps it before the whole Program reports completion.
type Item struct {
	List       CommandList
	Background bool
}

// CommandList is a chain of pipelines connected by ‘&&’/‘||’, stored
// left-associatively: the operator joins Lhs's result to Rhs.  A bare
// pipeline has a nil Lhs.
type CommandList struct {
	Lhs *CommandList
	Op  BinaryOp
	Rhs Pipeline
}

type BinaryOp int

const (
	LAnd BinaryOp = iota
	LOr
)

// Pipeline is a non-empty list of commands connected by pipes.  Negate flips
// the final exit status: zero becomes one, non-zero becomes zero.
type Pipeline struct {
	Negate bool
	Cmds   []Command
}

// Command is either a Simple command or a Subshell.
type Command interface {
	isCommand()
}

// Simple is a command name with arguments, assignment prefixes, and
// redirections.  Args empty means the command is only assignments, which then
// apply to the enclosing environment.
type Simple struct {
	Assigns []Assign
	Args    []Word
	Redirs  []Redirect
	Off     int
}

// Subshell executes a nested Program in a cloned environment; mutations
// within never escape to the caller.
type Subshell struct {
	Body   Program
	Redirs []Redirect
	Off    int
}

func (Simple) isCommand()   {}
func (Subshell) isCommand() {}

// Assign is a ‘NAME=value’ prefix.  The value is a Word expanded without
// field splitting or globbing.
type Assign struct {
	Name  string
	Value Word
}

// Word is a sequence of adjacent parts concatenated after expansion.
type Word []Part

// Part is one segment of a word.
type Part interface {
	isPart()
}

// Lit is unquoted literal text, subject to field splitting and globbing.
type Lit string

// Quoted is quoted literal text, preserved verbatim.
type Quoted string

// VarRef is a variable reference.  Quoted references are never split or
// globbed.
type VarRef struct {
	Name   string
	Quoted bool
}

func (Lit) isPart()    {}
func (Quoted) isPart() {}
func (VarRef) isPart() {}

type RedirKind int

const (
	RedirRead   RedirKind = iota // <
	RedirWrite                   // >
	RedirAppend                  // >>
	RedirDup                     // n>&m
)

// Redirect rewires one stream of a single command before it runs.  SrcFD is
// the descriptor being redirected; for RedirDup, DstFD is the descriptor it
// duplicates and Target is nil.
type Redirect struct {
	Kind   RedirKind
	SrcFD  int
	DstFD  int
	Target Word
	Off    int
}
