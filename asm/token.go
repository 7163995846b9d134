package asm

import (
	"strings"
)

// Token is a single tokenized source line.
type Token struct {
	LineNo  int      // Source line number, starting at 1.
	Line    string   // Source line with the comment removed.
	Command string   // Command, or label definition ending in ':'.
	Args    []string // Zero, one or two operands.
}

// IsLabel is true for label definitions.
func (tok Token) IsLabel() bool {
	return strings.HasSuffix(tok.Command, ":")
}

// Label returns the name defined by a label token.
func (tok Token) Label() string {
	return strings.TrimRight(tok.Command, ":")
}

// Words returns the command followed by the operands.
func (tok Token) Words() []string {
	return append([]string{tok.Command}, tok.Args...)
}

func (tok Token) String() string {
	if len(tok.Args) == 0 {
		return tok.Command
	}
	return tok.Command + " " + strings.Join(tok.Args, ", ")
}
