// Package asm turns register machine assembly source into tokens.
//
// Each source line becomes at most one Token: a command followed by zero,
// one or two operand strings. Comments start at the first ';'. Label
// definitions are commands that end in ':'.
//
// Two conveniences are layered on top of the plain token stream:
//
//	.equ NAME VALUE   defines a constant
//	$(expr)           is replaced by the integer value of expr
//
// Expressions are evaluated with Starlark, with every integer constant and
// predefine in scope. Operands of msg are never expanded, since they carry
// literal text.
package asm
