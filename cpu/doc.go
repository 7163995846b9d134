// Package cpu implements the execution engine for the register machine.
//
// A Program is loaded from tokens once: label definitions are collected into
// a label table, and every other line is decoded into an Instruction. The
// Cpu then steps a program counter over the instructions, with a register
// file and a memory of signed 64-bit integers, a call stack of return lines,
// and a comparison flag that is set by cmp and consumed by the conditional
// jump (j*) and call (c*) instructions.
//
// Registers and memory cells exist once written. Reading either before that
// is a fault, as is a program counter that leaves the program or lands on a
// label definition.
package cpu
