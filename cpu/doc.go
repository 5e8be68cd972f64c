// Package cpu implements the processor and assembler for the Chip16 system.
//
// The CPU consists of a program counter (PC), a stack pointer (SP) growing
// upward through memory, sixteen 16-bit general-purpose registers (r0-r15),
// a flag register (carry, zero, overflow, negative), and a flat 64KiB
// little-endian memory. Every instruction is a 4-byte word; the opcode byte
// selects a Descriptor from the opcode table, whose handler mutates the
// machine and returns the delta to apply to the PC.
//
// The CPU drives two peripherals, Video and Audio, synchronously.
//
// The assembler provides a macro assembly language for the Chip16 instruction
// set, supporting labels, equates, data directives and compile-time expression
// evaluation.
package cpu
