// Package device provides reference peripherals for the Chip16 CPU.
// The Gpu and Spu keep the register-level state the CPU programs into them,
// and a log of the commands issued, without rendering or synthesizing.
package device
