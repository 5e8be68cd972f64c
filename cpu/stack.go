package cpu

// The stack lives in memory at Sp, growing upward one word per entry.

// Push stores a word at Sp, and advances Sp.
func (cpu *Cpu) Push(value uint16) {
	cpu.Memory.Write16(cpu.Sp, value)
	cpu.Sp += 2
}

// Pop retreats Sp, and returns the word there.
func (cpu *Cpu) Pop() (value uint16) {
	cpu.Sp -= 2
	return cpu.Memory.Read16(cpu.Sp)
}

// Peek returns the most recently pushed word.
func (cpu *Cpu) Peek() (value uint16) {
	return cpu.Memory.Read16(cpu.Sp - 2)
}

// StackDepth returns the number of words between ARENA_STACK and Sp.
// It is negative if Sp has been moved below ARENA_STACK.
func (cpu *Cpu) StackDepth() int {
	return int(int16(cpu.Sp-ARENA_STACK)) / 2
}
