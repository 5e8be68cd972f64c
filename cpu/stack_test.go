package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.Equal(0, cpu.StackDepth())

	cpu.Push(0x1234)
	assert.Equal(1, cpu.StackDepth())
	assert.Equal(uint16(0xfdf2), cpu.Sp)
	assert.Equal(uint16(0x1234), cpu.Memory.Read16(0xfdf0))
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Push(0x1234)
	cpu.Push(0xabcd)

	assert.Equal(uint16(0xabcd), cpu.Pop())
	assert.Equal(1, cpu.StackDepth())
	assert.Equal(uint16(0x1234), cpu.Pop())
	assert.Equal(0, cpu.StackDepth())
	assert.Equal(uint16(0xfdf0), cpu.Sp)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Push(0x1234)
	cpu.Push(0xabcd)

	assert.Equal(uint16(0xabcd), cpu.Peek())
	assert.Equal(2, cpu.StackDepth())
}

func TestStack_Underflow(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory.Write16(0xfdee, 0x5555)

	assert.Equal(uint16(0x5555), cpu.Pop())
	assert.Equal(uint16(0xfdee), cpu.Sp)
	assert.Equal(-1, cpu.StackDepth())
}

func TestStack_Wrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Sp = 0xfffe
	cpu.Push(0x4321)

	assert.Equal(uint16(0x0000), cpu.Sp)
	assert.Equal(uint16(0x4321), cpu.Memory.Read16(0xfffe))
	assert.Equal(uint16(0x4321), cpu.Pop())
}
