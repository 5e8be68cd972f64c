package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_LittleEndian(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write16(0x0000, 0xffaa)

	assert.Equal(uint8(0xaa), mem.Read8(0x0000))
	assert.Equal(uint8(0xff), mem.Read8(0x0001))
	assert.Equal(uint16(0xffaa), mem.Read16(0x0000))
}

func TestMemory_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	for _, value := range []uint16{0x0000, 0x0001, 0x00ff, 0x0100, 0x7fff, 0x8000, 0xabcd, 0xffff} {
		for _, addr := range []uint16{0x0000, 0x1235, 0xaaff, 0xfffe} {
			mem.Write16(addr, value)
			assert.Equal(value, mem.Read16(addr), "addr 0x%04x", addr)
		}
	}
}

func TestMemory_Wrap(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	mem.Write16(0xffff, 0x1234)

	assert.Equal(uint8(0x34), mem.Read8(0xffff))
	assert.Equal(uint8(0x12), mem.Read8(0x0000))
	assert.Equal(uint16(0x1234), mem.Read16(0xffff))
}

func TestMemory_Unwritten(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.Equal(uint16(0), mem.Read16(0x4000))
}

func TestMemory_Load(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	n := mem.Load(0xfffe, []uint8{1, 2, 3, 4})
	assert.Equal(2, n)
	assert.Equal(uint8(1), mem.Read8(0xfffe))
	assert.Equal(uint8(2), mem.Read8(0xffff))
	assert.Equal(uint8(0), mem.Read8(0x0000))

	mem.Reset()
	assert.Equal(uint8(0), mem.Read8(0xfffe))
}
