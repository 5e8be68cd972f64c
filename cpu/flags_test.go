package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlags_Pack(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint16(0), Flags{}.Pack())
	assert.Equal(uint16(0x02), Flags{Carry: true}.Pack())
	assert.Equal(uint16(0x04), Flags{Zero: true}.Pack())
	assert.Equal(uint16(0x40), Flags{Overflow: true}.Pack())
	assert.Equal(uint16(0x80), Flags{Negative: true}.Pack())
	assert.Equal(uint16(0xc6), Flags{true, true, true, true}.Pack())
}

func TestFlags_Unpack(t *testing.T) {
	assert := assert.New(t)

	var fl Flags
	fl.Unpack(0xffff)
	assert.Equal(Flags{true, true, true, true}, fl)

	fl.Unpack(0xff39)
	assert.Equal(Flags{}, fl)

	fl.Unpack(0x0042)
	assert.Equal(Flags{Carry: true, Overflow: true}, fl)
}

func TestFlags_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("----", Flags{}.String())
	assert.Equal("C-O-", Flags{Carry: true, Overflow: true}.String())
	assert.Equal("CZON", Flags{true, true, true, true}.String())
}
