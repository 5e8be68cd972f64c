package device

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip16/cpu"
)

func TestGpu_Reset(t *testing.T) {
	assert := assert.New(t)

	gpu := &Gpu{}
	gpu.SetBackground(3)
	gpu.SetSpriteSize(4, 8)
	gpu.DrawSprite(0x1000, 0, 0)
	gpu.Frame()

	gpu.Reset()
	assert.Equal(uint8(0), gpu.Background)
	assert.Equal(uint8(0), gpu.SpriteWidth)
	assert.Empty(gpu.Draws)
	assert.Equal(0, gpu.Frames)
	assert.Equal(DefaultPalette, gpu.Palette)
	assert.Equal(cpu.Color{R: 0xff, G: 0xff, B: 0xff}, gpu.Palette[15])
	assert.False(gpu.Vblank())
}

func TestGpu_Vblank(t *testing.T) {
	assert := assert.New(t)

	gpu := &Gpu{}
	assert.False(gpu.Vblank())

	gpu.Frame()
	assert.Equal(1, gpu.Frames)
	assert.True(gpu.Vblank())
	assert.False(gpu.Vblank())

	gpu.Frame()
	gpu.Frame()
	assert.Equal(3, gpu.Frames)
	assert.True(gpu.Vblank())
	assert.False(gpu.Vblank())
}

func TestGpu_Draw(t *testing.T) {
	assert := assert.New(t)

	gpu := &Gpu{}
	gpu.SetSpriteSize(4, 8)
	gpu.SetFlip(true, false)

	assert.False(gpu.DrawSprite(0x1000, -2, 20))
	assert.False(gpu.DrawSpriteIndirect(0x2000, 5, 6))

	assert.Equal([]Draw{
		{Addr: 0x1000, X: -2, Y: 20, Width: 4, Height: 8, HFlip: true},
		{Addr: 0x2000, X: 5, Y: 6, Width: 4, Height: 8, HFlip: true, Indirect: true},
	}, gpu.Draws)

	gpu.ClearForeground()
	assert.Empty(gpu.Draws)
}

func TestGpu_Collide(t *testing.T) {
	assert := assert.New(t)

	gpu := &Gpu{}
	gpu.Collide = func(draw Draw) bool {
		for _, prior := range gpu.Draws {
			if prior.X == draw.X && prior.Y == draw.Y {
				return true
			}
		}
		return false
	}

	assert.False(gpu.DrawSprite(0x1000, 10, 10))
	assert.False(gpu.DrawSprite(0x1000, 20, 10))
	assert.True(gpu.DrawSprite(0x1000, 10, 10))
	assert.Len(gpu.Draws, 3)
}

func TestGpu_Background(t *testing.T) {
	assert := assert.New(t)

	gpu := &Gpu{}
	gpu.SetBackground(0x1f)
	assert.Equal(uint8(0xf), gpu.Background)

	gpu.ClearBackground()
	assert.Equal(uint8(0), gpu.Background)
}

func TestGpu_Palette(t *testing.T) {
	assert := assert.New(t)

	gpu := &Gpu{}
	gpu.Reset()

	white := cpu.Color{R: 0xff, G: 0xff, B: 0xff}
	assert.NoError(gpu.SetColor(0, white))
	assert.Equal(white, gpu.Palette[0])

	err := gpu.SetColor(16, white)
	assert.Equal(ErrPaletteIndex(16), err)
	assert.Error(gpu.SetColor(-1, white))

	var palette cpu.Palette
	palette[15] = cpu.Color{R: 1, G: 2, B: 3}
	gpu.LoadPalette(palette)
	assert.Equal(palette, gpu.Palette)
}
