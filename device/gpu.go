package device

import (
	"log"

	"github.com/ezrec/chip16/cpu"
)

// DefaultPalette is the power-on color table.
var DefaultPalette = cpu.Palette{
	{R: 0x00, G: 0x00, B: 0x00}, // 0: transparent
	{R: 0x00, G: 0x00, B: 0x00}, // 1: black
	{R: 0x88, G: 0x88, B: 0x88}, // 2: gray
	{R: 0xbf, G: 0x39, B: 0x32}, // 3: red
	{R: 0xde, G: 0x7a, B: 0xae}, // 4: pink
	{R: 0x4c, G: 0x3d, B: 0x21}, // 5: dark brown
	{R: 0x90, G: 0x5f, B: 0x25}, // 6: brown
	{R: 0xe4, G: 0x94, B: 0x52}, // 7: orange
	{R: 0xea, G: 0xd9, B: 0x79}, // 8: yellow
	{R: 0x53, G: 0x7a, B: 0x3b}, // 9: green
	{R: 0xab, G: 0xd5, B: 0x4a}, // A: light green
	{R: 0x25, G: 0x2e, B: 0x38}, // B: dark blue
	{R: 0x00, G: 0x46, B: 0x7f}, // C: blue
	{R: 0x68, G: 0xab, B: 0xcc}, // D: light blue
	{R: 0xbc, G: 0xde, B: 0xe4}, // E: sky blue
	{R: 0xff, G: 0xff, B: 0xff}, // F: white
}

// Draw records one sprite draw.
type Draw struct {
	Addr     uint16 // Sprite data address.
	X, Y     int16  // Screen position.
	Width    uint8  // Width in bytes (two pixels per byte).
	Height   uint8  // Height in lines.
	HFlip    bool
	VFlip    bool
	Indirect bool // Drawn via DRW RX, RY, RZ.
}

// Gpu keeps the video state programmed by the CPU.
type Gpu struct {
	Verbose bool // Set to enable verbose logging.

	Background   uint8       // Background palette index.
	SpriteWidth  uint8       // Sprite width in bytes.
	SpriteHeight uint8       // Sprite height in lines.
	HFlip        bool        // Horizontal flip.
	VFlip        bool        // Vertical flip.
	Palette      cpu.Palette // Color table.

	Draws  []Draw // Sprites drawn since the last foreground clear.
	Frames int    // Vertical blanks raised since reset.

	// Collide, if set, decides whether a draw collides. Without it, no draw collides.
	Collide func(draw Draw) bool

	vblank bool
}

var _ cpu.Video = (*Gpu)(nil)

// Reset returns the Gpu to its power-on state.
func (gpu *Gpu) Reset() {
	gpu.Background = 0
	gpu.SpriteWidth = 0
	gpu.SpriteHeight = 0
	gpu.HFlip = false
	gpu.VFlip = false
	gpu.Palette = DefaultPalette
	gpu.Draws = gpu.Draws[:0]
	gpu.Frames = 0
	gpu.vblank = false
}

// Frame raises a vertical blank.
func (gpu *Gpu) Frame() {
	gpu.vblank = true
	gpu.Frames++
}

func (gpu *Gpu) ClearForeground() {
	if gpu.Verbose {
		log.Printf("gpu: clear foreground (%d sprites)", len(gpu.Draws))
	}
	gpu.Draws = gpu.Draws[:0]
}

func (gpu *Gpu) ClearBackground() {
	gpu.Background = 0
}

// Vblank reports a pending vertical blank, and acknowledges it.
func (gpu *Gpu) Vblank() (pending bool) {
	pending = gpu.vblank
	gpu.vblank = false
	return
}

func (gpu *Gpu) SetBackground(index uint8) {
	gpu.Background = index & 0xf
}

func (gpu *Gpu) SetSpriteSize(width, height uint8) {
	gpu.SpriteWidth = width
	gpu.SpriteHeight = height
}

func (gpu *Gpu) draw(draw Draw) (collision bool) {
	draw.Width = gpu.SpriteWidth
	draw.Height = gpu.SpriteHeight
	draw.HFlip = gpu.HFlip
	draw.VFlip = gpu.VFlip

	if gpu.Collide != nil {
		collision = gpu.Collide(draw)
	}

	if gpu.Verbose {
		log.Printf("gpu: draw %04x at (%d,%d) %dx%d collision:%v",
			draw.Addr, draw.X, draw.Y, draw.Width, draw.Height, collision)
	}

	gpu.Draws = append(gpu.Draws, draw)
	return
}

func (gpu *Gpu) DrawSprite(addr uint16, x, y int16) (collision bool) {
	return gpu.draw(Draw{Addr: addr, X: x, Y: y})
}

func (gpu *Gpu) DrawSpriteIndirect(ptr uint16, x, y int16) (collision bool) {
	return gpu.draw(Draw{Addr: ptr, X: x, Y: y, Indirect: true})
}

func (gpu *Gpu) SetFlip(h, v bool) {
	gpu.HFlip = h
	gpu.VFlip = v
}

func (gpu *Gpu) LoadPalette(palette cpu.Palette) {
	gpu.Palette = palette
}

// SetColor replaces one palette entry.
func (gpu *Gpu) SetColor(index int, color cpu.Color) (err error) {
	if index < 0 || index >= len(gpu.Palette) {
		err = ErrPaletteIndex(index)
		return
	}
	gpu.Palette[index] = color
	return
}
