package cpu

// Color is one palette entry.
type Color struct {
	R, G, B uint8
}

// Palette is the 16-entry color table loaded by PAL.
type Palette [16]Color

// PALETTE_SIZE is the number of bytes PAL reads from memory.
const PALETTE_SIZE = 16 * 3

// Video is the graphics peripheral driven by the CPU.
type Video interface {
	// ClearForeground erases all sprites.
	ClearForeground()
	// ClearBackground resets the background color index to 0.
	ClearBackground()
	// Vblank reports whether a vertical blank is pending, consuming it.
	Vblank() bool
	// SetBackground sets the background palette index.
	SetBackground(index uint8)
	// SetSpriteSize sets the sprite width (in bytes) and height.
	SetSpriteSize(width, height uint8)
	// DrawSprite draws the sprite at addr, returning true on a collision.
	DrawSprite(addr uint16, x, y int16) (collision bool)
	// DrawSpriteIndirect draws the sprite pointed to by a register value.
	DrawSpriteIndirect(ptr uint16, x, y int16) (collision bool)
	// SetFlip sets the horizontal and vertical sprite flip.
	SetFlip(h, v bool)
	// LoadPalette replaces the color table.
	LoadPalette(palette Palette)
}

// Tone is one of the fixed tones of the SND1-SND3 instructions.
type Tone int

const (
	TONE_A = Tone(0) // 500Hz
	TONE_B = Tone(1) // 1000Hz
	TONE_C = Tone(2) // 1500Hz
)

// Hz returns the tone frequency.
func (tone Tone) Hz() int {
	return 500 * (int(tone) + 1)
}

// Audio is the sound peripheral driven by the CPU.
type Audio interface {
	// Stop silences all sound.
	Stop()
	// PlayFixed plays a fixed tone for a duration in milliseconds.
	PlayFixed(tone Tone, durationMs uint16)
	// PlayTone plays a tone of the given frequency using the envelope.
	PlayTone(hz uint16, durationMs uint16)
	// SetupEnvelope sets attack/decay and volume/type/sustain/release.
	SetupEnvelope(ad uint8, vtsr uint16)
}
