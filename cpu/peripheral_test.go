package cpu

// fakeVideo records the calls made by the CPU.
type fakeVideo struct {
	Cleared    int
	Blank      bool
	Background uint8
	Width      uint8
	Height     uint8
	Sprites    []fakeSprite
	Collide    bool
	HFlip      bool
	VFlip      bool
	Palette    Palette
}

type fakeSprite struct {
	Addr uint16
	X, Y int16
}

func (fv *fakeVideo) ClearForeground() { fv.Cleared++; fv.Sprites = nil }
func (fv *fakeVideo) ClearBackground() { fv.Background = 0 }

func (fv *fakeVideo) Vblank() (blank bool) {
	blank = fv.Blank
	fv.Blank = false
	return
}

func (fv *fakeVideo) SetBackground(index uint8) { fv.Background = index }

func (fv *fakeVideo) SetSpriteSize(width, height uint8) {
	fv.Width = width
	fv.Height = height
}

func (fv *fakeVideo) DrawSprite(addr uint16, x, y int16) bool {
	fv.Sprites = append(fv.Sprites, fakeSprite{Addr: addr, X: x, Y: y})
	return fv.Collide
}

func (fv *fakeVideo) DrawSpriteIndirect(ptr uint16, x, y int16) bool {
	return fv.DrawSprite(ptr, x, y)
}

func (fv *fakeVideo) SetFlip(h, v bool) {
	fv.HFlip = h
	fv.VFlip = v
}

func (fv *fakeVideo) LoadPalette(palette Palette) { fv.Palette = palette }

// fakeAudio records the calls made by the CPU.
type fakeAudio struct {
	Stopped  int
	Tone     Tone
	Hz       uint16
	Duration uint16
	AD       uint8
	VTSR     uint16
}

func (fa *fakeAudio) Stop() { fa.Stopped++ }

func (fa *fakeAudio) PlayFixed(tone Tone, durationMs uint16) {
	fa.Tone = tone
	fa.Hz = uint16(tone.Hz())
	fa.Duration = durationMs
}

func (fa *fakeAudio) PlayTone(hz uint16, durationMs uint16) {
	fa.Hz = hz
	fa.Duration = durationMs
}

func (fa *fakeAudio) SetupEnvelope(ad uint8, vtsr uint16) {
	fa.AD = ad
	fa.VTSR = vtsr
}
