package device

import (
	"github.com/ezrec/chip16/translate"
)

var f = translate.From

// ErrPaletteIndex is returned for a palette index outside 0..15.
type ErrPaletteIndex int

func (err ErrPaletteIndex) Error() string {
	return f("palette index %d invalid", int(err))
}
