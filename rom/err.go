package rom

import (
	"errors"

	"github.com/ezrec/chip16/translate"
)

var f = translate.From

var (
	ErrHeaderShort   = errors.New(f("header short"))
	ErrImageTooLarge = errors.New(f("image exceeds memory"))
)

type ErrSizeMismatch struct {
	Header uint32
	Image  int
}

func (err ErrSizeMismatch) Error() string {
	return f("header size %d, image size %d", err.Header, err.Image)
}

type ErrCrcMismatch struct {
	Header uint32
	Image  uint32
}

func (err ErrCrcMismatch) Error() string {
	return f("header crc32 %#08x, image crc32 %#08x", err.Header, err.Image)
}
