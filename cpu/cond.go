package cpu

import (
	"fmt"
)

// Cond selects the predicate tested by the Jx and Cx instructions.
type Cond uint8

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_Z   = Cond(0)  // Z
	COND_NZ  = Cond(1)  // NZ
	COND_N   = Cond(2)  // N
	COND_NN  = Cond(3)  // NN
	COND_P   = Cond(4)  // P
	COND_O   = Cond(5)  // O
	COND_NO  = Cond(6)  // NO
	COND_A   = Cond(7)  // A
	COND_AE  = Cond(8)  // AE
	COND_B   = Cond(9)  // B
	COND_BE  = Cond(10) // BE
	COND_G   = Cond(11) // G
	COND_GE  = Cond(12) // GE
	COND_L   = Cond(13) // L
	COND_LE  = Cond(14) // LE
	COND_RES = Cond(15) // RES
)

// CondMode selects how the x field of Jx and Cx is interpreted.
type CondMode int

const (
	// COND_MODE_NONZERO takes the branch when x is non-zero.
	COND_MODE_NONZERO = CondMode(0)
	// COND_MODE_FLAGS takes the branch when the Cond selected by x holds.
	COND_MODE_FLAGS = CondMode(1)
)

var condModeByName = map[string]CondMode{
	"nonzero": COND_MODE_NONZERO,
	"flags":   COND_MODE_FLAGS,
}

// ParseCondMode returns the CondMode named "nonzero" or "flags".
func ParseCondMode(name string) (mode CondMode, err error) {
	mode, ok := condModeByName[name]
	if !ok {
		err = ErrCondMode(name)
	}
	return
}

func (mode CondMode) String() string {
	for name, value := range condModeByName {
		if value == mode {
			return name
		}
	}
	return fmt.Sprintf("CondMode(%d)", int(mode))
}

// Eval tests the condition against the flags.
func (cc Cond) Eval(fl Flags) (taken bool, err error) {
	switch cc {
	case COND_Z:
		taken = fl.Zero
	case COND_NZ:
		taken = !fl.Zero
	case COND_N:
		taken = fl.Negative
	case COND_NN:
		taken = !fl.Negative
	case COND_P:
		taken = !fl.Negative && !fl.Zero
	case COND_O:
		taken = fl.Overflow
	case COND_NO:
		taken = !fl.Overflow
	case COND_A:
		taken = !fl.Carry && !fl.Zero
	case COND_AE:
		taken = !fl.Carry
	case COND_B:
		taken = fl.Carry
	case COND_BE:
		taken = fl.Carry || fl.Zero
	case COND_G:
		taken = fl.Overflow == fl.Negative && !fl.Zero
	case COND_GE:
		taken = fl.Overflow == fl.Negative
	case COND_L:
		taken = fl.Overflow != fl.Negative
	case COND_LE:
		taken = fl.Overflow != fl.Negative || fl.Zero
	default:
		err = ErrCondInvalid
	}
	return
}

// condByName maps condition names to codes, for the assembler.
var condByName = func() map[string]Cond {
	names := make(map[string]Cond, 16)
	for cc := COND_Z; cc < COND_RES; cc++ {
		names[cc.String()] = cc
	}
	return names
}()
