package cpu

// aluOp computes a 16-bit result from two operands, updating flags.
// An aluOp that fails must leave the flags untouched.
type aluOp func(fl *Flags, a, b uint16) (result uint16, err error)

const signBit = uint16(0x8000)

func negative(value uint16) bool {
	return (value & signBit) != 0
}

// evalZN sets zero and negative from a truncated result.
func (fl *Flags) evalZN(result uint16) {
	fl.Zero = result == 0
	fl.Negative = negative(result)
}

// evalAdd sets all four flags for a + b, given the untruncated sum.
func (fl *Flags) evalAdd(a, b uint16, raw uint32) {
	result := uint16(raw)
	fl.Carry = raw > 0xffff
	fl.Overflow = negative(a) == negative(b) && negative(result) != negative(a)
	fl.evalZN(result)
}

// evalSub sets all four flags for a - b, given the untruncated difference.
// Carry is the borrow out of bit 15.
func (fl *Flags) evalSub(a, b uint16, raw int32) {
	result := uint16(raw)
	fl.Carry = raw < 0
	fl.Overflow = negative(a) != negative(b) && negative(result) != negative(a)
	fl.evalZN(result)
}

// evalMul sets carry, zero and negative for an untruncated product.
func (fl *Flags) evalMul(raw uint32) {
	fl.Carry = raw > 0xffff
	fl.evalZN(uint16(raw))
}

// evalDiv sets carry when the division was inexact, and zero and negative
// from the quotient.
func (fl *Flags) evalDiv(quotient uint16, inexact bool) {
	fl.Carry = inexact
	fl.evalZN(quotient)
}

func aluAdd(fl *Flags, a, b uint16) (uint16, error) {
	raw := uint32(a) + uint32(b)
	fl.evalAdd(a, b, raw)
	return uint16(raw), nil
}

func aluSub(fl *Flags, a, b uint16) (uint16, error) {
	raw := int32(a) - int32(b)
	fl.evalSub(a, b, raw)
	return uint16(raw), nil
}

func aluMul(fl *Flags, a, b uint16) (uint16, error) {
	raw := uint32(a) * uint32(b)
	fl.evalMul(raw)
	return uint16(raw), nil
}

func aluDiv(fl *Flags, a, b uint16) (uint16, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	sa, sb := int32(Signed(a)), int32(Signed(b))
	quotient := uint16(sa / sb)
	fl.evalDiv(quotient, sa%sb != 0)
	return quotient, nil
}

// aluMod is the floored modulo; the result takes the sign of the divisor.
func aluMod(fl *Flags, a, b uint16) (uint16, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	sa, sb := int32(Signed(a)), int32(Signed(b))
	mod := sa % sb
	if mod != 0 && (mod < 0) != (sb < 0) {
		mod += sb
	}
	result := uint16(mod)
	fl.evalZN(result)
	return result, nil
}

// aluRem is the truncated remainder; the result takes the sign of the dividend.
func aluRem(fl *Flags, a, b uint16) (uint16, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	result := uint16(int32(Signed(a)) % int32(Signed(b)))
	fl.evalZN(result)
	return result, nil
}

func aluAnd(fl *Flags, a, b uint16) (uint16, error) {
	result := a & b
	fl.evalZN(result)
	return result, nil
}

func aluOr(fl *Flags, a, b uint16) (uint16, error) {
	result := a | b
	fl.evalZN(result)
	return result, nil
}

func aluXor(fl *Flags, a, b uint16) (uint16, error) {
	result := a ^ b
	fl.evalZN(result)
	return result, nil
}

func aluShl(fl *Flags, a, b uint16) (uint16, error) {
	result := a << (b & 0xf)
	fl.evalZN(result)
	return result, nil
}

func aluShr(fl *Flags, a, b uint16) (uint16, error) {
	result := a >> (b & 0xf)
	fl.evalZN(result)
	return result, nil
}

func aluSar(fl *Flags, a, b uint16) (uint16, error) {
	result := uint16(Signed(a) >> (b & 0xf))
	fl.evalZN(result)
	return result, nil
}

// aluNot ignores a.
func aluNot(fl *Flags, _, b uint16) (uint16, error) {
	result := ^b
	fl.evalZN(result)
	return result, nil
}

// aluNeg ignores a.
func aluNeg(fl *Flags, _, b uint16) (uint16, error) {
	result := -b
	fl.evalZN(result)
	return result, nil
}
