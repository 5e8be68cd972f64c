package cpu

import (
	"errors"
)

// next is the delta of every instruction that falls through.
const next = int32(INSTRUCTION_SIZE)

// jumpTo returns the PC delta reaching target.
func (cpu *Cpu) jumpTo(target uint16) int32 {
	return int32(target) - int32(cpu.Pc)
}

// call pushes the return address, and returns the PC delta reaching target.
func (cpu *Cpu) call(target uint16) int32 {
	cpu.Push(cpu.Pc + INSTRUCTION_SIZE)
	return cpu.jumpTo(target)
}

// condition evaluates the x field of Jx and Cx.
func (cpu *Cpu) condition(x uint8) (taken bool, err error) {
	switch cpu.Conditions {
	case COND_MODE_FLAGS:
		taken, err = Cond(x).Eval(cpu.Status)
	default:
		taken = x != 0
	}
	return
}

func (cpu *Cpu) video() (Video, error) {
	if cpu.Video == nil {
		return nil, errors.Join(ErrOpcodeVideo, ErrDeviceMissing)
	}
	return cpu.Video, nil
}

func (cpu *Cpu) audio() (Audio, error) {
	if cpu.Audio == nil {
		return nil, errors.Join(ErrOpcodeAudio, ErrDeviceMissing)
	}
	return cpu.Audio, nil
}

func opNop(cpu *Cpu, fld Fields) (int32, error) {
	return next, nil
}

func opCls(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	video.ClearForeground()
	video.ClearBackground()
	return next, nil
}

// opVblnk re-executes itself until the video reports a vertical blank.
func opVblnk(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	if !video.Vblank() {
		return 0, nil
	}
	return next, nil
}

func opBgc(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	video.SetBackground(fld.N)
	return next, nil
}

func opSpr(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	video.SetSpriteSize(fld.LL, fld.HH)
	return next, nil
}

func opDrw(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	x, y := cpu.Register.Signed(fld.X), cpu.Register.Signed(fld.Y)
	cpu.Status.Carry = video.DrawSprite(fld.HHLL, x, y)
	return next, nil
}

func opDrwIndirect(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	x, y := cpu.Register.Signed(fld.X), cpu.Register.Signed(fld.Y)
	cpu.Status.Carry = video.DrawSpriteIndirect(cpu.Register.Get(fld.Z()), x, y)
	return next, nil
}

// opRnd loads a uniform random value in [0, HHLL].
func opRnd(cpu *Cpu, fld Fields) (int32, error) {
	value := uint16(cpu.random().IntN(int(fld.HHLL) + 1))
	cpu.Register.Set(fld.X, value)
	return next, nil
}

func opFlip(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	video.SetFlip(fld.HFlip, fld.VFlip)
	return next, nil
}

func opSnd0(cpu *Cpu, fld Fields) (int32, error) {
	audio, err := cpu.audio()
	if err != nil {
		return 0, err
	}
	audio.Stop()
	return next, nil
}

func opSndFixed(tone Tone) Handler {
	return func(cpu *Cpu, fld Fields) (int32, error) {
		audio, err := cpu.audio()
		if err != nil {
			return 0, err
		}
		audio.PlayFixed(tone, fld.HHLL)
		return next, nil
	}
}

// opSnp plays the tone stored at [RX].
func opSnp(cpu *Cpu, fld Fields) (int32, error) {
	audio, err := cpu.audio()
	if err != nil {
		return 0, err
	}
	hz := cpu.Memory.Read16(cpu.Register.Get(fld.X))
	audio.PlayTone(hz, fld.HHLL)
	return next, nil
}

func opSng(cpu *Cpu, fld Fields) (int32, error) {
	audio, err := cpu.audio()
	if err != nil {
		return 0, err
	}
	audio.SetupEnvelope(fld.AD, fld.VTSR())
	return next, nil
}

func opJmp(cpu *Cpu, fld Fields) (int32, error) {
	return cpu.jumpTo(fld.HHLL), nil
}

func opJx(cpu *Cpu, fld Fields) (int32, error) {
	taken, err := cpu.condition(fld.X)
	if err != nil {
		return 0, errors.Join(ErrOpcodeFlow, err)
	}
	if !taken {
		return next, nil
	}
	return cpu.jumpTo(fld.HHLL), nil
}

func opJme(cpu *Cpu, fld Fields) (int32, error) {
	if cpu.Register.Get(fld.X) != cpu.Register.Get(fld.Y) {
		return next, nil
	}
	return cpu.jumpTo(fld.HHLL), nil
}

func opCall(cpu *Cpu, fld Fields) (int32, error) {
	return cpu.call(fld.HHLL), nil
}

func opRet(cpu *Cpu, fld Fields) (int32, error) {
	return cpu.jumpTo(cpu.Pop()), nil
}

func opJmpIndirect(cpu *Cpu, fld Fields) (int32, error) {
	return cpu.jumpTo(cpu.Register.Get(fld.X)), nil
}

func opCx(cpu *Cpu, fld Fields) (int32, error) {
	taken, err := cpu.condition(fld.X)
	if err != nil {
		return 0, errors.Join(ErrOpcodeFlow, err)
	}
	if !taken {
		return next, nil
	}
	return cpu.call(fld.HHLL), nil
}

func opCallIndirect(cpu *Cpu, fld Fields) (int32, error) {
	return cpu.call(cpu.Register.Get(fld.X)), nil
}

func opLdi(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Register.Set(fld.X, fld.HHLL)
	return next, nil
}

func opLdiSp(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Sp = fld.HHLL
	return next, nil
}

func opLdm(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Register.Set(fld.X, cpu.Memory.Read16(fld.HHLL))
	return next, nil
}

func opLdmIndirect(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Register.Set(fld.X, cpu.Memory.Read16(cpu.Register.Get(fld.Y)))
	return next, nil
}

// opMov is a register to register copy.
func opMov(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Register.Set(fld.X, cpu.Register.Get(fld.Y))
	return next, nil
}

func opStm(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Memory.Write16(fld.HHLL, cpu.Register.Get(fld.X))
	return next, nil
}

func opStmIndirect(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Memory.Write16(cpu.Register.Get(fld.Y), cpu.Register.Get(fld.X))
	return next, nil
}

// aluImmediate: RX = RX op HHLL. The result is discarded unless store is set.
func aluImmediate(op aluOp, store bool) Handler {
	return func(cpu *Cpu, fld Fields) (int32, error) {
		result, err := op(&cpu.Status, cpu.Register.Get(fld.X), fld.HHLL)
		if err != nil {
			return 0, errors.Join(ErrOpcodeAlu, err)
		}
		if store {
			cpu.Register.Set(fld.X, result)
		}
		return next, nil
	}
}

// aluRegister: RX = RX op RY. The result is discarded unless store is set.
func aluRegister(op aluOp, store bool) Handler {
	return func(cpu *Cpu, fld Fields) (int32, error) {
		result, err := op(&cpu.Status, cpu.Register.Get(fld.X), cpu.Register.Get(fld.Y))
		if err != nil {
			return 0, errors.Join(ErrOpcodeAlu, err)
		}
		if store {
			cpu.Register.Set(fld.X, result)
		}
		return next, nil
	}
}

// aluThree: RZ = RX op RY.
func aluThree(op aluOp) Handler {
	return func(cpu *Cpu, fld Fields) (int32, error) {
		result, err := op(&cpu.Status, cpu.Register.Get(fld.X), cpu.Register.Get(fld.Y))
		if err != nil {
			return 0, errors.Join(ErrOpcodeAlu, err)
		}
		cpu.Register.Set(fld.Z(), result)
		return next, nil
	}
}

// aluCount: RX = RX op N.
func aluCount(op aluOp) Handler {
	return func(cpu *Cpu, fld Fields) (int32, error) {
		result, err := op(&cpu.Status, cpu.Register.Get(fld.X), uint16(fld.N))
		if err != nil {
			return 0, errors.Join(ErrOpcodeAlu, err)
		}
		cpu.Register.Set(fld.X, result)
		return next, nil
	}
}

// aluSelf: RX = op RX.
func aluSelf(op aluOp) Handler {
	return func(cpu *Cpu, fld Fields) (int32, error) {
		value := cpu.Register.Get(fld.X)
		result, err := op(&cpu.Status, value, value)
		if err != nil {
			return 0, errors.Join(ErrOpcodeAlu, err)
		}
		cpu.Register.Set(fld.X, result)
		return next, nil
	}
}

func opPush(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Push(cpu.Register.Get(fld.X))
	return next, nil
}

func opPop(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Register.Set(fld.X, cpu.Pop())
	return next, nil
}

func opPushAll(cpu *Cpu, fld Fields) (int32, error) {
	for n := range REGISTER_COUNT {
		cpu.Push(cpu.Register.Get(uint8(n)))
	}
	return next, nil
}

func opPopAll(cpu *Cpu, fld Fields) (int32, error) {
	for n := REGISTER_COUNT - 1; n >= 0; n-- {
		cpu.Register.Set(uint8(n), cpu.Pop())
	}
	return next, nil
}

func opPushF(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Push(cpu.Status.Pack())
	return next, nil
}

func opPopF(cpu *Cpu, fld Fields) (int32, error) {
	cpu.Status.Unpack(cpu.Pop())
	return next, nil
}

// loadPalette reads 16 RGB triplets starting at addr.
func (cpu *Cpu) loadPalette(addr uint16) (palette Palette) {
	for n := range palette {
		base := addr + uint16(n*3)
		palette[n] = Color{
			R: cpu.Memory.Read8(base),
			G: cpu.Memory.Read8(base + 1),
			B: cpu.Memory.Read8(base + 2),
		}
	}
	return
}

func opPal(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	video.LoadPalette(cpu.loadPalette(fld.HHLL))
	return next, nil
}

func opPalIndirect(cpu *Cpu, fld Fields) (int32, error) {
	video, err := cpu.video()
	if err != nil {
		return 0, err
	}
	video.LoadPalette(cpu.loadPalette(cpu.Register.Get(fld.X)))
	return next, nil
}
