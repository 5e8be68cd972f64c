package device

import (
	"log"

	"github.com/ezrec/chip16/cpu"
)

// SoundKind is the type of a logged sound command.
type SoundKind int

const (
	SOUND_STOP  = SoundKind(0) // SND0
	SOUND_FIXED = SoundKind(1) // SND1, SND2, SND3
	SOUND_TONE  = SoundKind(2) // SNP
)

// Sound is one logged sound command.
type Sound struct {
	Kind       SoundKind
	Hz         int
	DurationMs uint16
	Envelope   Envelope // Envelope in effect, for SOUND_TONE.
}

// Envelope is the ADSR setup of the SNG instruction.
type Envelope struct {
	Attack  uint8
	Decay   uint8
	Volume  uint8
	Type    uint8
	Sustain uint8
	Release uint8
}

// NewEnvelope decodes the SNG operands. The VTSR word holds VT in its
// low byte and SR in its high byte.
func NewEnvelope(ad uint8, vtsr uint16) Envelope {
	return Envelope{
		Attack:  ad >> 4,
		Decay:   ad & 0xf,
		Volume:  uint8(vtsr>>4) & 0xf,
		Type:    uint8(vtsr) & 0xf,
		Sustain: uint8(vtsr>>12) & 0xf,
		Release: uint8(vtsr>>8) & 0xf,
	}
}

// Spu keeps the sound state programmed by the CPU.
type Spu struct {
	Verbose bool // Set to enable verbose logging.

	Envelope Envelope // Envelope for SNP tones.
	Sounds   []Sound  // Commands issued since reset.
}

var _ cpu.Audio = (*Spu)(nil)

// Reset silences the Spu and clears its log.
func (spu *Spu) Reset() {
	spu.Envelope = Envelope{}
	spu.Sounds = spu.Sounds[:0]
}

func (spu *Spu) log(sound Sound) {
	if spu.Verbose {
		log.Printf("spu: %+v", sound)
	}
	spu.Sounds = append(spu.Sounds, sound)
}

// Playing returns the last sound started, if it has not been stopped.
func (spu *Spu) Playing() (sound Sound, ok bool) {
	if len(spu.Sounds) == 0 {
		return
	}
	sound = spu.Sounds[len(spu.Sounds)-1]
	ok = sound.Kind != SOUND_STOP
	return
}

func (spu *Spu) Stop() {
	spu.log(Sound{Kind: SOUND_STOP})
}

func (spu *Spu) PlayFixed(tone cpu.Tone, durationMs uint16) {
	spu.log(Sound{Kind: SOUND_FIXED, Hz: tone.Hz(), DurationMs: durationMs})
}

func (spu *Spu) PlayTone(hz uint16, durationMs uint16) {
	spu.log(Sound{Kind: SOUND_TONE, Hz: int(hz), DurationMs: durationMs, Envelope: spu.Envelope})
}

func (spu *Spu) SetupEnvelope(ad uint8, vtsr uint16) {
	spu.Envelope = NewEnvelope(ad, vtsr)
	if spu.Verbose {
		log.Printf("spu: envelope %+v", spu.Envelope)
	}
}
