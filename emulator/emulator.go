// Package emulator is the host-facing entry point: it loads an iNES image,
// wires the cartridge mapper into a bus, and drives the CPU/PPU pair one
// instruction or one frame at a time.
package emulator

import (
	"fmt"

	"github.com/kbuilds/nesgo/bus"
	"github.com/kbuilds/nesgo/cpu"
	"github.com/kbuilds/nesgo/ines"
	"github.com/kbuilds/nesgo/ppu"
)

// Emulator owns one console instance: a loaded cartridge, its bus, CPU,
// and PPU. It is not safe for concurrent use.
type Emulator struct {
	bus *bus.Bus
	cpu *cpu.CPU
}

// New parses rom as an iNES image and constructs a console ready to Reset
// and run. It returns an error if the image is malformed or names a
// mapper this engine does not implement.
func New(rom []byte) (*Emulator, error) {
	parsed, err := ines.Load(rom)
	if err != nil {
		return nil, fmt.Errorf("emulator: %w", err)
	}

	b, err := bus.New(parsed)
	if err != nil {
		return nil, fmt.Errorf("emulator: %w", err)
	}

	e := &Emulator{bus: b, cpu: cpu.New(b)}
	e.cpu.Reset()
	return e, nil
}

// Reset pulses the console's reset line: the CPU reloads its program
// counter from the reset vector and restores its power-up register state.
func (e *Emulator) Reset() {
	e.cpu.Reset()
}

// StepInstruction executes exactly one CPU instruction (or services a
// pending interrupt) and returns the number of CPU cycles it took. A
// non-nil error means the CPU decoded an opcode with no table entry and
// is now halted; subsequent calls keep returning that same error.
func (e *Emulator) StepInstruction() (int, error) {
	return e.cpu.StepInstruction()
}

// RunFrame steps the CPU until the PPU signals that it has completed one
// 262-scanline frame, and returns that frame's pixels. If the CPU halts
// on a bad opcode mid-frame, RunFrame returns the error immediately
// instead of the (incomplete) frame.
func (e *Emulator) RunFrame() (*ppu.FrameBuffer, error) {
	p := e.bus.PPU()
	for !p.FrameReady() {
		if _, err := e.cpu.StepInstruction(); err != nil {
			return nil, err
		}
	}
	return p.TakeFrame(), nil
}

// SetController1 updates the live button state for controller port 1,
// polled the next time its strobe line is released.
func (e *Emulator) SetController1(buttons uint8) {
	e.bus.SetController1(buttons)
}

// SetController2 updates the live button state for controller port 2.
func (e *Emulator) SetController2(buttons uint8) {
	e.bus.SetController2(buttons)
}
