// Package bus wires the CPU, PPU, and cartridge mapper together into the
// NES's shared address space, and is the single place that keeps the
// PPU's dot clock running in lockstep with CPU cycles.
// https://www.nesdev.org/wiki/CPU_memory_map
package bus

import (
	"github.com/kbuilds/nesgo/ines"
	"github.com/kbuilds/nesgo/mappers"
	"github.com/kbuilds/nesgo/ppu"
)

const (
	ramSize    = 0x0800 // 2KiB of console RAM, mirrored through $1FFF
	ramMirror  = 0x1FFF
	ppuMirror  = 0x3FFF
	apuIOStart = 0x4000
	apuIOEnd   = 0x401F
	oamDMAReg  = 0x4014
	ctrl1Reg   = 0x4016
	ctrl2Reg   = 0x4017
)

// Bus owns the console's shared RAM and dispatches every CPU and PPU
// address to the right collaborator. It implements cpu.Bus directly and
// satisfies ppu.Bus for the PPU it owns.
type Bus struct {
	mapper mappers.Mapper
	ppu    *ppu.PPU

	ram [ramSize]uint8

	ctrl1, ctrl2 controller

	cpuCycles uint64
}

// New constructs a Bus for an already-loaded ROM, resolving its mapper
// from the iNES header's mapper number.
func New(rom *ines.ROM) (*Bus, error) {
	m, err := mappers.Get(rom)
	if err != nil {
		return nil, err
	}
	b := &Bus{mapper: m}
	b.ppu = ppu.New(b, m.MirroringMode())
	return b, nil
}

// PPU exposes the owned PPU so a host can pull completed frames.
func (b *Bus) PPU() *ppu.PPU { return b.ppu }

// SetController1 and SetController2 set the live button state polled the
// next time the corresponding controller's strobe is released.
func (b *Bus) SetController1(buttons uint8) { b.ctrl1.setButtons(buttons) }
func (b *Bus) SetController2(buttons uint8) { b.ctrl2.setButtons(buttons) }

// ReadCHR and WriteCHR satisfy ppu.Bus, delegating pattern-table space to
// the cartridge mapper.
func (b *Bus) ReadCHR(addr uint16) uint8      { return b.mapper.PPURead(addr) }
func (b *Bus) WriteCHR(addr uint16, val uint8) { b.mapper.PPUWrite(addr, val) }

// Read services a CPU memory read across the full 16-bit address space.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirror:
		return b.ram[addr&0x07FF]
	case addr <= ppuMirror:
		return b.ppu.ReadRegister(uint8(addr & 0x0007))
	case addr == ctrl1Reg:
		return b.ctrl1.read()
	case addr == ctrl2Reg:
		return b.ctrl2.read()
	case addr <= apuIOEnd:
		return 0 // APU and remaining I/O registers are not implemented
	default:
		return b.mapper.CPURead(addr)
	}
}

// Write services a CPU memory write across the full 16-bit address space.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= ramMirror:
		b.ram[addr&0x07FF] = val
	case addr <= ppuMirror:
		b.ppu.WriteRegister(uint8(addr&0x0007), val)
	case addr == oamDMAReg:
		b.oamDMA(val)
	case addr == ctrl1Reg:
		b.ctrl1.write(val)
	case addr == ctrl2Reg:
		b.ctrl2.write(val)
	case addr <= apuIOEnd:
		// APU registers: accepted and ignored.
	default:
		b.mapper.CPUWrite(addr, val)
	}
}

// Tick is the CPU's single point of contact for advancing the rest of the
// system's clock: it steps the PPU 3 dots for every CPU cycle, the fixed
// ratio the NES hardware runs its two clocks at.
func (b *Bus) Tick() {
	b.ppu.Tick()
	b.ppu.Tick()
	b.ppu.Tick()
	b.cpuCycles++
}

// NMIPending reports and clears an edge-triggered NMI the PPU raised at
// the start of vertical blank.
func (b *Bus) NMIPending() bool { return b.ppu.PendingNMI() }

// IRQPending always reports false: this bus implements no APU frame
// counter or mapper IRQ source.
func (b *Bus) IRQPending() bool { return false }

// oamDMA performs the $4014 OAM DMA transfer: 256 bytes copied from CPU
// page (val<<8) into PPU OAM, stalling the CPU for 513 cycles (514 if the
// transfer starts on an odd CPU cycle, the well-known alignment quirk).
// https://www.nesdev.org/wiki/PPU_OAM#DMA
func (b *Bus) oamDMA(page uint8) {
	base := uint16(page) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(b.Read(base + uint16(i)))
	}

	stall := 513
	if b.cpuCycles%2 == 1 {
		stall = 514
	}
	for i := 0; i < stall; i++ {
		b.Tick()
	}
}
