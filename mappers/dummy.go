package mappers

import "github.com/kbuilds/nesgo/ines"

// Dummy is a minimal, fully read/write RAM-backed Mapper for tests that
// need a cartridge without exercising NROM's PRG-ROM mirroring semantics.
type Dummy struct {
	PRG    [0x10000]uint8
	CHR    [0x2000]uint8
	Mirror ines.Mirroring
	RAM    []byte
}

func NewDummy() *Dummy { return &Dummy{} }

func (d *Dummy) Name() string                     { return "dummy" }
func (d *Dummy) ID() uint16                       { return 0xFFFF }
func (d *Dummy) MirroringMode() ines.Mirroring    { return d.Mirror }
func (d *Dummy) PRGRAM() []byte                   { return d.RAM }
func (d *Dummy) CPURead(addr uint16) uint8        { return d.PRG[addr] }
func (d *Dummy) CPUWrite(addr uint16, val uint8)  { d.PRG[addr] = val }
func (d *Dummy) PPURead(addr uint16) uint8        { return d.CHR[addr%0x2000] }
func (d *Dummy) PPUWrite(addr uint16, val uint8)  { d.CHR[addr%0x2000] = val }
