package mappers

import "github.com/kbuilds/nesgo/ines"

func init() {
	RegisterMapper(0, newNROM)
}

const prgRAMSize = 8192

// nrom implements Mapper 0 (NROM): no bank switching. PRG-ROM is either a
// single 16KiB bank mirrored across $8000-$BFFF and $C000-$FFFF, or two
// 16KiB banks filling $8000-$FFFF directly. CHR is ROM or, if the cartridge
// declared zero CHR banks, 8KiB of CHR-RAM.
type nrom struct {
	prg     []byte
	chr     []byte
	chrIsRAM bool
	prgRAM  []byte
	mirror  ines.Mirroring
}

func newNROM(rom *ines.ROM) Mapper {
	n := &nrom{
		prg:      rom.PRG,
		mirror:   rom.Header.MirroringMode(),
		chrIsRAM: rom.HasCHRRAM(),
	}
	if n.chrIsRAM {
		n.chr = make([]byte, chrBankSize)
	} else {
		n.chr = rom.CHR
	}
	if rom.Header.HasBatteryRAM() {
		n.prgRAM = make([]byte, prgRAMSize)
	}
	return n
}

const chrBankSize = 8192

func (n *nrom) Name() string { return "NROM" }
func (n *nrom) ID() uint16   { return 0 }

func (n *nrom) MirroringMode() ines.Mirroring { return n.mirror }

func (n *nrom) PRGRAM() []byte { return n.prgRAM }

func (n *nrom) CPURead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		if n.prgRAM == nil {
			return 0
		}
		return n.prgRAM[addr-0x6000]
	case addr >= 0x8000:
		off := int(addr - 0x8000)
		return n.prg[off%len(n.prg)]
	default:
		return 0
	}
}

func (n *nrom) CPUWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr <= 0x7FFF && n.prgRAM != nil {
		n.prgRAM[addr-0x6000] = val
	}
	// Writes to $8000-$FFFF are no-ops: NROM has no bank-select registers.
}

func (n *nrom) PPURead(addr uint16) uint8 {
	if int(addr) < len(n.chr) {
		return n.chr[addr]
	}
	return 0
}

func (n *nrom) PPUWrite(addr uint16, val uint8) {
	if !n.chrIsRAM {
		return
	}
	if int(addr) < len(n.chr) {
		n.chr[addr] = val
	}
}
