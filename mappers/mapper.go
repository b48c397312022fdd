// Package mappers implements the cartridge Mapper interface and the
// mappers that are referenced numerically by iNES ROM headers.
package mappers

import (
	"errors"
	"fmt"

	"github.com/kbuilds/nesgo/ines"
)

// ErrUnsupportedMapper is wrapped with the offending mapper id and returned
// by Get when no mapper implementation has been registered for a ROM.
var ErrUnsupportedMapper = errors.New("unsupported mapper")

// Mapper is the cartridge-side half of the address-decoding contract: the
// bus delegates any CPU access in $4020-$FFFF and any PPU access in
// $0000-$1FFF to the mapper installed for the loaded ROM.
type Mapper interface {
	// Name identifies the mapper for diagnostics (e.g. "NROM").
	Name() string
	// ID is the iNES mapper number this implementation satisfies.
	ID() uint16
	// CPURead/CPUWrite service the CPU's view of cartridge space:
	// PRG-RAM at $6000-$7FFF (if present) and PRG-ROM at $8000-$FFFF.
	CPURead(addr uint16) uint8
	CPUWrite(addr uint16, val uint8)
	// PPURead/PPUWrite service the PPU's view of pattern table space,
	// $0000-$1FFF, backed by CHR-ROM or CHR-RAM.
	PPURead(addr uint16) uint8
	PPUWrite(addr uint16, val uint8)
	// MirroringMode reports the nametable mirroring the cartridge wires
	// up; the bus hands it to the PPU, which mirrors $2000-$2FFF into two
	// physical nametables.
	MirroringMode() ines.Mirroring
	// PRGRAM exposes battery-backed save RAM (if any) so a host can
	// persist it between runs. Returns nil when the cartridge has none.
	PRGRAM() []byte
}

// factory builds a Mapper from a parsed ROM image.
type factory func(*ines.ROM) Mapper

var registry = map[uint16]factory{}

// RegisterMapper installs a mapper constructor under the given iNES mapper
// id. Called from each mapper implementation's init(). Panics on a
// duplicate id: that is a programming error, not a runtime condition.
func RegisterMapper(id uint16, f factory) {
	if _, ok := registry[id]; ok {
		panic(fmt.Sprintf("mappers: mapper id %d registered twice", id))
	}
	registry[id] = f
}

// Get constructs the Mapper registered for rom's mapper number.
func Get(rom *ines.ROM) (Mapper, error) {
	id := rom.Header.MapperNumber()
	f, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: mapper %d", ErrUnsupportedMapper, id)
	}
	return f(rom), nil
}
