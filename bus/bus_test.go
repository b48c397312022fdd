package bus

import (
	"testing"

	"github.com/kbuilds/nesgo/ines"
)

func buildROM(t *testing.T, prgBanks int) *ines.ROM {
	t.Helper()
	raw := make([]byte, 16)
	copy(raw, []byte("NES\x1a"))
	raw[4] = byte(prgBanks)
	rom, err := ines.Load(append(raw, make([]byte, prgBanks*16384)...))
	if err != nil {
		t.Fatalf("ines.Load() error = %v", err)
	}
	return rom
}

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	b, err := New(buildROM(t, 1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Errorf("Read(0x0800) = %#02x, want 0x42 (mirrors 0x0000)", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Errorf("Read(0x1800) = %#02x, want 0x42 (mirrors 0x0000)", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x2000, 0x80) // PPUCTRL: enable NMI
	b.Write(0x2009, 0x18) // PPUMASK via the mirrored $2009 address
	if b.ppu == nil {
		t.Fatal("expected a constructed PPU")
	}

	b.Write(0x200B, 0x10) // OAMADDR via $200B
	b.Write(0x200C, 0x77) // OAMDATA via $200C
	b.Write(0x2003, 0x10) // OAMADDR back to 0x10
	if got := b.Read(0x3FFC); got != 0x77 {
		t.Errorf("Read(0x3FFC) = %#02x, want 0x77 (mirrors OAMDATA at $2004)", got)
	}
}

func TestControllerShiftRegisterReadsButtonsInOrder(t *testing.T) {
	b := newTestBus(t)
	b.SetController1(ButtonA | ButtonStart)

	b.Write(ctrl1Reg, 1) // strobe high
	b.Write(ctrl1Reg, 0) // strobe low, latches current buttons

	var bits [8]uint8
	for i := range bits {
		bits[i] = b.Read(ctrl1Reg) & 0x01
	}

	want := [8]uint8{1, 0, 0, 1, 0, 0, 0, 0}
	if bits != want {
		t.Errorf("button bits = %v, want %v", bits, want)
	}
	if b.Read(ctrl1Reg)&0x01 != 1 {
		t.Errorf("reads past the 8th bit should return 1")
	}
}

func TestOAMDMATransfersPageIntoOAM(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.ram[i] = uint8(i)
	}
	startCycles := b.cpuCycles
	b.Write(oamDMAReg, 0x00)

	if b.cpuCycles-startCycles < 513 {
		t.Errorf("oamDMA should stall at least 513 cycles, got %d", b.cpuCycles-startCycles)
	}
	for i := 0; i < 256; i++ {
		if got := b.ppu.ReadRegister(4); i == 0 && got != 0 {
			t.Errorf("OAMDATA at addr 0 = %#02x, want 0 (first byte written)", got)
		}
	}
}

func TestTickAdvancesPPUThreeDotsPerCPUCycle(t *testing.T) {
	b := newTestBus(t)
	before := b.cpuCycles
	b.Tick()
	if b.cpuCycles != before+1 {
		t.Errorf("cpuCycles = %d, want %d", b.cpuCycles, before+1)
	}

	// The PPU powers up at pre-render dot 0 and raises VBlank while on
	// scanline 241 dot 1, its 341 + 241*341 + 2 = 82524th dot: at 3 dots
	// per Tick that is Tick 27508 and no earlier.
	for b.cpuCycles-before < 27507 {
		b.Tick()
	}
	if b.ppu.FrameReady() {
		t.Fatalf("frame ready after %d ticks, want VBlank on tick 27508", b.cpuCycles-before)
	}
	b.Tick()
	if !b.ppu.FrameReady() {
		t.Errorf("frame not ready after 27508 ticks (82524 dots)")
	}
}

func TestNMIPendingReflectsPPU(t *testing.T) {
	b := newTestBus(t)
	if b.NMIPending() {
		t.Fatalf("no NMI should be pending initially")
	}
}

func TestIRQPendingAlwaysFalse(t *testing.T) {
	b := newTestBus(t)
	if b.IRQPending() {
		t.Errorf("IRQPending() should always be false: no APU/mapper IRQ source is implemented")
	}
}
