package emulator

import (
	"testing"

	"github.com/kbuilds/nesgo/cpu"
	"github.com/kbuilds/nesgo/ppu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildROM assembles a single-bank (16KiB) NROM image: code goes at PRG
// offset 0 (CPU address $8000), an optional NMI handler at offset $10
// ($8010), and the reset/NMI vectors are wired to match.
func buildROM(code []byte, nmiHandler []byte) []byte {
	prg := make([]byte, 16384)
	copy(prg, code)
	if nmiHandler != nil {
		copy(prg[0x10:], nmiHandler)
		prg[0x3FFA], prg[0x3FFB] = 0x10, 0x80 // NMI vector -> $8010
	} else {
		prg[0x3FFA], prg[0x3FFB] = 0x00, 0x80
	}
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80 // reset vector -> $8000
	prg[0x3FFE], prg[0x3FFF] = 0x00, 0x80 // IRQ vector, unused

	header := make([]byte, 16)
	copy(header, []byte("NES\x1a"))
	header[4] = 1 // 1 PRG bank
	header[5] = 0 // CHR-RAM

	return append(header, prg...)
}

func TestNewRejectsInvalidROM(t *testing.T) {
	_, err := New([]byte("not a rom"))
	require.Error(t, err)
}

func TestResetLoadsProgramCounterFromVector(t *testing.T) {
	rom := buildROM([]byte{0xEA}, nil) // NOP
	e, err := New(rom)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x8000), e.cpu.PC, "PC loaded from the reset vector")

	cycles, err := e.StepInstruction()
	require.NoError(t, err)
	assert.Equal(t, 2, cycles, "NOP takes 2 cycles")
}

func TestLDAImmediateSetsAccumulator(t *testing.T) {
	rom := buildROM([]byte{0xA9, 0x42}, nil) // LDA #$42
	e, err := New(rom)
	require.NoError(t, err)

	_, err = e.StepInstruction()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), e.cpu.A)
	assert.False(t, e.cpu.Status&cpu.FlagZero != 0)
	assert.False(t, e.cpu.Status&cpu.FlagNegative != 0)
}

func TestADCSignedOverflowWithoutCarry(t *testing.T) {
	rom := buildROM([]byte{0xA9, 0x7F, 0x69, 0x01}, nil) // LDA #$7F; ADC #$01
	e, err := New(rom)
	require.NoError(t, err)

	_, err = e.StepInstruction()
	require.NoError(t, err)
	_, err = e.StepInstruction()
	require.NoError(t, err)

	assert.Equal(t, uint8(0x80), e.cpu.A)
	assert.True(t, e.cpu.Status&cpu.FlagOverflow != 0, "127+1 should signed-overflow")
	assert.False(t, e.cpu.Status&cpu.FlagCarry != 0, "127+1 should not carry out")
}

func TestUnimplementedOpcodeHaltsAndKeepsReturningError(t *testing.T) {
	rom := buildROM([]byte{0xFF}, nil) // no official mnemonic uses $FF
	e, err := New(rom)
	require.NoError(t, err)

	_, err1 := e.StepInstruction()
	require.Error(t, err1)

	var opErr *cpu.OpcodeError
	require.ErrorAs(t, err1, &opErr)
	assert.Equal(t, uint8(0xFF), opErr.Opcode)

	_, err2 := e.StepInstruction()
	assert.Equal(t, err1, err2, "a halted CPU keeps returning the same error")
}

func TestOAMDMAWritesPPUOAM(t *testing.T) {
	// LDA #$AB; STA $00 (ram[0]=0xAB); LDA #$00; STA $4014 (DMA from page 0)
	code := []byte{
		0xA9, 0xAB,
		0x85, 0x00,
		0xA9, 0x00,
		0x8D, 0x14, 0x40,
	}
	rom := buildROM(code, nil)
	e, err := New(rom)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err := e.StepInstruction()
		require.NoError(t, err)
	}

	p := e.bus.PPU()
	p.WriteRegister(ppu.RegOAMADDR, 0)
	assert.Equal(t, uint8(0xAB), p.ReadRegister(ppu.RegOAMDATA))
}

func TestRunFrameServicesVBlankNMI(t *testing.T) {
	main := []byte{
		0xA9, 0x80, // LDA #$80
		0x8D, 0x00, 0x20, // STA $2000 (PPUCTRL: enable NMI)
	}
	// pad the rest of the main routine with a tight self-loop at $8005
	main = append(main, 0x4C, 0x05, 0x80) // JMP $8005

	nmi := []byte{
		0xA9, 0x99, // LDA #$99
		0x85, 0x10, // STA $10 (zero page)
		0x40, // RTI
	}

	rom := buildROM(main, nmi)
	e, err := New(rom)
	require.NoError(t, err)

	// RunFrame returns at VBlank start, the same dot that raises NMI, so the
	// handler runs at the start of the next RunFrame.
	frame, err := e.RunFrame()
	require.NoError(t, err)
	require.NotNil(t, frame)

	frame, err = e.RunFrame()
	require.NoError(t, err)
	require.NotNil(t, frame)

	assert.Equal(t, uint8(0x99), e.bus.Read(0x0010), "NMI handler should have run during the second frame")
}
