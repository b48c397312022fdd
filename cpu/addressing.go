package cpu

// Mode identifies one of the 6502's addressing modes.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type Mode uint8

const (
	Implicit Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX
	IndirectY
)

// operandAddress resolves the effective address for mode, consuming
// whatever operand bytes that mode requires from c.PC (advancing it past
// them) and charging the bus accesses it performs. It reports whether
// resolving an indexed address crossed a page boundary, which several
// instructions charge an extra cycle for.
func (c *CPU) operandAddress(mode Mode) (addr uint16, pageCrossed bool) {
	switch mode {
	case Immediate:
		addr = c.PC
		c.PC++
	case ZeroPage:
		addr = uint16(c.read(c.PC))
		c.PC++
	case ZeroPageX:
		b := c.read(c.PC)
		c.PC++
		addr = uint16(b + c.X)
	case ZeroPageY:
		b := c.read(c.PC)
		c.PC++
		addr = uint16(b + c.Y)
	case Relative:
		off := int8(c.read(c.PC))
		c.PC++
		addr = uint16(int32(c.PC) + int32(off))
	case Absolute:
		addr = c.read16(c.PC)
		c.PC += 2
	case AbsoluteX:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.X)
		pageCrossed = !samePage(base, addr)
	case AbsoluteY:
		base := c.read16(c.PC)
		c.PC += 2
		addr = base + uint16(c.Y)
		pageCrossed = !samePage(base, addr)
	case Indirect:
		ptr := c.read16(c.PC)
		c.PC += 2
		addr = c.read16IndirectBug(ptr)
	case IndirectX:
		zp := c.read(c.PC)
		c.PC++
		addr = c.read16ZeroPage(zp + c.X)
	case IndirectY:
		zp := c.read(c.PC)
		c.PC++
		base := c.read16ZeroPage(zp)
		addr = base + uint16(c.Y)
		pageCrossed = !samePage(base, addr)
	default:
		panic("cpu: operandAddress called with Implicit/Accumulator mode")
	}
	return addr, pageCrossed
}

// read16IndirectBug reproduces the 6502's JMP ($xxFF) page-wrap bug: if the
// pointer's low byte is $FF, the high byte is fetched from the start of
// the same page instead of crossing into the next one.
func (c *CPU) read16IndirectBug(ptr uint16) uint16 {
	lo := uint16(c.read(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := uint16(c.read(hiAddr))
	return hi<<8 | lo
}
