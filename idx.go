package z80

// indexMode selects which 16-bit index register (if any) a base-table
// opcode's HL references are redirected through when reached via a DD or
// FD prefix. Opcodes that don't touch HL/(HL) ignore it, which is exactly
// how a real DD/FD prefix behaves on opcodes it has no effect on.
type indexMode uint8

const (
	idxNone indexMode = iota
	idxIX
	idxIY
)

// resolveHL returns the address an (HL)-shaped operand reads or writes
// under the given index mode. For idxNone that's HL itself. For idxIX/IY
// it fetches the signed displacement byte at PC, advances PC past it, and
// returns IX+d / IY+d. Cycles for the displacement fetch and the index
// addition are the caller's responsibility to add; see opEntry.idxExtra.
func (c *CPU) resolveHL(idx indexMode) uint16 {
	switch idx {
	case idxIX:
		d := int8(c.fetchByte())
		return uint16(int32(c.reg.IX()) + int32(d))
	case idxIY:
		d := int8(c.fetchByte())
		return uint16(int32(c.reg.IY()) + int32(d))
	default:
		return c.reg.HL()
	}
}

// get8x reads an 8-bit operand under an index mode: regH/regL become
// IXH/IXL or IYH/IYL (the undocumented direct half-register forms), and
// regHLInd resolves through resolveHL and reads memory.
func (c *CPU) get8x(r reg8, idx indexMode) uint8 {
	switch r {
	case regH:
		switch idx {
		case idxIX:
			return c.reg.IXH
		case idxIY:
			return c.reg.IYH
		}
	case regL:
		switch idx {
		case idxIX:
			return c.reg.IXL
		case idxIY:
			return c.reg.IYL
		}
	case regHLInd:
		return c.bus.ReadMem(c.resolveHL(idx))
	}
	return c.get8(r)
}

// set8x is the write counterpart of get8x.
func (c *CPU) set8x(r reg8, idx indexMode, v uint8) {
	switch r {
	case regH:
		switch idx {
		case idxIX:
			c.reg.IXH = v
			return
		case idxIY:
			c.reg.IYH = v
			return
		}
	case regL:
		switch idx {
		case idxIX:
			c.reg.IXL = v
			return
		case idxIY:
			c.reg.IYL = v
			return
		}
	case regHLInd:
		c.bus.WriteMem(c.resolveHL(idx), v)
		return
	}
	c.set8(r, v)
}

// get16x/set16x substitute IX/IY for HL in the "SP form" 16-bit register
// field (used by LD rr,nn; INC rr/DEC rr; ADD HL,rr where HL is the
// destination operand written back through set16x, and where rr itself is
// regHL under this same substitution for ADD IX,IX-style self-adds).
func (c *CPU) get16x(r reg16SP, idx indexMode) uint16 {
	if r == regHL {
		switch idx {
		case idxIX:
			return c.reg.IX()
		case idxIY:
			return c.reg.IY()
		}
	}
	return c.get16SP(r)
}

func (c *CPU) set16x(r reg16SP, idx indexMode, v uint16) {
	if r == regHL {
		switch idx {
		case idxIX:
			c.reg.SetIX(v)
			return
		case idxIY:
			c.reg.SetIY(v)
			return
		}
	}
	c.set16SP(r, v)
}

// get8xPaired is get8x for an operand that has a companion operand in the
// same instruction (the LD r,r' group, where both the destination and the
// source are independently reg8 values). When the companion is regHLInd
// ((HL), resolved to (IX+d)/(IY+d) under idx), the prefix's only effect is
// on the memory operand: a plain H/L paired with (IX+d)/(IY+d) reads or
// writes the real H/L, not IXH/IXL/IYH/IYL. Substituting both would read
// real silicon's behavior wrong — only one operand in an LD r,r' can ever
// be (HL)-shaped, and the prefix applies its index substitution there, not
// to the other register.
func (c *CPU) get8xPaired(r, companion reg8, idx indexMode) uint8 {
	if companion == regHLInd {
		return c.get8(r)
	}
	return c.get8x(r, idx)
}

// set8xPaired is the write counterpart of get8xPaired.
func (c *CPU) set8xPaired(r, companion reg8, idx indexMode, v uint8) {
	if companion == regHLInd {
		c.set8(r, v)
		return
	}
	c.set8x(r, idx, v)
}

// reg8NameXPaired is reg8NameX for an operand with a companion operand,
// same suppression rule as get8xPaired/set8xPaired.
func reg8NameXPaired(r, companion reg8, idx indexMode) string {
	if companion == regHLInd {
		return reg8Names[r]
	}
	return reg8NameX(r, idx)
}

func reg8NameX(r reg8, idx indexMode) string {
	if idx != idxNone {
		prefix := "IX"
		if idx == idxIY {
			prefix = "IY"
		}
		switch r {
		case regH:
			return prefix + "H"
		case regL:
			return prefix + "L"
		case regHLInd:
			return "(" + prefix + "+d)"
		}
	}
	return reg8Names[r]
}

func reg16Name(idx indexMode) string {
	switch idx {
	case idxIX:
		return "IX"
	case idxIY:
		return "IY"
	}
	return "HL"
}
