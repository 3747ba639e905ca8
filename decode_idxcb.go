package z80

// idxCBEntry is one DDCB/FDCB opcode: a CB-shaped operation against
// (IX+d)/(IY+d), optionally copying the result into one of the 8-bit
// registers (the "undocumented" register-writeback forms all real Z80s
// implement, even though only the (HL)-equivalent mnemonic is documented).
type idxCBEntry struct {
	cycles int
	exec   func(c *CPU, addr uint16, idx indexMode) (string, int)
}

var idxCBTable [256]idxCBEntry

func init() {
	for op := 0; op < 256; op++ {
		group := op >> 6
		sub := (op >> 3) & 7
		dst := reg8(op & 7)

		switch group {
		case 0:
			which, d := sub, dst
			idxCBTable[op] = idxCBEntry{cycles: 8, exec: func(c *CPU, addr uint16, idx indexMode) (string, int) {
				v := c.bus.ReadMem(addr)
				result, carry := applyRot(which, v, c.reg.Flag(FlagC))
				c.bus.WriteMem(addr, result)
				if d != regHLInd {
					c.set8(d, result)
				}
				c.applyFlags(tmplRotate, flagInputs{result: result, carry: carry})
				return idxCBMnemonic(rotOpNames[which], idx, d), 0
			}}
		case 1:
			bit := uint(sub)
			idxCBTable[op] = idxCBEntry{cycles: 5, exec: func(c *CPU, addr uint16, idx indexMode) (string, int) {
				v := c.bus.ReadMem(addr)
				c.opBit(bit, v)
				return "BIT " + digit(bit) + "," + idxOperand(idx), 0
			}}
		case 2:
			bit, d := uint(sub), dst
			idxCBTable[op] = idxCBEntry{cycles: 8, exec: func(c *CPU, addr uint16, idx indexMode) (string, int) {
				v := c.bus.ReadMem(addr)
				result := bitRes(bit, v)
				c.bus.WriteMem(addr, result)
				if d != regHLInd {
					c.set8(d, result)
				}
				return idxCBMnemonic("RES "+digit(bit), idx, d), 0
			}}
		case 3:
			bit, d := uint(sub), dst
			idxCBTable[op] = idxCBEntry{cycles: 8, exec: func(c *CPU, addr uint16, idx indexMode) (string, int) {
				v := c.bus.ReadMem(addr)
				result := bitSet(bit, v)
				c.bus.WriteMem(addr, result)
				if d != regHLInd {
					c.set8(d, result)
				}
				return idxCBMnemonic("SET "+digit(bit), idx, d), 0
			}}
		}
	}
}

func idxOperand(idx indexMode) string { return "(" + reg16Name(idx) + "+d)" }

func idxCBMnemonic(op string, idx indexMode, dst reg8) string {
	m := op + " " + idxOperand(idx)
	if dst != regHLInd {
		m += "," + reg8Names[dst]
	}
	return m
}
