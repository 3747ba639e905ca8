package z80

// registerBaseMisc fills in the irregular unprefixed opcodes the loops in
// decode_base.go's init don't cover: control flow, exchanges, the
// accumulator rotate/BCD/flag group, and memory/port forms with no
// register-field pattern to loop over.
func registerBaseMisc() {
	opTable[0x00] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		return "NOP", 0
	}}

	opTable[0x08] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.Ex()
		return "EX AF,AF'", 0
	}}

	opTable[0x10] = opEntry{cycles: 4, exec: func(c *CPU, idx indexMode) (string, int) {
		e := int8(c.fetchByte())
		c.reg.B--
		if c.reg.B != 0 {
			c.reg.SetPC(uint16(int32(c.reg.PC()) + int32(e)))
			return "DJNZ e", 5
		}
		return "DJNZ e", 0
	}}

	opTable[0x18] = opEntry{cycles: 8, exec: func(c *CPU, idx indexMode) (string, int) {
		e := int8(c.fetchByte())
		c.reg.SetPC(uint16(int32(c.reg.PC()) + int32(e)))
		return "JR e", 0
	}}

	// JR cc,e for the 4 JR-eligible conditions (NZ,Z,NC,C), opcodes 0x20/0x28/0x30/0x38.
	jrConds := [4]condition{condNZ, condZ, condNC, condC}
	for i, cc := range jrConds {
		op := 0x20 + i*8
		cond := cc
		opTable[op] = opEntry{cycles: 3, exec: func(c *CPU, idx indexMode) (string, int) {
			e := int8(c.fetchByte())
			if c.test(cond) {
				c.reg.SetPC(uint16(int32(c.reg.PC()) + int32(e)))
				return "JR " + conditionNames[cond] + ",e", 5
			}
			return "JR " + conditionNames[cond] + ",e", 0
		}}
	}

	opTable[0x22] = opEntry{cycles: 12, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		nn := c.fetchWord()
		v := c.get16x(regHL, idx)
		c.bus.WriteMem(nn, loByte(v))
		c.bus.WriteMem(nn+1, hiByte(v))
		return "LD (nn)," + reg16Name(idx), 0
	}}
	opTable[0x2A] = opEntry{cycles: 12, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		nn := c.fetchWord()
		lo := c.bus.ReadMem(nn)
		hi := c.bus.ReadMem(nn + 1)
		c.set16x(regHL, idx, pair(hi, lo))
		return "LD " + reg16Name(idx) + ",(nn)", 0
	}}

	opTable[0x02] = opEntry{cycles: 3, exec: func(c *CPU, idx indexMode) (string, int) {
		c.bus.WriteMem(c.reg.BC(), c.reg.A)
		return "LD (BC),A", 0
	}}
	opTable[0x0A] = opEntry{cycles: 3, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.A = c.bus.ReadMem(c.reg.BC())
		return "LD A,(BC)", 0
	}}
	opTable[0x12] = opEntry{cycles: 3, exec: func(c *CPU, idx indexMode) (string, int) {
		c.bus.WriteMem(c.reg.DE(), c.reg.A)
		return "LD (DE),A", 0
	}}
	opTable[0x1A] = opEntry{cycles: 3, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.A = c.bus.ReadMem(c.reg.DE())
		return "LD A,(DE)", 0
	}}
	opTable[0x32] = opEntry{cycles: 9, exec: func(c *CPU, idx indexMode) (string, int) {
		nn := c.fetchWord()
		c.bus.WriteMem(nn, c.reg.A)
		return "LD (nn),A", 0
	}}
	opTable[0x3A] = opEntry{cycles: 9, exec: func(c *CPU, idx indexMode) (string, int) {
		nn := c.fetchWord()
		c.reg.A = c.bus.ReadMem(nn)
		return "LD A,(nn)", 0
	}}

	opTable[0x07] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		r, carry := rlc(c.reg.A)
		c.reg.A = r
		c.applyFlags(tmplRotateA, flagInputs{result: r, carry: carry})
		return "RLCA", 0
	}}
	opTable[0x0F] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		r, carry := rrc(c.reg.A)
		c.reg.A = r
		c.applyFlags(tmplRotateA, flagInputs{result: r, carry: carry})
		return "RRCA", 0
	}}
	opTable[0x17] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		r, carry := rl(c.reg.A, c.reg.Flag(FlagC))
		c.reg.A = r
		c.applyFlags(tmplRotateA, flagInputs{result: r, carry: carry})
		return "RLA", 0
	}}
	opTable[0x1F] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		r, carry := rr(c.reg.A, c.reg.Flag(FlagC))
		c.reg.A = r
		c.applyFlags(tmplRotateA, flagInputs{result: r, carry: carry})
		return "RRA", 0
	}}
	opTable[0x27] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.daa()
		return "DAA", 0
	}}
	opTable[0x2F] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.A = ^c.reg.A
		c.reg.SetFlag(FlagH)
		c.reg.SetFlag(FlagN)
		c.reg.PutFlag(Flag5, c.reg.A&0x20 != 0)
		c.reg.PutFlag(Flag3, c.reg.A&0x08 != 0)
		return "CPL", 0
	}}
	opTable[0x37] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.SetFlag(FlagC)
		c.reg.ResetFlag(FlagH)
		c.reg.ResetFlag(FlagN)
		c.reg.PutFlag(Flag5, c.reg.A&0x20 != 0)
		c.reg.PutFlag(Flag3, c.reg.A&0x08 != 0)
		return "SCF", 0
	}}
	opTable[0x3F] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		half := c.reg.Flag(FlagC)
		c.reg.PutFlag(FlagH, half)
		c.reg.PutFlag(FlagC, !c.reg.Flag(FlagC))
		c.reg.ResetFlag(FlagN)
		c.reg.PutFlag(Flag5, c.reg.A&0x20 != 0)
		c.reg.PutFlag(Flag3, c.reg.A&0x08 != 0)
		return "CCF", 0
	}}

	opTable[0xEB] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		de, hl := c.reg.DE(), c.reg.HL()
		c.reg.SetDE(hl)
		c.reg.SetHL(de)
		return "EX DE,HL", 0
	}}
	opTable[0xE3] = opEntry{cycles: 15, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		sp := c.reg.SP()
		lo := c.bus.ReadMem(sp)
		hi := c.bus.ReadMem(sp + 1)
		v := c.get16x(regHL, idx)
		c.bus.WriteMem(sp, loByte(v))
		c.bus.WriteMem(sp+1, hiByte(v))
		c.set16x(regHL, idx, pair(hi, lo))
		return "EX (SP)," + reg16Name(idx), 0
	}}
	opTable[0xD9] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.Exx()
		return "EXX", 0
	}}

	opTable[0xE9] = opEntry{cycles: 0, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.SetPC(c.get16x(regHL, idx))
		return "JP (" + reg16Name(idx) + ")", 0
	}}
	opTable[0xF9] = opEntry{cycles: 2, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.SetSP(c.get16x(regHL, idx))
		return "LD SP," + reg16Name(idx), 0
	}}

	opTable[0xC3] = opEntry{cycles: 6, exec: func(c *CPU, idx indexMode) (string, int) {
		nn := c.fetchWord()
		c.reg.SetPC(nn)
		return "JP nn", 0
	}}
	opTable[0xCD] = opEntry{cycles: 13, exec: func(c *CPU, idx indexMode) (string, int) {
		nn := c.fetchWord()
		c.push(c.reg.PC())
		c.reg.SetPC(nn)
		return "CALL nn", 0
	}}
	opTable[0xC9] = opEntry{cycles: 6, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.SetPC(c.pop())
		return "RET", 0
	}}

	opTable[0xF3] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.IFF1, c.reg.IFF2 = false, false
		return "DI", 0
	}}
	opTable[0xFB] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.IFF1, c.reg.IFF2 = true, true
		c.eiDelay = true
		return "EI", 0
	}}

	opTable[0xD3] = opEntry{cycles: 7, exec: func(c *CPU, idx indexMode) (string, int) {
		n := c.fetchByte()
		c.io.WritePort(uint16(c.reg.A)<<8|uint16(n), c.reg.A)
		return "OUT (n),A", 0
	}}
	opTable[0xDB] = opEntry{cycles: 7, exec: func(c *CPU, idx indexMode) (string, int) {
		n := c.fetchByte()
		c.reg.A = c.io.ReadPort(uint16(c.reg.A)<<8 | uint16(n))
		return "IN A,(n)", 0
	}}
}
