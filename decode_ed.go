package z80

var tmplIN = flagTemplate{frSign, frZero, frBit5, frReset, frBit3, frParity, frReset, frHold}

var edTable [256]opEntry

// edReg8Names matches reg8's 3-bit encoding but for ED's IN/OUT group,
// where code 6 is the undocumented "F" form (flags only, no register
// storage / output of 0) rather than (HL).
var edReg8Names = [8]string{"B", "C", "D", "E", "H", "L", "F", "A"}

func init() {
	// IN r,(C) / OUT (C),r: bits 5-3 select the register, including the
	// undocumented F form at code 6.
	for r := 0; r < 8; r++ {
		opIN := 0x40 + r*8
		opOUT := 0x41 + r*8
		reg := reg8(r)
		name := edReg8Names[r]
		edTable[opIN] = opEntry{cycles: 4, exec: func(c *CPU, idx indexMode) (string, int) {
			v := c.io.ReadPort(c.reg.BC())
			if reg != regHLInd {
				c.set8(reg, v)
			}
			c.applyFlags(tmplIN, flagInputs{result: v})
			return "IN " + name + ",(C)", 0
		}}
		edTable[opOUT] = opEntry{cycles: 4, exec: func(c *CPU, idx indexMode) (string, int) {
			v := uint8(0)
			if reg != regHLInd {
				v = c.get8(reg)
			}
			c.io.WritePort(c.reg.BC(), v)
			return "OUT (C)," + name, 0
		}}
	}

	// ADC HL,rr / SBC HL,rr / LD (nn),rr / LD rr,(nn): bits 5-4 select {BC,DE,HL,SP}.
	for p := 0; p < 4; p++ {
		rr := reg16SP(p)
		opSBC := 0x42 + p*0x10
		opADC := 0x4A + p*0x10
		opLDnnRR := 0x43 + p*0x10
		opLDRRnn := 0x4B + p*0x10
		r := rr
		edTable[opSBC] = opEntry{cycles: 7, exec: func(c *CPU, idx indexMode) (string, int) {
			result, in := sbcHL(c.reg.HL(), c.get16SP(r), c.reg.Flag(FlagC))
			c.reg.SetHL(result)
			c.applyFlags(tmplSbc16, in)
			return "SBC HL," + reg16SPNames[r], 0
		}}
		edTable[opADC] = opEntry{cycles: 7, exec: func(c *CPU, idx indexMode) (string, int) {
			result, in := adcHL(c.reg.HL(), c.get16SP(r), c.reg.Flag(FlagC))
			c.reg.SetHL(result)
			c.applyFlags(tmplAdc16, in)
			return "ADC HL," + reg16SPNames[r], 0
		}}
		edTable[opLDnnRR] = opEntry{cycles: 12, exec: func(c *CPU, idx indexMode) (string, int) {
			nn := c.fetchWord()
			v := c.get16SP(r)
			c.bus.WriteMem(nn, loByte(v))
			c.bus.WriteMem(nn+1, hiByte(v))
			return "LD (nn)," + reg16SPNames[r], 0
		}}
		edTable[opLDRRnn] = opEntry{cycles: 12, exec: func(c *CPU, idx indexMode) (string, int) {
			nn := c.fetchWord()
			lo := c.bus.ReadMem(nn)
			hi := c.bus.ReadMem(nn + 1)
			c.set16SP(r, pair(hi, lo))
			return "LD " + reg16SPNames[r] + ",(nn)", 0
		}}
	}

	edTable[0x44] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		result, in := sub8(0, c.reg.A, false)
		c.reg.A = result
		c.applyFlags(tmplSub8, in)
		return "NEG", 0
	}}
	edTable[0x45] = opEntry{cycles: 6, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.SetPC(c.pop())
		c.reg.IFF1 = c.reg.IFF2
		return "RETN", 0
	}}
	edTable[0x4D] = opEntry{cycles: 6, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.SetPC(c.pop())
		return "RETI", 0
	}}
	edTable[0x46] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.InterruptMode = 0
		return "IM 0", 0
	}}
	edTable[0x56] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.InterruptMode = 1
		return "IM 1", 0
	}}
	edTable[0x5E] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.InterruptMode = 2
		return "IM 2", 0
	}}
	edTable[0x47] = opEntry{cycles: 1, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.I = c.reg.A
		return "LD I,A", 0
	}}
	edTable[0x4F] = opEntry{cycles: 1, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.R = c.reg.A
		return "LD R,A", 0
	}}
	// LD A,I / LD A,R: S/Z/5/3 from the value, H/N reset, P/V copies IFF2
	// (the '*' template slot), C unaffected.
	tmplLDAIR := flagTemplate{frSign, frZero, frBit5, frReset, frBit3, frIFF2, frReset, frHold}
	edTable[0x57] = opEntry{cycles: 1, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.A = c.reg.I
		c.applyFlags(tmplLDAIR, flagInputs{result: c.reg.A})
		return "LD A,I", 0
	}}
	edTable[0x5F] = opEntry{cycles: 1, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.A = c.reg.R
		c.applyFlags(tmplLDAIR, flagInputs{result: c.reg.A})
		return "LD A,R", 0
	}}

	// RRD/RLD: S/Z/5/3/P from the result like a logic op, H/N reset, but C
	// is left untouched (unlike AND, which resets it too).
	tmplRRDRLD := flagTemplate{frSign, frZero, frBit5, frReset, frBit3, frParity, frReset, frHold}
	edTable[0x67] = opEntry{cycles: 10, exec: func(c *CPU, idx indexMode) (string, int) {
		addr := c.reg.HL()
		m := c.bus.ReadMem(addr)
		a := c.reg.A
		newM := (a&0x0F)<<4 | (m >> 4)
		newA := (a &^ 0x0F) | (m & 0x0F)
		c.bus.WriteMem(addr, newM)
		c.reg.A = newA
		c.applyFlags(tmplRRDRLD, flagInputs{result: newA})
		return "RRD", 0
	}}
	edTable[0x6F] = opEntry{cycles: 10, exec: func(c *CPU, idx indexMode) (string, int) {
		addr := c.reg.HL()
		m := c.bus.ReadMem(addr)
		a := c.reg.A
		newM := (m << 4) | (a & 0x0F)
		newA := (a &^ 0x0F) | (m >> 4)
		c.bus.WriteMem(addr, newM)
		c.reg.A = newA
		c.applyFlags(tmplRRDRLD, flagInputs{result: newA})
		return "RLD", 0
	}}

	registerEDBlock()
}
