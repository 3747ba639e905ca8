package z80

// opEntry is one unprefixed (or DD/FD-reachable) opcode's decode table
// entry. cycles is the T-state cost after the opcode byte's own fetch,
// for the unindexed (idxNone) form. idxExtra is added when reached via a
// DD/FD prefix and the opcode touches (HL); it is 0 for opcodes an index
// prefix has no effect on. exec performs the operation and returns the
// disassembly mnemonic plus any extra cycles a taken branch/condition
// adds on top of cycles (0 for non-branching opcodes).
type opEntry struct {
	cycles   int
	idxExtra int
	exec     func(c *CPU, idx indexMode) (string, int)
}

var opTable [256]opEntry

const aluGroupNames0 = ""

var aluOpNames = [8]string{"ADD A,", "ADC A,", "SUB ", "SBC A,", "AND ", "XOR ", "OR ", "CP "}

var rot8ANames = [4]string{"RLCA", "RRCA", "RLA", "RRA"}

func init() {
	// 0x40-0x7F: LD r,r' (0x76 is HALT, handled below).
	for op := 0x40; op <= 0x7F; op++ {
		dst := reg8((op >> 3) & 7)
		src := reg8(op & 7)
		if dst == regHLInd && src == regHLInd {
			continue // 0x76: HALT
		}
		extra := 0
		if dst == regHLInd || src == regHLInd {
			extra = 3
		}
		d, s := dst, src
		opTable[op] = opEntry{cycles: extra, idxExtra: idxExtraFor(d, s), exec: func(c *CPU, idx indexMode) (string, int) {
			v := c.get8xPaired(s, d, idx)
			c.set8xPaired(d, s, idx, v)
			return "LD " + reg8NameXPaired(d, s, idx) + "," + reg8NameXPaired(s, d, idx), 0
		}}
	}
	opTable[0x76] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
		c.reg.Halted = true
		return "HALT", 0
	}}

	// 0x80-0xBF: ALU A,r.
	for op := 0x80; op <= 0xBF; op++ {
		which := (op >> 3) & 7
		src := reg8(op & 7)
		extra := 0
		if src == regHLInd {
			extra = 3
		}
		w, s := which, src
		opTable[op] = opEntry{cycles: extra, idxExtra: idxExtraFor(regA, s), exec: func(c *CPU, idx indexMode) (string, int) {
			v := c.get8x(s, idx)
			applyALU(c, w, v)
			return aluOpNames[w] + reg8NameX(s, idx), 0
		}}
	}

	// ALU A,n: opcodes 0xC6,0xCE,...,0xFE (which*8+0xC6).
	for which := 0; which < 8; which++ {
		op := 0xC6 + which*8
		w := which
		opTable[op] = opEntry{cycles: 3, exec: func(c *CPU, idx indexMode) (string, int) {
			n := c.fetchByte()
			applyALU(c, w, n)
			return aluOpNames[w] + "n", 0
		}}
	}

	// LD r,n: opcodes 0x06,0x0E,...,0x3E (dst*8+6), 0x36 is LD (HL),n.
	for dst8 := 0; dst8 < 8; dst8++ {
		op := 0x06 + dst8*8
		dst := reg8(dst8)
		if dst == regHLInd {
			opTable[op] = opEntry{cycles: 6, idxExtra: 5, exec: func(c *CPU, idx indexMode) (string, int) {
				addr := c.resolveHL(idx)
				n := c.fetchByte()
				c.bus.WriteMem(addr, n)
				return "LD " + reg8NameX(regHLInd, idx) + ",n", 0
			}}
			continue
		}
		d := dst
		opTable[op] = opEntry{cycles: 3, idxExtra: idxExtraFor(d, d), exec: func(c *CPU, idx indexMode) (string, int) {
			n := c.fetchByte()
			c.set8x(d, idx, n)
			return "LD " + reg8NameX(d, idx) + ",n", 0
		}}
	}

	// INC r / DEC r: opcodes 0x04+8k, 0x05+8k.
	for r8 := 0; r8 < 8; r8++ {
		reg := reg8(r8)
		opInc := 0x04 + r8*8
		opDec := 0x05 + r8*8
		extra := 0
		if reg == regHLInd {
			extra = 7 // read+write, no register-only component
		}
		rr := reg
		opTable[opInc] = opEntry{cycles: extra, idxExtra: idxExtraFor(rr, rr), exec: func(c *CPU, idx indexMode) (string, int) {
			v := c.get8x(rr, idx)
			c.set8x(rr, idx, c.opInc8(v))
			return "INC " + reg8NameX(rr, idx), 0
		}}
		opTable[opDec] = opEntry{cycles: extra, idxExtra: idxExtraFor(rr, rr), exec: func(c *CPU, idx indexMode) (string, int) {
			v := c.get8x(rr, idx)
			c.set8x(rr, idx, c.opDec8(v))
			return "DEC " + reg8NameX(rr, idx), 0
		}}
	}

	// 16-bit LD rr,nn / INC rr / DEC rr / ADD HL,rr: bits 5-4 select {BC,DE,HL,SP}.
	for p := 0; p < 4; p++ {
		rr := reg16SP(p)
		opLD := 0x01 + p*0x10
		opINC := 0x03 + p*0x10
		opDEC := 0x0B + p*0x10
		opADD := 0x09 + p*0x10
		r := rr
		opTable[opLD] = opEntry{cycles: 6, idxExtra: idxExtraForPair(r), exec: func(c *CPU, idx indexMode) (string, int) {
			nn := c.fetchWord()
			c.set16x(r, idx, nn)
			return "LD " + pairName(r, idx) + ",nn", 0
		}}
		opTable[opINC] = opEntry{cycles: 2, idxExtra: idxExtraForPair(r), exec: func(c *CPU, idx indexMode) (string, int) {
			c.set16x(r, idx, c.get16x(r, idx)+1)
			return "INC " + pairName(r, idx), 0
		}}
		opTable[opDEC] = opEntry{cycles: 2, idxExtra: idxExtraForPair(r), exec: func(c *CPU, idx indexMode) (string, int) {
			c.set16x(r, idx, c.get16x(r, idx)-1)
			return "DEC " + pairName(r, idx), 0
		}}
		opTable[opADD] = opEntry{cycles: 7, idxExtra: idxExtraForPair(r), exec: func(c *CPU, idx indexMode) (string, int) {
			dst := c.get16x(regHL, idx)
			src := c.get16x(r, idx)
			result := dst + src
			half := halfCarryAdd(uint8(dst>>8), uint8(src>>8), b2u(uint16(uint8(dst))+uint16(uint8(src)) > 0xFF))
			carry := uint32(dst)+uint32(src) > 0xFFFF
			c.applyFlags(tmplAdd16, flagInputs{result: uint8(result >> 8), half: half, carry: carry})
			c.set16x(regHL, idx, result)
			return "ADD " + reg16Name(idx) + "," + pairName(r, idx), 0
		}}
	}

	// PUSH/POP rr: bits 5-4 select {BC,DE,HL,AF}.
	for p := 0; p < 4; p++ {
		rr := reg16AF(p)
		opPUSH := 0xC5 + p*0x10
		opPOP := 0xC1 + p*0x10
		r := rr
		opTable[opPUSH] = opEntry{cycles: 7, idxExtra: idxExtraForAFPair(r), exec: func(c *CPU, idx indexMode) (string, int) {
			c.push(c.get16AFIdx(r, idx))
			return "PUSH " + afPairName(r, idx), 0
		}}
		opTable[opPOP] = opEntry{cycles: 6, idxExtra: idxExtraForAFPair(r), exec: func(c *CPU, idx indexMode) (string, int) {
			c.set16AFIdx(r, idx, c.pop())
			return "POP " + afPairName(r, idx), 0
		}}
	}

	// JP cc,nn / CALL cc,nn / RET cc: bits 5-3 select condition.
	for cci := 0; cci < 8; cci++ {
		cc := condition(cci)
		opJP := 0xC2 + cci*8
		opCALL := 0xC4 + cci*8
		opRET := 0xC0 + cci*8
		cond := cc
		opTable[opJP] = opEntry{cycles: 6, exec: func(c *CPU, idx indexMode) (string, int) {
			nn := c.fetchWord()
			if c.test(cond) {
				c.reg.SetPC(nn)
			}
			return "JP " + jpMnemonic(cond) + ",nn", 0
		}}
		opTable[opCALL] = opEntry{cycles: 6, exec: func(c *CPU, idx indexMode) (string, int) {
			nn := c.fetchWord()
			if c.test(cond) {
				c.push(c.reg.PC())
				c.reg.SetPC(nn)
				return "CALL " + conditionNames[cond] + ",nn", 7
			}
			return "CALL " + conditionNames[cond] + ",nn", 0
		}}
		opTable[opRET] = opEntry{cycles: 0, exec: func(c *CPU, idx indexMode) (string, int) {
			if c.test(cond) {
				c.reg.SetPC(c.pop())
				return retMnemonic(cond), 7
			}
			return retMnemonic(cond), 1
		}}
	}

	// RST n: bits 5-3 select the restart vector (n*8).
	for n := 0; n < 8; n++ {
		op := 0xC7 + n*8
		target := uint16(n * 8)
		opTable[op] = opEntry{cycles: 7, exec: func(c *CPU, idx indexMode) (string, int) {
			c.push(c.reg.PC())
			c.reg.SetPC(target)
			return rstMnemonic(target), 0
		}}
	}

	registerBaseMisc()
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func applyALU(c *CPU, which int, v uint8) {
	switch which {
	case 0:
		c.opAdd(v, false)
	case 1:
		c.opAdd(v, c.reg.Flag(FlagC))
	case 2:
		c.opSub(v, false)
	case 3:
		c.opSub(v, c.reg.Flag(FlagC))
	case 4:
		c.opAnd(v)
	case 5:
		c.opXor(v)
	case 6:
		c.opOr(v)
	case 7:
		c.opCp(v)
	}
}

// idxExtraFor returns the DD/FD overhead for an op referencing the given
// 8-bit operand(s): 8 T-states when (HL) becomes (IX+d)/(IY+d), 0 when the
// prefix only redirects H/L to IXH/IXL/IYH/IYL (no extra memory access), 0
// when neither operand is H/L/(HL) (the prefix has no effect at all, still
// costs the fixed 4T fetch the dispatcher already charges).
func idxExtraFor(a, b reg8) int {
	if a == regHLInd || b == regHLInd {
		return 8
	}
	return 0
}

func idxExtraForPair(r reg16SP) int {
	if r == regHL {
		return 0
	}
	return 0
}

func idxExtraForAFPair(r reg16AF) int {
	if r == regAFHL {
		return 0
	}
	return 0
}

func pairName(r reg16SP, idx indexMode) string {
	if r == regHL {
		return reg16Name(idx)
	}
	return reg16SPNames[r]
}

func afPairName(r reg16AF, idx indexMode) string {
	if r == regAFHL {
		return reg16Name(idx)
	}
	return reg16AFNames[r]
}

func (c *CPU) get16AFIdx(r reg16AF, idx indexMode) uint16 {
	if r == regAFHL {
		switch idx {
		case idxIX:
			return c.reg.IX()
		case idxIY:
			return c.reg.IY()
		}
	}
	return c.get16AF(r)
}

func (c *CPU) set16AFIdx(r reg16AF, idx indexMode, v uint16) {
	if r == regAFHL {
		switch idx {
		case idxIX:
			c.reg.SetIX(v)
			return
		case idxIY:
			c.reg.SetIY(v)
			return
		}
	}
	c.set16AF(r, v)
}

// retMnemonic preserves the reference table's mislabeling of opcode 0xC8
// (genuinely RET Z) as "RET NZ"; jpMnemonic and the condition-code table
// itself are correctly named. Disassemblers built on that table inherit
// the quirk rather than silently correcting it.
func jpMnemonic(cc condition) string { return conditionNames[cc] }

func retMnemonic(cc condition) string {
	if cc == condZ {
		return "RET NZ"
	}
	return "RET " + conditionNames[cc]
}

func rstMnemonic(target uint16) string {
	const hex = "0123456789ABCDEF"
	return "RST " + string([]byte{'0', 'x', hex[target>>4], hex[target&0xF]})
}
