package z80

var rotOpNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SLL", "SRL"}

func applyRot(which int, v uint8, carryIn bool) (uint8, bool) {
	switch which {
	case 0:
		return rlc(v)
	case 1:
		return rrc(v)
	case 2:
		return rl(v, carryIn)
	case 3:
		return rr(v, carryIn)
	case 4:
		return sla(v)
	case 5:
		return sra(v)
	case 6:
		return sl1(v)
	default:
		return srl(v)
	}
}

var cbTable [256]opEntry

func init() {
	for op := 0; op < 256; op++ {
		group := op >> 6
		sub := (op >> 3) & 7
		r := reg8(op & 7)
		// Register forms are always 8T total (4 for the CB prefix fetch +
		// 4 for the opcode byte itself, both charged by the dispatcher) so
		// need no extra. (HL) forms add a memory read (+ write, for
		// anything that writes back): BIT (HL) is 12T, RLC/RES/SET (HL) 15T.
		extraReg := 0
		extraBit := 4
		extraRW := 7
		switch group {
		case 0: // rotate/shift
			which, reg := sub, r
			extra := extraReg
			if reg == regHLInd {
				extra = extraRW
			}
			cbTable[op] = opEntry{cycles: extra, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
				v := c.get8(reg)
				if reg == regHLInd {
					v = c.bus.ReadMem(c.reg.HL())
				}
				result, carry := applyRot(which, v, c.reg.Flag(FlagC))
				if reg == regHLInd {
					c.bus.WriteMem(c.reg.HL(), result)
				} else {
					c.set8(reg, result)
				}
				c.applyFlags(tmplRotate, flagInputs{result: result, carry: carry})
				return rotOpNames[which] + " " + reg8Names[reg], 0
			}}
		case 1: // BIT b,r
			bit, reg := uint(sub), r
			extra := extraReg
			if reg == regHLInd {
				extra = extraBit
			}
			cbTable[op] = opEntry{cycles: extra, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
				v := c.get8(reg)
				if reg == regHLInd {
					v = c.bus.ReadMem(c.reg.HL())
				}
				c.opBit(bit, v)
				return "BIT " + digit(bit) + "," + reg8Names[reg], 0
			}}
		case 2: // RES b,r
			bit, reg := uint(sub), r
			extra := extraReg
			if reg == regHLInd {
				extra = extraRW
			}
			cbTable[op] = opEntry{cycles: extra, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
				if reg == regHLInd {
					v := c.bus.ReadMem(c.reg.HL())
					c.bus.WriteMem(c.reg.HL(), bitRes(bit, v))
				} else {
					c.set8(reg, bitRes(bit, c.get8(reg)))
				}
				return "RES " + digit(bit) + "," + reg8Names[reg], 0
			}}
		case 3: // SET b,r
			bit, reg := uint(sub), r
			extra := extraReg
			if reg == regHLInd {
				extra = extraRW
			}
			cbTable[op] = opEntry{cycles: extra, idxExtra: 0, exec: func(c *CPU, idx indexMode) (string, int) {
				if reg == regHLInd {
					v := c.bus.ReadMem(c.reg.HL())
					c.bus.WriteMem(c.reg.HL(), bitSet(bit, v))
				} else {
					c.set8(reg, bitSet(bit, c.get8(reg)))
				}
				return "SET " + digit(bit) + "," + reg8Names[reg], 0
			}}
		}
	}
}

func digit(n uint) string { return string([]byte{'0' + byte(n)}) }
