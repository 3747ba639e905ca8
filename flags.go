package z80

// flagRule names how one bit of F is derived once an operation's result is
// known. This mirrors the eight-character per-instruction flag template
// (one character per S Z 5 H 3 P/V N C position) used throughout this
// instruction set's reference semantics: each opcode's table entry carries
// a flagTemplate built from these rules instead of a literal template
// string, and applyFlags plays the role of applying it.
type flagRule uint8

const (
	frHold     flagRule = iota // '-': leave the bit as it was
	frSet                      // '1': force 1
	frReset                    // '0': force 0
	frSign                     // 'S': result bit 7
	frZero                     // 'Z': result == 0
	frBit5                     // '5': result bit 5 (undocumented)
	frBit3                     // '3': result bit 3 (undocumented)
	frHalf                     // 'H': supplied half-carry
	frCarry                    // 'C': supplied carry/borrow
	frOverflow                 // 'V': supplied signed overflow
	frParity                   // 'P': even parity of result
	frIFF2                     // '*': copy IFF2 (LD A,I / LD A,R into P/V)
)

// flagTemplate fixes, for one instruction class, how each of the 8 bits of
// F is derived after the operation runs. Field order matches F's bit
// layout: S Z 5 H 3 P/V N C.
type flagTemplate struct {
	S, Z, Y5, H, X3, PV, N, C flagRule
}

// flagInputs carries the values a flagTemplate's non-trivial rules read.
// Result is whatever byte the S/Z/5/3/P rules key off (for 16-bit ops this
// is the high byte, matching the ADC HL/SBC HL templates). Half and Carry
// are computed by the operation itself, since the half-carry/borrow formula
// differs between 8-bit and 16-bit forms (see adcHL/sbcHL below). Overflow
// is the signed-overflow test, also operation-specific.
type flagInputs struct {
	result   uint8
	half     bool
	carry    bool
	overflow bool
}

func (r flagRule) eval(c *CPU, bit Flag, in flagInputs) bool {
	switch r {
	case frHold:
		return c.reg.Flag(bit)
	case frSet:
		return true
	case frReset:
		return false
	case frSign:
		return in.result&0x80 != 0
	case frZero:
		return in.result == 0
	case frBit5:
		return in.result&0x20 != 0
	case frBit3:
		return in.result&0x08 != 0
	case frHalf:
		return in.half
	case frCarry:
		return in.carry
	case frOverflow:
		return in.overflow
	case frParity:
		return evenParity(in.result)
	case frIFF2:
		return c.reg.IFF2
	}
	return false
}

func evenParity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}

// applyFlags sets F from a template and the inputs the operation computed.
func (c *CPU) applyFlags(t flagTemplate, in flagInputs) {
	c.reg.PutFlag(FlagS, t.S.eval(c, FlagS, in))
	c.reg.PutFlag(FlagZ, t.Z.eval(c, FlagZ, in))
	c.reg.PutFlag(Flag5, t.Y5.eval(c, Flag5, in))
	c.reg.PutFlag(FlagH, t.H.eval(c, FlagH, in))
	c.reg.PutFlag(Flag3, t.X3.eval(c, Flag3, in))
	c.reg.PutFlag(FlagP, t.PV.eval(c, FlagP, in))
	c.reg.PutFlag(FlagN, t.N.eval(c, FlagN, in))
	c.reg.PutFlag(FlagC, t.C.eval(c, FlagC, in))
}

// Instruction-class templates, named the way the reference flag tables read.
var (
	tmplAdd8       = flagTemplate{frSign, frZero, frBit5, frHalf, frBit3, frOverflow, frReset, frCarry}
	tmplSub8       = flagTemplate{frSign, frZero, frBit5, frHalf, frBit3, frOverflow, frSet, frCarry}
	tmplCp8        = tmplSub8
	tmplInc8       = flagTemplate{frSign, frZero, frBit5, frHalf, frBit3, frOverflow, frReset, frHold}
	tmplDec8       = flagTemplate{frSign, frZero, frBit5, frHalf, frBit3, frOverflow, frSet, frHold}
	tmplLogicAnd   = flagTemplate{frSign, frZero, frBit5, frSet, frBit3, frParity, frReset, frReset}
	tmplLogicOrXor = flagTemplate{frSign, frZero, frBit5, frReset, frBit3, frParity, frReset, frReset}
	// ADD HL,rr / ADD IX,rr etc.: S/Z/P unaffected, H/N/C set from the op.
	tmplAdd16 = flagTemplate{frHold, frHold, frBit5, frHalf, frBit3, frHold, frReset, frCarry}
	// ADC/SBC HL,rr: full S/Z/P/V like an 8-bit op, keyed on the high byte.
	tmplAdc16 = flagTemplate{frSign, frZero, frBit5, frHalf, frBit3, frOverflow, frReset, frCarry}
	tmplSbc16 = flagTemplate{frSign, frZero, frBit5, frHalf, frBit3, frOverflow, frSet, frCarry}
	// Rotate/shift via the CB table: full S/Z/5/3/P, H/N reset, C from the
	// bit shifted out.
	tmplRotate = flagTemplate{frSign, frZero, frBit5, frReset, frBit3, frParity, frReset, frCarry}
	// BIT b,r: Z/P from the tested bit, H set, N reset, C unaffected. S is
	// set only by a BIT 7 test that finds the bit set; opBit clears it for
	// every other bit number.
	tmplBit = flagTemplate{frSign, frZero, frBit5, frSet, frBit3, frParity, frReset, frHold}
	// RLCA/RLA/RRCA/RRA: S/Z/P unaffected, H/N reset, C from the bit shifted out.
	tmplRotateA = flagTemplate{frHold, frHold, frBit5, frReset, frBit3, frHold, frReset, frCarry}
)

// halfCarryAdd reports the half-carry (bit 3->4) for an 8-bit addition.
func halfCarryAdd(a, b, carryIn uint8) bool {
	return (a&0xF)+(b&0xF)+carryIn > 0xF
}

// halfCarrySub reports the half-borrow (bit 4) for an 8-bit subtraction.
func halfCarrySub(a, b, carryIn uint8) bool {
	return int(a&0xF)-int(b&0xF)-int(carryIn) < 0
}

// overflowAdd reports signed overflow for an 8-bit addition a+b+carryIn.
func overflowAdd(a, b, result uint8) bool {
	return (a^result)&(b^result)&0x80 != 0
}

// overflowSub reports signed overflow for an 8-bit subtraction a-b-carryIn.
func overflowSub(a, b, result uint8) bool {
	return (a^b)&(a^result)&0x80 != 0
}

// adcHL computes HL = HL + rr + carryIn, returning the result and the
// flagInputs the ADC HL template reads: half-carry from the high bytes plus
// the low-byte carry-out, overflow from the high bytes' signed test. SBC HL
// is the same shape in reverse (see sbcHL).
func adcHL(hl, rr uint16, carryIn bool) (uint16, flagInputs) {
	var cin uint8
	if carryIn {
		cin = 1
	}
	lo := uint16(uint8(hl)) + uint16(uint8(rr)) + uint16(cin)
	loCarry := lo > 0xFF
	hiA, hiB := uint8(hl>>8), uint8(rr>>8)
	var hiCarryIn uint8
	if loCarry {
		hiCarryIn = 1
	}
	hiResult := uint16(hiA) + uint16(hiB) + uint16(hiCarryIn)
	result := uint16(uint8(hiResult))<<8 | lo&0xFF
	half := halfCarryAdd(hiA, hiB, hiCarryIn)
	carry := hiResult > 0xFF
	overflow := overflowAdd(hiA, hiB, uint8(hiResult))
	return result, flagInputs{result: uint8(hiResult), half: half, carry: carry, overflow: overflow}
}

// sbcHL computes HL = HL - rr - carryIn, mirroring adcHL.
func sbcHL(hl, rr uint16, carryIn bool) (uint16, flagInputs) {
	var cin uint8
	if carryIn {
		cin = 1
	}
	loA, loB := uint8(hl), uint8(rr)
	loBorrow := int(loA) < int(loB)+int(cin)
	var loCarryOut uint8
	if loBorrow {
		loCarryOut = 1
	}
	lo := loA - loB - cin
	hiA, hiB := uint8(hl>>8), uint8(rr>>8)
	hiResult := hiA - hiB - loCarryOut
	result := uint16(hiResult)<<8 | uint16(lo)
	half := halfCarrySub(hiA, hiB, loCarryOut)
	carry := int(hiA) < int(hiB)+int(loCarryOut)
	overflow := overflowSub(hiA, hiB, hiResult)
	return result, flagInputs{result: hiResult, half: half, carry: carry, overflow: overflow}
}

// daa implements the decimal adjust after an 8-bit BCD addition/subtraction.
func (c *CPU) daa() {
	a := c.reg.A
	n := c.reg.Flag(FlagN)
	h := c.reg.Flag(FlagH)
	cf := c.reg.Flag(FlagC)

	correction := uint8(0)
	if h || a&0xF > 9 {
		correction |= 0x06
	}
	if cf || a > 0x99 {
		correction |= 0x60
		cf = true
	}

	var result uint8
	var halfOut bool
	if n {
		result = a - correction
		halfOut = h && (a&0xF) < 6
	} else {
		result = a + correction
		halfOut = (a&0xF)+(correction&0xF) > 0xF
	}

	c.reg.A = result
	c.reg.PutFlag(FlagS, result&0x80 != 0)
	c.reg.PutFlag(FlagZ, result == 0)
	c.reg.PutFlag(Flag5, result&0x20 != 0)
	c.reg.PutFlag(FlagH, halfOut)
	c.reg.PutFlag(Flag3, result&0x08 != 0)
	c.reg.PutFlag(FlagP, evenParity(result))
	c.reg.PutFlag(FlagC, cf)
}
