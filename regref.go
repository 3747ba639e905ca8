package z80

// reg8 names an 8-bit operand position within the standard 3-bit register
// field used throughout the opcode table (000=B ... 111=A, with 110
// reserved for (HL) and handled separately by callers that read or write
// memory themselves; get8 returns 0 and set8 does nothing for it).
type reg8 uint8

const (
	regB reg8 = iota
	regC
	regD
	regE
	regH
	regL
	regHLInd // placeholder: get8/set8 do not access memory for it, callers special-case it
	regA
)

// get8 reads an 8-bit register by its 3-bit table encoding.
func (c *CPU) get8(r reg8) uint8 {
	switch r {
	case regB:
		return c.reg.B
	case regC:
		return c.reg.C
	case regD:
		return c.reg.D
	case regE:
		return c.reg.E
	case regH:
		return c.reg.H
	case regL:
		return c.reg.L
	case regA:
		return c.reg.A
	}
	return 0
}

// set8 writes an 8-bit register by its 3-bit table encoding.
func (c *CPU) set8(r reg8, v uint8) {
	switch r {
	case regB:
		c.reg.B = v
	case regC:
		c.reg.C = v
	case regD:
		c.reg.D = v
	case regE:
		c.reg.E = v
	case regH:
		c.reg.H = v
	case regL:
		c.reg.L = v
	case regA:
		c.reg.A = v
	}
}

// reg8Names gives the disassembler text for each 3-bit register encoding.
var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// reg16SP names a 16-bit register pair in the "SP form" used by opcodes
// whose bits 5-4 select {BC, DE, HL, SP} (e.g. LD rr,nn; INC rr; ADD
// HL,rr).
type reg16SP uint8

const (
	regBC reg16SP = iota
	regDE
	regHL
	regSP
)

func (c *CPU) get16SP(r reg16SP) uint16 {
	switch r {
	case regBC:
		return c.reg.BC()
	case regDE:
		return c.reg.DE()
	case regHL:
		return c.reg.HL()
	case regSP:
		return c.reg.SP()
	}
	return 0
}

func (c *CPU) set16SP(r reg16SP, v uint16) {
	switch r {
	case regBC:
		c.reg.SetBC(v)
	case regDE:
		c.reg.SetDE(v)
	case regHL:
		c.reg.SetHL(v)
	case regSP:
		c.reg.SetSP(v)
	}
}

var reg16SPNames = [4]string{"BC", "DE", "HL", "SP"}

// reg16AF is the "AF form" used by PUSH/POP, where bits 5-4 select
// {BC, DE, HL, AF} instead of SP.
type reg16AF uint8

const (
	regAFBC reg16AF = iota
	regAFDE
	regAFHL
	regAFAF
)

func (c *CPU) get16AF(r reg16AF) uint16 {
	switch r {
	case regAFBC:
		return c.reg.BC()
	case regAFDE:
		return c.reg.DE()
	case regAFHL:
		return c.reg.HL()
	case regAFAF:
		return c.reg.AF()
	}
	return 0
}

func (c *CPU) set16AF(r reg16AF, v uint16) {
	switch r {
	case regAFBC:
		c.reg.SetBC(v)
	case regAFDE:
		c.reg.SetDE(v)
	case regAFHL:
		c.reg.SetHL(v)
	case regAFAF:
		c.reg.SetAF(v)
	}
}

var reg16AFNames = [4]string{"BC", "DE", "HL", "AF"}

// condition names an 8-way condition code used by conditional JP/CALL/RET
// and JR's 4-way subset (bits 4-3 of the JR encoding reuse codes 0-3).
type condition uint8

const (
	condNZ condition = iota
	condZ
	condNC
	condC
	condPO
	condPE
	condP
	condM
)

var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

// test evaluates a condition code against the current flags.
func (c *CPU) test(cc condition) bool {
	switch cc {
	case condNZ:
		return !c.reg.Flag(FlagZ)
	case condZ:
		return c.reg.Flag(FlagZ)
	case condNC:
		return !c.reg.Flag(FlagC)
	case condC:
		return c.reg.Flag(FlagC)
	case condPO:
		return !c.reg.Flag(FlagP)
	case condPE:
		return c.reg.Flag(FlagP)
	case condP:
		return !c.reg.Flag(FlagS)
	case condM:
		return c.reg.Flag(FlagS)
	}
	return false
}
