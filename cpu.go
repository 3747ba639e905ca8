package z80

// CPU is the Z80 processor core. It owns no bus of its own: a host wires in
// a Bus and an IOBus, constructs a CPU with New, and drives it with Step
// (one instruction at a time; the Z80's variable instruction length makes a
// fixed-width per-word Tick loop the wrong shape here).
type CPU struct {
	reg Registers
	bus Bus
	io  IOBus

	cycles uint64

	pendingNMI bool
	pendingINT bool
	eiDelay    bool // true for the Step immediately after EI: interrupts stay masked that one instruction

	// IM0Ack supplies the instruction byte(s) placed on the data bus during
	// an IM 0 interrupt acknowledge cycle (what a real peripheral would
	// drive). If nil, or it does not resolve to a RST, an IM 0 acknowledge
	// behaves like RST 0x38 -- the common case for a single-peripheral
	// system with no IM 0 device wired in.
	IM0Ack func() []uint8

	lastMnemonic string

	// disasm instrumentation: captureFetch, when set, makes fetchByte and
	// fetchOpcode record every instruction-stream byte they consume (opcode,
	// prefix, displacement, and immediate bytes alike) so Disassemble can
	// recover an exact byte length and substitute the immediate-value
	// placeholder tokens ("n", "nn", "e", "+d") exec functions leave in their
	// returned mnemonic.
	captureFetch bool
	fetchedAll   []uint8 // every byte consumed, in stream order
	fetchedImm   []uint8 // only fetchByte bytes (the immediate/displacement operands), in stream order
}

// New creates a CPU wired to the given memory and I/O buses and performs a
// power-on reset.
func New(bus Bus, io IOBus) *CPU {
	c := &CPU{bus: bus, io: io}
	c.Reset()
	return c
}

// Reset puts the CPU in its post-power-on-reset state: PC, I, R at 0,
// IFF1/IFF2 cleared, interrupt mode 0. SP and the rest of the register
// file are left at the Z80's traditionally undefined reset values (all
// zero here, same as a freshly zeroed Registers).
func (c *CPU) Reset() {
	c.reg = Registers{}
	c.cycles = 0
	c.pendingNMI = false
	c.pendingINT = false
	c.eiDelay = false
}

// Registers returns a snapshot of the current register state.
func (c *CPU) Registers() Registers { return c.reg }

// SetState installs a register snapshot directly, bypassing Reset. Used by
// tests that need exact CPU state before executing an instruction.
func (c *CPU) SetState(r Registers) {
	c.reg = r
	c.pendingNMI = false
	c.pendingINT = false
	c.eiDelay = false
}

// Cycles returns the total T-state count since the last Reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Halted reports whether the CPU executed a HALT and is idling until an
// interrupt or NMI arrives.
func (c *CPU) Halted() bool { return c.reg.Halted }

// LastMnemonic returns the mnemonic of the most recently completed
// instruction, for host-side tracing, with operand placeholders ("n",
// "nn", "e", "+d") left in place rather than filled in as Disassemble
// does. Empty until the first Step that executes an instruction (idle
// HALT ticks and interrupt acceptances do not update it).
func (c *CPU) LastMnemonic() string { return c.lastMnemonic }

// RequestNMI latches a non-maskable interrupt, accepted at the start of
// the next Step.
func (c *CPU) RequestNMI() { c.pendingNMI = true }

// RequestInterrupt latches a maskable interrupt, accepted at the start of
// the next Step if IFF1 is set (and not the single Step immediately
// following an EI).
func (c *CPU) RequestInterrupt() { c.pendingINT = true }

// Step executes one instruction, or accepts a pending interrupt/NMI if one
// is latched and due, and returns the number of T-states consumed.
func (c *CPU) Step() (int, error) {
	if c.eiDelay {
		c.eiDelay = false
	} else if c.pendingNMI {
		c.pendingNMI = false
		c.reg.Halted = false
		n := c.acceptNMI()
		c.cycles += uint64(n)
		return n, nil
	} else if c.pendingINT && c.reg.IFF1 {
		c.pendingINT = false
		c.reg.IFF1, c.reg.IFF2 = false, false
		c.reg.Halted = false
		n, err := c.acceptINT()
		c.cycles += uint64(n)
		return n, err
	}

	if c.reg.Halted {
		c.reg.R = (c.reg.R & 0x80) | ((c.reg.R + 1) & 0x7F)
		c.cycles += 4
		return 4, nil
	}

	n, mnemonic, err := c.execOne()
	c.lastMnemonic = mnemonic
	c.cycles += uint64(n)
	return n, err
}

// fetchOpcode reads the byte at PC as an M1 (opcode fetch) cycle: PC
// advances and R's low 7 bits increment, same as real silicon's DRAM
// refresh counter.
func (c *CPU) fetchOpcode() uint8 {
	v := c.bus.ReadMem(c.reg.PC())
	c.reg.SetPC(c.reg.PC() + 1)
	c.reg.R = (c.reg.R & 0x80) | ((c.reg.R + 1) & 0x7F)
	if c.captureFetch {
		c.fetchedAll = append(c.fetchedAll, v)
	}
	return v
}

// fetchByte reads a plain (non-M1) byte at PC and advances PC: operand
// fetches, displacement bytes, immediate data.
func (c *CPU) fetchByte() uint8 {
	v := c.bus.ReadMem(c.reg.PC())
	c.reg.SetPC(c.reg.PC() + 1)
	if c.captureFetch {
		c.fetchedAll = append(c.fetchedAll, v)
		c.fetchedImm = append(c.fetchedImm, v)
	}
	return v
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return pair(hi, lo)
}

// push writes v to the stack, high byte first, predecrementing SP (the
// Z80 stack grows down).
func (c *CPU) push(v uint16) {
	sp := c.reg.SP() - 1
	c.bus.WriteMem(sp, hiByte(v))
	sp--
	c.bus.WriteMem(sp, loByte(v))
	c.reg.SetSP(sp)
}

func (c *CPU) pop() uint16 {
	sp := c.reg.SP()
	lo := c.bus.ReadMem(sp)
	hi := c.bus.ReadMem(sp + 1)
	c.reg.SetSP(sp + 2)
	return pair(hi, lo)
}

// execOne decodes and runs one instruction starting at PC, returning its
// T-state cost, its disassembly mnemonic, and an error if the opcode (after
// any DD/FD/ED/CB prefixes) has no decode table entry.
func (c *CPU) execOne() (int, string, error) {
	total := 0
	b := c.fetchOpcode()
	total += 4
	idx := idxNone
	for b == 0xDD || b == 0xFD {
		if b == 0xDD {
			idx = idxIX
		} else {
			idx = idxIY
		}
		b = c.fetchOpcode()
		total += 4
	}

	switch b {
	case 0xCB:
		if idx != idxNone {
			return c.execIdxCB(idx, total)
		}
		return c.execCB(total)
	case 0xED:
		return c.execED(total)
	default:
		e := opTable[b]
		if e.exec == nil {
			return total, "", &UnrecognisedInstruction{Bytes: []uint8{b}}
		}
		mnemonic, extra := e.exec(c, idx)
		cost := e.cycles
		if idx != idxNone {
			cost += e.idxExtra
		}
		total += cost + extra
		return total, mnemonic, nil
	}
}

func (c *CPU) execCB(total int) (int, string, error) {
	op := c.fetchOpcode()
	total += 4
	e := cbTable[op]
	if e.exec == nil {
		return total, "", &UnrecognisedInstruction{Bytes: []uint8{0xCB, op}}
	}
	mnemonic, extra := e.exec(c, idxNone)
	total += e.cycles + extra
	return total, mnemonic, nil
}

// execIdxCB runs the DDCB/FDCB form: the displacement byte is fetched
// before the final opcode byte, and the indexed address it yields is
// computed once and handed to every part of this instruction (several
// DDCB opcodes both write (IX+d)/(IY+d) and copy the result into a
// register).
func (c *CPU) execIdxCB(idx indexMode, total int) (int, string, error) {
	d := int8(c.fetchByte())
	total += 3
	// The final opcode byte is an operand read, not an M1 cycle: only the
	// DD/FD and CB prefix bytes (fetched as fetchOpcode earlier, in
	// execOne) bump the refresh counter for a DDCB/FDCB instruction.
	op := c.fetchByte()
	total += 4

	var base uint16
	if idx == idxIX {
		base = c.reg.IX()
	} else {
		base = c.reg.IY()
	}
	addr := uint16(int32(base) + int32(d))

	e := idxCBTable[op]
	if e.exec == nil {
		return total, "", &UnrecognisedInstruction{Bytes: []uint8{0xCB, op}}
	}
	mnemonic, extra := e.exec(c, addr, idx)
	total += e.cycles + extra
	return total, mnemonic, nil
}

func (c *CPU) execED(total int) (int, string, error) {
	op := c.fetchOpcode()
	total += 4
	e := edTable[op]
	if e.exec == nil {
		return total, "", &UnrecognisedInstruction{Bytes: []uint8{0xED, op}}
	}
	mnemonic, extra := e.exec(c, idxNone)
	total += e.cycles + extra
	return total, mnemonic, nil
}
