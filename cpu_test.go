package z80

import (
	"errors"
	"testing"
)

// --- §8 concrete end-to-end scenarios from the reference spec ---

func TestScenario_LD_A_n(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0100, 0x3E, 0x42)
	cpu.SetState(Registers{PCH: 0x01, PCL: 0x00, A: 0x00})

	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	reg := cpu.Registers()
	if reg.PC() != 0x0102 {
		t.Errorf("PC = %#04x, want 0x0102", reg.PC())
	}
	if reg.A != 0x42 {
		t.Errorf("A = %#02x, want 0x42", reg.A)
	}
	if n != 7 {
		t.Errorf("T-states = %d, want 7", n)
	}
	if got := cpu.LastMnemonic(); got != "LD A,n" {
		t.Errorf("LastMnemonic() = %q, want %q", got, "LD A,n")
	}
}

func TestScenario_ADD_A_B(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0200, 0x80)
	cpu.SetState(Registers{PCH: 0x02, PCL: 0x00, A: 0x3F, B: 0x01})

	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	reg := cpu.Registers()
	if reg.A != 0x40 {
		t.Errorf("A = %#02x, want 0x40", reg.A)
	}
	wantFlags(t, reg, map[Flag]bool{
		FlagS: false, FlagZ: false, FlagH: true, FlagV: false, FlagN: false, FlagC: false,
	})
	if reg.PC() != 0x0201 {
		t.Errorf("PC = %#04x, want 0x0201", reg.PC())
	}
	if n != 4 {
		t.Errorf("T-states = %d, want 4", n)
	}
}

func TestScenario_LDIR(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0300, 0xED, 0xB0)
	loadProgram(bus, 0x0400, 0x11, 0x22, 0x33)
	cpu.SetState(Registers{PCH: 0x03, PCL: 0x00, H: 0x04, L: 0x00, D: 0x05, E: 0x00, B: 0x00, C: 0x03})

	total := 0
	for {
		n, err := cpu.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		total += n
		if cpu.Registers().PC() == 0x0302 {
			break
		}
	}

	if bus.mem[0x0500] != 0x11 || bus.mem[0x0501] != 0x22 || bus.mem[0x0502] != 0x33 {
		t.Errorf("destination bytes = %02X %02X %02X, want 11 22 33",
			bus.mem[0x0500], bus.mem[0x0501], bus.mem[0x0502])
	}
	reg := cpu.Registers()
	if reg.HL() != 0x0403 {
		t.Errorf("HL = %#04x, want 0x0403", reg.HL())
	}
	if reg.DE() != 0x0503 {
		t.Errorf("DE = %#04x, want 0x0503", reg.DE())
	}
	if reg.BC() != 0 {
		t.Errorf("BC = %#04x, want 0", reg.BC())
	}
	if total != 21*2+16 {
		t.Errorf("total T-states = %d, want %d", total, 21*2+16)
	}
}

func TestScenario_CALL_RET(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xCD, 0x34, 0x12)
	loadProgram(bus, 0x1234, 0xC9)
	cpu.SetState(Registers{SPH: 0xFF, SPL: 0xFE})

	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("CALL Step: %v", err)
	}
	reg := cpu.Registers()
	if reg.PC() != 0x1234 {
		t.Errorf("PC after CALL = %#04x, want 0x1234", reg.PC())
	}
	if reg.SP() != 0xFFFC {
		t.Errorf("SP after CALL = %#04x, want 0xFFFC", reg.SP())
	}
	if bus.mem[0xFFFD] != 0x00 || bus.mem[0xFFFC] != 0x03 {
		t.Errorf("return address on stack = %02X%02X, want 0003", bus.mem[0xFFFD], bus.mem[0xFFFC])
	}
	if n != 17 {
		t.Errorf("CALL T-states = %d, want 17", n)
	}

	n, err = cpu.Step()
	if err != nil {
		t.Fatalf("RET Step: %v", err)
	}
	reg = cpu.Registers()
	if reg.PC() != 0x0003 {
		t.Errorf("PC after RET = %#04x, want 0x0003", reg.PC())
	}
	if reg.SP() != 0xFFFE {
		t.Errorf("SP after RET = %#04x, want 0xFFFE", reg.SP())
	}
	if n != 10 {
		t.Errorf("RET T-states = %d, want 10", n)
	}
}

func TestScenario_JR_NZ(t *testing.T) {
	// Taken: Z=0.
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0100, 0x20, 0xFE)
	cpu.SetState(Registers{PCH: 0x01, PCL: 0x00})
	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := cpu.Registers().PC(); got != 0x0100 {
		t.Errorf("PC (taken) = %#04x, want 0x0100", got)
	}
	if n != 12 {
		t.Errorf("T-states (taken) = %d, want 12", n)
	}

	// Not taken: Z=1.
	cpu, bus, _ = newTestCPU()
	loadProgram(bus, 0x0100, 0x20, 0xFE)
	cpu.SetState(Registers{PCH: 0x01, PCL: 0x00, F: uint8(FlagZ)})
	n, err = cpu.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := cpu.Registers().PC(); got != 0x0102 {
		t.Errorf("PC (not taken) = %#04x, want 0x0102", got)
	}
	if n != 7 {
		t.Errorf("T-states (not taken) = %d, want 7", n)
	}
}

func TestScenario_IM2_Interrupt(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x8000, 0x00, 0x90)
	loadProgram(bus, 0x9000, 0xFB) // EI, just to have a real instruction at the vector
	cpu.SetState(Registers{I: 0x80, IFF1: true, IFF2: true, InterruptMode: 2})
	cpu.IM0Ack = func() []uint8 { return []uint8{0x00} }

	cpu.RequestInterrupt()
	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	reg := cpu.Registers()
	if reg.PC() != 0x9000 {
		t.Errorf("PC = %#04x, want 0x9000", reg.PC())
	}
	if reg.SP() != 0xFFFE {
		t.Errorf("SP = %#04x, want decremented by 2 from 0", reg.SP())
	}
	if reg.IFF1 || reg.IFF2 {
		t.Errorf("IFF1/IFF2 = %v/%v, want false/false", reg.IFF1, reg.IFF2)
	}
	if n != 19 {
		t.Errorf("T-states = %d, want 19", n)
	}
}

// --- §8 invariants ---

func TestPushPopRoundTrip(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xE5, 0xE1) // PUSH HL; POP HL
	before := Registers{SPH: 0xFF, SPL: 0xFE, H: 0x12, L: 0x34, A: 0x99, F: 0x55}
	cpu.SetState(before)

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("PUSH: %v", err)
	}
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("POP: %v", err)
	}

	after := cpu.Registers()
	want := before
	want.PCL = 0x02 // PC advances past the two one-byte opcodes; not part of the invariant
	want.R = 2      // R counts the two opcode fetches; not part of the invariant
	if after != want {
		t.Errorf("state after PUSH HL;POP HL = %+v, want %+v", after, want)
	}
}

func TestExAFRoundTrip(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0x08, 0x08) // EX AF,AF' twice
	before := Registers{A: 0x12, F: 0x34, A_: 0x56, F_: 0x78}
	cpu.SetState(before)
	cpu.Step()
	cpu.Step()
	if got := cpu.Registers(); got.A != before.A || got.F != before.F || got.A_ != before.A_ || got.F_ != before.F_ {
		t.Errorf("after EX AF,AF' x2 = %+v, want unchanged %+v", got, before)
	}
}

func TestExxRoundTrip(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xD9, 0xD9) // EXX twice
	before := Registers{B: 1, C: 2, D: 3, E: 4, H: 5, L: 6, B_: 7, C_: 8, D_: 9, E_: 10, H_: 11, L_: 12}
	cpu.SetState(before)
	cpu.Step()
	cpu.Step()
	got := cpu.Registers()
	if got.BC() != before.BC() || got.DE() != before.DE() || got.HL() != before.HL() {
		t.Errorf("after EXX x2, main set changed: got %+v, want %+v", got, before)
	}
}

func TestDAAIdempotent(t *testing.T) {
	for a := uint8(0); a < 0x9A; a += 0x11 {
		cpu, bus, _ := newTestCPU()
		loadProgram(bus, 0x0000, 0x27)
		cpu.SetState(Registers{A: a})
		if _, err := cpu.Step(); err != nil {
			t.Fatalf("DAA: %v", err)
		}
		if got := cpu.Registers().A; got != a {
			t.Errorf("DAA(%#02x) with H=N=C=0 = %#02x, want unchanged", a, got)
		}
	}
}

func TestBitLeavesOperandUnchanged(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xCB, 0x40) // BIT 0,B
	cpu.SetState(Registers{B: 0xFE})     // bit 0 clear
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("BIT: %v", err)
	}
	reg := cpu.Registers()
	if reg.B != 0xFE {
		t.Errorf("B mutated by BIT: %#02x, want 0xFE unchanged", reg.B)
	}
	if !reg.Flag(FlagZ) {
		t.Errorf("Z not set for BIT 0 on a byte with bit 0 clear")
	}

	cpu, bus, _ = newTestCPU()
	loadProgram(bus, 0x0000, 0xCB, 0x40) // BIT 0,B
	cpu.SetState(Registers{B: 0x01})     // bit 0 set
	cpu.Step()
	if cpu.Registers().Flag(FlagZ) {
		t.Errorf("Z set for BIT 0 on a byte with bit 0 set")
	}
}

func TestCPIRTermination(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xED, 0xB1) // CPIR
	loadProgram(bus, 0x1000, 0x01, 0x02, 0x03, 0x04)
	cpu.SetState(Registers{H: 0x10, L: 0x00, B: 0x00, C: 0x04, A: 0x03})

	total := 0
	iterations := 0
	for {
		n, err := cpu.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		total += n
		iterations++
		if cpu.Registers().PC() != 0x0000 {
			break
		}
	}
	reg := cpu.Registers()
	if reg.BC() != 1 {
		t.Errorf("BC = %d, want 1 (found A on the 3rd compare)", reg.BC())
	}
	if !reg.Flag(FlagZ) {
		t.Errorf("Z not set though the value was found")
	}
	want := 21*(iterations-1) + 16
	if total != want {
		t.Errorf("total T-states = %d, want %d for %d iterations", total, want, iterations)
	}
}

func TestIndexedDDCBAddress(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	// LD B,RLC (IX+2): writes back to both (IX+2) and B.
	loadProgram(bus, 0x0000, 0xDD, 0xCB, 0x02, 0x00)
	bus.mem[0x1002] = 0x80
	cpu.SetState(Registers{IXH: 0x10, IXL: 0x00})

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if bus.mem[0x1002] != 0x01 {
		t.Errorf("(IX+2) = %#02x, want 0x01 (RLC of 0x80)", bus.mem[0x1002])
	}
	if cpu.Registers().B != 0x01 {
		t.Errorf("B = %#02x, want 0x01 (writeback copy)", cpu.Registers().B)
	}
}

func TestIndexedDDCBDoesNotOverRefresh(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xDD, 0xCB, 0x02, 0x00) // LD B,RLC (IX+2)
	bus.mem[0x1002] = 0x80
	cpu.SetState(Registers{IXH: 0x10, IXL: 0x00, R: 0x00})

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	// Only the DD and CB bytes are M1 (opcode fetch) cycles; the
	// displacement and final opcode byte are operand reads, so R advances
	// by exactly 2.
	if got := cpu.Registers().R; got != 2 {
		t.Errorf("R after DDCB instruction = %#02x, want 0x02", got)
	}
}

func TestRRDLeavesCarryUnaffected(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xED, 0x67) // RRD
	cpu.SetState(Registers{A: 0x84, H: 0x10, L: 0x00, F: uint8(FlagC)})
	bus.mem[0x1000] = 0x20

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("RRD: %v", err)
	}
	if !cpu.Registers().Flag(FlagC) {
		t.Errorf("C cleared by RRD, want left set (unaffected)")
	}
}

func TestRLDLeavesCarryUnaffected(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xED, 0x6F) // RLD
	cpu.SetState(Registers{A: 0x84, H: 0x10, L: 0x00, F: uint8(FlagC)})
	bus.mem[0x1000] = 0x20

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("RLD: %v", err)
	}
	if !cpu.Registers().Flag(FlagC) {
		t.Errorf("C cleared by RLD, want left set (unaffected)")
	}
}

func TestIndexedLDRegAgainstMemoryOperandDoesNotSubstituteHalfRegister(t *testing.T) {
	// LD H,(IX+2): the (HL)-shaped operand is redirected through IX, but H
	// itself is the real H register, not IXH.
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xDD, 0x66, 0x02)
	bus.mem[0x1002] = 0x77
	cpu.SetState(Registers{IXH: 0x10, IXL: 0x00, H: 0x99})

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	reg := cpu.Registers()
	if reg.H != 0x77 {
		t.Errorf("H = %#02x, want 0x77 (loaded from (IX+2))", reg.H)
	}
	if reg.IXH != 0x10 {
		t.Errorf("IXH = %#02x, want unchanged 0x10", reg.IXH)
	}

	mnemonic, _ := Disassemble([]byte{0xDD, 0x66, 0x02}, 0x0000)
	if mnemonic != "LD H,(IX+0x02)" {
		t.Errorf("mnemonic = %q, want %q", mnemonic, "LD H,(IX+0x02)")
	}
}

func TestIndexedLDMemoryOperandAgainstRegDoesNotSubstituteHalfRegister(t *testing.T) {
	// LD (IX+2),L: the real L register is written to memory at IX+2, not IYL/IXL.
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xDD, 0x75, 0x02)
	cpu.SetState(Registers{IXH: 0x10, IXL: 0x00, L: 0x55, IYL: 0xAA})

	if _, err := cpu.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if bus.mem[0x1002] != 0x55 {
		t.Errorf("(IX+2) = %#02x, want 0x55 (real L, not IXL)", bus.mem[0x1002])
	}

	mnemonic, _ := Disassemble([]byte{0xDD, 0x75, 0x02}, 0x0000)
	if mnemonic != "LD (IX+0x02),L" {
		t.Errorf("mnemonic = %q, want %q", mnemonic, "LD (IX+0x02),L")
	}
}

func TestJRUnconditionalCycles(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0100, 0x18, 0x05) // JR +5
	cpu.SetState(Registers{PCH: 0x01, PCL: 0x00})

	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("JR: %v", err)
	}
	if n != 12 {
		t.Errorf("JR e T-states = %d, want 12", n)
	}
	if got := cpu.Registers().PC(); got != 0x0107 {
		t.Errorf("PC = %#04x, want 0x0107", got)
	}
}

func TestALUImmediate(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000,
		0xC6, 0x10, // ADD A,0x10
		0xD6, 0x05, // SUB 0x05
		0xE6, 0x0F, // AND 0x0F
		0xF6, 0x80, // OR 0x80
	)
	cpu.SetState(Registers{A: 0x20})

	n, err := cpu.Step() // ADD A,0x10: 0x20+0x10=0x30
	if err != nil {
		t.Fatalf("ADD A,n: %v", err)
	}
	if n != 7 {
		t.Errorf("ADD A,n T-states = %d, want 7", n)
	}
	if got := cpu.Registers().A; got != 0x30 {
		t.Errorf("A after ADD A,0x10 = %#02x, want 0x30", got)
	}

	if _, err := cpu.Step(); err != nil { // SUB 0x05: 0x30-0x05=0x2B
		t.Fatalf("SUB n: %v", err)
	}
	if got := cpu.Registers().A; got != 0x2B {
		t.Errorf("A after SUB 0x05 = %#02x, want 0x2B", got)
	}

	if _, err := cpu.Step(); err != nil { // AND 0x0F: 0x2B&0x0F=0x0B
		t.Fatalf("AND n: %v", err)
	}
	if got := cpu.Registers().A; got != 0x0B {
		t.Errorf("A after AND 0x0F = %#02x, want 0x0B", got)
	}

	if _, err := cpu.Step(); err != nil { // OR 0x80: 0x0B|0x80=0x8B
		t.Fatalf("OR n: %v", err)
	}
	reg := cpu.Registers()
	if reg.A != 0x8B {
		t.Errorf("A after OR 0x80 = %#02x, want 0x8B", reg.A)
	}
	if !reg.Flag(FlagS) {
		t.Errorf("S not set for OR result 0x8B")
	}
}

func TestUnrecognisedInstruction(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	// 0xED 0xFF has no entry in edTable.
	loadProgram(bus, 0x0000, 0xED, 0xFF)
	_, err := cpu.Step()
	var ui *UnrecognisedInstruction
	if err == nil {
		t.Fatalf("expected UnrecognisedInstruction, got nil")
	}
	if !errors.As(err, &ui) {
		t.Fatalf("expected *UnrecognisedInstruction, got %T: %v", err, err)
	}
}

func TestRETNRestoresIFF1FromIFF2(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0xED, 0x45) // RETN
	cpu.SetState(Registers{SPH: 0xFF, SPL: 0xFE, IFF1: false, IFF2: true})
	bus.mem[0xFFFE] = 0x00
	bus.mem[0xFFFF] = 0x00
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("RETN: %v", err)
	}
	if !cpu.Registers().IFF1 {
		t.Errorf("IFF1 not restored from IFF2 by RETN")
	}
}

func TestHaltWaitsForInterrupt(t *testing.T) {
	cpu, bus, _ := newTestCPU()
	loadProgram(bus, 0x0000, 0x76) // HALT
	cpu.SetState(Registers{})
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("HALT: %v", err)
	}
	if !cpu.Halted() {
		t.Fatalf("CPU not halted after executing HALT")
	}
	n, err := cpu.Step()
	if err != nil {
		t.Fatalf("idle step: %v", err)
	}
	if n != 4 {
		t.Errorf("idle T-states while halted = %d, want 4", n)
	}
	if cpu.Registers().PC() != 1 {
		t.Errorf("PC advanced while halted: %#04x, want 1", cpu.Registers().PC())
	}

	cpu.RequestNMI()
	if _, err := cpu.Step(); err != nil {
		t.Fatalf("NMI: %v", err)
	}
	if cpu.Halted() {
		t.Errorf("CPU still halted after NMI acceptance")
	}
}
