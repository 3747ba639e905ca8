package z80

import "testing"

// testBus is a flat 64KB memory for testing: the Z80's whole address space.
type testBus struct {
	mem [65536]byte
}

func (b *testBus) ReadMem(addr uint16) uint8     { return b.mem[addr] }
func (b *testBus) WriteMem(addr uint16, v uint8) { b.mem[addr] = v }

// testIO is a flat 256-port I/O space keyed on the address's low byte,
// enough for tests that exercise IN/OUT without modeling real peripherals.
type testIO struct {
	ports [256]byte
	reads []uint16
}

func (io *testIO) ReadPort(addr uint16) uint8 {
	io.reads = append(io.reads, addr)
	return io.ports[uint8(addr)]
}

func (io *testIO) WritePort(addr uint16, v uint8) { io.ports[uint8(addr)] = v }

// loadProgram writes bytes at addr into the bus memory.
func loadProgram(bus *testBus, addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		bus.mem[int(addr)+i] = b
	}
}

// newTestCPU builds a CPU over a fresh bus/io pair and returns all three so
// a test can seed memory and registers before calling Step.
func newTestCPU() (*CPU, *testBus, *testIO) {
	bus := &testBus{}
	io := &testIO{}
	return New(bus, io), bus, io
}

// wantFlags checks a subset of F's bits against expectations, reporting
// mismatches with the flag name so failures read like the Z80 reference
// tables (S Z 5 H 3 P/V N C) instead of a bare hex diff.
func wantFlags(t *testing.T, reg Registers, want map[Flag]bool) {
	t.Helper()
	names := map[Flag]string{
		FlagS: "S", FlagZ: "Z", Flag5: "5", FlagH: "H",
		Flag3: "3", FlagP: "P/V", FlagN: "N", FlagC: "C",
	}
	for f, exp := range want {
		if got := reg.Flag(f); got != exp {
			t.Errorf("flag %s = %v, want %v (F=%#02x)", names[f], got, exp, reg.F)
		}
	}
}
