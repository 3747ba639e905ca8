package z80

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisassembleScenarios(t *testing.T) {
	cases := []struct {
		name   string
		code   []byte
		org    uint16
		want   string
		length int
	}{
		{"NOP", []byte{0x00}, 0x0000, "NOP", 1},
		{"LD A,n", []byte{0x3E, 0x42}, 0x0000, "LD A,0x42", 2},
		{"LD BC,nn", []byte{0x01, 0xCD, 0xAB}, 0x0000, "LD BC,0xABCD", 3},
		{"JR e forward", []byte{0x18, 0x05}, 0x8000, "JR 0x8007", 2},
		{"JR e backward", []byte{0x18, 0xFE}, 0x8000, "JR 0x8000", 2},
		{"LD (IX+d),n", []byte{0xDD, 0x36, 0x02, 0x99}, 0x0000, "LD (IX+0x02),0x99", 4},
		{"CALL NZ,nn", []byte{0xC4, 0x00, 0x90}, 0x0000, "CALL NZ,0x9000", 3},
		{"RST 0x18", []byte{0xDF}, 0x0000, "RST 0x18", 1},
		{"unknown opcode", []byte{0xED, 0xFF}, 0x0000, "???", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n := Disassemble(tc.code, tc.org)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.length, n)
		})
	}
}

func TestDisassembleAgreesWithExecution(t *testing.T) {
	bus, io := &testBus{}, &testIO{}
	loadProgram(bus, 0x0100, 0x21, 0x34, 0x12) // LD HL,0x1234
	cpu := New(bus, io)
	cpu.SetState(Registers{PCH: 0x01, PCL: 0x00})

	mnemonic, length := Disassemble(bus.mem[0x0100:0x0103], 0x0100)
	require.Equal(t, "LD HL,0x1234", mnemonic)
	require.Equal(t, 3, length)

	n, err := cpu.Step()
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, uint16(0x1234), cpu.Registers().HL())
	assert.Equal(t, uint16(0x0103), cpu.Registers().PC())
}
